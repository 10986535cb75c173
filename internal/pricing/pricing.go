// Package pricing computes reservation prices in cents.
package pricing

import (
	"context"
	"math"
	"time"
)

// Quote is the price breakdown stored on a reservation.
type Quote struct {
	DurationMinutes int64   `json:"duration_minutes"`
	BasePriceCents  int64   `json:"base_price_cents"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountCents   int64   `json:"discount_cents"`
	TotalCents      int64   `json:"total_cents"`
	DepositPercent  float64 `json:"deposit_percent"`
	DepositCents    int64   `json:"deposit_cents"`
}

// Compute prices a slot of the given duration. Fractional hours are billed
// per minute and every amount is rounded to the nearest cent.
func Compute(hourlyRateCents int64, discountPercent float64, duration time.Duration, depositPercent float64) Quote {
	minutes := int64(duration / time.Minute)
	base := (hourlyRateCents*minutes + 30) / 60
	discount := percentOf(base, discountPercent)
	total := base - discount
	return Quote{
		DurationMinutes: minutes,
		BasePriceCents:  base,
		DiscountPercent: discountPercent,
		DiscountCents:   discount,
		TotalCents:      total,
		DepositPercent:  depositPercent,
		DepositCents:    percentOf(total, depositPercent),
	}
}

func percentOf(cents int64, percent float64) int64 {
	return int64(math.Round(float64(cents) * percent / 100))
}

// DepositSource supplies the deposit percentage in force right now.
type DepositSource interface {
	DepositPercent(ctx context.Context) (float64, error)
}

type Engine struct {
	deposits DepositSource
}

func NewEngine(deposits DepositSource) *Engine {
	return &Engine{deposits: deposits}
}

// Quote prices a slot using the deposit percentage read at call time.
func (e *Engine) Quote(ctx context.Context, hourlyRateCents int64, discountPercent float64, duration time.Duration) (Quote, error) {
	depositPercent, err := e.deposits.DepositPercent(ctx)
	if err != nil {
		return Quote{}, err
	}
	return Compute(hourlyRateCents, discountPercent, duration, depositPercent), nil
}
