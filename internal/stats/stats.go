// Package stats computes reporting figures for the admin dashboard. Figures
// are informational and never feed back into booking decisions.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/db"
)

// ClientHistoryMonths is how many calendar months the client breakdown covers,
// the current one included.
const ClientHistoryMonths = 6

type StateCount struct {
	State string `db:"state" json:"state"`
	Count int64  `db:"count" json:"count"`
}

type PopularCourt struct {
	CourtID      int64  `db:"court_id" json:"court_id"`
	Name         string `db:"name" json:"name"`
	Reservations int64  `db:"reservations" json:"reservations"`
}

type System struct {
	Courts              int64         `json:"courts"`
	ActiveClients       int64         `json:"active_clients"`
	ReservationsByState []StateCount  `json:"reservations_by_state"`
	Month               string        `json:"month"`
	MonthReservations   int64         `json:"month_reservations"`
	MonthIncomeCents    int64         `json:"month_income_cents"`
	MostPopularCourt    *PopularCourt `json:"most_popular_court,omitempty"`
}

type Court struct {
	CourtID                 int64   `db:"court_id" json:"court_id"`
	TotalReservations       int64   `db:"total_reservations" json:"total_reservations"`
	CompletedReservations   int64   `db:"completed_reservations" json:"completed_reservations"`
	TotalIncomeCents        int64   `db:"total_income_cents" json:"total_income_cents"`
	AverageReservationCents float64 `db:"average_reservation_cents" json:"average_reservation_cents"`
}

type MonthSummary struct {
	Month        string `db:"month" json:"month"`
	Reservations int64  `db:"reservations" json:"reservations"`
	SpentCents   int64  `db:"spent_cents" json:"spent_cents"`
}

type Client struct {
	ClientID   int64          `db:"client_id" json:"client_id"`
	Total      int64          `db:"total" json:"total_reservations"`
	Completed  int64          `db:"completed" json:"completed"`
	NoShows    int64          `db:"no_shows" json:"no_shows"`
	Cancelled  int64          `db:"cancelled" json:"cancelled"`
	SpentCents int64          `db:"spent_cents" json:"spent_cents"`
	Months     []MonthSummary `db:"-" json:"months"`
}

// Reporter runs the reporting queries. Income counts confirmed and completed
// reservations at their stored total.
type Reporter struct {
	db    *sqlx.DB
	clock clock.Clock
}

func NewReporter(database *db.DB, c clock.Clock) *Reporter {
	return &Reporter{db: database.Sqlx(), clock: c}
}

const systemCountsQuery = `
SELECT
	(SELECT COUNT(*) FROM courts) AS courts,
	(SELECT COUNT(*) FROM clients WHERE status = 'active') AS active_clients`

const stateCountsQuery = `
SELECT state, COUNT(*) AS count
FROM reservations
GROUP BY state
ORDER BY state`

const monthTotalsQuery = `
SELECT
	COUNT(*) AS reservations,
	CAST(COALESCE(SUM(CASE WHEN state IN ('confirmed', 'completed') THEN total_price_cents ELSE 0 END), 0) AS BIGINT) AS income
FROM reservations
WHERE date >= ? AND date <= ? AND state <> 'cancelled'`

const popularCourtQuery = `
SELECT c.id AS court_id, c.name AS name, COUNT(r.id) AS reservations
FROM courts c
JOIN reservations r ON r.court_id = c.id
WHERE r.state <> 'cancelled'
GROUP BY c.id, c.name
ORDER BY reservations DESC, c.id
LIMIT 1`

func (r *Reporter) System(ctx context.Context) (System, error) {
	var out System

	var counts struct {
		Courts        int64 `db:"courts"`
		ActiveClients int64 `db:"active_clients"`
	}
	if err := r.db.GetContext(ctx, &counts, systemCountsQuery); err != nil {
		return System{}, internal("failed to count courts and clients", err)
	}
	out.Courts = counts.Courts
	out.ActiveClients = counts.ActiveClients

	out.ReservationsByState = []StateCount{}
	if err := r.db.SelectContext(ctx, &out.ReservationsByState, stateCountsQuery); err != nil {
		return System{}, internal("failed to count reservations", err)
	}

	now := r.clock.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	out.Month = first.Format("2006-01")

	var month struct {
		Reservations int64 `db:"reservations"`
		Income       int64 `db:"income"`
	}
	if err := r.db.GetContext(ctx, &month, r.db.Rebind(monthTotalsQuery), first.Format(clock.DateLayout), last.Format(clock.DateLayout)); err != nil {
		return System{}, internal("failed to total the current month", err)
	}
	out.MonthReservations = month.Reservations
	out.MonthIncomeCents = month.Income

	var popular PopularCourt
	err := r.db.GetContext(ctx, &popular, popularCourtQuery)
	switch {
	case err == nil:
		out.MostPopularCourt = &popular
	case !errors.Is(err, sql.ErrNoRows):
		return System{}, internal("failed to find the most popular court", err)
	}

	return out, nil
}

const courtQuery = `
SELECT
	c.id AS court_id,
	COUNT(r.id) AS total_reservations,
	COUNT(CASE WHEN r.state = 'completed' THEN 1 END) AS completed_reservations,
	CAST(COALESCE(SUM(CASE WHEN r.state IN ('confirmed', 'completed') THEN r.total_price_cents END), 0) AS BIGINT) AS total_income_cents,
	CAST(COALESCE(AVG(CASE WHEN r.state IN ('confirmed', 'completed') THEN r.total_price_cents END), 0) AS DOUBLE PRECISION) AS average_reservation_cents
FROM courts c
LEFT JOIN reservations r ON r.court_id = c.id
WHERE c.id = ?
GROUP BY c.id`

func (r *Reporter) Court(ctx context.Context, courtID int64) (Court, error) {
	var out Court
	if err := r.db.GetContext(ctx, &out, r.db.Rebind(courtQuery), courtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Court{}, apperr.NotFound("court %d not found", courtID)
		}
		return Court{}, internal("failed to compute court statistics", err)
	}
	return out, nil
}

const clientQuery = `
SELECT
	c.id AS client_id,
	COUNT(r.id) AS total,
	COUNT(CASE WHEN r.state = 'completed' THEN 1 END) AS completed,
	COUNT(CASE WHEN r.state = 'no_show' THEN 1 END) AS no_shows,
	COUNT(CASE WHEN r.state = 'cancelled' THEN 1 END) AS cancelled,
	CAST(COALESCE(SUM(CASE WHEN r.state IN ('confirmed', 'completed') THEN r.total_price_cents END), 0) AS BIGINT) AS spent_cents
FROM clients c
LEFT JOIN reservations r ON r.client_id = c.id
WHERE c.id = ?
GROUP BY c.id`

const clientMonthsQuery = `
SELECT
	SUBSTR(date, 1, 7) AS month,
	COUNT(*) AS reservations,
	CAST(COALESCE(SUM(CASE WHEN state IN ('confirmed', 'completed') THEN total_price_cents END), 0) AS BIGINT) AS spent_cents
FROM reservations
WHERE client_id = ? AND date >= ? AND state <> 'cancelled'
GROUP BY SUBSTR(date, 1, 7)
ORDER BY month`

// Client returns lifetime figures for a client plus one entry per calendar
// month of the last ClientHistoryMonths, empty months included.
func (r *Reporter) Client(ctx context.Context, clientID int64) (Client, error) {
	var out Client
	if err := r.db.GetContext(ctx, &out, r.db.Rebind(clientQuery), clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, apperr.NotFound("client %d not found", clientID)
		}
		return Client{}, internal("failed to compute client statistics", err)
	}

	now := r.clock.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(ClientHistoryMonths - 1), 0)

	var rows []MonthSummary
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(clientMonthsQuery), clientID, start.Format(clock.DateLayout)); err != nil {
		return Client{}, internal("failed to compute monthly history", err)
	}
	byMonth := make(map[string]MonthSummary, len(rows))
	for _, m := range rows {
		byMonth[m.Month] = m
	}

	out.Months = make([]MonthSummary, 0, ClientHistoryMonths)
	for i := 0; i < ClientHistoryMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		summary, ok := byMonth[month]
		if !ok {
			summary = MonthSummary{Month: month}
		}
		out.Months = append(out.Months, summary)
	}
	return out, nil
}

func internal(message string, err error) error {
	return apperr.Internal(message, fmt.Errorf("stats: %w", err))
}
