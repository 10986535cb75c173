package reservations

import (
	"time"

	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

const (
	StatePending   = "pending"
	StateConfirmed = "confirmed"
	StateCompleted = "completed"
	StateCancelled = "cancelled"
	StateNoShow    = "no_show"

	// stateDeleted is only used as a metrics label for hard deletes.
	stateDeleted = "deleted"
)

const (
	PaymentKindDeposit = "deposit"
	PaymentKindFull    = "full"

	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

const (
	DefaultCancelReason = "Cancellation requested"
	ExpiredReason       = "Expired without deposit"

	DefaultListLimit = 50
	MaxListLimit     = 100
)

type CreateInput struct {
	CourtID   int64  `json:"court_id" validate:"required,gt=0"`
	ClientID  int64  `json:"client_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
	Notes     string `json:"notes,omitempty" validate:"max=500"`
}

type ConfirmInput struct {
	AmountPaidCents int64  `json:"amount_paid_cents" validate:"gte=0"`
	Method          string `json:"method,omitempty" validate:"omitempty,oneof=cash card transfer"`
}

type CancelInput struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type ListFilter struct {
	Date     string
	CourtID  int64
	ClientID int64
	State    string
	Limit    int
}

type Payment struct {
	ID          int64     `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Kind        string    `json:"kind"`
	Method      string    `json:"method"`
	PaidAt      time.Time `json:"paid_at"`
}

// Reservation is the caller-facing view of a reservation row. Names and
// payments are filled only by the read operations that join them.
type Reservation struct {
	ID                   int64      `json:"id"`
	CourtID              int64      `json:"court_id"`
	CourtName            string     `json:"court_name,omitempty"`
	ClientID             int64      `json:"client_id"`
	ClientName           string     `json:"client_name,omitempty"`
	ClientPhone          string     `json:"client_phone,omitempty"`
	ClientEmail          string     `json:"-"`
	Date                 string     `json:"date"`
	StartTime            string     `json:"start_time"`
	EndTime              string     `json:"end_time"`
	TotalPriceCents      int64      `json:"total_price_cents"`
	DiscountPercent      float64    `json:"discount_percent"`
	DepositRequiredCents int64      `json:"deposit_required_cents"`
	DepositPaidCents     int64      `json:"deposit_paid_cents"`
	FullyPaid            bool       `json:"fully_paid"`
	Notes                string     `json:"notes,omitempty"`
	State                string     `json:"state"`
	CancellationReason   string     `json:"cancellation_reason,omitempty"`
	CancelledAt          *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	Payments             []Payment  `json:"payments,omitempty"`
}

func fromRow(row dbgen.Reservation) Reservation {
	r := Reservation{
		ID:                   row.ID,
		CourtID:              row.CourtID,
		ClientID:             row.ClientID,
		Date:                 row.Date,
		StartTime:            row.StartTime,
		EndTime:              row.EndTime,
		TotalPriceCents:      row.TotalPriceCents,
		DiscountPercent:      row.DiscountPercent,
		DepositRequiredCents: row.DepositRequiredCents,
		DepositPaidCents:     row.DepositPaidCents,
		FullyPaid:            row.FullyPaid,
		Notes:                row.Notes.String,
		State:                row.State,
		CancellationReason:   row.CancellationReason.String,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
	if row.CancelledAt.Valid {
		cancelledAt := row.CancelledAt.Time
		r.CancelledAt = &cancelledAt
	}
	return r
}

func fromDetailRow(row dbgen.GetReservationDetailRow) Reservation {
	r := fromRow(dbgen.Reservation{
		ID:                   row.ID,
		CourtID:              row.CourtID,
		ClientID:             row.ClientID,
		Date:                 row.Date,
		StartTime:            row.StartTime,
		EndTime:              row.EndTime,
		TotalPriceCents:      row.TotalPriceCents,
		DiscountPercent:      row.DiscountPercent,
		DepositRequiredCents: row.DepositRequiredCents,
		DepositPaidCents:     row.DepositPaidCents,
		FullyPaid:            row.FullyPaid,
		Notes:                row.Notes,
		State:                row.State,
		CancellationReason:   row.CancellationReason,
		CancelledAt:          row.CancelledAt,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	})
	r.CourtName = row.CourtName
	r.ClientName = row.ClientFirstName + " " + row.ClientLastName
	r.ClientPhone = row.ClientPhone
	r.ClientEmail = row.ClientEmail.String
	return r
}

func fromListRow(row dbgen.ListReservationsRow) Reservation {
	return fromDetailRow(dbgen.GetReservationDetailRow(row))
}

func fromPayment(row dbgen.Payment) Payment {
	return Payment{
		ID:          row.ID,
		AmountCents: row.AmountCents,
		Kind:        row.Kind,
		Method:      row.Method,
		PaidAt:      row.PaidAt,
	}
}
