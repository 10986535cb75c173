package reservations

import (
	"context"
	"database/sql"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

var validStates = map[string]bool{
	StatePending:   true,
	StateConfirmed: true,
	StateCompleted: true,
	StateCancelled: true,
	StateNoShow:    true,
}

// Get returns a reservation with its court, client and payments.
func (l *Lifecycle) Get(ctx context.Context, id int64) (Reservation, error) {
	row, err := l.db.Queries.GetReservationDetail(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return Reservation{}, apperr.NotFound("reservation %d not found", id)
		}
		return Reservation{}, apperr.Internal("failed to load reservation", err)
	}
	r := fromDetailRow(row)

	payments, err := l.db.Queries.ListPaymentsForReservation(ctx, id)
	if err != nil {
		return Reservation{}, apperr.Internal("failed to load payments", err)
	}
	for _, p := range payments {
		r.Payments = append(r.Payments, fromPayment(p))
	}
	return r, nil
}

// List returns reservations newest first, narrowed by the filter.
func (l *Lifecycle) List(ctx context.Context, filter ListFilter) ([]Reservation, error) {
	params := dbgen.ListReservationsParams{Limit: int64(DefaultListLimit)}

	var fields []apperr.FieldError
	if filter.Date != "" {
		if !clock.IsISODate(filter.Date) {
			return nil, apperr.NotValidFormat("date", "must use the YYYY-MM-DD format")
		}
		params.Date = sql.NullString{String: filter.Date, Valid: true}
	}
	if filter.State != "" {
		if !validStates[filter.State] {
			fields = append(fields, apperr.FieldError{Field: "state", Message: "must be one of: pending, confirmed, completed, cancelled, no_show"})
		}
		params.State = sql.NullString{String: filter.State, Valid: true}
	}
	if filter.CourtID > 0 {
		params.CourtID = sql.NullInt64{Int64: filter.CourtID, Valid: true}
	}
	if filter.ClientID > 0 {
		params.ClientID = sql.NullInt64{Int64: filter.ClientID, Valid: true}
	}
	switch {
	case filter.Limit == 0:
	case filter.Limit < 0 || filter.Limit > MaxListLimit:
		fields = append(fields, apperr.FieldError{Field: "limit", Message: "must be between 1 and 100"})
	default:
		params.Limit = int64(filter.Limit)
	}
	if err := apperr.Collect(fields); err != nil {
		return nil, err
	}

	rows, err := l.db.Queries.ListReservations(ctx, params)
	if err != nil {
		return nil, apperr.Internal("failed to list reservations", err)
	}
	out := make([]Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromListRow(row))
	}
	return out, nil
}
