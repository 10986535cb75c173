// Package reservations owns the reservation lifecycle:
//
//	pending -> confirmed -> completed
//	pending | confirmed -> cancelled
//	confirmed -> no_show
//
// Every transition is a conditional update on the current state, so a
// transition that loses a race reports INVALID_STATE instead of applying twice.
package reservations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/availability"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/metrics"
	"github.com/codr1/courtbook/internal/pricing"
	"github.com/codr1/courtbook/internal/validation"
)

// Rules supplies the runtime booking limits.
type Rules interface {
	MinAdvance(ctx context.Context) (time.Duration, error)
	MaxDuration(ctx context.Context) (time.Duration, error)
}

type Pricer interface {
	Quote(ctx context.Context, hourlyRateCents int64, discountPercent float64, duration time.Duration) (pricing.Quote, error)
}

// Notifier is told about transitions the client should hear about.
// Implementations must not block.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, r Reservation)
	ReservationCancelled(ctx context.Context, r Reservation)
}

type Lifecycle struct {
	db       *db.DB
	clock    clock.Clock
	location *time.Location
	rules    Rules
	pricer   Pricer
	notifier Notifier
}

// NewLifecycle wires the lifecycle. notifier may be nil.
func NewLifecycle(database *db.DB, c clock.Clock, location *time.Location, rules Rules, pricer Pricer, notifier Notifier) (*Lifecycle, error) {
	if database == nil {
		return nil, errors.New("reservation lifecycle requires a database")
	}
	if c == nil || rules == nil || pricer == nil {
		return nil, errors.New("reservation lifecycle requires a clock, rules and a pricer")
	}
	if location == nil {
		location = time.UTC
	}
	return &Lifecycle{
		db:       database,
		clock:    c,
		location: location,
		rules:    rules,
		pricer:   pricer,
		notifier: notifier,
	}, nil
}

func (l *Lifecycle) logger(ctx context.Context) zerolog.Logger {
	return log.Ctx(ctx).With().Str("component", "reservation_lifecycle").Logger()
}

// Create books a slot in the pending state.
func (l *Lifecycle) Create(ctx context.Context, in CreateInput) (Reservation, error) {
	if err := validation.Struct(in); err != nil {
		return Reservation{}, err
	}
	start, _ := clock.NormalizeTimeOfDay(in.StartTime)
	end, _ := clock.NormalizeTimeOfDay(in.EndTime)
	if end <= start {
		return Reservation{}, apperr.Field("end_time", "must be after start_time")
	}
	duration, err := clock.Duration(start, end)
	if err != nil {
		return Reservation{}, apperr.Internal("failed to compute duration", err)
	}

	maxDuration, err := l.rules.MaxDuration(ctx)
	if err != nil {
		return Reservation{}, err
	}
	if duration > maxDuration {
		return Reservation{}, apperr.Field("end_time", fmt.Sprintf("reservation cannot last more than %g hours", maxDuration.Hours()))
	}

	minAdvance, err := l.rules.MinAdvance(ctx)
	if err != nil {
		return Reservation{}, err
	}
	slotStart, err := clock.SlotStart(in.Date, start, l.location)
	if err != nil {
		return Reservation{}, apperr.Field("date", err.Error())
	}
	if slotStart.Before(l.clock.Now().Add(minAdvance)) {
		return Reservation{}, apperr.Field("start_time", fmt.Sprintf("reservations must be made at least %g hours in advance", minAdvance.Hours()))
	}

	logger := l.logger(ctx).With().
		Int64("court_id", in.CourtID).
		Int64("client_id", in.ClientID).
		Str("date", in.Date).
		Str("start_time", start).
		Str("end_time", end).
		Logger()

	var created dbgen.Reservation
	err = l.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		court, err := q.GetCourt(ctx, in.CourtID)
		if err != nil {
			if db.IsNotFound(err) {
				return apperr.NotFound("court %d not found", in.CourtID)
			}
			return apperr.Internal("failed to load court", err)
		}
		client, err := q.GetClientWithTier(ctx, in.ClientID)
		if err != nil {
			if db.IsNotFound(err) {
				return apperr.NotFound("client %d not found", in.ClientID)
			}
			return apperr.Internal("failed to load client", err)
		}
		if client.Status != "active" {
			return apperr.Field("client_id", fmt.Sprintf("client is %s and cannot book", client.Status))
		}
		if court.Status != "available" {
			return apperr.Conflict("court %s is %s", court.Name, strings.ReplaceAll(court.Status, "_", " "))
		}

		verdict, err := availability.Check(ctx, q, availability.Request{
			CourtID: court.ID,
			Date:    in.Date,
			Start:   start,
			End:     end,
		})
		if err != nil {
			return err
		}
		if !verdict.Available {
			metrics.RecordReservationConflict(string(verdict.Reason))
			if verdict.Reason == availability.ReasonBlockedDay {
				return apperr.Conflict("court is blocked on %s: %s", in.Date, verdict.BlockedDay.Reason)
			}
			return apperr.Conflict("the requested time slot is already booked")
		}

		// The tier discount is copied onto the reservation and never recomputed.
		quote, err := l.pricer.Quote(ctx, court.HourlyRateCents, client.TierDiscountPercent, duration)
		if err != nil {
			return err
		}

		created, err = q.CreateReservation(ctx, dbgen.CreateReservationParams{
			CourtID:              court.ID,
			ClientID:             client.ID,
			Date:                 in.Date,
			StartTime:            start,
			EndTime:              end,
			TotalPriceCents:      quote.TotalCents,
			DiscountPercent:      quote.DiscountPercent,
			DepositRequiredCents: quote.DepositCents,
			Notes:                nullString(in.Notes),
		})
		if err != nil {
			return err
		}

		if err := q.IncrementClientReservations(ctx, dbgen.IncrementClientReservationsParams{
			LastReservationDate: sql.NullString{String: in.Date, Valid: true},
			ID:                  client.ID,
		}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if db.IsSerializationFailure(err) {
			metrics.RecordReservationConflict("concurrent_booking")
			logger.Warn().Err(err).Msg("Reservation lost a concurrent booking race")
			return Reservation{}, apperr.Conflict("the requested time slot was just booked by someone else")
		}
		return Reservation{}, l.internal(logger, err, "failed to create reservation")
	}

	metrics.RecordReservationTransition(StatePending)
	logger.Info().
		Int64("reservation_id", created.ID).
		Int64("total_price_cents", created.TotalPriceCents).
		Int64("deposit_required_cents", created.DepositRequiredCents).
		Msg("Reservation created")

	return l.Get(ctx, created.ID)
}

// Confirm moves a pending reservation to confirmed and records the payment.
func (l *Lifecycle) Confirm(ctx context.Context, id int64, in ConfirmInput) (Reservation, error) {
	if err := validation.Struct(in); err != nil {
		return Reservation{}, err
	}
	method := in.Method
	if method == "" {
		method = MethodCash
	}
	logger := l.logger(ctx).With().Int64("reservation_id", id).Logger()

	var paymentKind string
	err := l.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		current, err := load(ctx, q, id)
		if err != nil {
			return err
		}
		if current.State != StatePending {
			return invalidTransition(current.State, StateConfirmed)
		}
		if in.AmountPaidCents < current.DepositRequiredCents {
			return apperr.Validation(
				fmt.Sprintf("amount paid must be at least the required deposit of %d cents", current.DepositRequiredCents),
				apperr.FieldError{
					Field:   "amount_paid_cents",
					Message: fmt.Sprintf("must be at least %d", current.DepositRequiredCents),
				},
			)
		}

		fullyPaid := in.AmountPaidCents >= current.TotalPriceCents
		paymentKind = PaymentKindDeposit
		if fullyPaid {
			paymentKind = PaymentKindFull
		}

		if _, err := q.ConfirmReservation(ctx, dbgen.ConfirmReservationParams{
			DepositPaidCents: in.AmountPaidCents,
			FullyPaid:        fullyPaid,
			ID:               id,
		}); err != nil {
			if db.IsNotFound(err) {
				return stateChanged(ctx, q, id, StateConfirmed)
			}
			return err
		}

		_, err = q.CreatePayment(ctx, dbgen.CreatePaymentParams{
			ReservationID: id,
			AmountCents:   in.AmountPaidCents,
			Kind:          paymentKind,
			Method:        method,
			PaidAt:        l.clock.Now(),
		})
		return err
	})
	if err != nil {
		return Reservation{}, l.internal(logger, err, "failed to confirm reservation")
	}

	metrics.RecordReservationTransition(StateConfirmed)
	metrics.RecordPayment(paymentKind, method, in.AmountPaidCents)
	logger.Info().
		Int64("amount_paid_cents", in.AmountPaidCents).
		Str("payment_kind", paymentKind).
		Str("method", method).
		Msg("Reservation confirmed")

	confirmed, err := l.Get(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if l.notifier != nil {
		l.notifier.ReservationConfirmed(ctx, confirmed)
	}
	return confirmed, nil
}

// Cancel moves a pending or confirmed reservation to cancelled.
func (l *Lifecycle) Cancel(ctx context.Context, id int64, in CancelInput) (Reservation, error) {
	if err := validation.Struct(in); err != nil {
		return Reservation{}, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = DefaultCancelReason
	}
	return l.cancel(ctx, id, reason)
}

func (l *Lifecycle) cancel(ctx context.Context, id int64, reason string) (Reservation, error) {
	logger := l.logger(ctx).With().Int64("reservation_id", id).Logger()

	err := l.db.RunInTx(ctx, func(txdb *db.DB) error {
		_, err := txdb.Queries.CancelReservation(ctx, dbgen.CancelReservationParams{
			CancellationReason: sql.NullString{String: reason, Valid: true},
			CancelledAt:        sql.NullTime{Time: l.clock.Now(), Valid: true},
			ID:                 id,
		})
		if db.IsNotFound(err) {
			return stateChanged(ctx, txdb.Queries, id, StateCancelled)
		}
		return err
	})
	if err != nil {
		return Reservation{}, l.internal(logger, err, "failed to cancel reservation")
	}

	metrics.RecordReservationTransition(StateCancelled)
	logger.Info().Str("reason", reason).Msg("Reservation cancelled")

	cancelled, err := l.Get(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if l.notifier != nil {
		l.notifier.ReservationCancelled(ctx, cancelled)
	}
	return cancelled, nil
}

// Complete moves a confirmed reservation to completed.
func (l *Lifecycle) Complete(ctx context.Context, id int64) (Reservation, error) {
	logger := l.logger(ctx).With().Int64("reservation_id", id).Logger()

	err := l.db.RunInTx(ctx, func(txdb *db.DB) error {
		_, err := txdb.Queries.CompleteReservation(ctx, id)
		if db.IsNotFound(err) {
			return stateChanged(ctx, txdb.Queries, id, StateCompleted)
		}
		return err
	})
	if err != nil {
		return Reservation{}, l.internal(logger, err, "failed to complete reservation")
	}

	metrics.RecordReservationTransition(StateCompleted)
	logger.Info().Msg("Reservation completed")
	return l.Get(ctx, id)
}

// NoShow moves a confirmed reservation to no_show and counts it against the client.
func (l *Lifecycle) NoShow(ctx context.Context, id int64) (Reservation, error) {
	logger := l.logger(ctx).With().Int64("reservation_id", id).Logger()

	err := l.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		updated, err := q.MarkReservationNoShow(ctx, id)
		if err != nil {
			if db.IsNotFound(err) {
				return stateChanged(ctx, q, id, StateNoShow)
			}
			return err
		}
		return q.IncrementClientNoShows(ctx, updated.ClientID)
	})
	if err != nil {
		return Reservation{}, l.internal(logger, err, "failed to mark reservation as no-show")
	}

	metrics.RecordReservationTransition(StateNoShow)
	logger.Info().Msg("Reservation marked as no-show")
	return l.Get(ctx, id)
}

// Delete removes a reservation in any state together with its payments and
// takes it off the client's reservation count.
func (l *Lifecycle) Delete(ctx context.Context, id int64) error {
	logger := l.logger(ctx).With().Int64("reservation_id", id).Logger()

	var clientID int64
	err := l.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		current, err := load(ctx, q, id)
		if err != nil {
			return err
		}
		clientID = current.ClientID

		if err := q.DeletePaymentsForReservation(ctx, id); err != nil {
			return err
		}
		deleted, err := q.DeleteReservation(ctx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperr.NotFound("reservation %d not found", id)
		}
		return q.DecrementClientReservations(ctx, current.ClientID)
	})
	if err != nil {
		return l.internal(logger, err, "failed to delete reservation")
	}

	metrics.RecordReservationTransition(stateDeleted)
	logger.Info().Int64("client_id", clientID).Msg("Reservation deleted")
	return nil
}

// ExpireStalePending cancels pending reservations whose start time has
// already passed. It returns how many were cancelled.
func (l *Lifecycle) ExpireStalePending(ctx context.Context) (int, error) {
	now := l.clock.Now().In(l.location)
	stale, err := l.db.Queries.ListPendingReservationsStartingBefore(ctx, dbgen.ListPendingReservationsStartingBeforeParams{
		Date:      now.Format(clock.DateLayout),
		StartTime: now.Format(clock.TimeLayout),
	})
	if err != nil {
		return 0, apperr.Internal("failed to list stale reservations", err)
	}

	expired := 0
	for _, r := range stale {
		if _, err := l.cancel(ctx, r.ID, ExpiredReason); err != nil {
			if apperr.Is(err, apperr.KindInvalidState) || apperr.Is(err, apperr.KindNotFound) {
				continue
			}
			return expired, err
		}
		expired++
	}
	return expired, nil
}

func load(ctx context.Context, q dbgen.Querier, id int64) (dbgen.Reservation, error) {
	current, err := q.GetReservation(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return dbgen.Reservation{}, apperr.NotFound("reservation %d not found", id)
		}
		return dbgen.Reservation{}, err
	}
	return current, nil
}

// stateChanged explains why a conditional transition matched no row.
func stateChanged(ctx context.Context, q dbgen.Querier, id int64, target string) error {
	current, err := load(ctx, q, id)
	if err != nil {
		return err
	}
	return invalidTransition(current.State, target)
}

func invalidTransition(from, to string) error {
	return apperr.InvalidState("cannot move reservation from %s to %s", from, to)
}

// internal passes domain errors through and hides everything else behind a
// generic message, logging the cause.
func (l *Lifecycle) internal(logger zerolog.Logger, err error, message string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal {
		return appErr
	}
	logger.Error().Err(err).Msg(message)
	if appErr != nil {
		return appErr
	}
	return apperr.Internal(message, err)
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
