package email

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/metrics"
	"github.com/codr1/courtbook/internal/reservations"
)

const (
	sendTimeout = 5 * time.Second

	typeConfirmation = "confirmation"
	typeCancellation = "cancellation"
)

// Notifier emails clients when their reservations are confirmed or
// cancelled. Sends run in the background and never fail the transition.
type Notifier struct {
	sender       EmailSender
	facilityName string
}

func NewNotifier(sender EmailSender, facilityName string) *Notifier {
	return &Notifier{sender: sender, facilityName: facilityName}
}

func (n *Notifier) ReservationConfirmed(ctx context.Context, r reservations.Reservation) {
	n.send(ctx, typeConfirmation, r, BuildConfirmation)
}

func (n *Notifier) ReservationCancelled(ctx context.Context, r reservations.Reservation) {
	n.send(ctx, typeCancellation, r, BuildCancellation)
}

func (n *Notifier) details(r reservations.Reservation) ReservationDetails {
	return ReservationDetails{
		FacilityName: n.facilityName,
		ClientName:   r.ClientName,
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Court:        r.CourtName,
		TotalCents:   r.TotalPriceCents,
		DepositCents: r.DepositRequiredCents,
		PaidCents:    r.DepositPaidCents,
		FullyPaid:    r.FullyPaid,
		Reason:       r.CancellationReason,
	}
}

// send is a no-op on a nil Notifier so callers can hold one unconditionally.
func (n *Notifier) send(ctx context.Context, emailType string, r reservations.Reservation, build func(ReservationDetails) Message) {
	if n == nil || n.sender == nil {
		return
	}
	recipient := strings.TrimSpace(r.ClientEmail)
	if recipient == "" {
		metrics.RecordEmail(emailType, "skipped")
		return
	}
	message := build(n.details(r))

	logger := log.Ctx(ctx).With().
		Str("component", "email").
		Str("type", emailType).
		Int64("reservation_id", r.ID).
		Logger()

	go func() {
		sendCtx, cancel := newEmailContext(ctx, sendTimeout)
		defer cancel()
		if err := n.sender.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
			metrics.RecordEmail(emailType, "error")
			logger.Error().Err(err).Msg("Failed to send reservation email")
			return
		}
		metrics.RecordEmail(emailType, "sent")
		logger.Debug().Msg("Reservation email sent")
	}()
}
