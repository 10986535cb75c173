package email

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/courtbook/internal/reservations"
)

type sentEmail struct {
	recipient string
	subject   string
	body      string
	ctxErr    error
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent chan sentEmail
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{sent: make(chan sentEmail, 4)}
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent <- sentEmail{recipient: recipient, subject: subject, body: body, ctxErr: ctx.Err()}
	return nil
}

func waitForEmail(t *testing.T, ch <-chan sentEmail) sentEmail {
	t.Helper()

	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("expected an email to be sent")
		return sentEmail{}
	}
}

func testReservation() reservations.Reservation {
	return reservations.Reservation{
		ID:                   7,
		CourtName:            "Court 1",
		ClientName:           "Ana Paz",
		ClientEmail:          "ana@example.com",
		Date:                 "2025-09-12",
		StartTime:            "18:00",
		EndTime:              "19:30",
		TotalPriceCents:      5400,
		DepositRequiredCents: 1620,
		DepositPaidCents:     1620,
		CancellationReason:   "Rain",
	}
}

func TestReservationConfirmedSurvivesRequestCancellation(t *testing.T) {
	sender := newFakeEmailSender()
	notifier := NewNotifier(sender, "Club Norte")

	ctx, cancel := context.WithCancel(context.Background())
	notifier.ReservationConfirmed(ctx, testReservation())
	cancel()

	e := waitForEmail(t, sender.sent)
	if e.ctxErr != nil {
		t.Fatalf("send context should be detached from the request, got %v", e.ctxErr)
	}
	if e.recipient != "ana@example.com" {
		t.Fatalf("recipient = %q", e.recipient)
	}
	if e.subject != "Reservation Confirmed - Club Norte" {
		t.Fatalf("subject = %q", e.subject)
	}
	for _, want := range []string{"Hello Ana Paz,", "Court: Court 1", "Friday, Sep 12, 2025", "6:00 PM - 7:30 PM", "Balance due at the court: $37.80"} {
		if !strings.Contains(e.body, want) {
			t.Fatalf("body missing %q:\n%s", want, e.body)
		}
	}
}

func TestReservationCancelledIncludesReason(t *testing.T) {
	sender := newFakeEmailSender()
	notifier := NewNotifier(sender, "")

	notifier.ReservationCancelled(context.Background(), testReservation())

	e := waitForEmail(t, sender.sent)
	if e.subject != "Reservation Cancelled - your facility" {
		t.Fatalf("subject = %q", e.subject)
	}
	if !strings.Contains(e.body, "Reason: Rain") {
		t.Fatalf("body missing reason:\n%s", e.body)
	}
}

func TestNotifierSkipsClientsWithoutEmail(t *testing.T) {
	sender := newFakeEmailSender()
	notifier := NewNotifier(sender, "Club Norte")

	r := testReservation()
	r.ClientEmail = ""
	notifier.ReservationConfirmed(context.Background(), r)

	select {
	case e := <-sender.sent:
		t.Fatalf("unexpected email: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNilNotifierIsNoOp(t *testing.T) {
	var nilNotifier *Notifier
	nilNotifier.ReservationConfirmed(context.Background(), testReservation())
	nilNotifier.ReservationCancelled(context.Background(), testReservation())

	noSender := NewNotifier(nil, "Club Norte")
	noSender.ReservationConfirmed(context.Background(), testReservation())
	noSender.ReservationCancelled(context.Background(), testReservation())
}

func TestFormatCents(t *testing.T) {
	tests := map[int64]string{
		0:     "$0.00",
		5:     "$0.05",
		3780:  "$37.80",
		-1250: "-$12.50",
	}
	for cents, want := range tests {
		if got := FormatCents(cents); got != want {
			t.Fatalf("FormatCents(%d) = %q, want %q", cents, got, want)
		}
	}
}
