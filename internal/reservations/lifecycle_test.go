package reservations

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/config"
	"github.com/codr1/courtbook/internal/db"
	"github.com/codr1/courtbook/internal/pricing"
	"github.com/codr1/courtbook/internal/settings"
	"github.com/codr1/courtbook/internal/testutil"
)

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []int64
	cancelled []int64
}

func (n *recordingNotifier) ReservationConfirmed(_ context.Context, r Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, r.ID)
}

func (n *recordingNotifier) ReservationCancelled(_ context.Context, r Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, r.ID)
}

type fixture struct {
	db       *db.DB
	life     *Lifecycle
	notifier *recordingNotifier
	store    *settings.DBStore
}

var testNow = time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := settings.NewStore(database.Queries)
	booking := settings.NewBooking(store, config.BookingConfig{
		DepositPercent:   30,
		MinAdvanceHours:  2,
		MaxDurationHours: 3,
	})
	notifier := &recordingNotifier{}
	life, err := NewLifecycle(database, clock.Fixed{At: testNow}, time.UTC, booking, pricing.NewEngine(booking), notifier)
	if err != nil {
		t.Fatalf("new lifecycle: %v", err)
	}
	return fixture{db: database, life: life, notifier: notifier, store: store}
}

func TestCreatePricesWithTierDiscount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 6000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "frequent")

	r, err := f.life.Create(ctx, CreateInput{
		CourtID:   court.ID,
		ClientID:  client.ID,
		Date:      "2025-09-12",
		StartTime: "9:00",
		EndTime:   "10:00",
		Notes:     "  bring balls ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.State != StatePending {
		t.Fatalf("state = %s, want pending", r.State)
	}
	if r.StartTime != "09:00" || r.EndTime != "10:00" {
		t.Fatalf("times not normalized: %s-%s", r.StartTime, r.EndTime)
	}
	if r.TotalPriceCents != 5400 || r.DepositRequiredCents != 1620 || r.DiscountPercent != 10 {
		t.Fatalf("unexpected pricing: total=%d deposit=%d discount=%v", r.TotalPriceCents, r.DepositRequiredCents, r.DiscountPercent)
	}
	if r.Notes != "bring balls" {
		t.Fatalf("notes = %q", r.Notes)
	}
	if r.CourtName != "Court 1" {
		t.Fatalf("court name = %q", r.CourtName)
	}

	updated, err := f.db.Queries.GetClient(ctx, client.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if updated.TotalReservations != 1 || updated.LastReservationDate.String != "2025-09-12" {
		t.Fatalf("client counters not updated: %+v", updated)
	}
}

func TestCreateKeepsDiscountSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 6000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "vip")

	r, err := f.life.Create(ctx, CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "18:00", EndTime: "19:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	regular, err := f.db.Queries.GetClientTierByName(ctx, "regular")
	if err != nil {
		t.Fatalf("get tier: %v", err)
	}
	if _, err := f.db.ExecContext(ctx, "UPDATE clients SET tier_id = ? WHERE id = ?", regular.ID, client.ID); err != nil {
		t.Fatalf("downgrade client: %v", err)
	}

	got, err := f.life.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DiscountPercent != 20 || got.TotalPriceCents != r.TotalPriceCents {
		t.Fatalf("discount snapshot changed: %+v", got)
	}
}

func TestCreateAllowsBackToBackAndRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 4000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")

	base := CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12"}

	first := base
	first.StartTime, first.EndTime = "10:00", "11:00"
	if _, err := f.life.Create(ctx, first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	adjacent := base
	adjacent.StartTime, adjacent.EndTime = "11:00", "12:00"
	if _, err := f.life.Create(ctx, adjacent); err != nil {
		t.Fatalf("back-to-back booking should succeed: %v", err)
	}

	overlapping := base
	overlapping.StartTime, overlapping.EndTime = "10:30", "11:30"
	_, err := f.life.Create(ctx, overlapping)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateRejectsBlockedDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 4000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")
	testutil.SeedBlockedDay(t, f.db, "2025-09-12", 0)

	_, err := f.life.Create(ctx, CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "10:00", EndTime: "11:00"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on blocked day, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 4000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")

	tests := []struct {
		name  string
		in    CreateInput
		kind  apperr.Kind
		field string
	}{
		{
			name:  "missing court",
			in:    CreateInput{ClientID: client.ID, Date: "2025-09-12", StartTime: "10:00", EndTime: "11:00"},
			kind:  apperr.KindValidation,
			field: "court_id",
		},
		{
			name:  "bad time",
			in:    CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "25:00", EndTime: "11:00"},
			kind:  apperr.KindValidation,
			field: "start_time",
		},
		{
			name:  "end before start",
			in:    CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "11:00", EndTime: "10:00"},
			kind:  apperr.KindValidation,
			field: "end_time",
		},
		{
			name:  "too long",
			in:    CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "08:00", EndTime: "11:30"},
			kind:  apperr.KindValidation,
			field: "end_time",
		},
		{
			name:  "too soon",
			in:    CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-10", StartTime: "10:00", EndTime: "11:00"},
			kind:  apperr.KindValidation,
			field: "start_time",
		},
		{
			name: "unknown court",
			in:   CreateInput{CourtID: 999, ClientID: client.ID, Date: "2025-09-12", StartTime: "10:00", EndTime: "11:00"},
			kind: apperr.KindNotFound,
		},
		{
			name: "unknown client",
			in:   CreateInput{CourtID: court.ID, ClientID: 999, Date: "2025-09-12", StartTime: "10:00", EndTime: "11:00"},
			kind: apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.life.Create(ctx, tt.in)
			if !apperr.Is(err, tt.kind) {
				t.Fatalf("expected %s, got %v", tt.kind, err)
			}
			if tt.field == "" {
				return
			}
			appErr := err.(*apperr.Error)
			for _, fe := range appErr.Fields {
				if fe.Field == tt.field {
					return
				}
			}
			t.Fatalf("expected field %s in %+v", tt.field, appErr.Fields)
		})
	}
}

func TestCreateUsesRuntimeSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 6000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")

	if _, err := f.store.Set(ctx, settings.KeyMaxDurationHours, "4", settings.TypeNumber); err != nil {
		t.Fatalf("set max duration: %v", err)
	}
	if _, err := f.store.Set(ctx, settings.KeyDepositPercent, "50", settings.TypeNumber); err != nil {
		t.Fatalf("set deposit: %v", err)
	}

	r, err := f.life.Create(ctx, CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "08:00", EndTime: "11:30"})
	if err != nil {
		t.Fatalf("create with raised max duration: %v", err)
	}
	if r.TotalPriceCents != 21000 || r.DepositRequiredCents != 10500 {
		t.Fatalf("unexpected pricing: total=%d deposit=%d", r.TotalPriceCents, r.DepositRequiredCents)
	}
}

func TestCreateConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 4000)
	clientA := testutil.SeedClient(t, f.db, "+5491100000001", "regular")
	clientB := testutil.SeedClient(t, f.db, "+5491100000002", "regular")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, clientID := range []int64{clientA.ID, clientB.ID} {
		wg.Add(1)
		go func(i int, clientID int64) {
			defer wg.Done()
			_, errs[i] = f.life.Create(ctx, CreateInput{CourtID: court.ID, ClientID: clientID, Date: "2025-09-12", StartTime: "10:00", EndTime: "11:00"})
		}(i, clientID)
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperr.Is(err, apperr.KindConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || conflicts != 1 {
		t.Fatalf("succeeded=%d conflicts=%d, want 1 and 1", succeeded, conflicts)
	}

	rows, err := f.life.List(ctx, ListFilter{Date: "2025-09-12", CourtID: court.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one reservation, got %d", len(rows))
	}
}

func TestConfirmThenNoShow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 6000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "frequent")

	r, err := f.life.Create(ctx, CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "09:00", EndTime: "10:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.life.Confirm(ctx, r.ID, ConfirmInput{AmountPaidCents: 1000})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error below deposit, got %v", err)
	}

	confirmed, err := f.life.Confirm(ctx, r.ID, ConfirmInput{AmountPaidCents: 1620, Method: MethodCard})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.State != StateConfirmed || confirmed.DepositPaidCents != 1620 || confirmed.FullyPaid {
		t.Fatalf("unexpected confirmed reservation: %+v", confirmed)
	}
	if len(confirmed.Payments) != 1 || confirmed.Payments[0].Kind != PaymentKindDeposit || confirmed.Payments[0].Method != MethodCard {
		t.Fatalf("unexpected payments: %+v", confirmed.Payments)
	}
	if len(f.notifier.confirmed) != 1 {
		t.Fatalf("expected a confirmation notice")
	}

	_, err = f.life.Confirm(ctx, r.ID, ConfirmInput{AmountPaidCents: 1620})
	if !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state on second confirm, got %v", err)
	}

	noShow, err := f.life.NoShow(ctx, r.ID)
	if err != nil {
		t.Fatalf("no show: %v", err)
	}
	if noShow.State != StateNoShow {
		t.Fatalf("state = %s", noShow.State)
	}
	updated, err := f.db.Queries.GetClient(ctx, client.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if updated.NoShows != 1 {
		t.Fatalf("no_shows = %d, want 1", updated.NoShows)
	}

	if _, err := f.life.Complete(ctx, r.ID); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state completing a no-show, got %v", err)
	}
}

func TestConfirmFullPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 6000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")

	r, err := f.life.Create(ctx, CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "09:00", EndTime: "10:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	confirmed, err := f.life.Confirm(ctx, r.ID, ConfirmInput{AmountPaidCents: 6000})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !confirmed.FullyPaid || confirmed.Payments[0].Kind != PaymentKindFull || confirmed.Payments[0].Method != MethodCash {
		t.Fatalf("expected full cash payment: %+v", confirmed)
	}

	completed, err := f.life.Complete(ctx, r.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.State != StateCompleted {
		t.Fatalf("state = %s", completed.State)
	}
	if _, err := f.life.Cancel(ctx, r.ID, CancelInput{}); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state cancelling a completed reservation, got %v", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 4000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")
	in := CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "10:00", EndTime: "11:00"}

	r, err := f.life.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	cancelled, err := f.life.Cancel(ctx, r.ID, CancelInput{})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.State != StateCancelled || cancelled.CancellationReason != DefaultCancelReason || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancelled reservation: %+v", cancelled)
	}
	if len(f.notifier.cancelled) != 1 {
		t.Fatalf("expected a cancellation notice")
	}

	if _, err := f.life.Cancel(ctx, r.ID, CancelInput{Reason: "again"}); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("expected invalid state on second cancel, got %v", err)
	}
	if _, err := f.life.Create(ctx, in); err != nil {
		t.Fatalf("cancelled slot should be bookable: %v", err)
	}
}

func TestTransitionsOnMissingReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.life.Confirm(ctx, 42, ConfirmInput{AmountPaidCents: 100}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("confirm: expected not found, got %v", err)
	}
	if _, err := f.life.Cancel(ctx, 42, CancelInput{}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("cancel: expected not found, got %v", err)
	}
	if _, err := f.life.Complete(ctx, 42); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("complete: expected not found, got %v", err)
	}
	if _, err := f.life.NoShow(ctx, 42); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("no show: expected not found, got %v", err)
	}
	if err := f.life.Delete(ctx, 42); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("delete: expected not found, got %v", err)
	}
}

func TestDeleteRemovesPaymentsAndDecrementsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 6000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")

	r, err := f.life.Create(ctx, CreateInput{CourtID: court.ID, ClientID: client.ID, Date: "2025-09-12", StartTime: "09:00", EndTime: "10:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.life.Confirm(ctx, r.ID, ConfirmInput{AmountPaidCents: 1800}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := f.life.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.life.Get(ctx, r.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	payments, err := f.db.Queries.ListPaymentsForReservation(ctx, r.ID)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 0 {
		t.Fatalf("payments left behind: %d", len(payments))
	}
	updated, err := f.db.Queries.GetClient(ctx, client.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if updated.TotalReservations != 0 {
		t.Fatalf("total_reservations = %d, want 0", updated.TotalReservations)
	}
}

func TestExpireStalePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 4000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")

	past := testutil.SeedReservation(t, f.db, court.ID, client.ID, "2025-09-09", "10:00", "11:00", StatePending)
	earlier := testutil.SeedReservation(t, f.db, court.ID, client.ID, "2025-09-10", "08:00", "09:00", StatePending)
	future := testutil.SeedReservation(t, f.db, court.ID, client.ID, "2025-09-10", "10:00", "11:00", StatePending)
	confirmed := testutil.SeedReservation(t, f.db, court.ID, client.ID, "2025-09-08", "10:00", "11:00", StateConfirmed)

	expired, err := f.life.ExpireStalePending(ctx)
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if expired != 2 {
		t.Fatalf("expired = %d, want 2", expired)
	}

	for id, want := range map[int64]string{
		past.ID:      StateCancelled,
		earlier.ID:   StateCancelled,
		future.ID:    StatePending,
		confirmed.ID: StateConfirmed,
	} {
		got, err := f.life.Get(ctx, id)
		if err != nil {
			t.Fatalf("get %d: %v", id, err)
		}
		if got.State != want {
			t.Fatalf("reservation %d state = %s, want %s", id, got.State, want)
		}
		if want == StateCancelled && got.CancellationReason != ExpiredReason {
			t.Fatalf("reservation %d reason = %q", id, got.CancellationReason)
		}
	}
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.SeedCourt(t, f.db, "Court 1", 4000)
	other := testutil.SeedCourt(t, f.db, "Court 2", 4000)
	client := testutil.SeedClient(t, f.db, "+5491100000001", "regular")

	testutil.SeedReservation(t, f.db, court.ID, client.ID, "2025-09-12", "10:00", "11:00", StatePending)
	testutil.SeedReservation(t, f.db, court.ID, client.ID, "2025-09-12", "12:00", "13:00", StateConfirmed)
	testutil.SeedReservation(t, f.db, other.ID, client.ID, "2025-09-13", "10:00", "11:00", StatePending)

	all, err := f.life.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Date != "2025-09-13" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	byCourt, err := f.life.List(ctx, ListFilter{CourtID: court.ID, State: StatePending})
	if err != nil {
		t.Fatalf("list by court: %v", err)
	}
	if len(byCourt) != 1 || byCourt[0].StartTime != "10:00" {
		t.Fatalf("unexpected filtered list: %+v", byCourt)
	}

	if _, err := f.life.List(ctx, ListFilter{Date: "12/09/2025"}); !apperr.Is(err, apperr.KindNotValidFormat) {
		t.Fatalf("expected not valid format, got %v", err)
	}
	if _, err := f.life.List(ctx, ListFilter{State: "booked"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for state, got %v", err)
	}
	if _, err := f.life.List(ctx, ListFilter{Limit: 500}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for limit, got %v", err)
	}
}
