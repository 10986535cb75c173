package blockeddays

import (
	"context"
	"testing"
	"time"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/testutil"
)

func newRegistry(t *testing.T) (*Registry, func(name string) int64) {
	t.Helper()
	database := testutil.NewTestDB(t)
	now := clock.Fixed{At: time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC)}
	seedCourt := func(name string) int64 {
		return testutil.SeedCourt(t, database, name, 3000).ID
	}
	return NewRegistry(database, now), seedCourt
}

func ptr[T any](v T) *T { return &v }

func TestCreateRejectsDuplicates(t *testing.T) {
	registry, seedCourt := newRegistry(t)
	ctx := context.Background()
	courtID := seedCourt("Court A")

	global, err := registry.Create(ctx, CreateInput{Date: "2025-12-25", Reason: "Holiday"})
	if err != nil {
		t.Fatalf("create global: %v", err)
	}
	if !global.AllCourts || global.CourtID != nil {
		t.Fatalf("expected global block: %+v", global)
	}

	perCourt, err := registry.Create(ctx, CreateInput{Date: "2025-12-25", Reason: "Resurfacing", CourtID: ptr(courtID)})
	if err != nil {
		t.Fatalf("per-court block should coexist with global: %v", err)
	}
	if perCourt.CourtName != "Court A" {
		t.Fatalf("court name: %q", perCourt.CourtName)
	}

	_, err = registry.Create(ctx, CreateInput{Date: "2025-12-25", Reason: "Again"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for duplicate global block, got %v", err)
	}
	_, err = registry.Create(ctx, CreateInput{Date: "2025-12-25", Reason: "Again", CourtID: ptr(courtID)})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for duplicate court block, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	registry, _ := newRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateInput
		kind apperr.Kind
	}{
		{"missing date", CreateInput{Reason: "Holiday"}, apperr.KindValidation},
		{"bad date format", CreateInput{Date: "25/12/2025", Reason: "Holiday"}, apperr.KindNotValidFormat},
		{"impossible date", CreateInput{Date: "2025-02-30", Reason: "Holiday"}, apperr.KindNotValidFormat},
		{"missing reason", CreateInput{Date: "2025-12-25", Reason: "  "}, apperr.KindValidation},
		{"unknown court", CreateInput{Date: "2025-12-25", Reason: "Holiday", CourtID: ptr(int64(404))}, apperr.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Create(ctx, tt.in)
			if got := apperr.KindOf(err); got != tt.kind {
				t.Fatalf("kind = %q, want %q (%v)", got, tt.kind, err)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	registry, seedCourt := newRegistry(t)
	ctx := context.Background()
	courtID := seedCourt("Court A")

	first, err := registry.Create(ctx, CreateInput{Date: "2025-12-24", Reason: "Holiday"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := registry.Create(ctx, CreateInput{Date: "2025-12-25", Reason: "Holiday"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := registry.Update(ctx, first.ID, UpdateInput{}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for empty update, got %v", err)
	}
	if _, err := registry.Update(ctx, 999, UpdateInput{Reason: ptr("x")}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := registry.Update(ctx, first.ID, UpdateInput{Date: ptr("2025-12-25")}); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict moving onto an existing global block, got %v", err)
	}

	updated, err := registry.Update(ctx, first.ID, UpdateInput{
		Date:    ptr("2025-12-25"),
		CourtID: ptr(courtID),
		Note:    ptr("net replacement"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Date != "2025-12-25" || updated.CourtID == nil || *updated.CourtID != courtID || updated.Note != "net replacement" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Reason != "Holiday" {
		t.Fatalf("reason should be untouched: %q", updated.Reason)
	}

	// Reason-only update keeps its own key.
	if _, err := registry.Update(ctx, first.ID, UpdateInput{Reason: ptr("Net replacement")}); err != nil {
		t.Fatalf("update reason: %v", err)
	}
}

func TestRemoveAndGet(t *testing.T) {
	registry, _ := newRegistry(t)
	ctx := context.Background()

	created, err := registry.Create(ctx, CreateInput{Date: "2025-12-25", Reason: "Holiday"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := registry.Get(ctx, created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := registry.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := registry.Remove(ctx, created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
	if _, err := registry.Get(ctx, created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindForDateAndCourt(t *testing.T) {
	registry, seedCourt := newRegistry(t)
	ctx := context.Background()
	courtA := seedCourt("Court A")
	courtB := seedCourt("Court B")

	if _, err := registry.Create(ctx, CreateInput{Date: "2025-12-25", Reason: "Holiday"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := registry.Create(ctx, CreateInput{Date: "2025-12-25", Reason: "Repairs", CourtID: ptr(courtA)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	forA, err := registry.FindForDateAndCourt(ctx, "2025-12-25", courtA)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(forA) != 2 || !forA[0].AllCourts {
		t.Fatalf("court A should see global then own block: %+v", forA)
	}

	forB, _ := registry.FindForDateAndCourt(ctx, "2025-12-25", courtB)
	if len(forB) != 1 || !forB[0].AllCourts {
		t.Fatalf("court B should only see the global block: %+v", forB)
	}

	facility, _ := registry.FindForDateAndCourt(ctx, "2025-12-25", 0)
	if len(facility) != 1 {
		t.Fatalf("without a court only global blocks match: %+v", facility)
	}

	if _, err := registry.FindForDateAndCourt(ctx, "tomorrow", 0); !apperr.Is(err, apperr.KindNotValidFormat) {
		t.Fatalf("expected not valid format, got %v", err)
	}
}

func TestListUpcomingAndList(t *testing.T) {
	registry, seedCourt := newRegistry(t)
	ctx := context.Background()
	courtA := seedCourt("Court A")
	courtB := seedCourt("Court B")

	for _, in := range []CreateInput{
		{Date: "2025-09-01", Reason: "Past"},
		{Date: "2025-09-10", Reason: "Today"},
		{Date: "2025-09-15", Reason: "Court A only", CourtID: ptr(courtA)},
		{Date: "2025-09-20", Reason: "Court B only", CourtID: ptr(courtB)},
	} {
		if _, err := registry.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Reason, err)
		}
	}

	upcoming, err := registry.ListUpcoming(ctx, 0, courtA)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected today and court A blocks, got %+v", upcoming)
	}
	if upcoming[0].Date != "2025-09-10" || *upcoming[0].DaysRemaining != 0 {
		t.Fatalf("first upcoming: %+v", upcoming[0])
	}
	if upcoming[1].CourtName != "Court A" || *upcoming[1].DaysRemaining != 5 {
		t.Fatalf("second upcoming: %+v", upcoming[1])
	}

	if _, err := registry.ListUpcoming(ctx, 500, 0); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected limit validation, got %v", err)
	}

	all, err := registry.List(ctx, ListFilter{})
	if err != nil || len(all) != 4 {
		t.Fatalf("list all: %d %v", len(all), err)
	}
	future, err := registry.List(ctx, ListFilter{FutureOnly: true, To: "2025-09-16"})
	if err != nil || len(future) != 2 {
		t.Fatalf("list future: %+v %v", future, err)
	}
	if _, err := registry.List(ctx, ListFilter{From: "09/01/2025"}); !apperr.Is(err, apperr.KindNotValidFormat) {
		t.Fatalf("expected not valid format, got %v", err)
	}
}
