// Package availability decides whether a court slot can be booked.
//
// A slot is unavailable when a blocked day covers its date for the court (or
// for every court) or when an active reservation on the same court and date
// overlaps it. Intervals are half open, so back-to-back slots never conflict.
package availability

import (
	"context"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/blockeddays"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

type Reason string

const (
	ReasonBlockedDay          Reason = "blocked_day"
	ReasonReservationConflict Reason = "reservation_conflict"
	ReasonCourtUnavailable    Reason = "court_unavailable"
)

const courtStatusAvailable = "available"

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Times are
// zero-padded "HH:MM" strings, so lexical order is chronological order.
func Overlaps(s1, e1, s2, e2 string) bool {
	return !(e1 <= s2 || s1 >= e2)
}

// Request names the slot to check. ExcludeReservationID skips one
// reservation, for when an existing booking is being moved; 0 excludes nothing.
type Request struct {
	CourtID              int64
	Date                 string
	Start                string
	End                  string
	ExcludeReservationID int64
}

type Verdict struct {
	Available      bool                    `json:"available"`
	Reason         Reason                  `json:"reason,omitempty"`
	CourtStatus    string                  `json:"court_status,omitempty"`
	BlockedDay     *blockeddays.BlockedDay `json:"blocked_day,omitempty"`
	ConflictingIDs []int64                 `json:"conflicting_reservation_ids,omitempty"`
}

// Check evaluates the request against blocked days first, then active reservations.
func Check(ctx context.Context, q dbgen.Querier, req Request) (Verdict, error) {
	start, end, err := normalize(req)
	if err != nil {
		return Verdict{}, err
	}

	blocking, err := blockeddays.ForDateAndCourt(ctx, q, req.Date, req.CourtID)
	if err != nil {
		return Verdict{}, err
	}
	if len(blocking) > 0 {
		blocked := blocking[0]
		return Verdict{Reason: ReasonBlockedDay, BlockedDay: &blocked}, nil
	}

	active, err := q.ListActiveReservationsForCourtDate(ctx, dbgen.ListActiveReservationsForCourtDateParams{
		CourtID:   req.CourtID,
		Date:      req.Date,
		ExcludeID: req.ExcludeReservationID,
	})
	if err != nil {
		return Verdict{}, apperr.Internal("failed to check reservations", err)
	}

	var conflicts []int64
	for _, r := range active {
		if Overlaps(start, end, r.StartTime, r.EndTime) {
			conflicts = append(conflicts, r.ID)
		}
	}
	if len(conflicts) > 0 {
		return Verdict{Reason: ReasonReservationConflict, ConflictingIDs: conflicts}, nil
	}

	return Verdict{Available: true}, nil
}

// CheckCourt is Check preceded by the court lookup a booking would make:
// a missing court is NOT_FOUND and a court that is not available is
// reported with its status.
func CheckCourt(ctx context.Context, q dbgen.Querier, req Request) (Verdict, error) {
	if _, _, err := normalize(req); err != nil {
		return Verdict{}, err
	}
	court, err := q.GetCourt(ctx, req.CourtID)
	if err != nil {
		if db.IsNotFound(err) {
			return Verdict{}, apperr.NotFound("court %d not found", req.CourtID)
		}
		return Verdict{}, apperr.Internal("failed to load court", err)
	}
	if court.Status != courtStatusAvailable {
		return Verdict{Reason: ReasonCourtUnavailable, CourtStatus: court.Status}, nil
	}
	return Check(ctx, q, req)
}

// IsAvailable is Check reduced to its verdict.
func IsAvailable(ctx context.Context, q dbgen.Querier, courtID int64, date, start, end string, excludeReservationID int64) (bool, error) {
	verdict, err := Check(ctx, q, Request{
		CourtID:              courtID,
		Date:                 date,
		Start:                start,
		End:                  end,
		ExcludeReservationID: excludeReservationID,
	})
	if err != nil {
		return false, err
	}
	return verdict.Available, nil
}

func normalize(req Request) (string, string, error) {
	var fields []apperr.FieldError
	if !clock.IsISODate(req.Date) {
		fields = append(fields, apperr.FieldError{Field: "date", Message: "must use the YYYY-MM-DD format"})
	}
	start, err := clock.NormalizeTimeOfDay(req.Start)
	if err != nil {
		fields = append(fields, apperr.FieldError{Field: "start_time", Message: "must use the HH:MM 24 hour format"})
	}
	end, err := clock.NormalizeTimeOfDay(req.End)
	if err != nil {
		fields = append(fields, apperr.FieldError{Field: "end_time", Message: "must use the HH:MM 24 hour format"})
	}
	if len(fields) == 0 && end <= start {
		fields = append(fields, apperr.FieldError{Field: "end_time", Message: "must be after start_time"})
	}
	if err := apperr.Collect(fields); err != nil {
		return "", "", err
	}
	return start, end, nil
}

type OccupiedSlot struct {
	ReservationID int64  `json:"reservation_id"`
	Start         string `json:"start_time"`
	End           string `json:"end_time"`
	State         string `json:"state"`
}

type CourtOccupancy struct {
	CourtID         int64                   `json:"court_id"`
	CourtName       string                  `json:"court_name"`
	HourlyRateCents int64                   `json:"hourly_rate_cents"`
	Occupied        []OccupiedSlot          `json:"occupied"`
	BlockedDay      *blockeddays.BlockedDay `json:"blocked_day,omitempty"`
}

// Occupancy lists the occupied intervals of every available court on date,
// or of one court when courtID is non-zero.
func Occupancy(ctx context.Context, q dbgen.Querier, date string, courtID int64) ([]CourtOccupancy, error) {
	if !clock.IsISODate(date) {
		return nil, apperr.Field("date", "must use the YYYY-MM-DD format")
	}

	var courts []dbgen.Court
	if courtID != 0 {
		court, err := q.GetCourt(ctx, courtID)
		if err != nil {
			if db.IsNotFound(err) {
				return nil, apperr.NotFound("court %d not found", courtID)
			}
			return nil, apperr.Internal("failed to load court", err)
		}
		courts = []dbgen.Court{court}
	} else {
		var err error
		courts, err = q.ListCourtsByStatus(ctx, "available")
		if err != nil {
			return nil, apperr.Internal("failed to list courts", err)
		}
	}

	reservations, err := q.ListActiveReservationsForDate(ctx, date)
	if err != nil {
		return nil, apperr.Internal("failed to list reservations", err)
	}
	blockedDays, err := q.ListBlockedDaysForDate(ctx, date)
	if err != nil {
		return nil, apperr.Internal("failed to list blocked days", err)
	}

	byCourt := make(map[int64][]OccupiedSlot)
	for _, r := range reservations {
		byCourt[r.CourtID] = append(byCourt[r.CourtID], OccupiedSlot{
			ReservationID: r.ID,
			Start:         r.StartTime,
			End:           r.EndTime,
			State:         r.State,
		})
	}

	result := make([]CourtOccupancy, 0, len(courts))
	for _, court := range courts {
		occupied := byCourt[court.ID]
		if occupied == nil {
			occupied = []OccupiedSlot{}
		}
		result = append(result, CourtOccupancy{
			CourtID:         court.ID,
			CourtName:       court.Name,
			HourlyRateCents: court.HourlyRateCents,
			Occupied:        occupied,
			BlockedDay:      blockingFor(blockedDays, court.ID),
		})
	}
	return result, nil
}

// blockingFor returns the global block for the day if any, else the court's own.
func blockingFor(blockedDays []dbgen.BlockedDay, courtID int64) *blockeddays.BlockedDay {
	var own *blockeddays.BlockedDay
	for _, row := range blockedDays {
		b := blockeddays.FromRow(row)
		if b.AllCourts {
			return &b
		}
		if *b.CourtID == courtID && own == nil {
			own = &b
		}
	}
	return own
}
