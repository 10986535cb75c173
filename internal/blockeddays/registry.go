// Package blockeddays keeps the calendar exceptions that close the facility,
// or a single court, for a whole day.
package blockeddays

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

const (
	DefaultUpcomingLimit = 10
	MaxListLimit         = 100
	maxReasonLength      = 200
	maxNoteLength        = 1000
)

// BlockedDay is a blocking row as returned to callers. A nil CourtID means
// the block applies to every court.
type BlockedDay struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date"`
	Reason        string    `json:"reason"`
	Note          string    `json:"note,omitempty"`
	CourtID       *int64    `json:"court_id"`
	CourtName     string    `json:"court_name,omitempty"`
	AllCourts     bool      `json:"all_courts"`
	DaysRemaining *int      `json:"days_remaining,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromRow(row dbgen.BlockedDay) BlockedDay {
	b := BlockedDay{
		ID:        row.ID,
		Date:      row.Date,
		Reason:    row.Reason,
		Note:      row.Note.String,
		AllCourts: !row.CourtID.Valid,
		CreatedAt: row.CreatedAt,
	}
	if row.CourtID.Valid {
		courtID := row.CourtID.Int64
		b.CourtID = &courtID
	}
	return b
}

type CreateInput struct {
	Date    string  `json:"date"`
	Reason  string  `json:"reason"`
	Note    *string `json:"note,omitempty"`
	CourtID *int64  `json:"court_id,omitempty"`
}

// UpdateInput carries the fields to change. AllCourts=true widens a per-court
// block to every court; CourtID narrows it to one court.
type UpdateInput struct {
	Date      *string `json:"date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
	Note      *string `json:"note,omitempty"`
	CourtID   *int64  `json:"court_id,omitempty"`
	AllCourts *bool   `json:"all_courts,omitempty"`
}

func (in UpdateInput) empty() bool {
	return in.Date == nil && in.Reason == nil && in.Note == nil && in.CourtID == nil && in.AllCourts == nil
}

type ListFilter struct {
	From       string
	To         string
	CourtID    int64
	FutureOnly bool
}

type Registry struct {
	db    *db.DB
	clock clock.Clock
}

func NewRegistry(database *db.DB, c clock.Clock) *Registry {
	return &Registry{db: database, clock: c}
}

// ForDateAndCourt returns the rows blocking courtID on date: the global row
// first, then the court's own. With courtID 0 only the global row is returned.
func ForDateAndCourt(ctx context.Context, q dbgen.Querier, date string, courtID int64) ([]BlockedDay, error) {
	rows, err := q.ListBlockingDaysForDateAndCourt(ctx, dbgen.ListBlockingDaysForDateAndCourtParams{
		Date:    date,
		CourtID: nullCourt(courtID),
	})
	if err != nil {
		return nil, apperr.Internal("failed to check blocked days", err)
	}
	result := make([]BlockedDay, 0, len(rows))
	for _, row := range rows {
		result = append(result, FromRow(row))
	}
	return result, nil
}

func (r *Registry) Create(ctx context.Context, in CreateInput) (BlockedDay, error) {
	date, err := checkDate(in.Date)
	if err != nil {
		return BlockedDay{}, err
	}
	reason, err := checkReason(in.Reason)
	if err != nil {
		return BlockedDay{}, err
	}
	note, err := checkNote(in.Note)
	if err != nil {
		return BlockedDay{}, err
	}
	var courtID int64
	if in.CourtID != nil {
		courtID = *in.CourtID
	}

	logger := log.Ctx(ctx)
	var created dbgen.BlockedDay
	err = r.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		if err := ensureCourt(ctx, q, in.CourtID); err != nil {
			return err
		}
		if err := ensureUnique(ctx, q, date, courtID, 0); err != nil {
			return err
		}
		var err error
		created, err = q.CreateBlockedDay(ctx, dbgen.CreateBlockedDayParams{
			Date:    date,
			Reason:  reason,
			Note:    note,
			CourtID: nullCourt(courtID),
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return duplicate(date, courtID)
			}
			return apperr.Internal("failed to create blocked day", err)
		}
		return nil
	})
	if err != nil {
		return BlockedDay{}, err
	}

	logger.Info().
		Int64("blocked_day_id", created.ID).
		Str("date", created.Date).
		Int64("court_id", courtID).
		Msg("Blocked day created")
	return r.withCourtName(ctx, FromRow(created))
}

func (r *Registry) Update(ctx context.Context, id int64, in UpdateInput) (BlockedDay, error) {
	if in.empty() {
		return BlockedDay{}, apperr.Validation("no fields to update")
	}
	if in.CourtID != nil && in.AllCourts != nil && *in.AllCourts {
		return BlockedDay{}, apperr.Field("court_id", "cannot be combined with all_courts")
	}

	var updated dbgen.BlockedDay
	err := r.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		existing, err := q.GetBlockedDay(ctx, id)
		if err != nil {
			if db.IsNotFound(err) {
				return apperr.NotFound("blocked day %d not found", id)
			}
			return apperr.Internal("failed to load blocked day", err)
		}

		params := dbgen.UpdateBlockedDayParams{
			ID:      id,
			Date:    existing.Date,
			Reason:  existing.Reason,
			Note:    existing.Note,
			CourtID: existing.CourtID,
		}
		if in.Date != nil {
			if params.Date, err = checkDate(*in.Date); err != nil {
				return err
			}
		}
		if in.Reason != nil {
			if params.Reason, err = checkReason(*in.Reason); err != nil {
				return err
			}
		}
		if in.Note != nil {
			if params.Note, err = checkNote(in.Note); err != nil {
				return err
			}
		}
		if in.AllCourts != nil && *in.AllCourts {
			params.CourtID = sql.NullInt64{}
		}
		if in.CourtID != nil {
			if err := ensureCourt(ctx, q, in.CourtID); err != nil {
				return err
			}
			params.CourtID = nullCourt(*in.CourtID)
		}

		if err := ensureUnique(ctx, q, params.Date, params.CourtID.Int64, id); err != nil {
			return err
		}
		updated, err = q.UpdateBlockedDay(ctx, params)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return duplicate(params.Date, params.CourtID.Int64)
			}
			return apperr.Internal("failed to update blocked day", err)
		}
		return nil
	})
	if err != nil {
		return BlockedDay{}, err
	}

	log.Ctx(ctx).Info().Int64("blocked_day_id", id).Msg("Blocked day updated")
	return r.withCourtName(ctx, FromRow(updated))
}

func (r *Registry) Remove(ctx context.Context, id int64) error {
	deleted, err := r.db.Queries.DeleteBlockedDay(ctx, id)
	if err != nil {
		return apperr.Internal("failed to delete blocked day", err)
	}
	if deleted == 0 {
		return apperr.NotFound("blocked day %d not found", id)
	}
	log.Ctx(ctx).Info().Int64("blocked_day_id", id).Msg("Blocked day removed")
	return nil
}

func (r *Registry) Get(ctx context.Context, id int64) (BlockedDay, error) {
	row, err := r.db.Queries.GetBlockedDay(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return BlockedDay{}, apperr.NotFound("blocked day %d not found", id)
		}
		return BlockedDay{}, apperr.Internal("failed to load blocked day", err)
	}
	return r.withCourtName(ctx, FromRow(row))
}

// FindForDateAndCourt returns the blocks that apply to courtID on date.
// courtID 0 asks about the whole facility and only matches global blocks.
func (r *Registry) FindForDateAndCourt(ctx context.Context, date string, courtID int64) ([]BlockedDay, error) {
	if _, err := checkDate(date); err != nil {
		return nil, err
	}
	blocks, err := ForDateAndCourt(ctx, r.db.Queries, date, courtID)
	if err != nil {
		return nil, err
	}
	for i := range blocks {
		if blocks[i], err = r.withCourtName(ctx, blocks[i]); err != nil {
			return nil, err
		}
	}
	return blocks, nil
}

// ListUpcoming returns blocks from today onwards, soonest first, each with
// the number of days remaining.
func (r *Registry) ListUpcoming(ctx context.Context, limit int, courtID int64) ([]BlockedDay, error) {
	if limit == 0 {
		limit = DefaultUpcomingLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, apperr.Field("limit", "must be between 1 and 100")
	}

	today := clock.Today(r.clock)
	rows, err := r.db.Queries.ListUpcomingBlockedDays(ctx, dbgen.ListUpcomingBlockedDaysParams{
		FromDate: today,
		CourtID:  nullCourt(courtID),
		Limit:    int64(limit),
	})
	if err != nil {
		return nil, apperr.Internal("failed to list upcoming blocked days", err)
	}

	result := make([]BlockedDay, 0, len(rows))
	for _, row := range rows {
		b := FromRow(dbgen.BlockedDay{
			ID: row.ID, Date: row.Date, Reason: row.Reason, Note: row.Note, CourtID: row.CourtID, CreatedAt: row.CreatedAt,
		})
		b.CourtName = row.CourtName.String
		if days, err := clock.DaysBetween(today, row.Date); err == nil {
			b.DaysRemaining = &days
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *Registry) List(ctx context.Context, filter ListFilter) ([]BlockedDay, error) {
	params := dbgen.ListBlockedDaysParams{CourtID: nullCourt(filter.CourtID)}
	if filter.From != "" {
		if _, err := checkDateField("from", filter.From); err != nil {
			return nil, err
		}
		params.FromDate = sql.NullString{String: filter.From, Valid: true}
	}
	if filter.To != "" {
		if _, err := checkDateField("to", filter.To); err != nil {
			return nil, err
		}
		params.ToDate = sql.NullString{String: filter.To, Valid: true}
	}
	if filter.FutureOnly {
		today := clock.Today(r.clock)
		if !params.FromDate.Valid || params.FromDate.String < today {
			params.FromDate = sql.NullString{String: today, Valid: true}
		}
	}

	rows, err := r.db.Queries.ListBlockedDays(ctx, params)
	if err != nil {
		return nil, apperr.Internal("failed to list blocked days", err)
	}
	result := make([]BlockedDay, 0, len(rows))
	for _, row := range rows {
		b := FromRow(dbgen.BlockedDay{
			ID: row.ID, Date: row.Date, Reason: row.Reason, Note: row.Note, CourtID: row.CourtID, CreatedAt: row.CreatedAt,
		})
		b.CourtName = row.CourtName.String
		result = append(result, b)
	}
	return result, nil
}

func (r *Registry) withCourtName(ctx context.Context, b BlockedDay) (BlockedDay, error) {
	if b.CourtID == nil {
		return b, nil
	}
	court, err := r.db.Queries.GetCourt(ctx, *b.CourtID)
	if err != nil {
		if db.IsNotFound(err) {
			return b, nil
		}
		return BlockedDay{}, apperr.Internal("failed to load court", err)
	}
	b.CourtName = court.Name
	return b, nil
}

func checkDate(value string) (string, error) {
	return checkDateField("date", value)
}

func checkDateField(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Field(field, "is required")
	}
	if !clock.IsISODate(value) {
		return "", apperr.NotValidFormat(field, "invalid date format, use YYYY-MM-DD")
	}
	return value, nil
}

func checkReason(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Field("reason", "is required")
	}
	if len(value) > maxReasonLength {
		return "", apperr.Field("reason", "must be at most 200 characters")
	}
	return value, nil
}

func checkNote(value *string) (sql.NullString, error) {
	if value == nil {
		return sql.NullString{}, nil
	}
	note := strings.TrimSpace(*value)
	if note == "" {
		return sql.NullString{}, nil
	}
	if len(note) > maxNoteLength {
		return sql.NullString{}, apperr.Field("note", "must be at most 1000 characters")
	}
	return sql.NullString{String: note, Valid: true}, nil
}

func ensureCourt(ctx context.Context, q dbgen.Querier, courtID *int64) error {
	if courtID == nil {
		return nil
	}
	if *courtID <= 0 {
		return apperr.Field("court_id", "must be a positive integer")
	}
	if _, err := q.GetCourt(ctx, *courtID); err != nil {
		if db.IsNotFound(err) {
			return apperr.NotFound("court %d not found", *courtID)
		}
		return apperr.Internal("failed to load court", err)
	}
	return nil
}

// ensureUnique rejects a second row for the same (date, court) key. The
// global block uses courtID 0 as its key.
func ensureUnique(ctx context.Context, q dbgen.Querier, date string, courtID, selfID int64) error {
	existing, err := q.GetBlockedDayByDateAndCourt(ctx, dbgen.GetBlockedDayByDateAndCourtParams{
		Date:     date,
		CourtKey: courtID,
	})
	if err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return apperr.Internal("failed to check blocked days", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return duplicate(date, courtID)
}

func duplicate(date string, courtID int64) error {
	if courtID == 0 {
		return apperr.Conflict("all courts are already blocked on %s", date)
	}
	return apperr.Conflict("court %d is already blocked on %s", courtID, date)
}

func nullCourt(courtID int64) sql.NullInt64 {
	if courtID == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: courtID, Valid: true}
}
