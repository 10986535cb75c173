// internal/api/blockeddays/handlers.go
package blockeddays

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/blockeddays"
)

var (
	registry     *blockeddays.Registry
	registryOnce sync.Once
)

const blockedDaysQueryTimeout = 5 * time.Second

// CheckResult answers whether a date is blocked for a court.
type CheckResult struct {
	Date        string                   `json:"date"`
	CourtID     int64                    `json:"court_id,omitempty"`
	Blocked     bool                     `json:"blocked"`
	BlockedDays []blockeddays.BlockedDay `json:"blocked_days"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(r *blockeddays.Registry) {
	if r == nil {
		return
	}
	registryOnce.Do(func() {
		registry = r
	})
}

func loadRegistry(w http.ResponseWriter, r *http.Request) (*blockeddays.Registry, bool) {
	if registry == nil {
		log.Ctx(r.Context()).Error().Msg("Blocked day handlers not initialized")
		apiutil.WriteError(w, r, apperr.Internal("service unavailable", nil))
		return nil, false
	}
	return registry, true
}

// GET /api/v1/blocked-days
func HandleBlockedDaysList(w http.ResponseWriter, r *http.Request) {
	reg, ok := loadRegistry(w, r)
	if !ok {
		return
	}

	courtID, err := apiutil.QueryID(r, "court_id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	futureOnly, err := apiutil.QueryBool(r, "future_only")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), blockedDaysQueryTimeout)
	defer cancel()

	list, err := reg.List(ctx, blockeddays.ListFilter{
		From:       query.Get("from"),
		To:         query.Get("to"),
		CourtID:    courtID,
		FutureOnly: futureOnly,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, list, "")
}

// GET /api/v1/blocked-days/upcoming
func HandleBlockedDaysUpcoming(w http.ResponseWriter, r *http.Request) {
	reg, ok := loadRegistry(w, r)
	if !ok {
		return
	}

	limit, err := apiutil.QueryInt(r, "limit")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	courtID, err := apiutil.QueryID(r, "court_id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), blockedDaysQueryTimeout)
	defer cancel()

	list, err := reg.ListUpcoming(ctx, limit, courtID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, list, "")
}

// GET /api/v1/blocked-days/check/{date}
func HandleBlockedDayCheck(w http.ResponseWriter, r *http.Request) {
	reg, ok := loadRegistry(w, r)
	if !ok {
		return
	}

	date := r.PathValue("date")
	courtID, err := apiutil.QueryID(r, "court_id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), blockedDaysQueryTimeout)
	defer cancel()

	blocks, err := reg.FindForDateAndCourt(ctx, date, courtID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, CheckResult{
		Date:        date,
		CourtID:     courtID,
		Blocked:     len(blocks) > 0,
		BlockedDays: blocks,
	}, "")
}

// GET /api/v1/blocked-days/{id}
func HandleBlockedDayGet(w http.ResponseWriter, r *http.Request) {
	reg, ok := loadRegistry(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), blockedDaysQueryTimeout)
	defer cancel()

	b, err := reg.Get(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, b, "")
}

// POST /api/v1/blocked-days
func HandleBlockedDayCreate(w http.ResponseWriter, r *http.Request) {
	reg, ok := loadRegistry(w, r)
	if !ok {
		return
	}

	var in blockeddays.CreateInput
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), blockedDaysQueryTimeout)
	defer cancel()

	created, err := reg.Create(ctx, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/blocked-days/"+strconv.FormatInt(created.ID, 10))
	apiutil.WriteSuccess(w, r, http.StatusCreated, created, "Blocked day created")
}

// PUT /api/v1/blocked-days/{id}
func HandleBlockedDayUpdate(w http.ResponseWriter, r *http.Request) {
	reg, ok := loadRegistry(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var in blockeddays.UpdateInput
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), blockedDaysQueryTimeout)
	defer cancel()

	updated, err := reg.Update(ctx, id, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, updated, "Blocked day updated")
}

// DELETE /api/v1/blocked-days/{id}
func HandleBlockedDayDelete(w http.ResponseWriter, r *http.Request) {
	reg, ok := loadRegistry(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), blockedDaysQueryTimeout)
	defer cancel()

	if err := reg.Remove(ctx, id); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, map[string]int64{"id": id}, "Blocked day removed")
}
