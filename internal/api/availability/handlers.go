// internal/api/availability/handlers.go
package availability

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/availability"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

var (
	queries     dbgen.Querier
	queriesOnce sync.Once
)

const availabilityQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q dbgen.Querier) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

func loadQueries(w http.ResponseWriter, r *http.Request) (dbgen.Querier, bool) {
	if queries == nil {
		log.Ctx(r.Context()).Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, r, apperr.Internal("service unavailable", nil))
		return nil, false
	}
	return queries, true
}

// GET /api/v1/availability
func HandleAvailability(w http.ResponseWriter, r *http.Request) {
	q, ok := loadQueries(w, r)
	if !ok {
		return
	}

	date, err := apiutil.RequireDate(r, "date")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	courtID, err := apiutil.QueryID(r, "court_id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	occupancy, err := availability.Occupancy(ctx, q, date, courtID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, occupancy, "")
}

// GET /api/v1/availability/check
func HandleAvailabilityCheck(w http.ResponseWriter, r *http.Request) {
	q, ok := loadQueries(w, r)
	if !ok {
		return
	}

	date, err := apiutil.RequireDate(r, "date")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	courtID, err := apiutil.ParsePositiveInt64Field(r.URL.Query().Get("court_id"), "court_id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	verdict, err := availability.CheckCourt(ctx, q, availability.Request{
		CourtID: courtID,
		Date:    date,
		Start:   query.Get("start_time"),
		End:     query.Get("end_time"),
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, verdict, "")
}
