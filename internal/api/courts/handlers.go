// internal/api/courts/handlers.go
package courts

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/courts"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/stats"
)

var (
	service     *courts.Service
	reporter    *stats.Reporter
	serviceOnce sync.Once
)

const courtsQueryTimeout = 5 * time.Second

// CourtDetail is a court together with its reservation figures.
type CourtDetail struct {
	dbgen.Court
	Stats stats.Court `json:"stats"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *courts.Service, r *stats.Reporter) {
	if s == nil || r == nil {
		return
	}
	serviceOnce.Do(func() {
		service = s
		reporter = r
	})
}

func loadService(w http.ResponseWriter, r *http.Request) (*courts.Service, bool) {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Court handlers not initialized")
		apiutil.WriteError(w, r, apperr.Internal("service unavailable", nil))
		return nil, false
	}
	return service, true
}

// GET /api/v1/courts
func HandleCourtsList(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	list, err := s.List(ctx, strings.TrimSpace(r.URL.Query().Get("status")))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, list, "")
}

// GET /api/v1/courts/{id}
func HandleCourtGet(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := s.Get(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	courtStats, err := reporter.Court(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, CourtDetail{Court: court, Stats: courtStats}, "")
}

// POST /api/v1/courts
func HandleCourtCreate(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}

	var in courts.Input
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := s.Create(ctx, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/courts/"+strconv.FormatInt(court.ID, 10))
	apiutil.WriteSuccess(w, r, http.StatusCreated, court, "Court created")
}

// PUT /api/v1/courts/{id}
func HandleCourtUpdate(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var in courts.Input
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := s.Update(ctx, id, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, court, "Court updated")
}

// PUT /api/v1/courts/{id}/status
func HandleCourtStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var in courts.StatusInput
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := s.SetStatus(ctx, id, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, court, "Court status updated")
}

// DELETE /api/v1/courts/{id}
func HandleCourtDelete(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	if err := s.Delete(ctx, id); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, map[string]int64{"id": id}, "Court deleted")
}
