// internal/api/clients/handlers.go
package clients

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
	"github.com/codr1/courtbook/internal/clients"
	"github.com/codr1/courtbook/internal/stats"
)

var (
	service     *clients.Service
	reporter    *stats.Reporter
	serviceOnce sync.Once
)

const clientsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *clients.Service, r *stats.Reporter) {
	if s == nil || r == nil {
		return
	}
	serviceOnce.Do(func() {
		service = s
		reporter = r
	})
}

func loadService(w http.ResponseWriter, r *http.Request) (*clients.Service, bool) {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Client handlers not initialized")
		apiutil.WriteError(w, r, apperr.Internal("service unavailable", nil))
		return nil, false
	}
	return service, true
}

// POST /api/v1/clients
func HandleClientCreate(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}

	var in clients.CreateInput
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), clientsQueryTimeout)
	defer cancel()

	client, err := s.Create(ctx, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/clients/"+strconv.FormatInt(client.ID, 10))
	apiutil.WriteSuccess(w, r, http.StatusCreated, client, "Client created")
}

// GET /api/v1/clients/lookup?phone=
func HandleClientLookup(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), clientsQueryTimeout)
	defer cancel()

	client, err := s.Lookup(ctx, r.URL.Query().Get("phone"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, client, "")
}

// GET /api/v1/clients
func HandleClientsList(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}

	limit, err := apiutil.QueryInt(r, "limit")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	offset, err := apiutil.QueryInt(r, "offset")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	query := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), clientsQueryTimeout)
	defer cancel()

	list, err := s.List(ctx, clients.ListFilter{
		Status: strings.TrimSpace(query.Get("status")),
		Search: query.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, list, "")
}

// GET /api/v1/clients/{id}
func HandleClientGet(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), clientsQueryTimeout)
	defer cancel()

	client, err := s.Get(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, client, "")
}

// GET /api/v1/clients/{id}/stats
func HandleClientStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := loadService(w, r); !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), clientsQueryTimeout)
	defer cancel()

	clientStats, err := reporter.Client(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, clientStats, "")
}

// PUT /api/v1/clients/{id}
func HandleClientUpdate(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var in clients.UpdateInput
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), clientsQueryTimeout)
	defer cancel()

	client, err := s.Update(ctx, id, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, client, "Client updated")
}

// PUT /api/v1/clients/{id}/status
func HandleClientStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var in clients.StatusInput
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), clientsQueryTimeout)
	defer cancel()

	client, err := s.SetStatus(ctx, id, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, client, "Client status updated")
}

// GET /api/v1/client-tiers
func HandleClientTiers(w http.ResponseWriter, r *http.Request) {
	s, ok := loadService(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), clientsQueryTimeout)
	defer cancel()

	tiers, err := s.Tiers(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, tiers, "")
}
