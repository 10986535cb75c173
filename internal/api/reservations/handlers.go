// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/reservations"
)

var (
	lifecycle     *reservations.Lifecycle
	lifecycleOnce sync.Once
)

const reservationRequestTimeout = 10 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(l *reservations.Lifecycle) {
	if l == nil {
		return
	}
	lifecycleOnce.Do(func() {
		lifecycle = l
	})
}

func loadLifecycle() *reservations.Lifecycle {
	return lifecycle
}

// GET /api/v1/reservations
func HandleReservationsList(w http.ResponseWriter, r *http.Request) {
	l, ok := ready(w, r)
	if !ok {
		return
	}

	filter, err := listFilterFromRequest(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationRequestTimeout)
	defer cancel()

	list, err := l.List(ctx, filter)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, list, "")
}

// GET /api/v1/reservations/{id}
func HandleReservationGet(w http.ResponseWriter, r *http.Request) {
	l, ok := ready(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationRequestTimeout)
	defer cancel()

	res, err := l.Get(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, res, "")
}

// POST /api/v1/reservations
func HandleReservationCreate(w http.ResponseWriter, r *http.Request) {
	l, ok := ready(w, r)
	if !ok {
		return
	}

	var in reservations.CreateInput
	if err := apiutil.DecodeBody(r, &in); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationRequestTimeout)
	defer cancel()

	created, err := l.Create(ctx, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/reservations/"+strconv.FormatInt(created.ID, 10))
	apiutil.WriteSuccess(w, r, http.StatusCreated, created, "Reservation created")
}

// PUT /api/v1/reservations/{id}/confirm
func HandleReservationConfirm(w http.ResponseWriter, r *http.Request) {
	var in reservations.ConfirmInput
	transition(w, r, &in, "Reservation confirmed", func(ctx context.Context, l *reservations.Lifecycle, id int64) (reservations.Reservation, error) {
		return l.Confirm(ctx, id, in)
	})
}

// PUT /api/v1/reservations/{id}/cancel
func HandleReservationCancel(w http.ResponseWriter, r *http.Request) {
	var in reservations.CancelInput
	transition(w, r, &in, "Reservation cancelled", func(ctx context.Context, l *reservations.Lifecycle, id int64) (reservations.Reservation, error) {
		return l.Cancel(ctx, id, in)
	})
}

// PUT /api/v1/reservations/{id}/complete
func HandleReservationComplete(w http.ResponseWriter, r *http.Request) {
	transition(w, r, nil, "Reservation completed", func(ctx context.Context, l *reservations.Lifecycle, id int64) (reservations.Reservation, error) {
		return l.Complete(ctx, id)
	})
}

// PUT /api/v1/reservations/{id}/no-show
func HandleReservationNoShow(w http.ResponseWriter, r *http.Request) {
	transition(w, r, nil, "Reservation marked as no-show", func(ctx context.Context, l *reservations.Lifecycle, id int64) (reservations.Reservation, error) {
		return l.NoShow(ctx, id)
	})
}

// DELETE /api/v1/reservations/{id}
func HandleReservationDelete(w http.ResponseWriter, r *http.Request) {
	l, ok := ready(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationRequestTimeout)
	defer cancel()

	if err := l.Delete(ctx, id); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, map[string]int64{"id": id}, "Reservation deleted")
}

// transition runs one state change. body, when non-nil, is decoded from the
// request first; an empty body leaves it at its zero value.
func transition(w http.ResponseWriter, r *http.Request, body any, message string, apply func(context.Context, *reservations.Lifecycle, int64) (reservations.Reservation, error)) {
	l, ok := ready(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if body != nil && r.ContentLength != 0 {
		if err := apiutil.DecodeBody(r, body); err != nil {
			apiutil.WriteError(w, r, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationRequestTimeout)
	defer cancel()

	res, err := apply(ctx, l, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, res, message)
}

func ready(w http.ResponseWriter, r *http.Request) (*reservations.Lifecycle, bool) {
	l := loadLifecycle()
	if l == nil {
		log.Ctx(r.Context()).Error().Msg("Reservation handlers not initialized")
		apiutil.WriteError(w, r, apperr.Internal("service unavailable", nil))
		return nil, false
	}
	return l, true
}

func listFilterFromRequest(r *http.Request) (reservations.ListFilter, error) {
	courtID, err := apiutil.QueryID(r, "court_id")
	if err != nil {
		return reservations.ListFilter{}, err
	}
	clientID, err := apiutil.QueryID(r, "client_id")
	if err != nil {
		return reservations.ListFilter{}, err
	}
	limit, err := apiutil.QueryInt(r, "limit")
	if err != nil {
		return reservations.ListFilter{}, err
	}

	query := r.URL.Query()
	return reservations.ListFilter{
		Date:     query.Get("date"),
		CourtID:  courtID,
		ClientID: clientID,
		State:    query.Get("state"),
		Limit:    limit,
	}, nil
}
