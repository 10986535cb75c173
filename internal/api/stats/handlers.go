// internal/api/stats/handlers.go
package stats

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/stats"
)

var (
	reporter     *stats.Reporter
	reporterOnce sync.Once
)

const statsQueryTimeout = 10 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(r *stats.Reporter) {
	if r == nil {
		return
	}
	reporterOnce.Do(func() {
		reporter = r
	})
}

// GET /api/v1/stats
func HandleSystemStats(w http.ResponseWriter, r *http.Request) {
	if reporter == nil {
		log.Ctx(r.Context()).Error().Msg("Stats handlers not initialized")
		apiutil.WriteError(w, r, apperr.Internal("service unavailable", nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), statsQueryTimeout)
	defer cancel()

	system, err := reporter.System(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, system, "")
}
