// internal/api/settings/handlers.go
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/settings"
)

var (
	store     *settings.DBStore
	storeOnce sync.Once
)

const settingsQueryTimeout = 5 * time.Second

type updateRequest struct {
	Value json.RawMessage    `json:"value"`
	Type  settings.ValueType `json:"type,omitempty"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *settings.DBStore) {
	if s == nil {
		return
	}
	storeOnce.Do(func() {
		store = s
	})
}

func loadStore(w http.ResponseWriter, r *http.Request) (*settings.DBStore, bool) {
	if store == nil {
		log.Ctx(r.Context()).Error().Msg("Settings handlers not initialized")
		apiutil.WriteError(w, r, apperr.Internal("service unavailable", nil))
		return nil, false
	}
	return store, true
}

// GET /api/v1/settings
func HandleSettingsList(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), settingsQueryTimeout)
	defer cancel()

	values, err := s.List(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteSuccess(w, r, http.StatusOK, values, "")
}

// PUT /api/v1/settings/{key}
func HandleSettingUpdate(w http.ResponseWriter, r *http.Request) {
	s, ok := loadStore(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := apiutil.DecodeBody(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	raw, typ, err := rawSetting(req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), settingsQueryTimeout)
	defer cancel()

	value, err := s.Set(ctx, r.PathValue("key"), raw, typ)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("key", value.Key).Str("type", string(value.Type)).Msg("Setting updated")
	apiutil.WriteSuccess(w, r, http.StatusOK, value, "Setting updated")
}

// rawSetting turns the JSON value into its stored text form. Without an
// explicit type the JSON kind decides it.
func rawSetting(req updateRequest) (string, settings.ValueType, error) {
	value := bytes.TrimSpace(req.Value)
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return "", "", apperr.Field("value", "is required")
	}

	typ := req.Type
	if typ == "" {
		switch value[0] {
		case '"':
			typ = settings.TypeString
		case 't', 'f':
			typ = settings.TypeBoolean
		case '{', '[':
			typ = settings.TypeJSON
		default:
			typ = settings.TypeNumber
		}
	}

	if typ == settings.TypeJSON || value[0] != '"' {
		return string(value), typ, nil
	}
	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return "", "", apperr.Field("value", "must be a valid JSON string")
	}
	return text, typ, nil
}
