package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"

	maxBodyBytes = 1 << 20
)

// Envelope is the body of every successful response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Success bool                `json:"success"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// HandlerError carries a status chosen by the handler itself, for failures
// that have no place in the domain error taxonomy.
type HandlerError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

// DecodeBody decodes a JSON request body into dst. A body that is not JSON
// is a format error; a body with unknown or mistyped fields is a validation error.
func DecodeBody(r *http.Request, dst any) error {
	err := DecodeJSON(r, dst)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.NotValidFormat("body", "request body must be a single JSON object")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.Field(field, fmt.Sprintf("must be of type %s", typeErr.Type))
	default:
		return apperr.Validation(err.Error(), apperr.FieldError{Field: "body", Message: err.Error()})
	}
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	if err := WriteJSON(w, status, Envelope{Success: true, Data: data, Message: message}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write response")
	}
}

// StatusFor maps an error kind to the HTTP status it is reported with.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindNotValidFormat:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err in the error envelope. Internal causes are logged
// and never sent to the caller.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())

	var herr HandlerError
	if errors.As(err, &herr) {
		if herr.Status >= http.StatusInternalServerError {
			logger.Error().Err(herr.Err).Msg(herr.Message)
		}
		writeErrorEnvelope(w, r, herr.Status, ErrorEnvelope{Code: herr.Code, Message: herr.Message})
		return
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.Error().Err(err).Msg("Unhandled error")
		writeErrorEnvelope(w, r, http.StatusInternalServerError, ErrorEnvelope{
			Code:    string(apperr.KindInternal),
			Message: "Internal server error",
		})
		return
	}

	status := StatusFor(appErr.Kind)
	if appErr.Kind == apperr.KindInternal {
		logger.Error().Err(appErr.Err).Msg(appErr.Message)
	} else {
		logger.Debug().Str("code", string(appErr.Kind)).Msg(appErr.Message)
	}
	writeErrorEnvelope(w, r, status, ErrorEnvelope{
		Code:    string(appErr.Kind),
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

func writeErrorEnvelope(w http.ResponseWriter, r *http.Request, status int, body ErrorEnvelope) {
	body.Success = false
	if err := WriteJSON(w, status, body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write error response")
	}
}
