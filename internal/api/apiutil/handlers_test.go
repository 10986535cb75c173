package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/courtbook/internal/apperr"
)

func TestWriteErrorMapsKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Field("date", "is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"format", apperr.NotValidFormat("date", "bad date"), http.StatusBadRequest, "NOT_VALID_FORMAT"},
		{"not found", apperr.NotFound("court %d not found", 9), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperr.Conflict("slot taken"), http.StatusConflict, "CONFLICT"},
		{"invalid state", apperr.InvalidState("already cancelled"), http.StatusUnprocessableEntity, "INVALID_STATE"},
		{"internal", apperr.Internal("failed to load", errors.New("disk on fire")), http.StatusInternalServerError, "INTERNAL"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			recorder := httptest.NewRecorder()

			WriteError(recorder, req, tc.err)

			if recorder.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, recorder.Code)
			}
			var body ErrorEnvelope
			if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Fatalf("expected success=false")
			}
			if body.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body.Code)
			}
			if strings.Contains(recorder.Body.String(), "disk on fire") {
				t.Fatalf("internal cause leaked into response: %s", recorder.Body.String())
			}
		})
	}
}

func TestWriteErrorIncludesFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	WriteError(recorder, req, apperr.Collect([]apperr.FieldError{
		{Field: "start_time", Message: "is required"},
		{Field: "end_time", Message: "is required"},
	}))

	var body ErrorEnvelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Errors) != 2 || body.Errors[0].Field != "start_time" {
		t.Fatalf("unexpected field errors: %+v", body.Errors)
	}
}

func TestDecodeBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Rate int64  `json:"rate"`
	}

	tests := []struct {
		name string
		body string
		kind apperr.Kind
	}{
		{"valid", `{"name":"Court 1","rate":1000}`, ""},
		{"not json", `name=court`, apperr.KindNotValidFormat},
		{"empty", ``, apperr.KindNotValidFormat},
		{"unknown field", `{"name":"Court 1","color":"red"}`, apperr.KindValidation},
		{"wrong type", `{"rate":"cheap"}`, apperr.KindValidation},
		{"two objects", `{"name":"a"}{"name":"b"}`, apperr.KindValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst payload
			err := DecodeBody(req, &dst)
			if tc.kind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if apperr.KindOf(err) != tc.kind {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courts/7", nil)
	req.SetPathValue("id", "7")
	id, err := PathID(req, "id")
	if err != nil || id != 7 {
		t.Fatalf("expected 7, got %d (%v)", id, err)
	}

	req.SetPathValue("id", "seven")
	if _, err := PathID(req, "id"); !apperr.Is(err, apperr.KindNotValidFormat) {
		t.Fatalf("expected format error, got %v", err)
	}

	req.SetPathValue("id", "0")
	if _, err := PathID(req, "id"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQueryDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-02-30", nil)
	if _, err := QueryDate(req, "date"); !apperr.Is(err, apperr.KindNotValidFormat) {
		t.Fatalf("expected format error, got %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := RequireDate(req, "date"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
