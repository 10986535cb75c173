package reservations

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/courtbook/internal/clock"
	"github.com/codr1/courtbook/internal/config"
	"github.com/codr1/courtbook/internal/db"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/pricing"
	"github.com/codr1/courtbook/internal/reservations"
	"github.com/codr1/courtbook/internal/settings"
	"github.com/codr1/courtbook/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func setupReservationsTest(t *testing.T) (*db.DB, dbgen.Court, dbgen.Client) {
	t.Helper()

	database := testutil.NewTestDB(t)
	booking := settings.NewBooking(settings.NewStore(database.Queries), config.BookingConfig{
		DepositPercent:   30,
		MinAdvanceHours:  2,
		MaxDurationHours: 3,
	})
	now := time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC)
	life, err := reservations.NewLifecycle(database, clock.Fixed{At: now}, time.UTC, booking, pricing.NewEngine(booking), nil)
	if err != nil {
		t.Fatalf("new lifecycle: %v", err)
	}

	lifecycle = nil
	lifecycleOnce = sync.Once{}
	InitHandlers(life)

	t.Cleanup(func() {
		lifecycle = nil
		lifecycleOnce = sync.Once{}
	})

	court := testutil.SeedCourt(t, database, "Court 1", 6000)
	client := testutil.SeedClient(t, database, "+5491100000001", "regular")
	return database, court, client
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, recorder.Body.String())
	}
	return body
}

func createReservation(t *testing.T, courtID, clientID int64, start, end string) reservations.Reservation {
	t.Helper()

	payload := fmt.Sprintf(`{"court_id":%d,"client_id":%d,"date":"2025-09-12","start_time":%q,"end_time":%q}`, courtID, clientID, start, end)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(payload))
	recorder := httptest.NewRecorder()

	HandleReservationCreate(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("create status: %d body: %s", recorder.Code, recorder.Body.String())
	}
	body := decodeEnvelope(t, recorder)
	var created reservations.Reservation
	if err := json.Unmarshal(body.Data, &created); err != nil {
		t.Fatalf("decode reservation: %v", err)
	}
	return created
}

func TestHandleReservationCreate(t *testing.T) {
	_, court, client := setupReservationsTest(t)

	created := createReservation(t, court.ID, client.ID, "10:00", "11:30")

	if created.State != reservations.StatePending {
		t.Fatalf("state = %s", created.State)
	}
	if created.TotalPriceCents != 9000 || created.DepositRequiredCents != 2700 {
		t.Fatalf("unexpected pricing: %+v", created)
	}
}

func TestHandleReservationCreate_Overlap(t *testing.T) {
	_, court, client := setupReservationsTest(t)
	createReservation(t, court.ID, client.ID, "10:00", "11:00")

	payload := fmt.Sprintf(`{"court_id":%d,"client_id":%d,"date":"2025-09-12","start_time":"10:30","end_time":"11:30"}`, court.ID, client.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(payload))
	recorder := httptest.NewRecorder()

	HandleReservationCreate(recorder, req)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("status: %d body: %s", recorder.Code, recorder.Body.String())
	}
	if body := decodeEnvelope(t, recorder); body.Success || body.Code != "CONFLICT" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestHandleReservationCreate_InvalidBody(t *testing.T) {
	setupReservationsTest(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"not json", `court=1`, http.StatusBadRequest, "NOT_VALID_FORMAT"},
		{"missing fields", `{}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown field", `{"court_id":1,"colour":"red"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad time", `{"court_id":1,"client_id":1,"date":"2025-09-12","start_time":"25:00","end_time":"26:00"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(tc.body))
			recorder := httptest.NewRecorder()

			HandleReservationCreate(recorder, req)

			if recorder.Code != tc.status {
				t.Fatalf("status: %d body: %s", recorder.Code, recorder.Body.String())
			}
			if body := decodeEnvelope(t, recorder); body.Code != tc.code {
				t.Fatalf("code = %s, want %s", body.Code, tc.code)
			}
		})
	}
}

func TestHandleReservationTransitions(t *testing.T) {
	_, court, client := setupReservationsTest(t)
	created := createReservation(t, court.ID, client.ID, "18:00", "19:00")
	id := fmt.Sprint(created.ID)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/reservations/"+id+"/confirm", strings.NewReader(`{"amount_paid_cents":1800,"method":"card"}`))
	req.SetPathValue("id", id)
	recorder := httptest.NewRecorder()
	HandleReservationConfirm(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("confirm status: %d body: %s", recorder.Code, recorder.Body.String())
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/reservations/"+id+"/complete", nil)
	req.SetPathValue("id", id)
	recorder = httptest.NewRecorder()
	HandleReservationComplete(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("complete status: %d body: %s", recorder.Code, recorder.Body.String())
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/reservations/"+id+"/cancel", nil)
	req.SetPathValue("id", id)
	recorder = httptest.NewRecorder()
	HandleReservationCancel(recorder, req)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("cancel completed status: %d body: %s", recorder.Code, recorder.Body.String())
	}
	if body := decodeEnvelope(t, recorder); body.Code != "INVALID_STATE" {
		t.Fatalf("code = %s", body.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+id, nil)
	req.SetPathValue("id", id)
	recorder = httptest.NewRecorder()
	HandleReservationGet(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("get status: %d", recorder.Code)
	}
	var got reservations.Reservation
	if err := json.Unmarshal(decodeEnvelope(t, recorder).Data, &got); err != nil {
		t.Fatalf("decode reservation: %v", err)
	}
	if got.State != reservations.StateCompleted || len(got.Payments) != 1 {
		t.Fatalf("unexpected reservation: state=%s payments=%d", got.State, len(got.Payments))
	}
}

func TestHandleReservationConfirm_BelowDeposit(t *testing.T) {
	_, court, client := setupReservationsTest(t)
	created := createReservation(t, court.ID, client.ID, "18:00", "19:00")
	id := fmt.Sprint(created.ID)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/reservations/"+id+"/confirm", strings.NewReader(`{"amount_paid_cents":100}`))
	req.SetPathValue("id", id)
	recorder := httptest.NewRecorder()
	HandleReservationConfirm(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status: %d body: %s", recorder.Code, recorder.Body.String())
	}
	body := decodeEnvelope(t, recorder)
	if len(body.Errors) == 0 || body.Errors[0].Field != "amount_paid_cents" {
		t.Fatalf("unexpected errors: %+v", body.Errors)
	}
}

func TestHandleReservationNoShowAndDelete(t *testing.T) {
	_, court, client := setupReservationsTest(t)
	created := createReservation(t, court.ID, client.ID, "18:00", "19:00")
	id := fmt.Sprint(created.ID)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/reservations/"+id+"/no-show", nil)
	req.SetPathValue("id", id)
	recorder := httptest.NewRecorder()
	HandleReservationNoShow(recorder, req)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("no-show on pending status: %d", recorder.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/"+id, nil)
	req.SetPathValue("id", id)
	recorder = httptest.NewRecorder()
	HandleReservationDelete(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("delete status: %d body: %s", recorder.Code, recorder.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+id, nil)
	req.SetPathValue("id", id)
	recorder = httptest.NewRecorder()
	HandleReservationGet(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("get after delete status: %d", recorder.Code)
	}
}

func TestHandleReservationsList(t *testing.T) {
	_, court, client := setupReservationsTest(t)
	createReservation(t, court.ID, client.ID, "10:00", "11:00")
	createReservation(t, court.ID, client.ID, "11:00", "12:00")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/reservations?court_id=%d&state=pending", court.ID), nil)
	recorder := httptest.NewRecorder()
	HandleReservationsList(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", recorder.Code, recorder.Body.String())
	}
	var list []reservations.Reservation
	if err := json.Unmarshal(decodeEnvelope(t, recorder).Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(list))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reservations?date=12-09-2025", nil)
	recorder = httptest.NewRecorder()
	HandleReservationsList(recorder, req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("bad date status: %d", recorder.Code)
	}
	if body := decodeEnvelope(t, recorder); body.Code != "NOT_VALID_FORMAT" {
		t.Fatalf("code = %s", body.Code)
	}
}

func TestHandleReservationGet_InvalidID(t *testing.T) {
	setupReservationsTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/abc", nil)
	req.SetPathValue("id", "abc")
	recorder := httptest.NewRecorder()
	HandleReservationGet(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", recorder.Code)
	}
}
