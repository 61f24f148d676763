package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appointmentRepo "voicebook/database/repository/appointment"
	recordsRepo "voicebook/database/repository/records"
	slotRepo "voicebook/database/repository/slot"
	userRepoPkg "voicebook/database/repository/user"
	"voicebook/handlers"
	"voicebook/routes"
	"voicebook/services/booking"
	"voicebook/services/call"
	"voicebook/services/cost"
	"voicebook/services/events"
	"voicebook/services/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slots := slotRepo.NewMemorySlotRepo()
	registry := session.NewRegistry()
	dispatcher := &call.Dispatcher{
		Sessions: registry,
		Booking: &booking.DefaultCoordinator{
			Slots:           slots,
			Appointments:    appointmentRepo.NewMemoryAppointmentRepo(),
			DurationMinutes: 30,
			Logger:          zap.NewNop(),
		},
		Users:         userRepoPkg.NewMemoryUserRepo(),
		Records:       recordsRepo.NewMemoryRecordRepo(),
		Publisher:     events.NewMemoryPublisher(),
		ChannelPrefix: "voicebook:events",
		Pricing:       cost.PricingTable{},
		Logger:        zap.NewNop(),
	}

	hb := &handlers.HandlerBundle{
		Sessions:   registry,
		Dispatcher: dispatcher,
		SlotRepo:   slots,
	}

	router := gin.New()
	routes.RegisterRoutes(router, hb, registry)

	return &testServer{router: router}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (ts *testServer) startSession(t *testing.T) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	ts.token = body["token"].(string)
	require.NotEmpty(t, body["session_id"])
}

func (ts *testServer) seedSlots(t *testing.T) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/admin/slots/seed", map[string]interface{}{
		"days":  2,
		"times": []string{"09:00", "14:00"},
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCallEndpointsRequireToken(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/api/call/appointments", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ts.token = "not-a-token"
	w = ts.do(t, http.MethodGet, "/api/call/appointments", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSlots(t)
	ts.startSession(t)

	w := ts.do(t, http.MethodPost, "/api/call/identify", map[string]string{
		"contact_number": "+15551234567",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "created", decode(t, w)["action"])

	// Pick a slot from the catalogue.
	w = ts.do(t, http.MethodGet, "/api/call/slots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots := decode(t, w)["available_slots"].([]interface{})
	require.NotEmpty(t, slots)
	first := slots[0].(map[string]interface{})

	w = ts.do(t, http.MethodPost, "/api/call/appointments", map[string]string{
		"date": first["date"].(string),
		"time": first["time"].(string),
	})
	require.Equal(t, http.StatusOK, w.Code)
	appt := decode(t, w)["appointment"].(map[string]interface{})
	apptID := appt["id"].(string)

	// Booking the same slot again conflicts.
	w = ts.do(t, http.MethodPost, "/api/call/appointments", map[string]string{
		"date": first["date"].(string),
		"time": first["time"].(string),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/api/call/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = ts.do(t, http.MethodDelete, "/api/call/appointments/"+apptID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/call/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestUsageAndEndOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.startSession(t)

	w := ts.do(t, http.MethodPost, "/api/sessions/usage", map[string]interface{}{
		"stt_seconds":      12.5,
		"llm_input_tokens": 400,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/sessions/end", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Contains(t, body, "summary")
	assert.Contains(t, body, "cost_breakdown")

	// The token no longer works once the session is destroyed.
	w = ts.do(t, http.MethodGet, "/api/call/appointments", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookValidatesInput(t *testing.T) {
	ts := newTestServer(t)
	ts.startSession(t)

	w := ts.do(t, http.MethodPost, "/api/call/appointments", map[string]string{"date": "2026-01-27"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeedIsIdempotentOnAvailability(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSlots(t)

	w := ts.do(t, http.MethodPost, "/api/admin/slots/seed", map[string]interface{}{
		"days":  2,
		"times": []string{"09:00", "14:00"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["created"])
	assert.Equal(t, float64(4), body["total"])
}

func TestRateLimiterAllowsNormalUse(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 5; i++ {
		w := ts.do(t, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
}
