package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otcwise-backend/internal/auth"
	"otcwise-backend/internal/consent"
	"otcwise-backend/internal/platform/logger"
)

// newTestServer wires the real consent service over a memory store so the
// gate behaves end to end; auth is bypassed by seeding the context.
func newTestServer(t *testing.T) (*chi.Mux, consent.Service) {
	t.Helper()

	log := logger.NewNop()
	consentSvc := consent.NewService(log, consent.NewMemoryStore())
	svc := NewService(log, testKB(t), consentSvc, nil)

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc))
	return r, consentSvc
}

func doCheck(t *testing.T, r http.Handler, userID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/symptoms/check", bytes.NewReader(data))
	req = req.WithContext(auth.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestCheckSymptomsWithoutConsent(t *testing.T) {
	r, _ := newTestServer(t)

	rec := doCheck(t, r, uuid.New(), CheckRequest{Symptoms: []string{"headache"}})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "CONSENT_REQUIRED", errorCode(t, rec))
}

func TestCheckSymptomsAfterConsent(t *testing.T) {
	r, consentSvc := newTestServer(t)
	userID := uuid.New()
	require.NoError(t, consentSvc.Accept(context.Background(), userID, "1.0", true))

	rec := doCheck(t, r, userID, CheckRequest{Symptoms: []string{"mild headache"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, false, res["emergency"])
	assert.Equal(t, "Low", res["risk_level"])
	assert.NotEmpty(t, res["summary"])
	assert.NotEmpty(t, res["possible_associations"])
	assert.NotEmpty(t, res["next_steps"])
	assert.Equal(t, Disclaimer, res["disclaimer"])
}

func TestCheckSymptomsEmergencyBody(t *testing.T) {
	r, consentSvc := newTestServer(t)
	userID := uuid.New()
	require.NoError(t, consentSvc.Accept(context.Background(), userID, "1.0", true))

	rec := doCheck(t, r, userID, CheckRequest{Symptoms: []string{"chest pain", "shortness of breath"}})
	require.Equal(t, http.StatusOK, rec.Code)

	// The emergency branch returns the flag and nothing else.
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, map[string]any{"emergency": true}, res)
}

func TestCheckSymptomsEmptySet(t *testing.T) {
	r, consentSvc := newTestServer(t)
	userID := uuid.New()
	require.NoError(t, consentSvc.Accept(context.Background(), userID, "1.0", true))

	rec := doCheck(t, r, userID, CheckRequest{Symptoms: []string{}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMPTY_SYMPTOM_SET", errorCode(t, rec))
}

func TestCheckSymptomsBadBody(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/symptoms/check", bytes.NewReader([]byte("{not json")))
	req = req.WithContext(auth.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
