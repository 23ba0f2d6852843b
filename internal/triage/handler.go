package triage

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"otcwise-backend/internal/auth"
	"otcwise-backend/internal/consent"
	"otcwise-backend/internal/platform/apierr"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type CheckRequest struct {
	Symptoms []string `json:"symptoms"`
}

// EmergencyResponse is the entire body on the emergency branch; callers
// redirect to the emergency workflow and must not receive risk fields.
type EmergencyResponse struct {
	Emergency bool `json:"emergency"`
}

func (h *Handler) CheckSymptoms(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.New(http.StatusBadRequest, "BAD_REQUEST", errors.New("invalid request body")))
		return
	}

	userID := auth.UserID(r.Context())
	out, err := h.svc.Check(r.Context(), userID, req.Symptoms)
	if err != nil {
		switch {
		case errors.Is(err, consent.ErrConsentRequired):
			apierr.Write(w, apierr.New(http.StatusForbidden, "CONSENT_REQUIRED", err))
		case errors.Is(err, ErrEmptySymptomSet):
			apierr.Write(w, apierr.New(http.StatusBadRequest, "EMPTY_SYMPTOM_SET", err))
		default:
			apierr.Write(w, apierr.New(http.StatusInternalServerError, "INTERNAL", errors.New("symptom check failed")))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if out.Emergency {
		_ = json.NewEncoder(w).Encode(EmergencyResponse{Emergency: true})
		return
	}
	_ = json.NewEncoder(w).Encode(out.Result)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/symptoms/check", h.CheckSymptoms)
}
