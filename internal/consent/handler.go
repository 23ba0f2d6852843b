package consent

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"otcwise-backend/internal/auth"
	"otcwise-backend/internal/platform/apierr"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type AcceptRequest struct {
	AgeConfirmed   bool   `json:"age_confirmed"`
	ConsentVersion string `json:"consent_version"`
}

func (h *Handler) AcceptConsent(w http.ResponseWriter, r *http.Request) {
	var req AcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.New(http.StatusBadRequest, "BAD_REQUEST", errors.New("invalid request body")))
		return
	}

	userID := auth.UserID(r.Context())
	if err := h.svc.Accept(r.Context(), userID, req.ConsentVersion, req.AgeConfirmed); err != nil {
		if errors.Is(err, ErrAgeNotConfirmed) {
			apierr.Write(w, apierr.New(http.StatusBadRequest, "AGE_NOT_CONFIRMED", err))
			return
		}
		apierr.Write(w, apierr.New(http.StatusInternalServerError, "INTERNAL", errors.New("failed to record consent")))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ConsentStatus(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	status, err := h.svc.Status(r.Context(), userID)
	if err != nil {
		apierr.Write(w, apierr.New(http.StatusInternalServerError, "INTERNAL", errors.New("failed to read consent status")))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/consent/accept", h.AcceptConsent)
	r.Get("/consent/status", h.ConsentStatus)
}
