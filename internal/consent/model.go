package consent

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConsentRequired gates the triage pipeline; surfaced as 403.
	ErrConsentRequired = errors.New("consent required")
	// ErrAgeNotConfirmed rejects acceptance without age confirmation.
	ErrAgeNotConfirmed = errors.New("age must be confirmed to accept consent")
	// ErrNotFound is the store-level miss; services translate it.
	ErrNotFound = errors.New("consent record not found")
)

// DefaultVersion is assumed when a client omits the policy version.
const DefaultVersion = "1.0"

// Record is the evidence that a user accepted the educational-use
// disclaimer. Created only through Service.Accept; re-acceptance
// overwrites the whole record.
type Record struct {
	UserID       uuid.UUID `json:"user_id"`
	AgeConfirmed bool      `json:"age_confirmed"`
	Version      string    `json:"consent_version"`
	AcceptedAt   time.Time `json:"accepted_at"`
}

// Status is the wire shape of GET /consent/status.
type Status struct {
	AgeConfirmed       bool   `json:"age_confirmed"`
	DisclaimerAccepted bool   `json:"disclaimer_accepted"`
	ConsentVersion     string `json:"consent_version"`
}
