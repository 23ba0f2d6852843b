package triage

import (
	"time"

	"github.com/google/uuid"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Result is the classified (non-emergency) triage output. Field names are
// part of the wire contract.
type Result struct {
	Emergency            bool      `json:"emergency"`
	RiskLevel            RiskLevel `json:"risk_level"`
	Summary              string    `json:"summary"`
	PossibleAssociations []string  `json:"possible_associations"`
	NextSteps            []string  `json:"next_steps"`
	Disclaimer           string    `json:"disclaimer"`
}

// Outcome is the variant produced by a check: either the emergency branch,
// in which case Result is nil and the caller redirects to the emergency
// workflow, or a classified result.
type Outcome struct {
	Emergency bool
	Result    *Result
}

// CheckRecord is the audit row persisted after a completed check.
type CheckRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Symptoms  []string
	Emergency bool
	RiskLevel string
	Summary   string
	CreatedAt time.Time
}
