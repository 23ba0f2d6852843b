package triage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"otcwise-backend/internal/platform/logger"
)

// ConsentGate is what the orchestrator needs from the consent service.
// We define it here to decouple from the specific consent implementation.
type ConsentGate interface {
	Require(ctx context.Context, userID uuid.UUID) error
}

// CheckRecorder persists completed checks for the audit trail.
type CheckRecorder interface {
	Record(ctx context.Context, check CheckRecord) error
}

type Service interface {
	Check(ctx context.Context, userID uuid.UUID, symptoms []string) (Outcome, error)
}

type service struct {
	log      *logger.Logger
	kb       *KnowledgeBase
	consent  ConsentGate
	recorder CheckRecorder
}

// NewService wires the triage pipeline. recorder may be nil when no audit
// store is available.
func NewService(log *logger.Logger, kb *KnowledgeBase, consent ConsentGate, recorder CheckRecorder) Service {
	return &service{
		log:      log.With("service", "triage"),
		kb:       kb,
		consent:  consent,
		recorder: recorder,
	}
}

// Check runs the request through the pipeline: consent gate, normalize,
// emergency detection, then scoring and explanation. Emergency dominates
// any score; the scorer never runs on that branch.
func (s *service) Check(ctx context.Context, userID uuid.UUID, symptoms []string) (Outcome, error) {
	if err := s.consent.Require(ctx, userID); err != nil {
		return Outcome{}, err
	}

	keys, err := s.kb.Normalize(symptoms)
	if err != nil {
		return Outcome{}, err
	}

	if s.kb.DetectEmergency(keys) {
		out := Outcome{Emergency: true}
		s.record(userID, symptoms, out)
		return out, nil
	}

	level := s.kb.riskLevel(s.kb.Score(keys))
	out := Outcome{Result: s.kb.explain(keys, level)}
	s.record(userID, symptoms, out)
	return out, nil
}

// record writes the audit row in the background; a failed write is logged
// and never surfaces to the caller.
func (s *service) record(userID uuid.UUID, symptoms []string, out Outcome) {
	if s.recorder == nil {
		return
	}
	check := CheckRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Symptoms:  symptoms,
		Emergency: out.Emergency,
		CreatedAt: time.Now().UTC(),
	}
	if out.Result != nil {
		check.RiskLevel = string(out.Result.RiskLevel)
		check.Summary = out.Result.Summary
	}
	go func() {
		if err := s.recorder.Record(context.Background(), check); err != nil {
			s.log.Warn("failed to record symptom check", "error", err, "user_id", userID)
		}
	}()
}
