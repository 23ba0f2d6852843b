package consent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"otcwise-backend/internal/platform/logger"
)

type Service interface {
	Accept(ctx context.Context, userID uuid.UUID, version string, ageConfirmed bool) error
	Require(ctx context.Context, userID uuid.UUID) error
	Status(ctx context.Context, userID uuid.UUID) (Status, error)
}

type service struct {
	log   *logger.Logger
	store Store
}

func NewService(log *logger.Logger, store Store) Service {
	return &service{log: log.With("service", "consent"), store: store}
}

// Accept records the user's consent. Idempotent: re-acceptance, including
// of a newer policy version, overwrites the previous record.
func (s *service) Accept(ctx context.Context, userID uuid.UUID, version string, ageConfirmed bool) error {
	if !ageConfirmed {
		return ErrAgeNotConfirmed
	}
	if version == "" {
		version = DefaultVersion
	}

	rec := &Record{
		UserID:       userID,
		AgeConfirmed: true,
		Version:      version,
		AcceptedAt:   time.Now().UTC(),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		return err
	}
	s.log.Info("consent recorded", "user_id", userID, "version", version)
	return nil
}

// Require succeeds silently when a consent record exists.
func (s *service) Require(ctx context.Context, userID uuid.UUID) error {
	_, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrConsentRequired
		}
		return err
	}
	return nil
}

// Status reports the current consent state; users without a record get the
// zero-value status with the default policy version.
func (s *service) Status(ctx context.Context, userID uuid.UUID) (Status, error) {
	rec, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Status{ConsentVersion: DefaultVersion}, nil
		}
		return Status{}, err
	}
	return Status{
		AgeConfirmed:       rec.AgeConfirmed,
		DisclaimerAccepted: true,
		ConsentVersion:     rec.Version,
	}, nil
}
