package consent

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a Store backed by the user_consent table.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Get(ctx context.Context, userID uuid.UUID) (*Record, error) {
	query := `SELECT user_id, age_confirmed, consent_version, accepted_at FROM user_consent WHERE user_id = $1`

	row := s.db.QueryRowContext(ctx, query, userID)

	var rec Record
	err := row.Scan(&rec.UserID, &rec.AgeConfirmed, &rec.Version, &rec.AcceptedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Put upserts in a single statement, which gives the per-user atomicity
// the consent gate requires.
func (s *postgresStore) Put(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO user_consent (user_id, age_confirmed, consent_version, accepted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			age_confirmed = $2,
			consent_version = $3,
			accepted_at = $4
	`
	_, err := s.db.ExecContext(ctx, query, rec.UserID, rec.AgeConfirmed, rec.Version, rec.AcceptedAt)
	return err
}
