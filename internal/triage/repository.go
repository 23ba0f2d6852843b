package triage

import (
	"context"
	"database/sql"
	"encoding/json"
)

type postgresRecorder struct {
	db *sql.DB
}

// NewRecorder returns a CheckRecorder backed by the symptom_checks table.
func NewRecorder(db *sql.DB) CheckRecorder {
	return &postgresRecorder{db: db}
}

func (r *postgresRecorder) Record(ctx context.Context, check CheckRecord) error {
	symptomsJSON, err := json.Marshal(check.Symptoms)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO symptom_checks (id, user_id, symptoms, emergency, risk_level, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, query,
		check.ID, check.UserID, symptomsJSON, check.Emergency, check.RiskLevel, check.Summary, check.CreatedAt)
	return err
}
