package postgres

import (
	"context"
	"fmt"
	"time"

	"go-hiring-assistant/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const candidateRecordsSchema = `
	CREATE TABLE IF NOT EXISTS candidate_records (
		seq                 BIGSERIAL PRIMARY KEY,
		id                  TEXT NOT NULL,
		name_hash           TEXT NOT NULL,
		email_hash          TEXT NOT NULL,
		phone_hash          TEXT NOT NULL,
		years_exp           INT NOT NULL,
		desired_positions   TEXT[] NOT NULL DEFAULT '{}',
		location            TEXT NOT NULL,
		tech_stack          TEXT[] NOT NULL DEFAULT '{}',
		preferred_location  TEXT,
		degree              TEXT,
		domain              TEXT,
		cgpa                TEXT,
		marks_12th          TEXT,
		marks_10th          TEXT,
		last_company        TEXT,
		years_in_company    INT,
		position_in_company TEXT,
		created_at          TIMESTAMPTZ NOT NULL
	)`

type candidateLogRepository struct {
	db *pgxpool.Pool
}

func NewCandidateLogRepository(db *pgxpool.Pool) domain.CandidateLogRepository {
	return &candidateLogRepository{db: db}
}

// EnsureCandidateLogSchema creates the candidate_records table when missing.
func EnsureCandidateLogSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, candidateRecordsSchema); err != nil {
		return fmt.Errorf("create candidate_records: %w", err)
	}
	return nil
}

func (r *candidateLogRepository) Append(ctx context.Context, rec domain.CandidateRecord) error {
	createdAt := rec.Created()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO candidate_records (
			id, name_hash, email_hash, phone_hash, years_exp,
			desired_positions, location, tech_stack, preferred_location,
			degree, domain, cgpa, marks_12th, marks_10th,
			last_company, years_in_company, position_in_company, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.NameHash, rec.EmailHash, rec.PhoneHash, rec.YearsExp,
		rec.DesiredPositions, rec.Location, rec.TechStack, rec.PreferredLocation,
		rec.Degree, rec.Domain, rec.CGPA, rec.Marks12th, rec.Marks10th,
		rec.LastCompany, rec.YearsInCompany, rec.PositionInCompany, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert candidate record: %w", err)
	}
	return nil
}

func (r *candidateLogRepository) List(ctx context.Context) ([]domain.CandidateRecord, error) {
	query := `
		SELECT
			id, name_hash, email_hash, phone_hash, years_exp,
			desired_positions, location, tech_stack, COALESCE(preferred_location, ''),
			degree, domain, cgpa, marks_12th, marks_10th,
			last_company, years_in_company, position_in_company, created_at
		FROM candidate_records ORDER BY seq`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list candidate records: %w", err)
	}
	defer rows.Close()

	records := []domain.CandidateRecord{}
	for rows.Next() {
		var rec domain.CandidateRecord
		var createdAt time.Time
		if err := rows.Scan(
			&rec.ID, &rec.NameHash, &rec.EmailHash, &rec.PhoneHash, &rec.YearsExp,
			&rec.DesiredPositions, &rec.Location, &rec.TechStack, &rec.PreferredLocation,
			&rec.Degree, &rec.Domain, &rec.CGPA, &rec.Marks12th, &rec.Marks10th,
			&rec.LastCompany, &rec.YearsInCompany, &rec.PositionInCompany, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan candidate record: %w", err)
		}
		rec.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		records = append(records, rec)
	}
	return records, rows.Err()
}
