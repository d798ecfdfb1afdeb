package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-builder/resume/render"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, candidate_name, file_name, storage_key, mime_type, size_bytes, enhanced, record, warnings, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a generated resume.
func (r *PGRepo) Create(ctx context.Context, resume GeneratedResume) error {
	record, err := json.Marshal(resume.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	warnings := resume.Warnings
	if warnings == nil {
		warnings = []render.ContentOverflowWarning{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}

	const query = `
INSERT INTO generated_resumes (
    id, user_id, candidate_name, file_name, storage_key, mime_type, size_bytes, enhanced, record, warnings, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.CandidateName,
		resume.FileName,
		resume.StorageKey,
		resume.MimeType,
		resume.SizeBytes,
		resume.Enhanced,
		record,
		warningsJSON,
		resume.CreatedAt,
	)
	return err
}

// GetByID returns a generated resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (GeneratedResume, error) {
	query := `
SELECT ` + selectColumns + `
FROM generated_resumes
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedResume{}, ErrNotFound
		}
		return GeneratedResume{}, err
	}
	if resume.UserID != userID {
		return GeneratedResume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser lists generated resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	limit, offset = clampPage(limit, offset)
	query := `
SELECT ` + selectColumns + `
FROM generated_resumes
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GeneratedResume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// SoftDelete marks a resume deleted. Rows owned by another user report
// ErrForbidden.
func (r *PGRepo) SoftDelete(ctx context.Context, userID, resumeID string) error {
	const query = `
UPDATE generated_resumes
SET deleted_at = NOW()
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, userID, resumeID); err != nil {
		return err
	}
	return ErrNotFound
}

func scanResume(row rowScanner) (GeneratedResume, error) {
	var (
		resume   GeneratedResume
		record   []byte
		warnings []byte
	)
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.CandidateName,
		&resume.FileName,
		&resume.StorageKey,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.Enhanced,
		&record,
		&warnings,
		&resume.CreatedAt,
	); err != nil {
		return GeneratedResume{}, err
	}
	if len(record) > 0 {
		if err := json.Unmarshal(record, &resume.Record); err != nil {
			return GeneratedResume{}, fmt.Errorf("decode record: %w", err)
		}
		resume.Record = resume.Record.Canonical()
	}
	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &resume.Warnings); err != nil {
			return GeneratedResume{}, fmt.Errorf("decode warnings: %w", err)
		}
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
