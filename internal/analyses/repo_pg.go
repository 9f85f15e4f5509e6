package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ats-backend/internal/scoring"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, file_name, mime_type, size_bytes, content_hash, storage_key,
       overall_score, format_score, keywords_found, sections_detected,
       section_scores, suggestions, created_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, file_name, mime_type, size_bytes, content_hash, storage_key,
	overall_score, format_score, keywords_found, sections_detected,
	section_scores, suggestions, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	sectionPayload, err := marshalJSONB(analysis.Result.SectionScores, "{}")
	if err != nil {
		return fmt.Errorf("marshal section_scores: %w", err)
	}
	suggestionPayload, err := marshalJSONB(analysis.Result.Suggestions, "[]")
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.FileName,
		analysis.MimeType,
		analysis.SizeBytes,
		analysis.ContentHash,
		analysis.StorageKey,
		analysis.Result.OverallScore,
		analysis.Result.FormatScore,
		analysis.Result.KeywordsFound,
		analysis.Result.SectionsDetected,
		sectionPayload,
		suggestionPayload,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1
LIMIT 1`
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return a, nil
}

// List returns analyses newest first, with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if offset < 0 {
		offset = 0
	}
	query := `
SELECT ` + analysisColumns + `
FROM analyses
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := r.DB.QueryContext(ctx, query, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var sectionScores []byte
	var suggestions []byte
	err := row.Scan(
		&a.ID,
		&a.FileName,
		&a.MimeType,
		&a.SizeBytes,
		&a.ContentHash,
		&a.StorageKey,
		&a.Result.OverallScore,
		&a.Result.FormatScore,
		&a.Result.KeywordsFound,
		&a.Result.SectionsDetected,
		&sectionScores,
		&suggestions,
		&a.CreatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	a.Result.Filename = a.FileName
	a.Result.SectionScores = scoring.SectionScores{}
	if len(sectionScores) > 0 {
		if err := json.Unmarshal(sectionScores, &a.Result.SectionScores); err != nil {
			return Analysis{}, fmt.Errorf("decode section_scores id=%s: %w", a.ID, err)
		}
	}
	a.Result.Suggestions = []scoring.Suggestion{}
	if len(suggestions) > 0 {
		if err := json.Unmarshal(suggestions, &a.Result.Suggestions); err != nil {
			return Analysis{}, fmt.Errorf("decode suggestions id=%s: %w", a.ID, err)
		}
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

func marshalJSONB(value any, empty string) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if string(payload) == "null" {
		return []byte(empty), nil
	}
	return payload, nil
}

var _ Repo = (*PGRepo)(nil)
