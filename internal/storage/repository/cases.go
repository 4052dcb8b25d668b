package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/advodraft/legal-feed/internal/models"
)

// CreateCase вставляет новую запись дела.
func (s *Storage) CreateCase(ctx context.Context, c models.Case) error {
	const op = "storage.CreateCase"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO cases (id, title, citation, court, date, section, full_text,
			      short_summary, medium_summary, detailed_analysis, tags, outcome,
			      ai_generated, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if _, err := s.DB.ExecContext(ctx, query,
		c.ID, c.Title, c.Citation, c.Court, c.Date, c.Section, c.FullText,
		c.ShortSummary, c.MediumSummary, c.DetailedAnalysis, tags, c.Outcome,
		c.AIGenerated, c.CreatedAt, c.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRecentCases возвращает дела, отсортированные по времени создания,
// свежие сначала. Вторичная сортировка по id делает порядок воспроизводимым
// при одинаковых метках времени.
func (s *Storage) ListRecentCases(ctx context.Context, limit int) ([]models.Case, error) {
	const op = "storage.ListRecentCases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, citation, court, date, section, full_text,
			      short_summary, medium_summary, detailed_analysis, tags, outcome,
			      ai_generated, created_at, updated_at
			  FROM cases
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Case
	for rows.Next() {
		item, err := scanCase(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCase возвращает дело по его идентификатору.
func (s *Storage) GetCase(ctx context.Context, caseID string) (*models.Case, error) {
	const op = "storage.GetCase"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, citation, court, date, section, full_text,
			      short_summary, medium_summary, detailed_analysis, tags, outcome,
			      ai_generated, created_at, updated_at
			  FROM cases
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, caseID)

	item, err := scanCase(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrCaseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// UpdateCaseAIFields записывает поля, сгенерированные AI-оркестратором,
// выставляет признак ai_generated и обновляет updated_at.
func (s *Storage) UpdateCaseAIFields(ctx context.Context, caseID string, fields models.AISummaryFields, updatedAt time.Time) error {
	const op = "storage.UpdateCaseAIFields"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(fields.Tags)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE cases
			  SET short_summary = $1, medium_summary = $2, detailed_analysis = $3,
			      tags = $4, outcome = $5, ai_generated = true, updated_at = $6
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		fields.ShortSummary, fields.MediumSummary, fields.DetailedAnalysis,
		tags, fields.Outcome, updatedAt, caseID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrCaseNotFound)
	}
	return nil
}

func scanCase(scan func(dest ...any) error) (*models.Case, error) {
	var item models.Case
	var shortSummary, mediumSummary, detailedAnalysis sql.NullString
	var tags []byte

	if err := scan(&item.ID, &item.Title, &item.Citation, &item.Court, &item.Date,
		&item.Section, &item.FullText, &shortSummary, &mediumSummary, &detailedAnalysis,
		&tags, &item.Outcome, &item.AIGenerated, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}

	if shortSummary.Valid {
		item.ShortSummary = &shortSummary.String
	}
	if mediumSummary.Valid {
		item.MediumSummary = &mediumSummary.String
	}
	if detailedAnalysis.Valid {
		item.DetailedAnalysis = &detailedAnalysis.String
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &item.Tags); err != nil {
			return nil, err
		}
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return &item, nil
}
