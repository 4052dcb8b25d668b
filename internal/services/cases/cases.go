// Package cases содержит бизнес-логику ленты судебных дел: выдачу с
// редактированием по тарифу, создание, пакетный импорт и запуск
// AI-генерации кратких содержаний.
package cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/advodraft/legal-feed/internal/lib/sl"
	"github.com/advodraft/legal-feed/internal/models"
	"github.com/advodraft/legal-feed/internal/storage/repository"
)

// Размер страницы ленты: возвращаются не более 50 свежих дел.
const recentPageLimit = 50

const (
	recentCacheKey = "cases:recent"
	recentCacheTTL = 5 * time.Minute
)

// Исход дела, который ещё не анализировался AI-оркестратором.
const outcomePendingAnalysis = "Pending Analysis"

// ErrCaseNotFound — дело с таким идентификатором отсутствует.
var ErrCaseNotFound = repository.ErrCaseNotFound

// ErrInvalidDate — дата дела не распознана как ISO-8601.
var ErrInvalidDate = errors.New("invalid case date")

// CaseRepository определяет методы для работы с делами в хранилище.
type CaseRepository interface {
	// CreateCase вставляет новую запись дела.
	CreateCase(ctx context.Context, c models.Case) error
	// ListRecentCases возвращает свежие дела, отсортированные по времени создания.
	ListRecentCases(ctx context.Context, limit int) ([]models.Case, error)
	// GetCase возвращает дело по идентификатору.
	GetCase(ctx context.Context, caseID string) (*models.Case, error)
	// UpdateCaseAIFields записывает AI-поля дела и обновляет updated_at.
	UpdateCaseAIFields(ctx context.Context, caseID string, fields models.AISummaryFields, updatedAt time.Time) error
}

// Cache описывает методы для кэширования страницы ленты.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Summarizer описывает интерфейс AI-оркестратора генерации содержаний.
type Summarizer interface {
	Summarize(ctx context.Context, caseText, caseTitle string) models.AISummaryFields
}

// Redactor применяет политику раскрытия полного текста к одному делу.
type Redactor interface {
	Redact(c models.Case, plan string, rank int) models.Case
}

// Service реализует бизнес-логику ленты дел.
type Service struct {
	repo       CaseRepository
	cache      Cache
	summarizer Summarizer
	redactor   Redactor
	log        *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo CaseRepository, cache Cache, summarizer Summarizer, redactor Redactor, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		cache:      cache,
		summarizer: summarizer,
		redactor:   redactor,
		log:        log,
	}
}

// ListForPlan возвращает страницу свежих дел, отредактированную по тарифу.
//
// В кэше лежит исходная, неотредактированная страница: политика раскрытия
// зависит от плана вызывающего и применяется заново на каждый запрос.
func (s *Service) ListForPlan(ctx context.Context, plan string) ([]models.Case, error) {
	const op = "cases.ListForPlan"

	var page []models.Case
	found, err := s.cache.Get(ctx, recentCacheKey, &page)
	if err != nil {
		s.log.Warn("failed to read cases page from cache", slog.String("op", op), sl.Err(err))
		found = false
	}
	if !found {
		page, err = s.repo.ListRecentCases(ctx, recentPageLimit)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.cache.Set(ctx, recentCacheKey, page, recentCacheTTL); err != nil {
			s.log.Warn("failed to cache cases page", slog.String("op", op), sl.Err(err))
		}
	}

	result := make([]models.Case, 0, len(page))
	for rank, c := range page {
		result = append(result, s.redactor.Redact(c, plan, rank))
	}
	return result, nil
}

// Create сохраняет новое дело и возвращает его в неотредактированном виде.
// Если идентификатор не задан, присваивается свежий uuid.
func (s *Service) Create(ctx context.Context, input models.CaseCreateInput) (*models.Case, error) {
	const op = "cases.Create"

	date, err := parseISODate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrInvalidDate, input.Date)
	}

	now := time.Now().UTC()
	c := models.Case{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Citation:  input.Citation,
		Court:     input.Court,
		Date:      date,
		Section:   input.Section,
		FullText:  input.FullText,
		Tags:      []string{},
		Outcome:   outcomePendingAnalysis,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateCase(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new case", slog.String("case_id", c.ID))

	s.invalidateRecent(ctx, op)
	return &c, nil
}

// BulkImport сохраняет пакет дел из внешней системы с изоляцией ошибок:
// элемент с некорректной датой или ошибкой хранилища логируется
// и пропускается, не прерывая пакет и не откатывая уже вставленные записи.
// Возвращает количество и идентификаторы успешно созданных дел.
func (s *Service) BulkImport(ctx context.Context, items []models.CaseImportInput) (int, []string, error) {
	const op = "cases.BulkImport"

	caseIDs := make([]string, 0, len(items))
	for _, item := range items {
		date, err := parseISODate(item.Date)
		if err != nil {
			s.log.Error("failed to parse case date, item skipped",
				slog.String("op", op), slog.String("title", item.Title), sl.Err(err))
			continue
		}

		now := time.Now().UTC()
		c := models.Case{
			ID:        uuid.NewString(),
			Title:     item.Title,
			Citation:  "", // заполняется администратором позже
			Court:     item.Court,
			Date:      date,
			Section:   item.Section,
			FullText:  item.Text,
			Tags:      []string{},
			Outcome:   outcomePendingAnalysis,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.CreateCase(ctx, c); err != nil {
			s.log.Error("failed to store imported case, item skipped",
				slog.String("op", op), slog.String("title", item.Title), sl.Err(err))
			continue
		}
		caseIDs = append(caseIDs, c.ID)
	}

	if len(caseIDs) > 0 {
		s.invalidateRecent(ctx, op)
	}
	s.log.Info("bulk import finished",
		slog.String("op", op), slog.Int("created", len(caseIDs)), slog.Int("received", len(items)))
	return len(caseIDs), caseIDs, nil
}

// GenerateSummaries запускает AI-оркестратор по тексту дела и сохраняет
// результат, включая деградированные заглушки при отказе провайдера.
// Возвращает ErrCaseNotFound, если дела нет.
func (s *Service) GenerateSummaries(ctx context.Context, caseID string) (*models.AISummaryFields, error) {
	const op = "cases.GenerateSummaries"

	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, repository.ErrCaseNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fields := s.summarizer.Summarize(ctx, c.FullText, c.Title)

	if err := s.repo.UpdateCaseAIFields(ctx, caseID, fields, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrCaseNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("stored AI summaries for case", slog.String("case_id", caseID))

	s.invalidateRecent(ctx, op)
	return &fields, nil
}

func (s *Service) invalidateRecent(ctx context.Context, op string) {
	if err := s.cache.Invalidate(ctx, recentCacheKey); err != nil {
		s.log.Warn("failed to invalidate cases page cache", slog.String("op", op), sl.Err(err))
	}
}

// parseISODate парсит дату дела в формате ISO-8601. Суффикс Z принимается
// как смещение UTC; допускаются значения без смещения и без времени.
func parseISODate(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
