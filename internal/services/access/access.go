// Package access реализует политику доступа по тарифным планам:
// проверку активности подписки, раскрытие текста дел и гейт
// для AI-ассистента черновиков.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/advodraft/legal-feed/internal/models"
)

// UserStatusRepository описывает методы хранилища, нужные политике доступа.
type UserStatusRepository interface {
	// SetSubscriptionActive выставляет признак активной подписки пользователя.
	SetSubscriptionActive(ctx context.Context, userID string, active bool) error
}

// Service реализует политику доступа.
type Service struct {
	users UserStatusRepository
	log   *slog.Logger
	now   func() time.Time
}

// New создает новый Service с переданными хранилищем и логгером.
func New(users UserStatusRepository, log *slog.Logger) *Service {
	return &Service{
		users: users,
		log:   log,
		now:   time.Now,
	}
}

// IsActive возвращает, доступен ли сервис пользователю.
//
// Это чтение с документированным побочным эффектом: первый же вызов,
// заставший истёкший пробный период, гасит subscription_active в хранилище
// (ленивая write-through инвалидация). Другого места, где вычисляется
// статус подписки, в системе нет.
func (s *Service) IsActive(ctx context.Context, user *models.User) (bool, error) {
	const op = "access.IsActive"

	if user.SubscriptionPlan == models.PlanFreeTrial && s.now().UTC().After(user.TrialEndDate) {
		if err := s.users.SetSubscriptionActive(ctx, user.ID, false); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		user.SubscriptionActive = false
		s.log.Info("free trial expired, subscription deactivated",
			slog.String("op", op), slog.String("user_id", user.ID))
		return false, nil
	}

	return user.SubscriptionActive, nil
}

// Redact применяет политику раскрытия полного текста дела
// в зависимости от плана пользователя и позиции дела на странице выдачи.
//
// free_trial и plan_1 полного текста не видят вовсе; plan_2 видит текст
// только у двух первых дел страницы (rank 0 и 1); plan_3 — без ограничений.
// Политика нарочно не читает счётчик Plan2CasesUsed: раскрытие считается
// заново для каждой страницы. Неизвестный план приравнивается к самому
// ограниченному: текст скрывается.
func (s *Service) Redact(c models.Case, plan string, rank int) models.Case {
	switch plan {
	case models.PlanFreeTrial, models.PlanOne:
		c.FullText = ""
	case models.PlanTwo:
		if rank >= 2 {
			c.FullText = ""
		}
	case models.PlanThree:
		// полный доступ
	default:
		c.FullText = ""
	}
	return c
}

// AllowDraft возвращает true, если план даёт доступ к AI-ассистенту черновиков.
func (s *Service) AllowDraft(plan string) bool {
	return plan == models.PlanTwo || plan == models.PlanThree
}
