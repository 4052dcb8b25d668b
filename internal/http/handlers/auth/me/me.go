// Package me реализует HTTP-обработчик профиля текущего пользователя.
//
// Пользователь берется из контекста запроса (кладется JWTMiddleware),
// статус подписки пересчитывается на каждый запрос: у истекшего пробного
// периода подписка гасится и уже неактивной возвращается в ответе.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/advodraft/legal-feed/internal/http/middlewarectx"
	"github.com/advodraft/legal-feed/internal/http/response"
	"github.com/advodraft/legal-feed/internal/lib/sl"
	"github.com/advodraft/legal-feed/internal/models"
)

// Handler обрабатывает запросы профиля текущего пользователя.
type Handler struct {
	log    *slog.Logger
	access AccessService
}

// AccessService описывает интерфейс проверки статуса подписки.
type AccessService interface {
	IsActive(ctx context.Context, user *models.User) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом доступа.
func New(log *slog.Logger, access AccessService) *Handler {
	return &Handler{
		log:    log,
		access: access,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль пользователя с актуальным статусом подписки.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	active, err := h.access.IsActive(r.Context(), user)
	if err != nil {
		log.Error("failed to check subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, map[string]any{
		"id":                  user.ID,
		"email":               user.Email,
		"full_name":           user.FullName,
		"subscription_plan":   user.SubscriptionPlan,
		"trial_end_date":      user.TrialEndDate,
		"subscription_active": active,
		"plan_2_cases_used":   user.Plan2CasesUsed,
	})
}
