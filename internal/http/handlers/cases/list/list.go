// Package list реализует HTTP-обработчик ленты судебных дел.
//
// Handler берет текущего пользователя из контекста и возвращает страницу
// свежих дел, отредактированную по его тарифному плану. Доступ по статусу
// подписки отсекается выше, в SubscriptionGateMiddleware.
package list

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

// Handler обрабатывает запросы ленты дел.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выдачи ленты.
type Service interface {
	ListForPlan(ctx context.Context, plan string) ([]models.Case, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лента судебных дел
// @Description Возвращает до 50 свежих дел. Полный текст раскрывается по тарифному плану пользователя.
// @Tags Cases
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.Case "Страница дел"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Подписка неактивна"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cases [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cases.list"
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

	result, err := h.service.ListForPlan(r.Context(), user.SubscriptionPlan)
	if err != nil {
		log.Error("failed to list cases", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list cases"))
		return
	}
	log.Info("cases listed",
		slog.Int("count", len(result)), slog.String("plan", user.SubscriptionPlan))

	render.JSON(w, r, result)
}
