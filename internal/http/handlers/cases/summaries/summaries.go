// Package summaries реализует HTTP-обработчик запуска AI-генерации
// кратких содержаний для конкретного судебного дела.
//
// Отказ AI-провайдера не считается ошибкой запроса: в этом случае
// сервис сохраняет и возвращает заглушки, а ответ остается успешным.
package summaries

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/advodraft/legal-feed/internal/http/response"
	"github.com/advodraft/legal-feed/internal/lib/sl"
	"github.com/advodraft/legal-feed/internal/models"
	"github.com/advodraft/legal-feed/internal/services/cases"
)

// Handler обрабатывает запросы генерации содержаний дела.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики генерации содержаний.
type Service interface {
	GenerateSummaries(ctx context.Context, caseID string) (*models.AISummaryFields, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сгенерировать AI-содержания дела
// @Description Запускает генерацию трех содержаний, тегов и исхода дела и сохраняет результат.
// @Tags AI
// @Produce  json
// @Security BearerAuth
// @Param case_id path string true "Идентификатор дела"
// @Success 200 {object} map[string]any "Сообщение и сгенерированные поля"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Подписка неактивна"
// @Failure 404 {object} response.ErrorResponse "Дело не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cases/{case_id}/generate-summaries [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cases.summaries"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caseID := chi.URLParam(r, "case_id")
	if caseID == "" {
		log.Error("missing case_id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing case id"))
		return
	}

	fields, err := h.service.GenerateSummaries(r.Context(), caseID)
	if err != nil {
		if errors.Is(err, cases.ErrCaseNotFound) {
			log.Info("case not found", slog.String("case_id", caseID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Case not found"))
			return
		}
		log.Error("failed to generate summaries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate summaries"))
		return
	}
	log.Info("summaries generated", slog.String("case_id", caseID))

	render.JSON(w, r, map[string]any{
		"message":   "Summaries generated successfully",
		"summaries": fields,
	})
}
