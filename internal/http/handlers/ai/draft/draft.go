// Package draft реализует HTTP-обработчик генерации черновика юридического
// документа по краткому содержанию дела.
//
// Функция доступна только тарифам plan_2 и plan_3. Отказ AI-провайдера
// не считается ошибкой запроса: в поле draft возвращается заглушка.
package draft

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/advodraft/legal-feed/internal/http/middlewarectx"
	"github.com/advodraft/legal-feed/internal/http/response"
	"github.com/advodraft/legal-feed/internal/lib/sl"
)

// Тип черновика по умолчанию, если клиент его не указал.
const defaultDraftType = "reply"

// Request — входные данные для генерации черновика.
type Request struct {
	SummaryText string `json:"summary_text" validate:"required"`
	DraftType   string `json:"draft_type"` // reply, petition, application
}

// Handler обрабатывает запросы генерации черновиков.
type Handler struct {
	log      *slog.Logger
	drafter  Drafter
	access   AccessService
	validate *validator.Validate
}

// Drafter описывает интерфейс генерации черновика.
type Drafter interface {
	Draft(ctx context.Context, summaryText, draftType string) string
}

// AccessService проверяет доступность функции черновиков для тарифа.
type AccessService interface {
	AllowDraft(plan string) bool
}

// New создает новый Handler с переданными логгером, генератором и сервисом доступа.
func New(log *slog.Logger, drafter Drafter, access AccessService) *Handler {
	return &Handler{
		log:      log,
		drafter:  drafter,
		access:   access,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сгенерировать черновик документа
// @Description Генерирует черновик (ответ, ходатайство или заявление) по краткому содержанию дела.
// @Tags AI
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Содержание дела и тип черновика"
// @Success 200 {object} map[string]any "Черновик и его тип"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Функция недоступна на тарифе"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /ai/generate-draft [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.draft"
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

	if !h.access.AllowDraft(user.SubscriptionPlan) {
		log.Info("draft feature not available for plan",
			slog.String("user_id", user.ID), slog.String("plan", user.SubscriptionPlan))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("AI Draft Assistant is available for Plan 2 and Plan 3 subscribers only"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if req.DraftType == "" {
		req.DraftType = defaultDraftType
	}

	text := h.drafter.Draft(r.Context(), req.SummaryText, req.DraftType)
	log.Info("draft generated",
		slog.String("user_id", user.ID), slog.String("draft_type", req.DraftType))

	render.JSON(w, r, map[string]any{
		"draft":      text,
		"draft_type": req.DraftType,
	})
}
