// Package create реализует HTTP-обработчик создания судебного дела
// авторизованным пользователем. Созданное дело возвращается целиком,
// без редактирования по тарифу.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/advodraft/legal-feed/internal/http/response"
	"github.com/advodraft/legal-feed/internal/lib/sl"
	"github.com/advodraft/legal-feed/internal/models"
	"github.com/advodraft/legal-feed/internal/services/cases"
)

// Handler обрабатывает запросы на создание дела.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания дела.
type Service interface {
	Create(ctx context.Context, input models.CaseCreateInput) (*models.Case, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать судебное дело
// @Description Сохраняет новое дело. Дата принимается строкой в формате ISO-8601.
// @Tags Cases
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CaseCreateInput true "Данные нового дела"
// @Success 200 {object} models.Case "Созданное дело"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании дела"
// @Router /cases [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cases.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CaseCreateInput
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

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, cases.ErrInvalidDate) {
			log.Error("invalid case date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date format"))
			return
		}
		log.Error("failed to create case", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create case"))
		return
	}
	log.Info("case created", slog.String("case_id", c.ID))

	render.JSON(w, r, c)
}
