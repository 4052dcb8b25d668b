// Package bulkimport реализует HTTP-обработчик приема пакета судебных дел
// от внешних систем-поставщиков.
//
// Обработчик не требует авторизации: эндпоинт предназначен для машинного
// канала поставки. Элементы пакета обрабатываются независимо, битый
// элемент не прерывает импорт остальных.
package bulkimport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/advodraft/legal-feed/internal/http/response"
	"github.com/advodraft/legal-feed/internal/lib/sl"
	"github.com/advodraft/legal-feed/internal/models"
)

// Handler обрабатывает запросы пакетного импорта дел.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики пакетного импорта.
type Service interface {
	BulkImport(ctx context.Context, items []models.CaseImportInput) (int, []string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Пакетный импорт судебных дел
// @Description Принимает массив дел от внешней системы. Элементы с ошибками пропускаются, остальные сохраняются.
// @Tags Cases
// @Accept  json
// @Produce  json
// @Param request body []models.CaseImportInput true "Пакет дел"
// @Success 200 {object} map[string]any "Количество и идентификаторы созданных дел"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при импорте"
// @Router /receive_cases [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cases.bulkimport"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var items []models.CaseImportInput
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	created, caseIDs, err := h.service.BulkImport(r.Context(), items)
	if err != nil {
		log.Error("bulk import failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not import cases"))
		return
	}
	log.Info("bulk import handled",
		slog.Int("received", len(items)), slog.Int("created", created))

	render.JSON(w, r, map[string]any{
		"created_cases": created,
		"case_ids":      caseIDs,
	})
}
