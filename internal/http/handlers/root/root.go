// Package root реализует корневой HTTP-обработчик с информацией об API.
package root

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Версия публичного API, отдаваемая в корневом ответе.
const apiVersion = "1.0.0"

// Handler обрабатывает запросы к корню API.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Информация об API
// @Tags Service
// @Produce  json
// @Success 200 {object} map[string]any "Имя сервиса и версия API"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"message": "AdvoDraft Legal Feed API",
		"version": apiVersion,
	})
}
