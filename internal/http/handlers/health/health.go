// Package health реализует HTTP-обработчик проверки готовности сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
)

// Checker описывает проверку готовности зависимости сервиса.
type Checker func() error

// Handler управляет HTTP-запросами проверки готовности.
type Handler struct {
	log     *slog.Logger
	checker Checker
}

// New создает новый Handler с переданными логгером и проверкой.
func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response "Сервис готов"
// @Failure 503 {object} response.ErrorResponse "Сервис не готов"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	if h.checker != nil {
		if err := h.checker(); err != nil {
			h.log.Error("health check failed", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("not ready"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
