// Package list реализует HTTP-обработчик списка фондов каталога.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Handler управляет HTTP-запросами на получение каталога фондов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога фондов.
type Service interface {
	List(ctx context.Context) ([]*models.Fund, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список фондов
// @Description Возвращает все фонды каталога с минимальными суммами подписки.
// @Tags Funds
// @Produce json
// @Success 200 {object} response.Response "Список фондов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /funds [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fund.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	funds, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list funds", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list funds"))
		return
	}

	log.Info("listed funds", slog.Int("count", len(funds)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"funds_count": len(funds),
		"funds":       funds,
	}))
}
