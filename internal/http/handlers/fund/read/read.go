// Package read реализует HTTP-обработчик чтения фонда по UID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Handler управляет HTTP-запросами на чтение фонда.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога фондов.
type Service interface {
	Read(ctx context.Context, fundUID string) (*models.Fund, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить фонд
// @Description Возвращает фонд каталога по его UID.
// @Tags Funds
// @Produce json
// @Param uid path string true "UID фонда"
// @Success 200 {object} response.Response "Данные фонда"
// @Failure 404 {object} response.ErrorResponse "Фонд не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /funds/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fund.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	fundUID := chi.URLParam(r, "uid")
	if fundUID == "" {
		log.Error("missing fund uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing fund uid"))
		return
	}

	fund, err := h.service.Read(r.Context(), fundUID)
	if err != nil {
		log.Error("failed to read fund", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not read fund"))
		return
	}

	log.Info("read fund", slog.String("uid", fundUID))
	render.JSON(w, r, response.StatusOKWithData(fund))
}
