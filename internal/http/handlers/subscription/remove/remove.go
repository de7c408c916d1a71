// Package remove реализует HTTP-обработчик отмены подписки.
// Сумма подписки возвращается на баланс владельца.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Handler управляет HTTP-запросами на отмену подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс движка подписок.
type Service interface {
	Cancel(ctx context.Context, p models.Principal, subUID string) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить подписку
// @Description Отменяет подписку по UID и возвращает сумму на баланс владельца.
// @Tags Subscriptions
// @Produce json
// @Param uid path string true "UID подписки"
// @Success 200 {object} response.Response "Отмененная подписка"
// @Failure 400 {object} response.ErrorResponse "Подписка уже отменена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 409 {object} response.ErrorResponse "Конфликт обновления баланса"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /subscriptions/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subUID := chi.URLParam(r, "uid")
	if subUID == "" {
		log.Error("missing subscription uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing subscription uid"))
		return
	}

	principal, ok := middlewarectx.Principal(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	sub, err := h.service.Cancel(r.Context(), principal, subUID)
	if err != nil {
		log.Error("failed to cancel subscription", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("cancelled subscription", slog.String("uid", subUID))
	render.JSON(w, r, response.StatusOKWithData(sub))
}
