// Package read реализует HTTP-обработчик чтения подписки по UID.
// Клиент может читать только собственные подписки.
package read

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

// Handler управляет HTTP-запросами на чтение подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс движка подписок.
type Service interface {
	Read(ctx context.Context, p models.Principal, subUID string) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить подписку
// @Description Возвращает подписку по UID в области видимости вызывающего.
// @Tags Subscriptions
// @Produce json
// @Param uid path string true "UID подписки"
// @Success 200 {object} response.Response "Данные подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /subscriptions/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"
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

	sub, err := h.service.Read(r.Context(), principal, subUID)
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}

	log.Info("read subscription", slog.String("uid", subUID))
	render.JSON(w, r, response.StatusOKWithData(sub))
}
