// Package read реализует HTTP-обработчик чтения уведомления по UID.
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

// Handler управляет HTTP-запросами на чтение уведомления.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сервиса уведомлений.
type Service interface {
	Read(ctx context.Context, p models.Principal, ntfUID string) (*models.Notification, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить уведомление
// @Description Возвращает уведомление по UID в области видимости вызывающего.
// @Tags Notifications
// @Produce json
// @Param uid path string true "UID уведомления"
// @Success 200 {object} response.Response "Данные уведомления"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Уведомление не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /notifications/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ntfUID := chi.URLParam(r, "uid")
	if ntfUID == "" {
		log.Error("missing notification uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing notification uid"))
		return
	}

	principal, ok := middlewarectx.Principal(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	ntf, err := h.service.Read(r.Context(), principal, ntfUID)
	if err != nil {
		log.Error("failed to read notification", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not read notification"))
		return
	}

	log.Info("read notification", slog.String("uid", ntfUID))
	render.JSON(w, r, response.StatusOKWithData(ntf))
}
