// Package list реализует HTTP-обработчик списка уведомлений.
// Администратор видит уведомления всех пользователей, клиент только свои.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Handler управляет HTTP-запросами на получение списка уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сервиса уведомлений.
type Service interface {
	List(ctx context.Context, p models.Principal, requestedUID string) ([]*models.Notification, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список уведомлений
// @Description Возвращает уведомления в области видимости вызывающего от новых к старым.
// @Tags Notifications
// @Produce json
// @Param user_uid query string false "UID пользователя (учитывается только для администратора)"
// @Success 200 {object} response.Response "Список уведомлений"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal, ok := middlewarectx.Principal(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	ntfs, err := h.service.List(r.Context(), principal, r.URL.Query().Get("user_uid"))
	if err != nil {
		log.Error("failed to list notifications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list notifications"))
		return
	}

	log.Info("listed notifications", slog.Int("count", len(ntfs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"notifications_count": len(ntfs),
		"notifications":       ntfs,
	}))
}
