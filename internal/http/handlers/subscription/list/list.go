// Package list реализует HTTP-обработчик списка подписок.
// Администратор видит подписки всех пользователей, клиент только свои.
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

// Handler управляет HTTP-запросами на получение списка подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс движка подписок.
type Service interface {
	List(ctx context.Context, p models.Principal, requestedUID string, activeOnly bool) ([]*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список подписок
// @Description Возвращает подписки в области видимости вызывающего от новых к старым.
// @Tags Subscriptions
// @Produce json
// @Param user_uid query string false "UID пользователя (учитывается только для администратора)"
// @Param active_only query string false "Только активные подписки (true/false)"
// @Success 200 {object} response.Response "Список подписок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
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

	requestedUID := r.URL.Query().Get("user_uid")
	activeOnly := r.URL.Query().Get("active_only") == "true"

	subs, err := h.service.List(r.Context(), principal, requestedUID, activeOnly)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}

	log.Info("listed subscriptions", slog.Int("count", len(subs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscriptions_count": len(subs),
		"subscriptions":       subs,
	}))
}
