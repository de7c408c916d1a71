// Package list реализует HTTP-обработчик списка пользователей.
// Операция доступна только администратору.
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

// Handler управляет HTTP-запросами на получение списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения пользователей.
type Service interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// userView профиль пользователя без хэша пароля.
type userView struct {
	UID                    string `json:"uid"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	Role                   string `json:"role"`
	NotificationPreference string `json:"notification_preference"`
	Balance                string `json:"balance"`
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает всех пользователей. Только для администратора.
// @Tags Users
// @Produce json
// @Success 200 {object} response.Response "Список пользователей"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			UID:                    u.UID,
			Email:                  u.Email,
			Phone:                  u.Phone,
			Role:                   u.Role,
			NotificationPreference: u.NotificationPreference,
			Balance:                u.Balance.String(),
		})
	}

	log.Info("listed users", slog.Int("count", len(views)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users_count": len(views),
		"users":       views,
	}))
}
