// Package read реализует HTTP-обработчик чтения профиля пользователя.
// Клиент может читать только собственный профиль, администратор любой.
// Вместо UID допустим псевдоним "me".
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
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/currency"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	"github.com/magabrotheeeer/fund-subscriptions/internal/services/access"
)

// Handler управляет HTTP-запросами на чтение профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения пользователя.
type Service interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает профиль и баланс. Клиент видит только свой профиль.
// @Tags Users
// @Produce json
// @Param uid path string true "UID пользователя или me"
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /users/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"
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

	userUID := chi.URLParam(r, "uid")
	if userUID == "" || userUID == "me" {
		userUID = principal.UserUID
	}
	if !access.CanView(principal, userUID) {
		log.Error("access to foreign profile denied",
			slog.String("user_uid", principal.UserUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}

	user, err := h.service.GetUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not read user"))
		return
	}

	log.Info("read user", slog.String("uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":                     user.UID,
		"email":                   user.Email,
		"phone":                   user.Phone,
		"role":                    user.Role,
		"notification_preference": user.NotificationPreference,
		"balance":                 user.Balance,
		"balance_formatted":       currency.FormatCOP(user.Balance),
		"created_at":              user.CreatedAt,
	}))
}
