// Package create реализует HTTP-обработчик подписки на фонд.
//
// Handler принимает JSON-запрос с фондом и суммой, валидирует их, извлекает
// вызывающего из контекста, вызывает движок подписок и возвращает созданную
// подписку в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Handler управляет HTTP-запросами на создание подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс движка подписок.
type Service interface {
	Subscribe(ctx context.Context, userUID string, req models.DummySubscription) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подписаться на фонд
// @Description Создает подписку текущего пользователя на фонд, списывая сумму с баланса.
// @Tags Subscriptions
// @Accept  json
// @Produce json
// @Param request body models.DummySubscription true "Фонд и сумма подписки"
// @Success 200 {object} response.Response "Созданная подписка"
// @Failure 400 {object} response.ErrorResponse "Недостаточно средств, фонд неактивен или сумма ниже минимальной"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Фонд не найден"
// @Failure 409 {object} response.ErrorResponse "Конфликт обновления баланса"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	principal, ok := middlewarectx.Principal(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	sub, err := h.service.Subscribe(r.Context(), principal.UserUID, req)
	if err != nil {
		log.Error("failed to create subscription", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("created subscription", slog.String("uid", sub.UID))
	render.JSON(w, r, response.StatusOKWithData(sub))
}
