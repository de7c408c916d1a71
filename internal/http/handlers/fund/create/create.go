// Package create реализует HTTP-обработчик добавления фонда в каталог.
// Операция доступна только администратору.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Handler управляет HTTP-запросами на создание фондов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики каталога фондов.
type Service interface {
	Create(ctx context.Context, req models.DummyFund) (string, error)
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
// @Summary Создать фонд
// @Description Добавляет новый фонд в каталог. Только для администратора.
// @Tags Funds
// @Accept  json
// @Produce json
// @Param request body models.DummyFund true "Данные фонда"
// @Success 200 {object} response.Response "Фонд создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /funds [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.fund.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyFund
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

	uid, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create fund", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not create fund"))
		return
	}

	log.Info("created fund", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"fund_uid": uid,
	}))
}
