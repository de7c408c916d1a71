// Package balance реализует HTTP-обработчик административной перезаписи
// баланса пользователя.
package balance

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
)

// Request тело запроса перезаписи баланса.
type Request struct {
	Balance float64 `json:"balance" validate:"gte=0"`
}

// Handler управляет HTTP-запросами на перезапись баланса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс управления балансом.
type Service interface {
	Set(ctx context.Context, userUID string, newBalance decimal.Decimal) error
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
// @Summary Перезаписать баланс
// @Description Устанавливает баланс пользователя. Только для администратора.
// @Tags Users
// @Accept  json
// @Produce json
// @Param uid path string true "UID пользователя"
// @Param request body Request true "Новый баланс"
// @Success 200 {object} response.Response "Баланс обновлен"
// @Failure 400 {object} response.ErrorResponse "Отрицательный баланс или некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /users/{uid}/balance [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.balance"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "uid")
	if userUID == "" {
		log.Error("missing user uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing user uid"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Set(r.Context(), userUID, decimal.NewFromFloat(req.Balance)); err != nil {
		log.Error("failed to set balance", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not set balance"))
		return
	}

	log.Info("balance overwritten", slog.String("uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "balance updated successfully",
	}))
}
