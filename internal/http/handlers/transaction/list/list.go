// Package list реализует HTTP-обработчик истории транзакций.
// Администратор видит журнал всех пользователей, клиент только свой.
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

// Handler управляет HTTP-запросами на получение истории транзакций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс журнала транзакций.
type Service interface {
	List(ctx context.Context, p models.Principal, requestedUID string) ([]*models.Transaction, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История транзакций
// @Description Возвращает записи журнала в области видимости вызывающего от новых к старым.
// @Tags Transactions
// @Produce json
// @Param user_uid query string false "UID пользователя (учитывается только для администратора)"
// @Success 200 {object} response.Response "Список транзакций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.list"
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

	txns, err := h.service.List(r.Context(), principal, r.URL.Query().Get("user_uid"))
	if err != nil {
		log.Error("failed to list transactions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list transactions"))
		return
	}

	log.Info("listed transactions", slog.Int("count", len(txns)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transactions_count": len(txns),
		"transactions":       txns,
	}))
}
