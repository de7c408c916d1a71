// Package read реализует HTTP-обработчик чтения записи журнала транзакций.
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

// Handler управляет HTTP-запросами на чтение записи журнала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс журнала транзакций.
type Service interface {
	Read(ctx context.Context, p models.Principal, txnUID string) (*models.Transaction, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить транзакцию
// @Description Возвращает запись журнала по UID в области видимости вызывающего.
// @Tags Transactions
// @Produce json
// @Param uid path string true "UID транзакции"
// @Success 200 {object} response.Response "Данные транзакции"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Транзакция не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /transactions/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	txnUID := chi.URLParam(r, "uid")
	if txnUID == "" {
		log.Error("missing transaction uid")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing transaction uid"))
		return
	}

	principal, ok := middlewarectx.Principal(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	txn, err := h.service.Read(r.Context(), principal, txnUID)
	if err != nil {
		log.Error("failed to read transaction", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not read transaction"))
		return
	}

	log.Info("read transaction", slog.String("uid", txnUID))
	render.JSON(w, r, response.StatusOKWithData(txn))
}
