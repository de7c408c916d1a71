// Package register реализует HTTP-обработчик регистрации нового клиента.
//
// Handler принимает JSON-запрос с данными регистрации, валидирует их,
// вызывает бизнес-логику создания пользователя и возвращает UID созданной
// записи в JSON-формате.
package register

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

// Handler управляет HTTP-запросами на регистрацию пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req models.DummyRegister) (string, error)
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
// @Summary Регистрация нового клиента
// @Description Создает клиента со стартовым балансом и возвращает его UID.
// @Tags Auth
// @Accept  json
// @Produce json
// @Param request body models.DummyRegister true "Данные регистрации"
// @Success 200 {object} response.Response "Пользователь успешно создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или номер телефона"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRegister
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	uid, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Error("failed to register new user", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("could not register user"))
		return
	}

	log.Info("created new user", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_uid": uid,
		"message":  "user created successfully",
	}))
}
