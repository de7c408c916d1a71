// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков, а также сопоставление
// доменных ошибок со статус-кодами HTTP.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// StatusFromError сопоставляет доменную ошибку со статус-кодом HTTP.
// Неизвестные ошибки считаются внутренними.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrFundNotFound),
		errors.Is(err, models.ErrSubscriptionNotFound),
		errors.Is(err, models.ErrTransactionNotFound),
		errors.Is(err, models.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrFundInactive),
		errors.Is(err, models.ErrBelowMinimumAmount),
		errors.Is(err, models.ErrInsufficientBalance),
		errors.Is(err, models.ErrNegativeBalance),
		errors.Is(err, models.ErrInvalidPhone),
		errors.Is(err, models.ErrDuplicateUser),
		errors.Is(err, models.ErrSubscriptionCancelled):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrBalanceConflict),
		errors.Is(err, models.ErrFundAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
