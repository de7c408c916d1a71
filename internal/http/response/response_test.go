package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"user not found", models.ErrUserNotFound, http.StatusNotFound},
		{"fund not found", models.ErrFundNotFound, http.StatusNotFound},
		{"subscription not found", models.ErrSubscriptionNotFound, http.StatusNotFound},
		{"transaction not found", models.ErrTransactionNotFound, http.StatusNotFound},
		{"notification not found", models.ErrNotificationNotFound, http.StatusNotFound},
		{"fund inactive", models.ErrFundInactive, http.StatusBadRequest},
		{"below minimum amount", models.ErrBelowMinimumAmount, http.StatusBadRequest},
		{"insufficient balance", models.ErrInsufficientBalance, http.StatusBadRequest},
		{"negative balance", models.ErrNegativeBalance, http.StatusBadRequest},
		{"invalid phone", models.ErrInvalidPhone, http.StatusBadRequest},
		{"duplicate user", models.ErrDuplicateUser, http.StatusBadRequest},
		{"subscription cancelled", models.ErrSubscriptionCancelled, http.StatusBadRequest},
		{"balance conflict", models.ErrBalanceConflict, http.StatusConflict},
		{"fund already exists", models.ErrFundAlreadyExists, http.StatusConflict},
		{"unknown error", errors.New("db error"), http.StatusInternalServerError},
		{
			"wrapped domain error keeps its status",
			fmt.Errorf("services.Subscribe: %w", models.ErrInsufficientBalance),
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, response.StatusFromError(tt.err))
		})
	}
}

func TestStatusOKWithData(t *testing.T) {
	resp := response.StatusOKWithData(map[string]string{"key": "value"})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := response.Error("invalid request body")
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "invalid request body", resp.Error)
}
