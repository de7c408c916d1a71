package create_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/fund-subscriptions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Мок для Service
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Subscribe(ctx context.Context, userUID string, req models.DummySubscription) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newRequest(body string, principal *models.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions",
		bytes.NewBufferString(body))
	if principal != nil {
		ctx := context.WithValue(req.Context(), middlewarectx.PrincipalKey, *principal)
		req = req.WithContext(ctx)
	}
	return req
}

func TestCreateHandler(t *testing.T) {
	client := &models.Principal{UserUID: "user-1", Role: models.RoleClient}
	validBody := `{"fund_id": "DEUDAPRIVADA", "amount": 100000}`
	sub := &models.Subscription{
		UID:     "sub_abc",
		UserUID: "user-1",
		FundUID: "DEUDAPRIVADA",
		Amount:  decimal.NewFromInt(100000),
		Status:  models.SubscriptionActive,
	}

	tests := []struct {
		name       string
		body       string
		principal  *models.Principal
		setupMocks func(svc *ServiceMock)
		wantStatus int
	}{
		{
			name:      "successful subscription",
			body:      validBody,
			principal: client,
			setupMocks: func(svc *ServiceMock) {
				svc.On("Subscribe", mock.Anything, "user-1",
					models.DummySubscription{FundUID: "DEUDAPRIVADA", Amount: 100000}).
					Return(sub, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid json",
			body:       `{"fund_uid":`,
			principal:  client,
			setupMocks: func(svc *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation failure on non-positive amount",
			body:       `{"fund_id": "DEUDAPRIVADA", "amount": 0}`,
			principal:  client,
			setupMocks: func(svc *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing principal",
			body:       validBody,
			principal:  nil,
			setupMocks: func(svc *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:      "insufficient balance",
			body:      validBody,
			principal: client,
			setupMocks: func(svc *ServiceMock) {
				svc.On("Subscribe", mock.Anything, "user-1", mock.Anything).
					Return(nil, models.ErrInsufficientBalance).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:      "unknown fund",
			body:      `{"fund_id": "UNKNOWN", "amount": 100000}`,
			principal: client,
			setupMocks: func(svc *ServiceMock) {
				svc.On("Subscribe", mock.Anything, "user-1", mock.Anything).
					Return(nil, models.ErrFundNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:      "balance conflict",
			body:      validBody,
			principal: client,
			setupMocks: func(svc *ServiceMock) {
				svc.On("Subscribe", mock.Anything, "user-1", mock.Anything).
					Return(nil, models.ErrBalanceConflict).Once()
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMocks(svc)
			log := slog.New(slog.NewTextHandler(io.Discard, nil))
			handler := create.New(log, svc)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, newRequest(tt.body, tt.principal))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Status string `json:"status"`
					Data   struct {
						UID     string `json:"uid"`
						UserUID string `json:"user_uid"`
						FundUID string `json:"fund_uid"`
						Status  string `json:"status"`
					} `json:"data"`
				}
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, "sub_abc", resp.Data.UID)
				assert.Equal(t, "DEUDAPRIVADA", resp.Data.FundUID)
				assert.Equal(t, models.SubscriptionActive, resp.Data.Status)
			}
			svc.AssertExpectations(t)
		})
	}
}
