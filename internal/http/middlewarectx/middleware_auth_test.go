package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// Мок для Service
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*models.Principal, bool, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Principal), args.Bool(1), args.Error(2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware(t *testing.T) {
	client := &models.Principal{UserUID: "user-1", Email: "client@example.com", Role: models.RoleClient}

	tests := []struct {
		name          string
		authHeader    string
		setupMocks    func(svc *AuthServiceMock)
		wantStatus    int
		wantPrincipal bool
	}{
		{
			name:       "valid token reaches the handler",
			authHeader: "Bearer good-token",
			setupMocks: func(svc *AuthServiceMock) {
				svc.On("ValidateToken", mock.Anything, "good-token").
					Return(client, true, nil).Once()
			},
			wantStatus:    http.StatusOK,
			wantPrincipal: true,
		},
		{
			name:       "missing header",
			authHeader: "",
			setupMocks: func(svc *AuthServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "header without bearer prefix",
			authHeader: "Token abc",
			setupMocks: func(svc *AuthServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMocks: func(svc *AuthServiceMock) {
				svc.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, false, errors.New("token is expired")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			tt.setupMocks(svc)

			var gotPrincipal bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				p, ok := middlewarectx.Principal(r.Context())
				gotPrincipal = ok && p.UserUID == client.UserUID
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/funds", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(svc, discardLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantPrincipal, gotPrincipal)
			svc.AssertExpectations(t)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withPrincipal := func(req *http.Request, p models.Principal) *http.Request {
		ctx := context.WithValue(req.Context(), middlewarectx.PrincipalKey, p)
		return req.WithContext(ctx)
	}

	t.Run("admin passes through", func(t *testing.T) {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/v1/users", nil),
			models.Principal{UserUID: "admin-1", Role: models.RoleAdmin})
		rr := httptest.NewRecorder()

		middlewarectx.RequireAdmin(discardLogger())(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/v1/users", nil),
			models.Principal{UserUID: "user-1", Role: models.RoleClient})
		rr := httptest.NewRecorder()

		middlewarectx.RequireAdmin(discardLogger())(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing principal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		rr := httptest.NewRecorder()

		middlewarectx.RequireAdmin(discardLogger())(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
