package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/jwt"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/password"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	services "github.com/magabrotheeeer/fund-subscriptions/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUserProfile(ctx context.Context, userUID, phone, preference string) (int64, error) {
	args := m.Called(ctx, userUID, phone, preference)
	return args.Get(0).(int64), args.Error(1)
}

func newAuthService(repo *UserRepoMock) *services.AuthService {
	maker := jwt.NewJWTMaker("test-secret", time.Minute)
	return services.NewAuthService(repo, maker, decimal.NewFromInt(500000))
}

func TestAuthService_Register(t *testing.T) {
	validReq := models.DummyRegister{
		Email:                  "client@example.com",
		Phone:                  "3001234567",
		Password:               "secret123",
		NotificationPreference: models.ChannelEmail,
	}

	tests := []struct {
		name       string
		req        models.DummyRegister
		setupMocks func(repo *UserRepoMock)
		wantErr    error
	}{
		{
			name: "successful registration",
			req:  validReq,
			setupMocks: func(repo *UserRepoMock) {
				repo.On("GetUserByEmail", mock.Anything, validReq.Email).
					Return(nil, models.ErrUserNotFound).Once()
				repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == validReq.Email &&
						u.Phone == "+573001234567" &&
						u.Role == models.RoleClient &&
						u.Balance.Equal(decimal.NewFromInt(500000)) &&
						u.PasswordHash != validReq.Password
				})).Return("user-1", nil).Once()
			},
		},
		{
			name: "invalid phone",
			req: models.DummyRegister{
				Email:                  "client@example.com",
				Phone:                  "12345",
				Password:               "secret123",
				NotificationPreference: models.ChannelEmail,
			},
			setupMocks: func(repo *UserRepoMock) {},
			wantErr:    models.ErrInvalidPhone,
		},
		{
			name: "duplicate email",
			req:  validReq,
			setupMocks: func(repo *UserRepoMock) {
				repo.On("GetUserByEmail", mock.Anything, validReq.Email).
					Return(&models.User{UID: "user-1"}, nil).Once()
			},
			wantErr: models.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)

			uid, err := newAuthService(repo).Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "user-1", uid)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUserByEmail", mock.Anything, "admin@example.com").
		Return(nil, models.ErrUserNotFound).Once()
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Role == models.RoleAdmin && u.Balance.IsZero()
	})).Return("admin-1", nil).Once()

	uid, err := newAuthService(repo).RegisterAdmin(context.Background(), models.DummyRegister{
		Email:                  "admin@example.com",
		Phone:                  "+573009876543",
		Password:               "secret123",
		NotificationPreference: models.ChannelEmail,
	})
	assert.NoError(t, err)
	assert.Equal(t, "admin-1", uid)
	repo.AssertExpectations(t)
}

func TestAuthService_SeedAdmin(t *testing.T) {
	req := models.DummyRegister{
		Email:                  "admin@example.com",
		Phone:                  "+573009876543",
		Password:               "secret123",
		NotificationPreference: models.ChannelEmail,
	}

	t.Run("creates admin on first start", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, req.Email).
			Return(nil, models.ErrUserNotFound).Once()
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Role == models.RoleAdmin
		})).Return("admin-1", nil).Once()

		err := newAuthService(repo).SeedAdmin(context.Background(), req)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("restart with existing admin is a no-op", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, req.Email).
			Return(&models.User{UID: "admin-1", Role: models.RoleAdmin}, nil).Once()

		err := newAuthService(repo).SeedAdmin(context.Background(), req)
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, req.Email).
			Return(nil, errors.New("db error")).Once()

		err := newAuthService(repo).SeedAdmin(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	hash, err := password.GetHash("secret123")
	assert.NoError(t, err)

	user := &models.User{
		UID:          "user-1",
		Email:        "client@example.com",
		PasswordHash: hash,
		Role:         models.RoleClient,
	}

	t.Run("successful login produces a valid token", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil).Once()
		svc := newAuthService(repo)

		token, role, err := svc.Login(context.Background(), user.Email, "secret123")
		assert.NoError(t, err)
		assert.Equal(t, models.RoleClient, role)
		assert.NotEmpty(t, token)

		principal, ok, err := svc.ValidateToken(context.Background(), token)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "user-1", principal.UserUID)
		assert.Equal(t, models.RoleClient, principal.Role)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil).Once()

		_, _, err := newAuthService(repo).Login(context.Background(), user.Email, "wrong")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
		repo.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "missing@example.com").
			Return(nil, models.ErrUserNotFound).Once()

		_, _, err := newAuthService(repo).Login(context.Background(), "missing@example.com", "secret123")
		assert.ErrorIs(t, err, models.ErrUserNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("garbage token", func(t *testing.T) {
		repo := new(UserRepoMock)

		principal, ok, err := newAuthService(repo).ValidateToken(context.Background(), "not-a-token")
		assert.Error(t, err)
		assert.False(t, ok)
		assert.Nil(t, principal)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("normalizes phone before saving", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("UpdateUserProfile", mock.Anything, "user-1", "+573001234567", models.ChannelSMS).
			Return(int64(1), nil).Once()

		err := newAuthService(repo).UpdateProfile(context.Background(), "user-1", models.DummyUserUpdate{
			Phone:                  "3001234567",
			NotificationPreference: models.ChannelSMS,
		})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("invalid phone", func(t *testing.T) {
		repo := new(UserRepoMock)

		err := newAuthService(repo).UpdateProfile(context.Background(), "user-1", models.DummyUserUpdate{
			Phone: "12",
		})
		assert.ErrorIs(t, err, models.ErrInvalidPhone)
		repo.AssertNotCalled(t, "UpdateUserProfile")
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("UpdateUserProfile", mock.Anything, "missing", "", models.ChannelEmail).
			Return(int64(0), nil).Once()

		err := newAuthService(repo).UpdateProfile(context.Background(), "missing", models.DummyUserUpdate{
			NotificationPreference: models.ChannelEmail,
		})
		assert.ErrorIs(t, err, models.ErrUserNotFound)
		repo.AssertExpectations(t)
	})
}
