// Package services содержит логику бизнес-уровня для работы
// с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/jwt"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/password"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/phone"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserProfile(ctx context.Context, userUID, phone, preference string) (int64, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users          UserRepository
	jwtMaker       jwt.Maker
	initialBalance decimal.Decimal
}

// NewAuthService создает новый экземпляр AuthService. Параметр
// initialBalance определяет стартовый баланс нового клиента.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, initialBalance decimal.Decimal) *AuthService {
	return &AuthService{
		users:          users,
		jwtMaker:       jwtMaker,
		initialBalance: initialBalance,
	}
}

// Register создает нового клиента со стартовым балансом и нормализованным
// номером телефона. Почта должна быть уникальной.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	if !phone.Validate(req.Phone) {
		return "", models.ErrInvalidPhone
	}

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return "", models.ErrDuplicateUser
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return "", err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:                  req.Email,
		Phone:                  phone.Format(req.Phone),
		PasswordHash:           hashed,
		Balance:                s.initialBalance,
		NotificationPreference: req.NotificationPreference,
		Role:                   models.RoleClient,
	}
	return s.users.CreateUser(ctx, user)
}

// RegisterAdmin создает администратора с нулевым балансом.
// Администраторы управляют каталогом и не подписываются на фонды.
func (s *AuthService) RegisterAdmin(ctx context.Context, req models.DummyRegister) (string, error) {
	if !phone.Validate(req.Phone) {
		return "", models.ErrInvalidPhone
	}

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return "", models.ErrDuplicateUser
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return "", err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:                  req.Email,
		Phone:                  phone.Format(req.Phone),
		PasswordHash:           hashed,
		Balance:                decimal.Zero,
		NotificationPreference: req.NotificationPreference,
		Role:                   models.RoleAdmin,
	}
	return s.users.CreateUser(ctx, user)
}

// SeedAdmin создает администратора при старте сервиса. Повторный запуск
// безопасен: уже существующий администратор пропускается.
func (s *AuthService) SeedAdmin(ctx context.Context, req models.DummyRegister) error {
	if _, err := s.RegisterAdmin(ctx, req); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			return nil
		}
		return err
	}
	return nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.UID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает данные вызывающего.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.Principal, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, false, err
	}
	principal := &models.Principal{
		UserUID: claims.UserUID,
		Email:   claims.Email,
		Role:    claims.Role,
	}
	return principal, true, nil
}

// GetUser возвращает пользователя по UID.
func (s *AuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}

// ListUsers возвращает всех пользователей. Доступна только администратору.
func (s *AuthService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}

// UpdateProfile обновляет телефон и предпочтение уведомлений пользователя.
// Пустые поля остаются без изменений.
func (s *AuthService) UpdateProfile(ctx context.Context, userUID string, req models.DummyUserUpdate) error {
	normalized := ""
	if req.Phone != "" {
		if !phone.Validate(req.Phone) {
			return models.ErrInvalidPhone
		}
		normalized = phone.Format(req.Phone)
	}
	count, err := s.users.UpdateUserProfile(ctx, userUID, normalized, req.NotificationPreference)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
