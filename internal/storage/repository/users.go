package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, phone, password_hash, balance,
			      notification_preference, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Phone, user.PasswordHash, user.Balance,
		user.NotificationPreference, user.Role).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, phone, password_hash, balance,
			      notification_preference, role, created_at, updated_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, phone, password_hash, balance,
			      notification_preference, role, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.UID, &u.Email, &u.Phone, &u.PasswordHash, &u.Balance,
		&u.NotificationPreference, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, phone, password_hash, balance,
			      notification_preference, role, created_at, updated_at
			  FROM users
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Email, &u.Phone, &u.PasswordHash, &u.Balance,
			&u.NotificationPreference, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserProfile обновляет телефон и предпочтение уведомлений.
// Пустые аргументы оставляют соответствующее поле без изменений.
func (s *Storage) UpdateUserProfile(ctx context.Context, userUID, phone, preference string) (int64, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET phone = COALESCE(NULLIF($2, ''), phone),
			      notification_preference = COALESCE(NULLIF($3, ''), notification_preference),
			      updated_at = now()
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, phone, preference)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// UpdateUserBalance выполняет условное обновление баланса: новое значение
// записывается только если текущий баланс равен прочитанному ранее
// (compare-and-set). Возвращает количество изменённых строк; ноль означает,
// что конкурентная операция успела изменить баланс первой.
func (s *Storage) UpdateUserBalance(ctx context.Context, userUID string, newBalance, expectedBalance decimal.Decimal) (int64, error) {
	const op = "storage.UpdateUserBalance"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET balance = $2, updated_at = now()
			  WHERE uid = $1 AND balance = $3`
	result, err := s.DB.ExecContext(ctx, query, userUID, newBalance, expectedBalance)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// SetUserBalance перезаписывает баланс без проверки предыдущего значения.
// Используется только административными операциями.
func (s *Storage) SetUserBalance(ctx context.Context, userUID string, newBalance decimal.Decimal) (int64, error) {
	const op = "storage.SetUserBalance"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET balance = $2, updated_at = now()
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, newBalance)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
