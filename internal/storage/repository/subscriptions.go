package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// CreateSubscription сохраняет новую подписку и возвращает её UID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO subscriptions (uid, user_uid, fund_uid, amount, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		sub.UID, sub.UserUID, sub.FundUID, sub.Amount, sub.Status).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetSubscription возвращает подписку по её UID.
func (s *Storage) GetSubscription(ctx context.Context, subUID string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sub := &models.Subscription{}
	query := `SELECT uid, user_uid, fund_uid, amount, status, created_at, cancelled_at
			  FROM subscriptions
			  WHERE uid = $1`
	err := s.DB.QueryRowContext(ctx, query, subUID).Scan(
		&sub.UID, &sub.UserUID, &sub.FundUID, &sub.Amount,
		&sub.Status, &sub.CreatedAt, &sub.CancelledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает подписки пользователя, при activeOnly
// только активные. Сортировка от новых к старым.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string, activeOnly bool) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, fund_uid, amount, status, created_at, cancelled_at
			  FROM subscriptions
			  WHERE user_uid = $1 AND ($2 = FALSE OR status = 'active')
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanSubscriptions(rows, op)
}

// ListAllSubscriptions возвращает подписки всех пользователей.
// Доступна только администратору.
func (s *Storage) ListAllSubscriptions(ctx context.Context, activeOnly bool) ([]*models.Subscription, error) {
	const op = "storage.ListAllSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, fund_uid, amount, status, created_at, cancelled_at
			  FROM subscriptions
			  WHERE $1 = FALSE OR status = 'active'
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanSubscriptions(rows, op)
}

func scanSubscriptions(rows *sql.Rows, op string) ([]*models.Subscription, error) {
	var result []*models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.UID, &sub.UserUID, &sub.FundUID, &sub.Amount,
			&sub.Status, &sub.CreatedAt, &sub.CancelledAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CancelSubscription переводит подписку в статус cancelled. Условие
// status = 'active' гарантирует, что повторная отмена не изменит ни одной
// строки, поэтому возврат средств выполняется не более одного раза.
func (s *Storage) CancelSubscription(ctx context.Context, subUID string, at time.Time) (int64, error) {
	const op = "storage.CancelSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = 'cancelled', cancelled_at = $2
			  WHERE uid = $1 AND status = 'active'`
	result, err := s.DB.ExecContext(ctx, query, subUID, at)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ReactivateSubscription возвращает подписку в статус active. Используется
// только как компенсация, если после отмены не удалось вернуть средства.
func (s *Storage) ReactivateSubscription(ctx context.Context, subUID string) (int64, error) {
	const op = "storage.ReactivateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = 'active', cancelled_at = NULL
			  WHERE uid = $1 AND status = 'cancelled'`
	result, err := s.DB.ExecContext(ctx, query, subUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
