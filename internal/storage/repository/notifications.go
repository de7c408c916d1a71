package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// CreateNotification сохраняет новое уведомление в статусе pending.
func (s *Storage) CreateNotification(ctx context.Context, ntf models.Notification) (string, error) {
	const op = "storage.CreateNotification"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO notifications (uid, user_uid, type, channel, content, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		ntf.UID, ntf.UserUID, ntf.Type, ntf.Channel, ntf.Content,
		ntf.Status).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetNotification возвращает уведомление по его UID.
func (s *Storage) GetNotification(ctx context.Context, ntfUID string) (*models.Notification, error) {
	const op = "storage.GetNotification"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	ntf := &models.Notification{}
	query := `SELECT uid, user_uid, type, channel, content, status, created_at, sent_at
			  FROM notifications
			  WHERE uid = $1`
	err := s.DB.QueryRowContext(ctx, query, ntfUID).Scan(
		&ntf.UID, &ntf.UserUID, &ntf.Type, &ntf.Channel, &ntf.Content,
		&ntf.Status, &ntf.CreatedAt, &ntf.SentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotificationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ntf, nil
}

// ListNotifications возвращает уведомления пользователя от новых к старым.
func (s *Storage) ListNotifications(ctx context.Context, userUID string) ([]*models.Notification, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, type, channel, content, status, created_at, sent_at
			  FROM notifications
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanNotifications(rows, op)
}

// ListAllNotifications возвращает уведомления всех пользователей
// от новых к старым. Доступна только администратору.
func (s *Storage) ListAllNotifications(ctx context.Context) ([]*models.Notification, error) {
	const op = "storage.ListAllNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, type, channel, content, status, created_at, sent_at
			  FROM notifications
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanNotifications(rows, op)
}

func scanNotifications(rows *sql.Rows, op string) ([]*models.Notification, error) {
	var result []*models.Notification
	for rows.Next() {
		var ntf models.Notification
		if err := rows.Scan(&ntf.UID, &ntf.UserUID, &ntf.Type, &ntf.Channel, &ntf.Content,
			&ntf.Status, &ntf.CreatedAt, &ntf.SentAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ntf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkNotificationSent переводит уведомление в статус sent.
func (s *Storage) MarkNotificationSent(ctx context.Context, ntfUID string, at time.Time) (int64, error) {
	const op = "storage.MarkNotificationSent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications
			  SET status = 'sent', sent_at = $2
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, ntfUID, at)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// MarkNotificationFailed переводит уведомление в статус failed.
func (s *Storage) MarkNotificationFailed(ctx context.Context, ntfUID string) (int64, error) {
	const op = "storage.MarkNotificationFailed"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications
			  SET status = 'failed'
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, ntfUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
