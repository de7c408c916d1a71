package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// CreateFund сохраняет новый фонд каталога. Конфликт по первичному
// ключу возвращается как models.ErrFundAlreadyExists.
func (s *Storage) CreateFund(ctx context.Context, fund models.Fund) (string, error) {
	const op = "storage.CreateFund"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO funds (uid, name, category, minimum_amount, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		fund.UID, fund.Name, fund.Category, fund.MinimumAmount,
		fund.IsActive).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, models.ErrFundAlreadyExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetFund возвращает фонд по его UID.
func (s *Storage) GetFund(ctx context.Context, fundUID string) (*models.Fund, error) {
	const op = "storage.GetFund"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	f := &models.Fund{}
	query := `SELECT uid, name, category, minimum_amount, is_active, created_at
			  FROM funds
			  WHERE uid = $1`
	err := s.DB.QueryRowContext(ctx, query, fundUID).Scan(
		&f.UID, &f.Name, &f.Category, &f.MinimumAmount, &f.IsActive, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrFundNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

// ListFunds возвращает все фонды каталога.
func (s *Storage) ListFunds(ctx context.Context) ([]*models.Fund, error) {
	const op = "storage.ListFunds"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, category, minimum_amount, is_active, created_at
			  FROM funds
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Fund
	for rows.Next() {
		var f models.Fund
		if err := rows.Scan(&f.UID, &f.Name, &f.Category, &f.MinimumAmount,
			&f.IsActive, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateFund обновляет данные фонда. Возвращает количество изменённых строк.
func (s *Storage) UpdateFund(ctx context.Context, fund models.Fund) (int64, error) {
	const op = "storage.UpdateFund"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE funds
			  SET name = $2, category = $3, minimum_amount = $4, is_active = $5
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query,
		fund.UID, fund.Name, fund.Category, fund.MinimumAmount, fund.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
