package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// CreateTransaction добавляет запись в журнал транзакций.
func (s *Storage) CreateTransaction(ctx context.Context, txn models.Transaction) (string, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO transactions (uid, user_uid, type, fund_uid, amount,
			      balance_before, balance_after, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		txn.UID, txn.UserUID, txn.Type, txn.FundUID, txn.Amount,
		txn.BalanceBefore, txn.BalanceAfter, txn.Status).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetTransaction возвращает запись журнала по её UID.
func (s *Storage) GetTransaction(ctx context.Context, txnUID string) (*models.Transaction, error) {
	const op = "storage.GetTransaction"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	txn := &models.Transaction{}
	query := `SELECT uid, user_uid, type, fund_uid, amount,
			      balance_before, balance_after, status, created_at
			  FROM transactions
			  WHERE uid = $1`
	err := s.DB.QueryRowContext(ctx, query, txnUID).Scan(
		&txn.UID, &txn.UserUID, &txn.Type, &txn.FundUID, &txn.Amount,
		&txn.BalanceBefore, &txn.BalanceAfter, &txn.Status, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return txn, nil
}

// ListTransactions возвращает записи журнала пользователя от новых к старым.
func (s *Storage) ListTransactions(ctx context.Context, userUID string) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, type, fund_uid, amount,
			      balance_before, balance_after, status, created_at
			  FROM transactions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanTransactions(rows, op)
}

// ListAllTransactions возвращает записи журнала всех пользователей
// от новых к старым. Доступна только администратору.
func (s *Storage) ListAllTransactions(ctx context.Context) ([]*models.Transaction, error) {
	const op = "storage.ListAllTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, user_uid, type, fund_uid, amount,
			      balance_before, balance_after, status, created_at
			  FROM transactions
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanTransactions(rows, op)
}

func scanTransactions(rows *sql.Rows, op string) ([]*models.Transaction, error) {
	var result []*models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(&txn.UID, &txn.UserUID, &txn.Type, &txn.FundUID, &txn.Amount,
			&txn.BalanceBefore, &txn.BalanceAfter, &txn.Status, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
