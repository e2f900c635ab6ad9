package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atlasbank/corebank/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create persists the transaction and the account's updated balance in a
// single database transaction. The balance update is guarded on the snapshot
// the engine computed against: if a concurrent write moved the balance in
// the meantime, the guard matches zero rows and the attempt fails with
// ErrConcurrentUpdate instead of overwriting the other write.
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction, account *domain.Account, expectedBalance decimal.Decimal) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertQuery := `
		INSERT INTO transactions (id, reference_number, account_id, type, amount, status, description, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = dbTx.ExecContext(ctx, insertQuery,
		tx.ID,
		tx.ReferenceNumber,
		tx.AccountID,
		string(tx.Type),
		tx.Amount.String(),
		string(tx.Status),
		tx.Description,
		tx.BalanceAfter.String(),
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	updateQuery := `
		UPDATE accounts
		SET balance = $2, updated_at = $3
		WHERE id = $1 AND balance = $4
	`

	res, err := dbTx.ExecContext(ctx, updateQuery,
		account.ID,
		account.Balance.String(),
		account.UpdatedAt,
		expectedBalance.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check balance update: %w", err)
	}
	if rows == 0 {
		// Existence was checked when the snapshot was loaded, so zero rows
		// means the balance moved underneath this attempt.
		return fmt.Errorf("%w: account %s balance no longer %s",
			domain.ErrConcurrentUpdate, account.ID, expectedBalance)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT id, reference_number, account_id, type, amount, status, description, balance_after, created_at
		FROM transactions
		WHERE id = $1
	`

	var tx domain.Transaction
	var amountStr, balanceAfterStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tx.ID,
		&tx.ReferenceNumber,
		&tx.AccountID,
		&tx.Type,
		&amountStr,
		&tx.Status,
		&tx.Description,
		&balanceAfterStr,
		&tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s not found", id)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if tx.Amount, err = decimal.NewFromString(amountStr); err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	if tx.BalanceAfter, err = decimal.NewFromString(balanceAfterStr); err != nil {
		return nil, fmt.Errorf("failed to parse balance snapshot: %w", err)
	}

	return &tx, nil
}
