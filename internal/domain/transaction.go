package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

// TransactionStatus represents the processing status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction represents a single money movement against an account.
// A transaction is immutable once COMPLETED; BalanceAfter snapshots the
// account balance that resulted from applying it.
type Transaction struct {
	ID              uuid.UUID
	ReferenceNumber string
	AccountID       uuid.UUID
	Type            TransactionType
	Amount          decimal.Decimal
	Status          TransactionStatus
	Description     string
	BalanceAfter    decimal.Decimal
	CreatedAt       time.Time
}

// TransactionRequest is the inbound contract for requesting a money movement.
// A zero Amount means the amount is absent; an empty Description means no
// description was supplied.
type TransactionRequest struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
}

// Validate ensures the transaction adheres to domain rules
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: transaction amount must be positive", ErrValidation)
	}

	if !t.Amount.Equal(t.Amount.Round(2)) {
		return fmt.Errorf("%w: transaction amount %s exceeds 2 decimal digits", ErrValidation, t.Amount)
	}

	if !t.BalanceAfter.Equal(t.BalanceAfter.Round(2)) {
		return fmt.Errorf("%w: resulting balance %s exceeds 2 decimal digits", ErrValidation, t.BalanceAfter)
	}

	return nil
}
