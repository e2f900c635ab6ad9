package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the product type of an account
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeCredit   AccountType = "CREDIT"
)

// AccountStatus represents the lifecycle status of an account
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusFrozen   AccountStatus = "FROZEN"
	AccountStatusInactive AccountStatus = "INACTIVE"
	AccountStatusClosed   AccountStatus = "CLOSED"
)

// Account represents a bank account entity in the domain layer.
// Balance is a fixed-point decimal with at most 2 fractional digits.
// CreditLimit is zero for non-credit accounts.
type Account struct {
	ID          uuid.UUID
	Number      string
	Type        AccountType
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal
	Currency    string
	Status      AccountStatus
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OverdraftFloor returns the lowest balance the account may reach.
// Credit accounts may go negative down to -CreditLimit; all others stop at zero.
func (a *Account) OverdraftFloor() decimal.Decimal {
	if a.Type == AccountTypeCredit {
		return a.CreditLimit.Neg()
	}
	return decimal.Zero
}

// Validate ensures the account adheres to domain rules:
// the balance carries at most 2 decimal digits, a CLOSED account holds a zero
// balance, and the balance never drops below the overdraft floor.
func (a *Account) Validate() error {
	if !a.Balance.Equal(a.Balance.Round(2)) {
		return fmt.Errorf("%w: balance %s exceeds 2 decimal digits", ErrValidation, a.Balance)
	}

	if a.Status == AccountStatusClosed && !a.Balance.IsZero() {
		return fmt.Errorf("%w: closed account must have zero balance, got %s", ErrValidation, a.Balance)
	}

	if a.Balance.LessThan(a.OverdraftFloor()) {
		return fmt.Errorf("%w: balance %s below overdraft floor %s", ErrValidation, a.Balance, a.OverdraftFloor())
	}

	return nil
}
