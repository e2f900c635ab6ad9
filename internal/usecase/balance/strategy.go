package balance

import (
	"fmt"

	"github.com/atlasbank/corebank/internal/domain"
	"github.com/shopspring/decimal"
)

// Strategy calculates the new balance that results from applying an amount to
// an account. Strategies are stateless, side-effect free, and safe for
// concurrent use.
type Strategy interface {
	Apply(acct *domain.Account, amount decimal.Decimal) (decimal.Decimal, error)
}

// depositStrategy credits the amount to the balance.
type depositStrategy struct{}

func (depositStrategy) Apply(acct *domain.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: deposit amount must be positive", domain.ErrValidation)
	}
	return acct.Balance.Add(amount), nil
}

// withdrawalStrategy debits the amount from the balance, allowing credit
// accounts to go negative down to their overdraft floor.
type withdrawalStrategy struct{}

func (withdrawalStrategy) Apply(acct *domain.Account, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrValidation)
	}

	newBalance := acct.Balance.Sub(amount)
	if newBalance.LessThan(acct.OverdraftFloor()) {
		return decimal.Zero, fmt.Errorf("%w: balance %s with credit limit %s cannot cover %s",
			domain.ErrInsufficientFunds, acct.Balance, acct.CreditLimit, amount)
	}

	return newBalance, nil
}

// Resolver selects the balance strategy for a transaction type.
// The lookup table is built once at construction and never mutated.
type Resolver struct {
	strategies map[domain.TransactionType]Strategy
}

// NewResolver builds the strategy table. A transfer debits the source
// account, so it resolves through the withdrawal calculation.
func NewResolver() *Resolver {
	return &Resolver{
		strategies: map[domain.TransactionType]Strategy{
			domain.TransactionTypeDeposit:    depositStrategy{},
			domain.TransactionTypeWithdrawal: withdrawalStrategy{},
			domain.TransactionTypeTransfer:   withdrawalStrategy{},
		},
	}
}

// Resolve returns the new balance for applying the amount to the account
// under the given transaction type.
func (r *Resolver) Resolve(acct *domain.Account, txType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	strategy, ok := r.strategies[txType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUnsupportedTransactionType, txType)
	}
	return strategy.Apply(acct, amount)
}
