package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// statusTransitions is the immutable status transition table.
// CLOSED is terminal and has no outgoing transitions.
var statusTransitions = map[AccountStatus][]AccountStatus{
	AccountStatusActive:   {AccountStatusFrozen, AccountStatusClosed, AccountStatusInactive},
	AccountStatusFrozen:   {AccountStatusActive, AccountStatusClosed},
	AccountStatusInactive: {AccountStatusActive, AccountStatusClosed},
	AccountStatusClosed:   {},
}

// CanTransition reports whether the transition table allows moving directly
// from one status to another. A same-status "transition" is not part of the
// table; CheckTransition treats it as a no-op.
func CanTransition(from, to AccountStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// reasonRequired reports whether a transition into the target status must
// carry a non-blank reason.
func reasonRequired(to AccountStatus) bool {
	return to == AccountStatusFrozen || to == AccountStatusClosed || to == AccountStatusInactive
}

// CheckTransition validates a requested status change against the state
// machine. Rules are applied in order:
//  1. A same-status request is always a no-op success.
//  2. The target must be in the allowed set for the current status.
//  3. Closing requires a zero balance, regardless of the source status.
//  4. Moving to FROZEN, CLOSED, or INACTIVE requires a non-blank reason.
func CheckTransition(acct *Account, target AccountStatus, reason string) error {
	if acct.Status == target {
		return nil
	}

	if !CanTransition(acct.Status, target) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, acct.Status, target)
	}

	if target == AccountStatusClosed && !acct.Balance.IsZero() {
		return fmt.Errorf("%w: cannot close account with non-zero balance %s", ErrInvalidTransition, acct.Balance)
	}

	if reasonRequired(target) && strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: transition to %s requires a reason", ErrInvalidTransition, target)
	}

	return nil
}

// StatusPermits is the capability gate queried by validation: it reports
// whether the account status alone allows the given transaction type.
// Only ACTIVE accounts move money; balance rules are checked separately.
func StatusPermits(status AccountStatus, txType TransactionType) bool {
	switch txType {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer:
		return status == AccountStatusActive
	default:
		return false
	}
}

// CanDeposit reports whether a deposit is currently permitted on the account.
func CanDeposit(a *Account) bool {
	return StatusPermits(a.Status, TransactionTypeDeposit)
}

// CanWithdraw reports whether a withdrawal of the given amount is currently
// permitted: the status must allow it and the amount must fit within the
// balance plus credit headroom.
func CanWithdraw(a *Account, amount decimal.Decimal) bool {
	if !StatusPermits(a.Status, TransactionTypeWithdrawal) {
		return false
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return !a.Balance.Sub(amount).LessThan(a.OverdraftFloor())
}

// CanTransfer reports whether a transfer of the given amount out of the
// account is currently permitted. The outgoing leg follows withdrawal rules.
func CanTransfer(a *Account, amount decimal.Decimal) bool {
	if !StatusPermits(a.Status, TransactionTypeTransfer) {
		return false
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return !a.Balance.Sub(amount).LessThan(a.OverdraftFloor())
}

// CanUpdate reports whether account attribute updates are currently permitted.
func CanUpdate(a *Account) bool {
	return a.Status == AccountStatusActive
}

// CanDelete reports whether the account may be deleted.
func CanDelete(a *Account) bool {
	return a.Status == AccountStatusActive
}
