package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func activeAccount(balance string) *Account {
	return &Account{
		ID:          uuid.New(),
		Number:      "CHK1234567890",
		Type:        AccountTypeChecking,
		Balance:     decimal.RequireFromString(balance),
		CreditLimit: decimal.Zero,
		Currency:    "USD",
		Status:      AccountStatusActive,
		OwnerID:     uuid.New(),
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    AccountStatus
		to      AccountStatus
		allowed bool
	}{
		{AccountStatusActive, AccountStatusFrozen, true},
		{AccountStatusActive, AccountStatusClosed, true},
		{AccountStatusActive, AccountStatusInactive, true},
		{AccountStatusFrozen, AccountStatusActive, true},
		{AccountStatusFrozen, AccountStatusClosed, true},
		{AccountStatusFrozen, AccountStatusInactive, false},
		{AccountStatusInactive, AccountStatusActive, true},
		{AccountStatusInactive, AccountStatusClosed, true},
		{AccountStatusInactive, AccountStatusFrozen, false},
		{AccountStatusClosed, AccountStatusActive, false},
		{AccountStatusClosed, AccountStatusFrozen, false},
		{AccountStatusClosed, AccountStatusInactive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name    string
		status  AccountStatus
		balance string
		target  AccountStatus
		reason  string
		wantErr bool
	}{
		{
			name:    "Same-status request is a no-op success",
			status:  AccountStatusFrozen,
			balance: "100",
			target:  AccountStatusFrozen,
			reason:  "",
			wantErr: false,
		},
		{
			name:    "Freeze with reason succeeds",
			status:  AccountStatusActive,
			balance: "100",
			target:  AccountStatusFrozen,
			reason:  "suspicious activity",
			wantErr: false,
		},
		{
			name:    "Freeze without reason fails",
			status:  AccountStatusActive,
			balance: "100",
			target:  AccountStatusFrozen,
			reason:  "   ",
			wantErr: true,
		},
		{
			name:    "Deactivate without reason fails",
			status:  AccountStatusActive,
			balance: "100",
			target:  AccountStatusInactive,
			reason:  "",
			wantErr: true,
		},
		{
			name:    "Close with non-zero balance fails from ACTIVE",
			status:  AccountStatusActive,
			balance: "0.01",
			target:  AccountStatusClosed,
			reason:  "customer request",
			wantErr: true,
		},
		{
			name:    "Close with non-zero balance fails from INACTIVE",
			status:  AccountStatusInactive,
			balance: "250",
			target:  AccountStatusClosed,
			reason:  "dormant",
			wantErr: true,
		},
		{
			name:    "Close at zero balance succeeds from INACTIVE",
			status:  AccountStatusInactive,
			balance: "0",
			target:  AccountStatusClosed,
			reason:  "dormant",
			wantErr: false,
		},
		{
			name:    "Closed account accepts no transition",
			status:  AccountStatusClosed,
			balance: "0",
			target:  AccountStatusActive,
			reason:  "reopen please",
			wantErr: true,
		},
		{
			name:    "Frozen cannot go inactive",
			status:  AccountStatusFrozen,
			balance: "0",
			target:  AccountStatusInactive,
			reason:  "dormant",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := activeAccount(tt.balance)
			acct.Status = tt.status

			err := CheckTransition(acct, tt.target, tt.reason)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCapabilityGates(t *testing.T) {
	amount := decimal.NewFromInt(50)

	t.Run("Active account permits all operations", func(t *testing.T) {
		acct := activeAccount("100")

		assert.True(t, CanDeposit(acct))
		assert.True(t, CanWithdraw(acct, amount))
		assert.True(t, CanTransfer(acct, amount))
		assert.True(t, CanUpdate(acct))
		assert.True(t, CanDelete(acct))
	})

	t.Run("Withdrawal beyond balance is not permitted", func(t *testing.T) {
		acct := activeAccount("100")

		assert.False(t, CanWithdraw(acct, decimal.NewFromInt(101)))
		assert.False(t, CanTransfer(acct, decimal.NewFromInt(101)))
	})

	t.Run("Credit accounts may draw into the credit limit", func(t *testing.T) {
		acct := activeAccount("100")
		acct.Type = AccountTypeCredit
		acct.CreditLimit = decimal.NewFromInt(500)

		assert.True(t, CanWithdraw(acct, decimal.NewFromInt(600)))
		assert.False(t, CanWithdraw(acct, decimal.NewFromInt(601)))
	})

	for _, status := range []AccountStatus{AccountStatusFrozen, AccountStatusInactive, AccountStatusClosed} {
		t.Run("Status "+string(status)+" permits nothing", func(t *testing.T) {
			acct := activeAccount("100")
			acct.Status = status

			assert.False(t, CanDeposit(acct))
			assert.False(t, CanWithdraw(acct, amount))
			assert.False(t, CanTransfer(acct, amount))
			assert.False(t, CanUpdate(acct))
			assert.False(t, CanDelete(acct))
		})
	}
}
