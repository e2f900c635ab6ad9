package validation

import (
	"strings"
	"testing"

	"github.com/atlasbank/corebank/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testAccount(status domain.AccountStatus) *domain.Account {
	return &domain.Account{
		ID:          uuid.New(),
		Number:      "CHK1234567890",
		Type:        domain.AccountTypeChecking,
		Balance:     decimal.NewFromInt(1000),
		CreditLimit: decimal.Zero,
		Currency:    "USD",
		Status:      status,
	}
}

func TestPipeline_Validate(t *testing.T) {
	pipeline := NewPipeline()

	tests := []struct {
		name    string
		req     domain.TransactionRequest
		status  domain.AccountStatus
		wantErr string
	}{
		{
			name: "Valid deposit passes",
			req: domain.TransactionRequest{
				Type:        domain.TransactionTypeDeposit,
				Amount:      decimal.RequireFromString("100.00"),
				Description: "payday",
			},
			status: domain.AccountStatusActive,
		},
		{
			name: "Valid request without description passes",
			req: domain.TransactionRequest{
				Type:   domain.TransactionTypeWithdrawal,
				Amount: decimal.RequireFromString("0.01"),
			},
			status: domain.AccountStatusActive,
		},
		{
			name: "Missing amount fails",
			req: domain.TransactionRequest{
				Type: domain.TransactionTypeDeposit,
			},
			status:  domain.AccountStatusActive,
			wantErr: "amount is required",
		},
		{
			name: "Amount above the ceiling fails",
			req: domain.TransactionRequest{
				Type:   domain.TransactionTypeDeposit,
				Amount: decimal.RequireFromString("1000000.01"),
			},
			status:  domain.AccountStatusActive,
			wantErr: "outside allowed range",
		},
		{
			name: "Amount with 3 decimal digits fails",
			req: domain.TransactionRequest{
				Type:   domain.TransactionTypeDeposit,
				Amount: decimal.RequireFromString("10.005"),
			},
			status:  domain.AccountStatusActive,
			wantErr: "exceeds 2 decimal digits",
		},
		{
			name: "Unknown transaction type fails",
			req: domain.TransactionRequest{
				Type:   domain.TransactionType("REVERSAL"),
				Amount: decimal.NewFromInt(10),
			},
			status:  domain.AccountStatusActive,
			wantErr: "unknown transaction type",
		},
		{
			name: "Frozen account rejects deposit",
			req: domain.TransactionRequest{
				Type:   domain.TransactionTypeDeposit,
				Amount: decimal.NewFromInt(10),
			},
			status:  domain.AccountStatusFrozen,
			wantErr: "does not permit",
		},
		{
			name: "Closed account rejects withdrawal",
			req: domain.TransactionRequest{
				Type:   domain.TransactionTypeWithdrawal,
				Amount: decimal.NewFromInt(10),
			},
			status:  domain.AccountStatusClosed,
			wantErr: "does not permit",
		},
		{
			name: "Prohibited description is rejected regardless of amount validity",
			req: domain.TransactionRequest{
				Type:        domain.TransactionTypeDeposit,
				Amount:      decimal.NewFromInt(10),
				Description: "let's hack the bank",
			},
			status:  domain.AccountStatusActive,
			wantErr: "prohibited content",
		},
		{
			name: "Prohibited keyword match is case-insensitive",
			req: domain.TransactionRequest{
				Type:        domain.TransactionTypeDeposit,
				Amount:      decimal.NewFromInt(10),
				Description: "LAUNDER the proceeds",
			},
			status:  domain.AccountStatusActive,
			wantErr: "prohibited content",
		},
		{
			name: "Description over 255 characters fails",
			req: domain.TransactionRequest{
				Type:        domain.TransactionTypeDeposit,
				Amount:      decimal.NewFromInt(10),
				Description: strings.Repeat("a", 256),
			},
			status:  domain.AccountStatusActive,
			wantErr: "exceeds 255 characters",
		},
		{
			name: "Amount failure surfaces before description failure",
			req: domain.TransactionRequest{
				Type:        domain.TransactionTypeDeposit,
				Amount:      decimal.RequireFromString("-1"),
				Description: "let's hack the bank",
			},
			status:  domain.AccountStatusActive,
			wantErr: "amount must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.Validate(tt.req, testAccount(tt.status))

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

// TestPipeline_Rerunnable checks that validating the same unchanged request
// twice yields an identical outcome.
func TestPipeline_Rerunnable(t *testing.T) {
	pipeline := NewPipeline()
	acct := testAccount(domain.AccountStatusActive)
	req := domain.TransactionRequest{
		Type:        domain.TransactionTypeWithdrawal,
		Amount:      decimal.RequireFromString("42.42"),
		Description: "coffee fund",
	}

	first := pipeline.Validate(req, acct)
	second := pipeline.Validate(req, acct)

	assert.NoError(t, first)
	assert.NoError(t, second)

	bad := req
	bad.Description = "steal everything"
	firstErr := pipeline.Validate(bad, acct)
	secondErr := pipeline.Validate(bad, acct)

	assert.Error(t, firstErr)
	assert.Error(t, secondErr)
	assert.Equal(t, firstErr.Error(), secondErr.Error())
}
