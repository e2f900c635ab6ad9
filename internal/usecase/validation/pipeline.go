package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/atlasbank/corebank/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minAmount = decimal.RequireFromString("0.01")
	maxAmount = decimal.NewFromInt(1_000_000)

	// prohibitedDescription rejects descriptions that hint at illicit intent.
	prohibitedDescription = regexp.MustCompile(`(?i)(hack|steal|launder|illegal)`)
)

const maxDescriptionLength = 255

// rule is a single independent check. applies decides whether the rule's
// target attribute is present; check performs the actual validation.
type rule struct {
	name    string
	applies func(req domain.TransactionRequest) bool
	check   func(req domain.TransactionRequest, acct *domain.Account) error
}

// Pipeline runs an ordered list of independent checks over a transaction
// request. Every rule is evaluated regardless of earlier outcomes; the first
// failure in rule order is the one surfaced. The pipeline is a pure function
// of its input and safe to re-run.
type Pipeline struct {
	rules []rule
}

// NewPipeline builds the pipeline with its fixed rule order:
// amount, then type, then description.
func NewPipeline() *Pipeline {
	return &Pipeline{
		rules: []rule{
			{name: "amount", applies: always, check: checkAmount},
			{name: "type", applies: always, check: checkType},
			{
				name:    "description",
				applies: func(req domain.TransactionRequest) bool { return req.Description != "" },
				check:   checkDescription,
			},
		},
	}
}

// Validate runs all applicable rules and returns the first failure.
func (p *Pipeline) Validate(req domain.TransactionRequest, acct *domain.Account) error {
	var firstErr error
	for _, r := range p.rules {
		if !r.applies(req) {
			continue
		}
		if err := r.check(req, acct); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func always(domain.TransactionRequest) bool { return true }

func checkAmount(req domain.TransactionRequest, _ *domain.Account) error {
	if req.Amount.IsZero() {
		return fmt.Errorf("%w: amount is required", domain.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if req.Amount.LessThan(minAmount) || req.Amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: amount %s outside allowed range [%s, %s]",
			domain.ErrValidation, req.Amount, minAmount, maxAmount)
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return fmt.Errorf("%w: amount %s exceeds 2 decimal digits", domain.ErrValidation, req.Amount)
	}
	return nil
}

func checkType(req domain.TransactionRequest, acct *domain.Account) error {
	switch req.Type {
	case domain.TransactionTypeDeposit, domain.TransactionTypeWithdrawal, domain.TransactionTypeTransfer:
	default:
		return fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, req.Type)
	}

	if !domain.StatusPermits(acct.Status, req.Type) {
		return fmt.Errorf("%w: account status %s does not permit %s",
			domain.ErrValidation, acct.Status, req.Type)
	}
	return nil
}

func checkDescription(req domain.TransactionRequest, _ *domain.Account) error {
	if utf8.RuneCountInString(req.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", domain.ErrValidation, maxDescriptionLength)
	}
	if prohibitedDescription.MatchString(req.Description) {
		return fmt.Errorf("%w: description contains prohibited content", domain.ErrValidation)
	}
	return nil
}
