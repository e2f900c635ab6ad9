package accountfactory

import (
	"context"
	"fmt"
	"strings"

	"github.com/atlasbank/corebank/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "USD"

// RandomSource supplies the digits for generated account numbers.
// *math/rand.Rand satisfies it. Generated numbers are not guaranteed unique;
// collision handling belongs to the persistence layer.
type RandomSource interface {
	Intn(n int) int
}

// factory holds the construction rules for one account type: the opening
// balance window, the numbering scheme, and default attributes.
type factory struct {
	accountType domain.AccountType
	minOpening  decimal.Decimal
	maxOpening  decimal.Decimal
	creditLimit decimal.Decimal
	prefix      string
	digits      int
}

func (f *factory) checkOpeningBalance(initial decimal.Decimal) error {
	if initial.LessThan(f.minOpening) || initial.GreaterThan(f.maxOpening) {
		return fmt.Errorf("%w: %s accounts open with a balance in [%s, %s], got %s",
			domain.ErrInvalidInitialBalance, f.accountType, f.minOpening, f.maxOpening, initial)
	}
	return nil
}

func (f *factory) newNumber(rnd RandomSource) string {
	var b strings.Builder
	b.WriteString(f.prefix)
	for i := 0; i < f.digits; i++ {
		b.WriteByte(byte('0' + rnd.Intn(10)))
	}
	return b.String()
}

// Registry selects the type-specific factory at account creation.
// The factory table is built once at construction and never mutated.
type Registry struct {
	factories map[domain.AccountType]*factory
	accounts  domain.AccountRepository
	events    domain.EventSink
	clock     domain.Clock
	rnd       RandomSource
}

// NewRegistry builds the factory table:
// SAVINGS opens with [100, 1,000,000] and numbers "SAV" + 10 digits;
// CHECKING opens with [0, 1,000,000] and numbers "CHK" + 10 digits;
// CREDIT opens with exactly 0, a 1,000.00 default credit limit, and numbers
// "4" + 15 digits.
func NewRegistry(accounts domain.AccountRepository, events domain.EventSink, clock domain.Clock, rnd RandomSource) *Registry {
	return &Registry{
		factories: map[domain.AccountType]*factory{
			domain.AccountTypeSavings: {
				accountType: domain.AccountTypeSavings,
				minOpening:  decimal.NewFromInt(100),
				maxOpening:  decimal.NewFromInt(1_000_000),
				creditLimit: decimal.Zero,
				prefix:      "SAV",
				digits:      10,
			},
			domain.AccountTypeChecking: {
				accountType: domain.AccountTypeChecking,
				minOpening:  decimal.Zero,
				maxOpening:  decimal.NewFromInt(1_000_000),
				creditLimit: decimal.Zero,
				prefix:      "CHK",
				digits:      10,
			},
			domain.AccountTypeCredit: {
				accountType: domain.AccountTypeCredit,
				minOpening:  decimal.Zero,
				maxOpening:  decimal.Zero,
				creditLimit: decimal.RequireFromString("1000.00"),
				prefix:      "4",
				digits:      15,
			},
		},
		accounts: accounts,
		events:   events,
		clock:    clock,
		rnd:      rnd,
	}
}

// Create builds and persists a new ACTIVE account of the given type, then
// publishes AccountCreated. The initial balance must lie inside the type's
// opening window and carry at most 2 decimal digits.
func (r *Registry) Create(ctx context.Context, accountType domain.AccountType, ownerID uuid.UUID, initialBalance decimal.Decimal) (*domain.Account, error) {
	f, ok := r.factories[accountType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown account type %q", domain.ErrValidation, accountType)
	}

	if !initialBalance.Equal(initialBalance.Round(2)) {
		return nil, fmt.Errorf("%w: initial balance %s exceeds 2 decimal digits",
			domain.ErrInvalidInitialBalance, initialBalance)
	}

	if err := f.checkOpeningBalance(initialBalance); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	account := &domain.Account{
		ID:          uuid.New(),
		Number:      f.newNumber(r.rnd),
		Type:        accountType,
		Balance:     initialBalance,
		CreditLimit: f.creditLimit,
		Currency:    defaultCurrency,
		Status:      domain.AccountStatusActive,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := r.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	r.events.Publish(domain.AccountCreated{
		EventMeta:      domain.NewEventMeta(now),
		AccountID:      account.ID,
		UserID:         ownerID,
		AccountNumber:  account.Number,
		AccountType:    account.Type,
		InitialBalance: initialBalance,
	})

	return account, nil
}
