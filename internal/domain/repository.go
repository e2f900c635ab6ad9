package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// Create persists a new account
	Create(ctx context.Context, account *Account) error

	// Save persists changes to an existing account
	Save(ctx context.Context, account *Account) error
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// Create persists a completed transaction together with the account's
	// updated balance in a single atomic write. expectedBalance is the
	// balance the engine computed against; the write must fail with
	// ErrConcurrentUpdate if the stored balance no longer matches it, so a
	// concurrent mutation can never be silently overwritten.
	Create(ctx context.Context, tx *Transaction, account *Account, expectedBalance decimal.Decimal) error

	// GetByID retrieves a transaction by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// EventSink receives domain events for fan-out. Publish must never block the
// caller and must never propagate consumer failures back to it.
type EventSink interface {
	Publish(event Event)
}
