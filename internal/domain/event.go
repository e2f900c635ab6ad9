package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is an immutable domain fact published after a state change has been
// committed. Delivery is at-least-once and possibly out of order; consumers
// must be idempotent or purely observational.
type Event interface {
	EventID() uuid.UUID
	OccurredAt() time.Time
}

// EventMeta carries the generated identity shared by all events.
// IDs are version 7 UUIDs, so they sort by generation time.
type EventMeta struct {
	ID        uuid.UUID
	Timestamp time.Time
}

// NewEventMeta generates event identity at the given instant.
func NewEventMeta(now time.Time) EventMeta {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4
		// rather than dropping the event.
		id = uuid.New()
	}
	return EventMeta{ID: id, Timestamp: now}
}

// EventID returns the generated time-ordered event identifier.
func (m EventMeta) EventID() uuid.UUID { return m.ID }

// OccurredAt returns the instant the event was generated.
func (m EventMeta) OccurredAt() time.Time { return m.Timestamp }

// AccountCreated is published after a new account has been persisted.
type AccountCreated struct {
	EventMeta
	AccountID      uuid.UUID
	UserID         uuid.UUID
	AccountNumber  string
	AccountType    AccountType
	InitialBalance decimal.Decimal
}

// TransactionCompleted is published after a transaction has been committed.
// FraudReview and LowBalance are advisory flags; they never block or reverse
// the transaction they describe.
type TransactionCompleted struct {
	EventMeta
	TransactionID   uuid.UUID
	AccountID       uuid.UUID
	UserID          uuid.UUID
	ReferenceNumber string
	Type            TransactionType
	Amount          decimal.Decimal
	BalanceAfter    decimal.Decimal
	FraudReview     bool
	LowBalance      bool
}

// AccountStatusChanged is published after an account status transition.
type AccountStatusChanged struct {
	EventMeta
	EntityID   uuid.UUID
	EntityType string
	Attributes map[string]string
}

// UserLoggedIn is published by the surrounding service layer when a user
// authenticates.
type UserLoggedIn struct {
	EventMeta
	UserID    uuid.UUID
	Username  string
	IPAddress string
	UserAgent string
}
