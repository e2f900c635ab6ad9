package accountstatus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atlasbank/corebank/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// recordingSink captures published events for assertions
type recordingSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (s *recordingSink) Publish(event domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) all() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Event(nil), s.events...)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newAccount(status domain.AccountStatus, balance string) *domain.Account {
	return &domain.Account{
		ID:      uuid.New(),
		Number:  "SAV1234567890",
		Type:    domain.AccountTypeSavings,
		Balance: decimal.RequireFromString(balance),
		Status:  status,
		OwnerID: uuid.New(),
	}
}

func TestService_Transition_FreezesAndPublishes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	sink := &recordingSink{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, sink, fixedClock{now: now})

	acct := newAccount(domain.AccountStatusActive, "100")
	repo.On("Save", ctx, acct).Return(nil)

	updated, err := service.Transition(ctx, acct, domain.AccountStatusFrozen, "card reported stolen")

	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusFrozen, updated.Status)
	assert.Equal(t, now, updated.UpdatedAt)
	repo.AssertExpectations(t)

	events := sink.all()
	require.Len(t, events, 1)
	changed, ok := events[0].(domain.AccountStatusChanged)
	require.True(t, ok)
	assert.Equal(t, acct.ID, changed.EntityID)
	assert.Equal(t, "ACCOUNT", changed.EntityType)
	assert.Equal(t, "ACTIVE", changed.Attributes["from"])
	assert.Equal(t, "FROZEN", changed.Attributes["to"])
	assert.Equal(t, "card reported stolen", changed.Attributes["reason"])
}

func TestService_Transition_SameStatusIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	sink := &recordingSink{}
	service := NewService(repo, sink, fixedClock{now: time.Now()})

	acct := newAccount(domain.AccountStatusFrozen, "100")

	updated, err := service.Transition(ctx, acct, domain.AccountStatusFrozen, "")

	require.NoError(t, err)
	assert.Same(t, acct, updated)
	repo.AssertNotCalled(t, "Save")
	assert.Empty(t, sink.all())
}

func TestService_Transition_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		acct   *domain.Account
		target domain.AccountStatus
		reason string
	}{
		{
			name:   "Close with non-zero balance",
			acct:   newAccount(domain.AccountStatusActive, "10"),
			target: domain.AccountStatusClosed,
			reason: "customer request",
		},
		{
			name:   "Freeze without a reason",
			acct:   newAccount(domain.AccountStatusActive, "10"),
			target: domain.AccountStatusFrozen,
			reason: " ",
		},
		{
			name:   "Closed account is terminal",
			acct:   newAccount(domain.AccountStatusClosed, "0"),
			target: domain.AccountStatusActive,
			reason: "reopen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(MockAccountRepository)
			sink := &recordingSink{}
			service := NewService(repo, sink, fixedClock{now: time.Now()})
			before := tt.acct.Status

			_, err := service.Transition(ctx, tt.acct, tt.target, tt.reason)

			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, before, tt.acct.Status, "failed transition must not mutate the account")
			repo.AssertNotCalled(t, "Save")
			assert.Empty(t, sink.all())
		})
	}
}

func TestService_Transition_SaveFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	sink := &recordingSink{}
	service := NewService(repo, sink, fixedClock{now: time.Now()})

	acct := newAccount(domain.AccountStatusInactive, "0")
	updatedAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	acct.UpdatedAt = updatedAt
	repo.On("Save", ctx, acct).Return(assert.AnError)

	_, err := service.Transition(ctx, acct, domain.AccountStatusClosed, "dormant account cleanup")

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, domain.AccountStatusInactive, acct.Status,
		"a failed save must leave the in-memory status matching storage")
	assert.Equal(t, updatedAt, acct.UpdatedAt)
	assert.Empty(t, sink.all(), "no event without a successful save")
}
