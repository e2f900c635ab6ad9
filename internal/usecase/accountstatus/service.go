package accountstatus

import (
	"context"

	"github.com/atlasbank/corebank/internal/domain"
)

// Service applies account status transitions through the state machine and
// publishes AccountStatusChanged after the change has been persisted.
type Service struct {
	accounts domain.AccountRepository
	events   domain.EventSink
	clock    domain.Clock
}

// NewService creates a new status transition service.
func NewService(accounts domain.AccountRepository, events domain.EventSink, clock domain.Clock) *Service {
	return &Service{
		accounts: accounts,
		events:   events,
		clock:    clock,
	}
}

// Transition moves the account into the target status. A same-status request
// succeeds without persisting or publishing anything.
func (s *Service) Transition(ctx context.Context, account *domain.Account, target domain.AccountStatus, reason string) (*domain.Account, error) {
	if account.Status == target {
		return account, nil
	}

	if err := domain.CheckTransition(account, target, reason); err != nil {
		return nil, err
	}

	previous := account.Status
	previousUpdatedAt := account.UpdatedAt
	account.Status = target
	account.UpdatedAt = s.clock.Now()

	if err := s.accounts.Save(ctx, account); err != nil {
		// Keep the in-memory account consistent with storage so later
		// capability-gate queries on it stay truthful.
		account.Status = previous
		account.UpdatedAt = previousUpdatedAt
		return nil, err
	}

	s.events.Publish(domain.AccountStatusChanged{
		EventMeta:  domain.NewEventMeta(account.UpdatedAt),
		EntityID:   account.ID,
		EntityType: "ACCOUNT",
		Attributes: map[string]string{
			"from":   string(previous),
			"to":     string(target),
			"reason": reason,
		},
	})

	return account, nil
}
