package transaction

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atlasbank/corebank/internal/domain"
	"github.com/atlasbank/corebank/internal/usecase/balance"
	"github.com/atlasbank/corebank/internal/usecase/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request is the unit of work flowing through the pipeline. The account is
// loaded once before the pipeline runs and treated as a consistent snapshot
// for the duration of the attempt; serializing concurrent mutation of one
// account is the persistence layer's job.
type Request struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	domain.TransactionRequest

	account *domain.Account
}

// Result pairs the committed transaction with the account snapshot carrying
// the updated balance.
type Result struct {
	Transaction *domain.Transaction
	Account     *domain.Account
}

// Thresholds configures the advisory flags attached to TransactionCompleted.
type Thresholds struct {
	HighValue  decimal.Decimal
	LowBalance decimal.Decimal
}

// Service processes transactions through the fixed stage order
// Metrics -> Validation -> Notification -> Logging around the core
// create-transaction operation. The chain is composed once at construction.
type Service struct {
	accounts     domain.AccountRepository
	transactions domain.TransactionRepository
	resolver     *balance.Resolver
	validator    *validation.Pipeline
	events       domain.EventSink
	clock        domain.Clock
	logger       *slog.Logger
	metrics      *Metrics

	highValue  decimal.Decimal
	lowBalance decimal.Decimal

	pipeline Next
}

// NewService creates a new transaction processing service.
func NewService(
	accounts domain.AccountRepository,
	transactions domain.TransactionRepository,
	events domain.EventSink,
	clock domain.Clock,
	logger *slog.Logger,
	thresholds Thresholds,
) *Service {
	s := &Service{
		accounts:     accounts,
		transactions: transactions,
		resolver:     balance.NewResolver(),
		validator:    validation.NewPipeline(),
		events:       events,
		clock:        clock,
		logger:       logger,
		metrics:      NewMetrics(),
		highValue:    thresholds.HighValue,
		lowBalance:   thresholds.LowBalance,
	}

	s.pipeline = compose(
		s.createTransaction,
		s.metricsStage,
		s.validationStage,
		s.notificationStage,
		s.loggingStage,
	)

	return s
}

// Process runs a transaction request for the given user and account through
// the full pipeline. Persistence-layer faults pass through unchanged.
func (s *Service) Process(ctx context.Context, userID, accountID uuid.UUID, req domain.TransactionRequest) (*Result, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	preq := &Request{
		UserID:             userID,
		AccountID:          accountID,
		TransactionRequest: req,
		account:            account,
	}

	tx, err := s.pipeline(ctx, preq)
	if err != nil {
		return nil, err
	}

	return &Result{Transaction: tx, Account: account}, nil
}

// Metrics returns a snapshot of the processing counters.
func (s *Service) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// createTransaction is the core operation: it resolves the new balance,
// builds the COMPLETED transaction, and persists it together with the
// account's updated balance in one atomic write.
func (s *Service) createTransaction(ctx context.Context, req *Request) (*domain.Transaction, error) {
	newBalance, err := s.resolver.Resolve(req.account, req.Type, req.Amount)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tx := &domain.Transaction{
		ID:              uuid.New(),
		ReferenceNumber: newReferenceNumber(),
		AccountID:       req.account.ID,
		Type:            req.Type,
		Amount:          req.Amount,
		Status:          domain.TransactionStatusCompleted,
		Description:     req.Description,
		BalanceAfter:    newBalance,
		CreatedAt:       now,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	balanceBefore := req.account.Balance
	req.account.Balance = newBalance
	req.account.UpdatedAt = now

	// The write is guarded on the balance this attempt computed against, so
	// a concurrent mutation surfaces as ErrConcurrentUpdate instead of being
	// overwritten.
	if err := s.transactions.Create(ctx, tx, req.account, balanceBefore); err != nil {
		req.account.Balance = balanceBefore
		return nil, err
	}

	return tx, nil
}

// newReferenceNumber generates a short human-readable transaction reference.
// Uniqueness is enforced by the persistence layer, not here.
func newReferenceNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "TXN-" + strings.ToUpper(raw[:12])
}
