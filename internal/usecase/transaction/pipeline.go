package transaction

import (
	"context"
	"time"

	"github.com/atlasbank/corebank/internal/domain"
)

// Next advances the pipeline toward the core create-transaction operation.
type Next func(ctx context.Context, req *Request) (*domain.Transaction, error)

// Stage wraps the remainder of the pipeline. A stage invokes next exactly
// once and propagates the inner result or failure unchanged; it may add side
// effects but must never alter the semantic outcome.
type Stage func(ctx context.Context, req *Request, next Next) (*domain.Transaction, error)

// compose chains the stages around the core operation. Stages are listed
// outermost first and the chain is built once at service construction.
func compose(core Next, stages ...Stage) Next {
	next := core
	for i := len(stages) - 1; i >= 0; i-- {
		stage := stages[i]
		inner := next
		next = func(ctx context.Context, req *Request) (*domain.Transaction, error) {
			return stage(ctx, req, inner)
		}
	}
	return next
}

// metricsStage is the outermost stage: it counts the attempt and records the
// outcome and latency of everything beneath it.
func (s *Service) metricsStage(ctx context.Context, req *Request, next Next) (*domain.Transaction, error) {
	s.metrics.recordAttempt()
	start := time.Now()

	tx, err := next(ctx, req)

	s.metrics.recordOutcome(err, time.Since(start))
	return tx, err
}

// validationStage runs the validation pipeline and the status capability gate
// before any money moves. A failure aborts the whole pipeline.
func (s *Service) validationStage(ctx context.Context, req *Request, next Next) (*domain.Transaction, error) {
	if err := s.validator.Validate(req.TransactionRequest, req.account); err != nil {
		return nil, err
	}
	return next(ctx, req)
}

// notificationStage publishes TransactionCompleted after the inner operation
// has committed. The fraud-review and low-balance flags are advisory only.
func (s *Service) notificationStage(ctx context.Context, req *Request, next Next) (*domain.Transaction, error) {
	tx, err := next(ctx, req)
	if err != nil {
		return nil, err
	}

	s.events.Publish(domain.TransactionCompleted{
		EventMeta:       domain.NewEventMeta(tx.CreatedAt),
		TransactionID:   tx.ID,
		AccountID:       tx.AccountID,
		UserID:          req.UserID,
		ReferenceNumber: tx.ReferenceNumber,
		Type:            tx.Type,
		Amount:          tx.Amount,
		BalanceAfter:    tx.BalanceAfter,
		FraudReview:     tx.Amount.GreaterThan(s.highValue),
		LowBalance:      tx.BalanceAfter.LessThan(s.lowBalance),
	})

	return tx, nil
}

// loggingStage is the innermost wrapper: it logs entry and exit of the core
// operation with duration and outcome.
func (s *Service) loggingStage(ctx context.Context, req *Request, next Next) (*domain.Transaction, error) {
	s.logger.DebugContext(ctx, "processing transaction",
		"account_id", req.AccountID,
		"type", req.Type,
		"amount", req.Amount,
	)
	start := time.Now()

	tx, err := next(ctx, req)

	if err != nil {
		s.logger.WarnContext(ctx, "transaction failed",
			"account_id", req.AccountID,
			"type", req.Type,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction completed",
		"account_id", req.AccountID,
		"reference", tx.ReferenceNumber,
		"type", tx.Type,
		"amount", tx.Amount,
		"balance_after", tx.BalanceAfter,
		"duration", time.Since(start),
	)
	return tx, nil
}
