package event

import (
	"log/slog"

	"github.com/atlasbank/corebank/internal/domain"
)

// FraudReviewConsumer surfaces transactions flagged for fraud review.
// The flag is advisory; this consumer observes, it never reverses anything.
func FraudReviewConsumer(logger *slog.Logger) Handler {
	return func(event domain.Event) {
		completed, ok := event.(domain.TransactionCompleted)
		if !ok || !completed.FraudReview {
			return
		}
		logger.Warn("transaction flagged for fraud review",
			"event_id", completed.EventID(),
			"transaction_id", completed.TransactionID,
			"account_id", completed.AccountID,
			"reference", completed.ReferenceNumber,
			"amount", completed.Amount,
		)
	}
}

// LowBalanceConsumer surfaces accounts whose balance dropped below the
// configured notice threshold.
func LowBalanceConsumer(logger *slog.Logger) Handler {
	return func(event domain.Event) {
		completed, ok := event.(domain.TransactionCompleted)
		if !ok || !completed.LowBalance {
			return
		}
		logger.Info("account balance below notice threshold",
			"event_id", completed.EventID(),
			"account_id", completed.AccountID,
			"balance_after", completed.BalanceAfter,
		)
	}
}

// AuditLogConsumer writes a structured line for every event it sees.
// Purely observational, so at-least-once delivery is harmless.
func AuditLogConsumer(logger *slog.Logger) Handler {
	return func(event domain.Event) {
		switch e := event.(type) {
		case domain.AccountCreated:
			logger.Info("account created",
				"event_id", e.EventID(),
				"account_id", e.AccountID,
				"account_number", e.AccountNumber,
				"account_type", e.AccountType,
				"initial_balance", e.InitialBalance,
			)
		case domain.TransactionCompleted:
			logger.Info("transaction recorded",
				"event_id", e.EventID(),
				"transaction_id", e.TransactionID,
				"account_id", e.AccountID,
				"type", e.Type,
				"amount", e.Amount,
			)
		case domain.AccountStatusChanged:
			logger.Info("account status changed",
				"event_id", e.EventID(),
				"entity_id", e.EntityID,
				"from", e.Attributes["from"],
				"to", e.Attributes["to"],
			)
		case domain.UserLoggedIn:
			logger.Info("user logged in",
				"event_id", e.EventID(),
				"user_id", e.UserID,
				"username", e.Username,
				"ip", e.IPAddress,
			)
		}
	}
}
