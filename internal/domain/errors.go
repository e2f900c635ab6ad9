package domain

import "errors"

var (
	// ErrValidation indicates malformed or out-of-range input that the caller can correct.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientFunds indicates a withdrawal or transfer that would take the
	// balance below the account's overdraft floor.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTransition indicates a status change the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInitialBalance indicates an opening balance outside the window
	// defined for the account type.
	ErrInvalidInitialBalance = errors.New("invalid initial balance")

	// ErrUnsupportedTransactionType indicates a transaction type with no registered
	// balance strategy. This is a wiring defect, not a user error.
	ErrUnsupportedTransactionType = errors.New("unsupported transaction type")

	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrConcurrentUpdate indicates that the account balance changed between
	// the snapshot read and the guarded write. The attempt can be retried by
	// the caller against a fresh snapshot.
	ErrConcurrentUpdate = errors.New("concurrent account update")
)
