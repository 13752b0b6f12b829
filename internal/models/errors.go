package models

import "errors"

// Caller-visible failures. Every one aborts the whole operation with no
// partial state change and no notification.
var (
	// ErrAlreadyRegistered is returned when an identity registers twice.
	ErrAlreadyRegistered = errors.New("ledger: already registered")
	// ErrForbidden is returned when a role or ownership check fails.
	ErrForbidden = errors.New("ledger: forbidden")
	// ErrUnknownStation is returned when the target station is not registered.
	ErrUnknownStation = errors.New("ledger: unknown station")
	// ErrSessionNotFound is returned when no session exists for the given id.
	ErrSessionNotFound = errors.New("ledger: session not found")
	// ErrAlreadyCompleted is returned when completing a session twice.
	ErrAlreadyCompleted = errors.New("ledger: session already completed")
	// ErrNotCompleted is returned when paying a session that has not ended.
	ErrNotCompleted = errors.New("ledger: session not completed")
	// ErrAlreadyPaid is returned when paying a session twice.
	ErrAlreadyPaid = errors.New("ledger: session already paid")
	// ErrInsufficientPayment is returned when the offered payment does not
	// cover the amount due.
	ErrInsufficientPayment = errors.New("ledger: insufficient payment")
	// ErrAmountMismatch is returned when an electricity purchase payment
	// does not match the requested amount.
	ErrAmountMismatch = errors.New("ledger: amount mismatch")
	// ErrIDCollision is returned when a derived session id already exists.
	ErrIDCollision = errors.New("ledger: session id collision")
	// ErrInsufficientFunds is returned by the value ledger when the paying
	// account cannot cover a transfer.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	// ErrInvalidAmount is returned for negative or zero quantities where a
	// positive one is required.
	ErrInvalidAmount = errors.New("ledger: invalid amount")
	// ErrInvalidName is returned when a registration name is empty or
	// whitespace only.
	ErrInvalidName = errors.New("ledger: invalid name")
)
