package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrGraphUnavailable indicates the alias store cannot be reached.
	ErrGraphUnavailable = errors.New("alias store unavailable")
	// ErrInvalidTurn indicates a malformed inbound turn (missing phone or text).
	ErrInvalidTurn = errors.New("invalid turn")
	// ErrInvariantViolation indicates session state inconsistent with its contents.
	ErrInvariantViolation = errors.New("session invariant violation")
)
