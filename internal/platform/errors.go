package platform

import "errors"

// ErrInvalidOrder rejects a zero-price or zero-amount order at
// admission, per spec.md §9's recommended policy for that open question.
// It is deliberately not a ledger.Error: it never reaches the ledger or
// the book, so it isn't part of the engine's closed
// {AccountNotFound, AccountUnderFunded, AccountOverFunded} enum — it's a
// boundary validation rejected before any engine operation runs.
var ErrInvalidOrder = errors.New("order price and amount must both be positive")
