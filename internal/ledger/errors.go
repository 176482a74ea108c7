package ledger

import "fmt"

// Kind is the closed set of ways a ledger operation can fail. No other
// kind is ever produced — callers can switch on it exhaustively.
type Kind int

const (
	// AccountNotFound means the signer has no account in the ledger.
	AccountNotFound Kind = iota
	// AccountUnderFunded means a withdrawal or send would take an
	// account's balance below zero.
	AccountUnderFunded
	// AccountOverFunded means a deposit or send would push an account's
	// balance past the u64 range.
	AccountOverFunded
)

// Error is the single error type the ledger (and anything built on it)
// ever returns. It carries the account and, where relevant, the
// offending amount so callers can render a precise message without
// parsing strings.
type Error struct {
	Kind    Kind
	Account string
	Amount  uint64
}

func (e *Error) Error() string {
	switch e.Kind {
	case AccountNotFound:
		return fmt.Sprintf("account not found: %s", e.Account)
	case AccountUnderFunded:
		return fmt.Sprintf("account underfunded: %s cannot cover withdrawal of %d", e.Account, e.Amount)
	case AccountOverFunded:
		return fmt.Sprintf("account overfunded: %s by %d would overflow", e.Account, e.Amount)
	default:
		return "unknown ledger error"
	}
}

func errAccountNotFound(account string) error {
	return &Error{Kind: AccountNotFound, Account: account}
}

func errAccountUnderFunded(account string, amount uint64) error {
	return &Error{Kind: AccountUnderFunded, Account: account, Amount: amount}
}

func errAccountOverFunded(account string, amount uint64) error {
	return &Error{Kind: AccountOverFunded, Account: account, Amount: amount}
}
