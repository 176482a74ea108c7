// Package ledger implements the accounts ledger: a mapping from signer to
// a non-negative, non-overflowing integer balance, with atomic transfers.
// It owns no history — the caller (the trading platform) is responsible
// for journaling the transactions this package returns.
package ledger

import (
	"math"

	"bourse/internal/core"
)

// Ledger maps account signer to balance. Create one with New: the zero
// value has no map, and a Deposit into it panics.
type Ledger struct {
	balances map[string]uint64
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{balances: make(map[string]uint64)}
}

// Deposit adds amount to signer's balance, creating the account at that
// balance if it doesn't exist yet. Fails with AccountOverFunded if the
// addition would exceed the u64 range.
func (l *Ledger) Deposit(signer string, amount uint64) (core.Tx, error) {
	balance, ok := l.balances[signer]
	if !ok {
		l.balances[signer] = amount
		return core.DepositTx(signer, amount), nil
	}

	if balance > math.MaxUint64-amount {
		return core.Tx{}, errAccountOverFunded(signer, amount)
	}
	l.balances[signer] = balance + amount
	return core.DepositTx(signer, amount), nil
}

// Withdraw subtracts amount from signer's balance. Fails with
// AccountNotFound if the account doesn't exist, or AccountUnderFunded if
// the balance is too low.
func (l *Ledger) Withdraw(signer string, amount uint64) (core.Tx, error) {
	balance, ok := l.balances[signer]
	if !ok {
		return core.Tx{}, errAccountNotFound(signer)
	}
	if balance < amount {
		return core.Tx{}, errAccountUnderFunded(signer, amount)
	}
	l.balances[signer] = balance - amount
	return core.WithdrawTx(signer, amount), nil
}

// Send moves amount from sender to recipient atomically: on any failure
// the ledger is left bitwise identical to its pre-call state and no
// transaction is returned. On success it returns the withdraw then the
// deposit transaction, in that order.
func (l *Ledger) Send(sender, recipient string, amount uint64) (core.Tx, core.Tx, error) {
	senderBalance, ok := l.balances[sender]
	if !ok {
		return core.Tx{}, core.Tx{}, errAccountNotFound(sender)
	}
	recipientBalance, ok := l.balances[recipient]
	if !ok {
		return core.Tx{}, core.Tx{}, errAccountNotFound(recipient)
	}
	if senderBalance < amount {
		return core.Tx{}, core.Tx{}, errAccountUnderFunded(sender, amount)
	}
	// Check the recipient's side would not overflow *before* mutating the
	// sender, so a failure here never needs a compensating write.
	if recipientBalance > math.MaxUint64-amount {
		return core.Tx{}, core.Tx{}, errAccountOverFunded(recipient, amount)
	}

	l.balances[sender] = senderBalance - amount
	l.balances[recipient] = recipientBalance + amount

	return core.WithdrawTx(sender, amount), core.DepositTx(recipient, amount), nil
}

// BalanceOf returns signer's balance, or AccountNotFound if no such
// account exists.
func (l *Ledger) BalanceOf(signer string) (uint64, error) {
	balance, ok := l.balances[signer]
	if !ok {
		return 0, errAccountNotFound(signer)
	}
	return balance, nil
}

// Accounts returns a snapshot of every account's balance. The returned
// map is owned by the caller; mutating it does not affect the ledger.
func (l *Ledger) Accounts() map[string]uint64 {
	snapshot := make(map[string]uint64, len(l.balances))
	for signer, balance := range l.balances {
		snapshot[signer] = balance
	}
	return snapshot
}
