// Package platform implements the trading platform: the component that
// composes the ledger and the order book, assigns ordinals through the
// book, drives matching, settles fills against the ledger and appends
// every balance-affecting event to the transaction journal. It is the
// only component spec.md exposes to the network adapter.
package platform

import (
	"sync"

	"bourse/internal/book"
	"bourse/internal/core"
	"bourse/internal/ledger"

	"github.com/rs/zerolog/log"
)

// Platform is the single logical actor spec.md §5 requires: every
// method here takes the same mutex, so the whole engine is serialized
// into one total order. No method performs I/O while holding mu.
type Platform struct {
	mu      sync.Mutex
	ledger  *ledger.Ledger
	book    *book.Book
	journal []core.Tx
}

// New returns an empty trading platform: no accounts, no resting orders,
// no journal entries.
func New() *Platform {
	return &Platform{
		ledger: ledger.New(),
		book:   book.New(),
	}
}

// Deposit delegates to the ledger and, on success, appends the resulting
// transaction to the journal.
func (p *Platform) Deposit(signer string, amount uint64) (core.Tx, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx, err := p.ledger.Deposit(signer, amount)
	if err != nil {
		return core.Tx{}, err
	}
	p.journal = append(p.journal, tx)
	return tx, nil
}

// Withdraw delegates to the ledger and, on success, appends the
// resulting transaction to the journal.
func (p *Platform) Withdraw(signer string, amount uint64) (core.Tx, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx, err := p.ledger.Withdraw(signer, amount)
	if err != nil {
		return core.Tx{}, err
	}
	p.journal = append(p.journal, tx)
	return tx, nil
}

// Send delegates to the ledger and, on success, appends both resulting
// transactions (withdraw then deposit) to the journal.
func (p *Platform) Send(sender, recipient string, amount uint64) (core.Tx, core.Tx, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	withdrawTx, depositTx, err := p.ledger.Send(sender, recipient, amount)
	if err != nil {
		return core.Tx{}, core.Tx{}, err
	}
	p.journal = append(p.journal, withdrawTx, depositTx)
	return withdrawTx, depositTx, nil
}

// Order admits an incoming order, runs it through the book's matching
// algorithm, settles every resulting fill against the ledger, and rests
// any residual. A fill whose settlement fails (buyer insolvent, or
// seller would overflow) is silently dropped from the receipt per
// spec.md §4.3's settlement-failure policy: the book-side quantities it
// already decremented stay decremented, no transaction is journaled for
// it, and matching has already moved on to the next candidate by the
// time settlement runs.
func (p *Platform) Order(order core.Order) (core.Receipt, error) {
	if order.Price == 0 || order.Amount == 0 {
		return core.Receipt{}, ErrInvalidOrder
	}

	p.mu.Lock()

	ordinal, fills := p.book.Submit(order)

	matches := make([]core.PartialOrder, 0, len(fills))
	// Warnings for dropped fills are written only after mu is released.
	var warnings []func()
	for _, fill := range fills {
		buyer, seller := counterparties(order, fill)
		value := fill.Price * fill.Amount

		withdrawTx, depositTx, err := p.ledger.Send(buyer, seller, value)
		if err != nil {
			warnings = append(warnings, func() {
				log.Warn().
					Str("buyer", buyer).
					Str("seller", seller).
					Uint64("ordinal", fill.Ordinal).
					Uint64("amount", fill.Amount).
					Uint64("price", fill.Price).
					Err(err).
					Msg("dropped fill: settlement failed")
			})
			continue
		}
		p.journal = append(p.journal, withdrawTx, depositTx)
		matches = append(matches, fill)
	}

	p.mu.Unlock()

	for _, warn := range warnings {
		warn()
	}

	return core.Receipt{Ordinal: ordinal, Matches: matches}, nil
}

// counterparties resolves which signer is the buyer and which is the
// seller for a fill against incoming: the book only ever matches an
// order against the opposite side, so exactly one of incoming/fill is a
// Buy and the other a Sell.
func counterparties(incoming core.Order, fill core.PartialOrder) (buyer, seller string) {
	if incoming.Side == core.Buy {
		return incoming.Signer, fill.Signer
	}
	return fill.Signer, incoming.Signer
}

// BalanceOf returns signer's balance.
func (p *Platform) BalanceOf(signer string) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ledger.BalanceOf(signer)
}

// Accounts returns a snapshot of every account's balance.
func (p *Platform) Accounts() map[string]uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ledger.Accounts()
}

// OrderBook returns a snapshot of every resting partial order.
func (p *Platform) OrderBook() []core.PartialOrder {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.book.Snapshot()
}

// TxLog returns a snapshot of the full transaction journal, in the order
// transactions were appended.
func (p *Platform) TxLog() []core.Tx {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries := make([]core.Tx, len(p.journal))
	copy(entries, p.journal)
	return entries
}
