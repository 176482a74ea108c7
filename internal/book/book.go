// Package book implements the resting order book and the price-time
// priority matching engine described in spec.md §4.2. It owns no
// balances — it only tracks resting partial orders and produces fill
// records for the platform to settle.
package book

import (
	"bourse/internal/core"

	"github.com/tidwall/btree"
)

// bidLess orders the buy side: highest price first, ties broken by the
// oldest (smallest) ordinal — mirrors the teacher's
// PriceLevels = btree.BTreeG[*PriceLevel] comparator shape, applied
// directly to resting orders instead of to a price-level grouping.
func bidLess(a, b *core.PartialOrder) bool {
	if a.Price != b.Price {
		return a.Price > b.Price
	}
	return a.Ordinal < b.Ordinal
}

// askLess orders the sell side: lowest price first, ties broken by the
// oldest ordinal.
func askLess(a, b *core.PartialOrder) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.Ordinal < b.Ordinal
}

// Book holds the two ordered sides of the resting order book plus the
// ordinal counter that assigns each accepted order its place in time
// priority. Book is not safe for concurrent use by itself — spec.md §5
// mandates that the trading platform serialize all access to it under
// one lock.
type Book struct {
	bids        *btree.BTreeG[*core.PartialOrder]
	asks        *btree.BTreeG[*core.PartialOrder]
	nextOrdinal uint64
}

// New returns an empty order book.
func New() *Book {
	return &Book{
		bids: btree.NewBTreeG(bidLess),
		asks: btree.NewBTreeG(askLess),
	}
}

// Submit assigns the next ordinal to order, then matches it against the
// opposite side under price-time priority, resting any unfilled
// remainder on order's own side. It returns the assigned ordinal and one
// fill record per trade, attributed to the resting (maker) counterparty
// — the caller already knows its own identity from the ordinal it was
// just given.
func (b *Book) Submit(order core.Order) (ordinal uint64, fills []core.PartialOrder) {
	b.nextOrdinal++
	ordinal = b.nextOrdinal

	opposite := b.asks
	if order.Side == core.Sell {
		opposite = b.bids
	}

	remaining := order.Amount
	for remaining > 0 {
		resting, ok := opposite.Min()
		if !ok {
			break
		}
		if order.Side == core.Buy && resting.Price > order.Price {
			break
		}
		if order.Side == core.Sell && resting.Price < order.Price {
			break
		}

		take := min(remaining, resting.Remaining)
		fill := core.TakeFrom(resting, take, resting.Price)
		fills = append(fills, fill)
		remaining -= take

		if resting.Remaining == 0 {
			opposite.Delete(resting)
		}
	}

	if remaining > 0 {
		residual := order.IntoPartialOrder(ordinal)
		residual.Remaining = remaining
		own := b.bids
		if order.Side == core.Sell {
			own = b.asks
		}
		own.Set(&residual)
	}

	return ordinal, fills
}

// Cancel is intentionally absent — spec.md's Non-goals exclude
// cancellation entirely; there is no partial-fill expiry or
// time-in-force variant beyond "rest until matched."

// Snapshot returns every resting partial order, ordered by ordinal
// ascending as spec.md §4.2 recommends for a deterministic canonical
// form.
func (b *Book) Snapshot() []core.PartialOrder {
	all := make([]core.PartialOrder, 0, b.bids.Len()+b.asks.Len())
	b.bids.Scan(func(item *core.PartialOrder) bool {
		all = append(all, *item)
		return true
	})
	b.asks.Scan(func(item *core.PartialOrder) bool {
		all = append(all, *item)
		return true
	})

	// Simple insertion sort by ordinal: the book is expected to stay
	// small (no persistence, single instrument, no cancellation backlog),
	// so an O(n^2) sort here trades code size for clarity over pulling in
	// sort.Slice for what is, in practice, a handful of resting orders.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].Ordinal < all[j-1].Ordinal; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	return all
}
