// Package core holds the domain types shared by the ledger, order book and
// trading platform: the wire-level vocabulary of signer, side, order and
// transaction that every other package builds on.
package core

import "fmt"

// Side is which way an order or a fill leans.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "Unknown"
	}
}

// MarshalJSON renders a Side as the wire strings "Buy"/"Sell".
func (s Side) MarshalJSON() ([]byte, error) {
	switch s {
	case Buy:
		return []byte(`"Buy"`), nil
	case Sell:
		return []byte(`"Sell"`), nil
	default:
		return nil, fmt.Errorf("unknown side %d", int(s))
	}
}

// UnmarshalJSON parses the wire strings "Buy"/"Sell" into a Side.
func (s *Side) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Buy"`:
		*s = Buy
	case `"Sell"`:
		*s = Sell
	default:
		return fmt.Errorf("invalid side %s", data)
	}
	return nil
}

// Order is the request form of a limit order: what a client submits.
type Order struct {
	Signer string `json:"signer"`
	Side   Side   `json:"side"`
	Price  uint64 `json:"price"`
	Amount uint64 `json:"amount"`
}

// PartialOrder is the resting form of an Order: an Order plus the
// book-keeping fields assigned on admission and mutated as it fills.
type PartialOrder struct {
	Signer    string `json:"signer"`
	Side      Side   `json:"side"`
	Price     uint64 `json:"price"`
	Amount    uint64 `json:"amount"`
	Ordinal   uint64 `json:"ordinal"`
	Remaining uint64 `json:"remaining"`
}

// IntoPartialOrder builds the resting form of o with the ordinal assigned
// on admission and remaining initialized to the full requested amount.
func (o Order) IntoPartialOrder(ordinal uint64) PartialOrder {
	return PartialOrder{
		Signer:    o.Signer,
		Side:      o.Side,
		Price:     o.Price,
		Amount:    o.Amount,
		Ordinal:   ordinal,
		Remaining: o.Amount,
	}
}

// TakeFrom splits take units off a resting order into a fill record
// executing at price. The resting order's Remaining is decremented in
// place.
func TakeFrom(resting *PartialOrder, take, price uint64) PartialOrder {
	resting.Remaining -= take
	fill := *resting
	fill.Amount = take
	fill.Price = price
	return fill
}

// Receipt acknowledges an accepted order: its assigned ordinal and
// whatever fills it produced immediately.
type Receipt struct {
	Ordinal uint64         `json:"ordinal"`
	Matches []PartialOrder `json:"matches"`
}

// TxKind discriminates the two Tx variants on the wire.
type TxKind string

const (
	TxDeposit  TxKind = "Deposit"
	TxWithdraw TxKind = "Withdraw"
)

// Tx is one directional balance-affecting event: a deposit or a
// withdrawal. The journal is the ordered sequence of these.
type Tx struct {
	Kind    TxKind `json:"type"`
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

func DepositTx(account string, amount uint64) Tx {
	return Tx{Kind: TxDeposit, Account: account, Amount: amount}
}

func WithdrawTx(account string, amount uint64) Tx {
	return Tx{Kind: TxWithdraw, Account: account, Amount: amount}
}
