package trader

import (
	"github.com/zappabad/merchantcraft/internal/market"
)

// TraderID uniquely identifies a trader.
type TraderID int64

// TransactionKind indicates what a transaction paid for.
type TransactionKind int

const (
	TransactionShopping TransactionKind = iota
	TransactionSelling
	TransactionStorage
	TransactionTakeLoan
	TransactionPayLoan
)

func (k TransactionKind) String() string {
	switch k {
	case TransactionShopping:
		return "SHOPPING"
	case TransactionSelling:
		return "SELLING"
	case TransactionStorage:
		return "STORAGE"
	case TransactionTakeLoan:
		return "TAKE_LOAN"
	case TransactionPayLoan:
		return "PAY_LOAN"
	default:
		return "UNKNOWN"
	}
}

// Transaction is an immutable record of one capital-affecting operation.
// Amount is always positive; the kind determines the sign of its effect
// on capital.
type Transaction struct {
	Amount market.Money
	Kind   TransactionKind
}

// CapitalDelta returns the signed effect this transaction had on capital.
func (tx Transaction) CapitalDelta() market.Money {
	switch tx.Kind {
	case TransactionSelling, TransactionTakeLoan:
		return tx.Amount
	default:
		return -tx.Amount
	}
}

// Loan is a short-term credit. A trader holds at most one at a time.
type Loan struct {
	Amount       market.Money
	InterestRate int // percent
	DueDay       int
}

// Repayment is the amount debited when the loan is settled.
func (l Loan) Repayment() market.Money {
	return l.Amount * market.Money(100+l.InterestRate) / 100
}

// Trader is a player-controlled intermediary: capital, warehouse, and an
// optional loan. Capital is signed; going negative means bankruptcy at the
// next day-boundary check.
type Trader struct {
	ID      TraderID
	Name    string
	Company string

	Capital market.Money

	// Inventory maps product id to owned quantity. Entries are removed
	// when the quantity reaches zero, so every present entry is positive.
	Inventory map[market.ProductID]int

	StorageCapacity    int
	StorageUtilization int

	// Discounts holds the per-product purchase discount in percent,
	// recomputed from inventory tiers at the start of every turn.
	Discounts map[market.ProductID]int

	Loan *Loan

	// Transactions incurred on the current day; cleared once reported.
	Transactions []Transaction
}

// NewTrader creates a trader with the given starting capital and storage.
func NewTrader(id TraderID, name, company string, capital market.Money, storage int) *Trader {
	return &Trader{
		ID:              id,
		Name:            name,
		Company:         company,
		Capital:         capital,
		Inventory:       make(map[market.ProductID]int),
		StorageCapacity: storage,
		Discounts:       make(map[market.ProductID]int),
	}
}

// AvailableStorage returns the free warehouse space.
func (t *Trader) AvailableStorage() int {
	return t.StorageCapacity - t.StorageUtilization
}

// Record appends a transaction to the current day's list.
func (t *Trader) Record(amount market.Money, kind TransactionKind) {
	t.Transactions = append(t.Transactions, Transaction{Amount: amount, Kind: kind})
}

// Bankrupt reports whether the trader's capital has gone negative.
func (t *Trader) Bankrupt() bool {
	return t.Capital < 0
}

// DiscountFor returns the purchase discount percentage earned by holding
// qty units of a product.
func DiscountFor(qty int) int {
	switch {
	case qty >= 75:
		return 10
	case qty >= 50:
		return 5
	case qty >= 25:
		return 2
	default:
		return 0
	}
}
