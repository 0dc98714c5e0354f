package trader

import (
	"testing"

	"github.com/zappabad/merchantcraft/internal/market"
)

func TestDiscountFor(t *testing.T) {
	tests := []struct {
		qty  int
		want int
	}{
		{0, 0},
		{24, 0},
		{25, 2},
		{49, 2},
		{50, 5},
		{74, 5},
		{75, 10},
		{200, 10},
	}
	for _, tt := range tests {
		if got := DiscountFor(tt.qty); got != tt.want {
			t.Errorf("DiscountFor(%d) = %d, want %d", tt.qty, got, tt.want)
		}
	}
}

func TestLoanRepayment(t *testing.T) {
	tests := []struct {
		amount int64
		rate   int
		want   int64
	}{
		{10_000, 10, 11_000},
		{5_000, 3, 5_150},
		{10_000, 5, 10_500},
		{25_000, 8, 27_000},
	}
	for _, tt := range tests {
		l := Loan{Amount: market.Money(tt.amount), InterestRate: tt.rate}
		if got := int64(l.Repayment()); got != tt.want {
			t.Errorf("Repayment(%d @ %d%%) = %d, want %d", tt.amount, tt.rate, got, tt.want)
		}
	}
}

func TestCapitalDelta(t *testing.T) {
	tests := []struct {
		kind TransactionKind
		want int64
	}{
		{TransactionShopping, -100},
		{TransactionSelling, 100},
		{TransactionStorage, -100},
		{TransactionTakeLoan, 100},
		{TransactionPayLoan, -100},
	}
	for _, tt := range tests {
		tx := Transaction{Amount: 100, Kind: tt.kind}
		if got := int64(tx.CapitalDelta()); got != tt.want {
			t.Errorf("CapitalDelta(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
