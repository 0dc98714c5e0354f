package service

import (
	"math/rand"
	"testing"

	"github.com/zappabad/merchantcraft/internal/market/catalog"
	marketservice "github.com/zappabad/merchantcraft/internal/market/service"
	"github.com/zappabad/merchantcraft/internal/trader"
)

func newFixture(t *testing.T) (*Service, *marketservice.MarketService, *trader.Trader) {
	t.Helper()
	entries := []catalog.Entry{
		// Opens at price 10 with 200 units in stock.
		{Name: "Cloth", Durability: 20, BasePrice: 10, MinProductionRate: -5, MaxProductionRate: 10},
	}
	m := marketservice.NewMarketService(entries, marketservice.DefaultConfig(), rand.New(rand.NewSource(1)))
	svc := NewService(m, DefaultConfig())
	tr := trader.NewTrader(1, "Ada", "Lovelace Trading", 10_000, 100)
	svc.RefreshDiscounts(tr)
	return svc, m, tr
}

func TestBuyAndSellScenario(t *testing.T) {
	svc, _, tr := newFixture(t)

	if err := svc.Buy(tr, 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Capital != 9_900 {
		t.Errorf("expected capital 9900, got %d", tr.Capital)
	}
	if tr.Inventory[1] != 10 {
		t.Errorf("expected inventory 10, got %d", tr.Inventory[1])
	}
	if tr.StorageUtilization != 10 {
		t.Errorf("expected utilization 10, got %d", tr.StorageUtilization)
	}
	if len(tr.Transactions) != 1 || tr.Transactions[0].Kind != trader.TransactionShopping {
		t.Fatalf("expected one shopping transaction, got %+v", tr.Transactions)
	}
	if tr.Transactions[0].Amount != 100 {
		t.Errorf("expected shopping amount 100, got %d", tr.Transactions[0].Amount)
	}

	// Selling everything back: ceil(10*0.8)=8 per unit.
	if err := svc.Sell(tr, 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Capital != 9_980 {
		t.Errorf("expected capital 9980, got %d", tr.Capital)
	}
	if _, ok := tr.Inventory[1]; ok {
		t.Error("expected inventory entry removed")
	}
	if tr.StorageUtilization != 0 {
		t.Errorf("expected utilization 0, got %d", tr.StorageUtilization)
	}
}

func TestBuyAppliesDiscount(t *testing.T) {
	svc, _, tr := newFixture(t)

	// Hold 75 units to reach the 10% tier.
	if err := svc.Buy(tr, 1, 75); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.RefreshDiscounts(tr)
	if tr.Discounts[1] != 10 {
		t.Fatalf("expected 10%% discount, got %d%%", tr.Discounts[1])
	}

	before := tr.Capital
	if err := svc.Buy(tr, 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 10 units at price 10 with 10% off: 90.
	if got := before - tr.Capital; got != 90 {
		t.Errorf("expected discounted cost 90, got %d", got)
	}
}

func TestBuyOutOfStock(t *testing.T) {
	svc, m, tr := newFixture(t)
	p, _ := m.Get(1)
	before := tr.Capital

	err := svc.Buy(tr, 1, p.Availability+1)
	if err != marketservice.ErrOutOfStock {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if tr.Capital != before || tr.StorageUtilization != 0 || len(tr.Transactions) != 0 {
		t.Error("failed market check must not touch trader state")
	}
}

func TestBuyCompensatesReservation(t *testing.T) {
	svc, m, tr := newFixture(t)
	p, _ := m.Get(1)
	stock := p.Availability

	// Capital check fails after the reservation succeeded.
	tr.Capital = 5
	if err := svc.Buy(tr, 1, 10); err != ErrInsufficientCapital {
		t.Fatalf("expected ErrInsufficientCapital, got %v", err)
	}
	if p.Availability != stock {
		t.Errorf("reservation not rolled back: stock %d, want %d", p.Availability, stock)
	}
	if tr.Capital != 5 || len(tr.Transactions) != 0 {
		t.Error("failed buy must not touch trader state")
	}

	// Storage check fails after the reservation succeeded.
	tr.Capital = 10_000
	tr.StorageUtilization = tr.StorageCapacity
	if err := svc.Buy(tr, 1, 10); err != ErrInsufficientStorage {
		t.Fatalf("expected ErrInsufficientStorage, got %v", err)
	}
	if p.Availability != stock {
		t.Errorf("reservation not rolled back: stock %d, want %d", p.Availability, stock)
	}
}

func TestSellErrors(t *testing.T) {
	svc, _, tr := newFixture(t)

	if err := svc.Sell(tr, 1, 1); err != ErrNotInStock {
		t.Errorf("expected ErrNotInStock, got %v", err)
	}

	if err := svc.Buy(tr, 1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Sell(tr, 1, 6); err != ErrInsufficientInventory {
		t.Errorf("expected ErrInsufficientInventory, got %v", err)
	}
	if tr.Inventory[1] != 5 {
		t.Errorf("failed sell must not touch inventory, got %d", tr.Inventory[1])
	}
}

func TestSellDoesNotReturnStock(t *testing.T) {
	svc, m, tr := newFixture(t)
	p, _ := m.Get(1)

	if err := svc.Buy(tr, 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	afterBuy := p.Availability
	if err := svc.Sell(tr, 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Availability != afterBuy {
		t.Errorf("selling must not restock the market: %d, want %d", p.Availability, afterBuy)
	}
}

func TestExpandStorage(t *testing.T) {
	svc, _, tr := newFixture(t)

	if err := svc.ExpandStorage(tr, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Capital != 5_000 {
		t.Errorf("expected capital 5000, got %d", tr.Capital)
	}
	if tr.StorageCapacity != 200 {
		t.Errorf("expected capacity 200, got %d", tr.StorageCapacity)
	}

	before := tr.Capital
	capacity := tr.StorageCapacity
	if err := svc.ExpandStorage(tr, 1_000); err != ErrInsufficientCapital {
		t.Fatalf("expected ErrInsufficientCapital, got %v", err)
	}
	if tr.Capital != before || tr.StorageCapacity != capacity {
		t.Error("failed expansion must not touch trader state")
	}
}

func TestChargeStorageCosts(t *testing.T) {
	svc, _, tr := newFixture(t)

	if err := svc.Buy(tr, 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := tr.Capital

	svc.ChargeStorageCosts(tr)
	// 10 occupied * 5 + 90 idle * 1 = 140.
	if got := before - tr.Capital; got != 140 {
		t.Errorf("expected storage cost 140, got %d", got)
	}

	// The debit is unconditional, even into negative capital.
	tr.Capital = 0
	svc.ChargeStorageCosts(tr)
	if tr.Capital >= 0 {
		t.Errorf("expected negative capital, got %d", tr.Capital)
	}
}

func TestLoanLifecycle(t *testing.T) {
	svc, _, tr := newFixture(t)

	if err := svc.TakeLoan(tr, 10_000, 10, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Capital != 20_000 {
		t.Errorf("expected capital 20000, got %d", tr.Capital)
	}
	if tr.Loan == nil || tr.Loan.DueDay != 8 {
		t.Fatalf("expected loan due day 8, got %+v", tr.Loan)
	}

	// A second loan is rejected and leaves capital unchanged.
	if err := svc.TakeLoan(tr, 5_000, 3, 1); err != ErrLoanAlreadyActive {
		t.Fatalf("expected ErrLoanAlreadyActive, got %v", err)
	}
	if tr.Capital != 20_000 {
		t.Errorf("rejected loan must not touch capital, got %d", tr.Capital)
	}

	// Settlement before the due day is a no-op.
	for day := 2; day < 8; day++ {
		svc.SettleLoan(tr, day)
		if tr.Loan == nil || tr.Capital != 20_000 {
			t.Fatalf("day %d: premature settlement", day)
		}
	}

	// On the due day the debit is exactly 11000 and the loan clears.
	svc.SettleLoan(tr, 8)
	if tr.Loan != nil {
		t.Error("expected loan cleared")
	}
	if tr.Capital != 9_000 {
		t.Errorf("expected capital 9000, got %d", tr.Capital)
	}
	last := tr.Transactions[len(tr.Transactions)-1]
	if last.Kind != trader.TransactionPayLoan || last.Amount != 11_000 {
		t.Errorf("expected PayLoan of 11000, got %+v", last)
	}

	// After settlement a new loan may be taken.
	if err := svc.TakeLoan(tr, 5_000, 3, 8); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStorageUtilizationMatchesInventory(t *testing.T) {
	svc, _, tr := newFixture(t)

	ops := []struct {
		buy bool
		qty int
	}{
		{true, 30}, {true, 12}, {false, 7}, {true, 5}, {false, 40},
	}
	for _, op := range ops {
		var err error
		if op.buy {
			err = svc.Buy(tr, 1, op.qty)
		} else {
			err = svc.Sell(tr, 1, op.qty)
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum := 0
		for _, q := range tr.Inventory {
			sum += q
		}
		if sum != tr.StorageUtilization {
			t.Fatalf("utilization %d drifted from inventory sum %d", tr.StorageUtilization, sum)
		}
	}
}
