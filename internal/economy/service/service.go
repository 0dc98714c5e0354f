// Package service implements the economy operations: trading, storage and
// loans. Every operation either succeeds with the documented side effects
// or fails with a specific sentinel error and leaves trader and market
// state untouched. The one exception is the buy path, where the
// market-side reservation is rolled back if a trader-side check fails
// after it.
package service

import (
	"errors"

	"github.com/zappabad/merchantcraft/internal/market"
	marketservice "github.com/zappabad/merchantcraft/internal/market/service"
	"github.com/zappabad/merchantcraft/internal/trader"
)

var (
	ErrInsufficientCapital   = errors.New("not enough capital")
	ErrInsufficientStorage   = errors.New("not enough free storage capacity")
	ErrNotInStock            = errors.New("product not in warehouse")
	ErrInsufficientInventory = errors.New("not enough units in warehouse")
	ErrLoanAlreadyActive     = errors.New("a loan is already outstanding")
)

// Service executes economy operations against trader and market state.
// It holds no per-turn state of its own.
type Service struct {
	cfg    Config
	market *marketservice.MarketService
}

// NewService creates an economy service operating on the given market.
func NewService(m *marketservice.MarketService, cfg Config) *Service {
	if cfg.StorageUnitPrice <= 0 {
		cfg.StorageUnitPrice = DefaultConfig().StorageUnitPrice
	}
	if cfg.OccupiedCostPerUnit <= 0 {
		cfg.OccupiedCostPerUnit = DefaultConfig().OccupiedCostPerUnit
	}
	if cfg.IdleCostPerUnit <= 0 {
		cfg.IdleCostPerUnit = DefaultConfig().IdleCostPerUnit
	}
	if cfg.LoanTermDays <= 0 {
		cfg.LoanTermDays = DefaultConfig().LoanTermDays
	}
	return &Service{cfg: cfg, market: m}
}

// Cost returns the discounted purchase cost for qty units of a product,
// rounded down to whole money.
func (s *Service) Cost(t *trader.Trader, p *market.Product, qty int) market.Money {
	discount := market.Money(t.Discounts[p.ID])
	return p.Price * market.Money(qty) * (100 - discount) / 100
}

// Buy purchases qty units of a product for the trader. The market stock
// check runs first and its failure does not touch trader state; capital
// and storage checks run after the reservation and release it on failure.
func (s *Service) Buy(t *trader.Trader, id market.ProductID, qty int) error {
	p, ok := s.market.Get(id)
	if !ok {
		return marketservice.ErrUnknownProduct
	}

	if err := s.market.Reserve(id, qty); err != nil {
		return err
	}

	cost := s.Cost(t, p, qty)
	if t.Capital < cost {
		s.market.Release(id, qty)
		return ErrInsufficientCapital
	}
	if qty > t.AvailableStorage() {
		s.market.Release(id, qty)
		return ErrInsufficientStorage
	}

	t.Capital -= cost
	t.StorageUtilization += qty
	t.Inventory[id] += qty
	t.Record(cost, trader.TransactionShopping)
	return nil
}

// Sell sells qty units from the trader's warehouse at the current selling
// price. Sold goods do not return to the market pool.
func (s *Service) Sell(t *trader.Trader, id market.ProductID, qty int) error {
	p, ok := s.market.Get(id)
	if !ok {
		return marketservice.ErrUnknownProduct
	}

	held, ok := t.Inventory[id]
	if !ok {
		return ErrNotInStock
	}
	if held < qty {
		return ErrInsufficientInventory
	}

	revenue := p.SellingPrice() * market.Money(qty)
	t.Capital += revenue
	t.StorageUtilization -= qty
	if held == qty {
		delete(t.Inventory, id)
	} else {
		t.Inventory[id] -= qty
	}
	t.Record(revenue, trader.TransactionSelling)
	return nil
}

// ExpandStorage buys extraUnits of warehouse capacity at the fixed unit
// price.
func (s *Service) ExpandStorage(t *trader.Trader, extraUnits int) error {
	cost := s.cfg.StorageUnitPrice * market.Money(extraUnits)
	if t.Capital < cost {
		return ErrInsufficientCapital
	}
	t.Capital -= cost
	t.StorageCapacity += extraUnits
	t.Record(cost, trader.TransactionStorage)
	return nil
}

// ChargeStorageCosts debits the daily warehouse operating costs. Both
// occupied and idle units cost money, at different rates. The debit is
// unconditional and may push capital negative; bankruptcy is only
// evaluated at the next day boundary.
func (s *Service) ChargeStorageCosts(t *trader.Trader) {
	cost := market.Money(t.StorageUtilization)*s.cfg.OccupiedCostPerUnit +
		market.Money(t.AvailableStorage())*s.cfg.IdleCostPerUnit
	t.Capital -= cost
	t.Record(cost, trader.TransactionStorage)
}

// TakeLoan credits the trader with amount, due for repayment with
// interest after the configured term. At most one loan may be
// outstanding.
func (s *Service) TakeLoan(t *trader.Trader, amount market.Money, interestRate, day int) error {
	if t.Loan != nil {
		return ErrLoanAlreadyActive
	}
	t.Loan = &trader.Loan{
		Amount:       amount,
		InterestRate: interestRate,
		DueDay:       day + s.cfg.LoanTermDays,
	}
	t.Capital += amount
	t.Record(amount, trader.TransactionTakeLoan)
	return nil
}

// SettleLoan repays the trader's loan if one exists and falls due today.
// Otherwise it does nothing. The debit is unconditional and may push
// capital negative.
func (s *Service) SettleLoan(t *trader.Trader, currentDay int) {
	if t.Loan == nil || t.Loan.DueDay != currentDay {
		return
	}
	repayment := t.Loan.Repayment()
	t.Capital -= repayment
	t.Record(repayment, trader.TransactionPayLoan)
	t.Loan = nil
}

// RefreshDiscounts recomputes the trader's per-product discounts from the
// current inventory tiers. Run at the start of every turn.
func (s *Service) RefreshDiscounts(t *trader.Trader) {
	for _, p := range s.market.Products() {
		t.Discounts[p.ID] = trader.DiscountFor(t.Inventory[p.ID])
	}
}
