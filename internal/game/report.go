package game

import (
	"github.com/zappabad/merchantcraft/internal/market"
	"github.com/zappabad/merchantcraft/internal/trader"
)

// Report summarizes one trader's day, derived purely from the day's
// transaction list before it is cleared.
type Report struct {
	TraderName string
	Company    string
	Day        int

	PreviousCapital market.Money
	ShoppingCosts   market.Money
	SellingRevenue  market.Money
	StorageCosts    market.Money
	LoanCost        market.Money // zero when no loan was repaid
	CurrentCapital  market.Money
}

func buildReport(t *trader.Trader, day int) Report {
	r := Report{
		TraderName:     t.Name,
		Company:        t.Company,
		Day:            day,
		CurrentCapital: t.Capital,
	}

	var net market.Money
	for _, tx := range t.Transactions {
		switch tx.Kind {
		case trader.TransactionShopping:
			r.ShoppingCosts += tx.Amount
		case trader.TransactionSelling:
			r.SellingRevenue += tx.Amount
		case trader.TransactionStorage:
			r.StorageCosts += tx.Amount
		case trader.TransactionPayLoan:
			r.LoanCost += tx.Amount
		}
		net += tx.CapitalDelta()
	}
	r.PreviousCapital = t.Capital - net
	return r
}
