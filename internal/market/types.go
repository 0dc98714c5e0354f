package market

import "math"

// ProductID uniquely identifies a product. IDs are assigned sequentially
// from 1 when the market is created and stay stable for the process lifetime.
type ProductID int64

// Money is an amount of game currency in whole units.
type Money int64

// Product represents a tradeable good on the market.
type Product struct {
	ID         ProductID
	Name       string
	Durability int // days a produced unit stays sellable; sizes max availability

	BasePrice Money
	Price     Money

	MinProductionRate int // per-day production draw lower bound, may be negative (spoilage)
	MaxProductionRate int // per-day production draw upper bound, at least 1

	Availability int // units currently in market stock
}

// MaxAvailability returns the stock ceiling for this product.
func (p *Product) MaxAvailability() int {
	return p.MaxProductionRate * p.Durability
}

// SellingPrice is what a trader receives per unit when selling back to the
// market: 80% of the current purchase price, rounded up.
func (p *Product) SellingPrice() Money {
	return Money(math.Ceil(float64(p.Price) * 0.8))
}

// MinPrice is the floor of the allowed price band: 25% of base, rounded up.
func (p *Product) MinPrice() Money {
	return Money(math.Ceil(float64(p.BasePrice) * 0.25))
}

// MaxPrice is the ceiling of the allowed price band: 3x base.
func (p *Product) MaxPrice() Money {
	return 3 * p.BasePrice
}
