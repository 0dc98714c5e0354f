package service

import (
	"errors"
	"math"
	"math/rand"

	"github.com/zappabad/merchantcraft/internal/market"
	"github.com/zappabad/merchantcraft/internal/market/catalog"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrOutOfStock     = errors.New("not enough stock on the market")
)

// Price drift draw bounds in percent of base price, per scarcity band.
const (
	scarceDriftMin, scarceDriftMax     = -10, 30
	stableDriftMin, stableDriftMax     = -5, 5
	abundantDriftMin, abundantDriftMax = -10, 6
)

// MarketService owns the product list and applies daily production and
// price drift. It is deterministic given its rng: no goroutines, channels,
// or time calls, so a fixed seed reproduces a full game.
type MarketService struct {
	cfg      Config
	rng      *rand.Rand
	products []*market.Product
	byID     map[market.ProductID]*market.Product
}

// NewMarketService builds the market from catalog entries. Products get
// sequential IDs starting at 1, open at their base price, and start fully
// stocked.
func NewMarketService(entries []catalog.Entry, cfg Config, rng *rand.Rand) *MarketService {
	if cfg.ScarcityThreshold <= 0 {
		cfg.ScarcityThreshold = DefaultConfig().ScarcityThreshold
	}
	if cfg.AbundanceThreshold <= 0 {
		cfg.AbundanceThreshold = DefaultConfig().AbundanceThreshold
	}

	s := &MarketService{
		cfg:      cfg,
		rng:      rng,
		products: make([]*market.Product, 0, len(entries)),
		byID:     make(map[market.ProductID]*market.Product, len(entries)),
	}

	for i, e := range entries {
		p := &market.Product{
			ID:                market.ProductID(i + 1),
			Name:              e.Name,
			Durability:        e.Durability,
			BasePrice:         market.Money(e.BasePrice),
			Price:             market.Money(e.BasePrice),
			MinProductionRate: e.MinProductionRate,
			MaxProductionRate: e.MaxProductionRate,
		}
		p.Availability = p.MaxAvailability()
		s.products = append(s.products, p)
		s.byID[p.ID] = p
	}

	return s
}

// Products returns all products in catalog order.
func (s *MarketService) Products() []*market.Product {
	return s.products
}

// Get returns the product with the given id.
func (s *MarketService) Get(id market.ProductID) (*market.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Reserve takes qty units out of market stock ahead of a purchase. It is
// the market-side check of a buy and runs before any trader-side check;
// on failure nothing has changed.
func (s *MarketService) Reserve(id market.ProductID, qty int) error {
	p, ok := s.byID[id]
	if !ok {
		return ErrUnknownProduct
	}
	if p.Availability < qty {
		return ErrOutOfStock
	}
	p.Availability -= qty
	return nil
}

// Release puts a reservation back into market stock. Used to compensate a
// reservation when the purchase fails on a trader-side check afterwards.
func (s *MarketService) Release(id market.ProductID, qty int) {
	if p, ok := s.byID[id]; ok {
		p.Availability += qty
	}
}

// AdvanceDay runs production and then price drift for every product, in
// that order, once per product.
func (s *MarketService) AdvanceDay() {
	for _, p := range s.products {
		s.produce(p)
		s.driftPrice(p)
	}
}

// produce adds a uniform draw in [minRate, maxRate] to availability.
// Negative draws model spoilage; the result is clamped to [0, max].
func (s *MarketService) produce(p *market.Product) {
	p.Availability += s.drawBetween(p.MinProductionRate, p.MaxProductionRate)
	if p.Availability < 0 {
		p.Availability = 0
	}
	if max := p.MaxAvailability(); p.Availability > max {
		p.Availability = max
	}
}

// driftPrice moves the price by a random percentage of base price whose
// range depends on how scarce the product currently is. The absolute
// change is rounded up when positive and down when negative, which biases
// prices upward over many days. The result is clamped into the band
// [MinPrice, MaxPrice].
func (s *MarketService) driftPrice(p *market.Product) {
	max := float64(p.MaxAvailability())
	avail := float64(p.Availability)

	var pct int
	switch {
	case avail < s.cfg.ScarcityThreshold*max:
		pct = s.drawBetween(scarceDriftMin, scarceDriftMax)
	case avail > s.cfg.ScarcityThreshold*max && avail < s.cfg.AbundanceThreshold*max:
		pct = s.drawBetween(stableDriftMin, stableDriftMax)
	default:
		pct = s.drawBetween(abundantDriftMin, abundantDriftMax)
	}

	change := float64(pct) / 100 * float64(p.BasePrice)
	if change < 0 {
		p.Price += market.Money(math.Floor(change))
	} else {
		p.Price += market.Money(math.Ceil(change))
	}

	if min := p.MinPrice(); p.Price < min {
		p.Price = min
	}
	if max := p.MaxPrice(); p.Price > max {
		p.Price = max
	}
}

// drawBetween returns a uniform int in [lo, hi] inclusive.
func (s *MarketService) drawBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}
