package service

import "github.com/zappabad/merchantcraft/internal/market"

// Config holds the fixed unit prices of the economy service.
type Config struct {
	// StorageUnitPrice is the one-off cost per unit of storage expansion.
	StorageUnitPrice market.Money
	// OccupiedCostPerUnit is the daily operating cost per occupied
	// storage unit.
	OccupiedCostPerUnit market.Money
	// IdleCostPerUnit is the daily operating cost per free storage unit.
	IdleCostPerUnit market.Money
	// LoanTermDays is the number of days until a loan falls due.
	LoanTermDays int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		StorageUnitPrice:    50,
		OccupiedCostPerUnit: 5,
		IdleCostPerUnit:     1,
		LoanTermDays:        7,
	}
}
