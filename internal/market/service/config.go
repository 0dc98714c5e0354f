package service

// Config holds configuration for the market service.
type Config struct {
	// ScarcityThreshold is the fraction of max availability below which a
	// product counts as scarce and its price drifts mostly upward.
	ScarcityThreshold float64
	// AbundanceThreshold is the fraction of max availability at or above
	// which a product counts as abundant and its price drifts mostly
	// downward.
	AbundanceThreshold float64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		ScarcityThreshold:  0.25,
		AbundanceThreshold: 0.8,
	}
}
