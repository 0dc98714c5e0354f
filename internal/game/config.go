package game

import (
	"fmt"
	"strings"

	economyservice "github.com/zappabad/merchantcraft/internal/economy/service"
	"github.com/zappabad/merchantcraft/internal/market"
	marketservice "github.com/zappabad/merchantcraft/internal/market/service"
)

// Difficulty selects the starting capital of every trader.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// StartingCapital returns the capital a trader begins with.
func (d Difficulty) StartingCapital() market.Money {
	switch d {
	case DifficultyEasy:
		return 15_000
	case DifficultyHard:
		return 7_000
	default:
		return 10_000
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "normal"
	}
}

// ParseDifficulty maps a flag value to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return DifficultyEasy, nil
	case "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q", s)
	}
}

// LoanOption is one entry of the fixed loan menu.
type LoanOption struct {
	Amount       market.Money
	InterestRate int // percent
}

// TraderSpec names one participating trader.
type TraderSpec struct {
	Name    string
	Company string
}

// Config holds configuration for the game.
type Config struct {
	// Days is the day limit; the game ends once the counter reaches it.
	Days int
	// Difficulty sets the starting capital.
	Difficulty Difficulty
	// StartingStorage is the warehouse capacity every trader begins with.
	StartingStorage int
	// Traders lists the participants in seating order.
	Traders []TraderSpec
	// LoanOptions is the fixed menu of amount/interest pairs.
	LoanOptions []LoanOption
	// Seed drives all market randomness; a fixed seed replays a game.
	Seed int64
	// Market is the configuration for the market service.
	Market marketservice.Config
	// Economy is the configuration for the economy service.
	Economy economyservice.Config
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Days:            30,
		Difficulty:      DifficultyNormal,
		StartingStorage: 100,
		Traders: []TraderSpec{
			{Name: "Ada", Company: "Lovelace Trading"},
			{Name: "Blaise", Company: "Pascal & Sons"},
		},
		LoanOptions: []LoanOption{
			{Amount: 5_000, InterestRate: 3},
			{Amount: 10_000, InterestRate: 5},
			{Amount: 25_000, InterestRate: 8},
		},
		Market:  marketservice.DefaultConfig(),
		Economy: economyservice.DefaultConfig(),
	}
}
