// Package game owns the day-cycle orchestration: per-trader turns, the
// end-of-day settlement sequence, bankruptcy removal, and the final
// leaderboard. All economy state changes flow through the economy and
// market services; the game only sequences them.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	economyservice "github.com/zappabad/merchantcraft/internal/economy/service"
	"github.com/zappabad/merchantcraft/internal/market"
	"github.com/zappabad/merchantcraft/internal/market/catalog"
	marketservice "github.com/zappabad/merchantcraft/internal/market/service"
	"github.com/zappabad/merchantcraft/internal/trader"
)

var ErrUnknownLoanOption = errors.New("unknown loan option")

// Phase is the orchestrator state visible to the front-end.
type Phase int

const (
	// PhaseTurn: the current trader is choosing actions.
	PhaseTurn Phase = iota
	// PhaseDayReport: the day just closed; reports are ready and the
	// front-end must acknowledge before the next day starts.
	PhaseDayReport
	// PhaseOver: day limit reached or everyone bankrupt.
	PhaseOver
)

// Standing is one leaderboard row.
type Standing struct {
	Name    string
	Company string
	Capital market.Money
}

// Game is the simulation context: the single product catalog, the day
// counter, and the trader roster. Everything is driven synchronously by
// Apply; there is no internal concurrency.
type Game struct {
	cfg Config

	Market  *marketservice.MarketService
	Economy *economyservice.Service

	roster []*trader.Trader // active traders in turn order
	all    []*trader.Trader // every trader ever created, insertion order

	day   int
	turn  int // index into roster
	phase Phase

	reports    []Report         // built at day close, until acknowledged
	bankrupted []*trader.Trader // removed at the most recent day close
}

// NewGame builds the market from catalog entries and seats the traders.
func NewGame(entries []catalog.Entry, cfg Config) (*Game, error) {
	if len(cfg.Traders) == 0 {
		return nil, errors.New("at least one trader is required")
	}
	if cfg.Days < 1 {
		return nil, fmt.Errorf("day limit %d, want >= 1", cfg.Days)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	ms := marketservice.NewMarketService(entries, cfg.Market, rng)

	g := &Game{
		cfg:     cfg,
		Market:  ms,
		Economy: economyservice.NewService(ms, cfg.Economy),
		day:     1,
	}

	for i, spec := range cfg.Traders {
		t := trader.NewTrader(
			trader.TraderID(i+1),
			spec.Name,
			spec.Company,
			cfg.Difficulty.StartingCapital(),
			cfg.StartingStorage,
		)
		g.roster = append(g.roster, t)
		g.all = append(g.all, t)
	}

	g.beginTurn()
	return g, nil
}

// Day returns the current day number, starting at 1.
func (g *Game) Day() int { return g.day }

// DayLimit returns the configured final day.
func (g *Game) DayLimit() int { return g.cfg.Days }

// Phase returns the current orchestrator phase.
func (g *Game) Phase() Phase { return g.phase }

// Current returns the trader whose turn it is. Only valid in PhaseTurn.
func (g *Game) Current() *trader.Trader { return g.roster[g.turn] }

// LoanOptions returns the fixed loan menu.
func (g *Game) LoanOptions() []LoanOption { return g.cfg.LoanOptions }

// Reports returns the daily reports built at the most recent day close.
func (g *Game) Reports() []Report { return g.reports }

// Bankruptcies returns the traders removed at the most recent day close.
func (g *Game) Bankruptcies() []*trader.Trader { return g.bankrupted }

// Apply executes one turn action for the current trader. Economy errors
// are expected, turn-level conditions: state is unchanged (except the
// documented buy compensation) and the caller re-prompts.
func (g *Game) Apply(a Action) error {
	if g.phase != PhaseTurn {
		return fmt.Errorf("no turn in progress (phase %d)", g.phase)
	}

	t := g.Current()
	switch a := a.(type) {
	case BuyAction:
		return g.Economy.Buy(t, a.Product, a.Qty)
	case SellAction:
		return g.Economy.Sell(t, a.Product, a.Qty)
	case ExpandStorageAction:
		return g.Economy.ExpandStorage(t, a.Units)
	case TakeLoanAction:
		if a.Option < 0 || a.Option >= len(g.cfg.LoanOptions) {
			return ErrUnknownLoanOption
		}
		opt := g.cfg.LoanOptions[a.Option]
		return g.Economy.TakeLoan(t, opt.Amount, opt.InterestRate, g.day)
	case EndRoundAction:
		g.advanceTurn()
		return nil
	default:
		return fmt.Errorf("unhandled action %T", a)
	}
}

// AcknowledgeDay moves on from the day report to the first turn of the
// new day.
func (g *Game) AcknowledgeDay() {
	if g.phase != PhaseDayReport {
		return
	}
	g.phase = PhaseTurn
	g.beginTurn()
}

// beginTurn recomputes the current trader's discounts from inventory.
func (g *Game) beginTurn() {
	g.Economy.RefreshDiscounts(g.Current())
}

func (g *Game) advanceTurn() {
	g.turn++
	if g.turn < len(g.roster) {
		g.beginTurn()
		return
	}
	g.turn = 0
	g.closeDay()
}

// closeDay runs the fixed end-of-day sequence. The order is load-bearing:
// bankruptcy removal, end check, rotation, production and price drift,
// storage costs, loan settlement for the new day, then the day counter.
func (g *Game) closeDay() {
	// 1-2. Flag and remove bankrupt traders; their final capital stays
	// on record for the leaderboard.
	g.bankrupted = g.bankrupted[:0]
	active := g.roster[:0]
	for _, t := range g.roster {
		if t.Bankrupt() {
			g.bankrupted = append(g.bankrupted, t)
			t.Transactions = nil
		} else {
			active = append(active, t)
		}
	}
	g.roster = active

	// 3. End of game: empty roster or day limit reached.
	if len(g.roster) == 0 || g.day >= g.cfg.Days {
		g.reports = nil
		g.phase = PhaseOver
		return
	}

	// 4. Rotate the turn order: head of the roster moves to the tail.
	g.roster = append(g.roster[1:], g.roster[0])

	// 5. Production, then price drift, per product.
	g.Market.AdvanceDay()

	// 6. Warehouse operating costs for everyone still in the game.
	for _, t := range g.roster {
		g.Economy.ChargeStorageCosts(t)
	}

	// 7. Loan settlement against the new day number.
	for _, t := range g.roster {
		g.Economy.SettleLoan(t, g.day+1)
	}

	// 8. Advance the day counter.
	g.day++

	// Build the daily reports from the transaction lists, then clear
	// them for the new day.
	g.reports = g.reports[:0]
	for _, t := range g.roster {
		g.reports = append(g.reports, buildReport(t, g.day-1))
		t.Transactions = nil
	}
	g.phase = PhaseDayReport
}

// Leaderboard ranks every trader ever seated by final capital, ties
// broken by seating order.
func (g *Game) Leaderboard() []Standing {
	standings := make([]Standing, 0, len(g.all))
	for _, t := range g.all {
		standings = append(standings, Standing{
			Name:    t.Name,
			Company: t.Company,
			Capital: t.Capital,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Capital > standings[j].Capital
	})
	return standings
}
