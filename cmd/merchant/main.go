package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/merchantcraft/internal/game"
	"github.com/zappabad/merchantcraft/internal/market/catalog"
	"github.com/zappabad/merchantcraft/tui"
)

func main() {
	var (
		productsPath = flag.String("products", "", "product catalog file (YAML); embedded default when empty")
		days         = flag.Int("days", 30, "number of simulated days")
		difficulty   = flag.String("difficulty", "normal", "difficulty: easy, normal or hard")
		traders      = flag.String("traders", "", "comma-separated Name:Company pairs")
		seed         = flag.Int64("seed", 0, "market seed; 0 picks one from the clock")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := game.DefaultConfig()
	cfg.Days = *days

	diff, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		log.Error("bad difficulty", "err", err)
		os.Exit(1)
	}
	cfg.Difficulty = diff

	if *traders != "" {
		cfg.Traders = parseTraders(*traders)
	}

	cfg.Seed = *seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	entries := catalog.Default()
	if *productsPath != "" {
		entries, err = catalog.Load(*productsPath)
		if err != nil {
			log.Error("catalog load failed", "path", *productsPath, "err", err)
			os.Exit(1)
		}
	}
	log.Info("catalog loaded", "products", len(entries))

	g, err := game.NewGame(entries, cfg)
	if err != nil {
		log.Error("game setup failed", "err", err)
		os.Exit(1)
	}
	log.Info("game starting",
		"traders", len(cfg.Traders),
		"days", cfg.Days,
		"difficulty", cfg.Difficulty.String(),
		"seed", cfg.Seed,
	)

	if _, err := tea.NewProgram(tui.NewModel(g), tea.WithAltScreen()).Run(); err != nil {
		log.Error("ui error", "err", err)
		os.Exit(1)
	}

	// Echo the standings after the TUI releases the terminal.
	for i, s := range g.Leaderboard() {
		log.Info("final standing", "rank", i+1, "trader", s.Name, "company", s.Company, "capital", int64(s.Capital))
	}
}

// parseTraders reads "Ada:Lovelace Trading,Blaise:Pascal & Sons".
func parseTraders(s string) []game.TraderSpec {
	var specs []game.TraderSpec
	for _, part := range strings.Split(s, ",") {
		name, company, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			company = name + " & Co"
		}
		specs = append(specs, game.TraderSpec{
			Name:    strings.TrimSpace(name),
			Company: strings.TrimSpace(company),
		})
	}
	return specs
}
