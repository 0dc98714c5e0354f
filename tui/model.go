// Package tui is the bubbletea front-end for the simulation. It maps key
// input to game actions, renders economy errors as a status line and
// re-prompts; all game rules live behind the game package.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/merchantcraft/internal/game"
	"github.com/zappabad/merchantcraft/internal/market"
	"github.com/zappabad/merchantcraft/tui/panels"
	"github.com/zappabad/merchantcraft/tui/styles"
)

// mode is what the model is currently asking the player for.
type mode int

const (
	modeMenu    mode = iota // browsing panels, choosing an action
	modeBuyQty              // quantity prompt for a purchase
	modeSellQty             // quantity prompt for a sale
	modeStorage             // size prompt for a storage expansion
	modeLoan                // loan menu
	modeReport              // end-of-day report, waiting for ack
	modeOver                // leaderboard
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusShop PanelFocus = iota
	FocusWarehouse
)

// Model is the main TUI application model.
type Model struct {
	game *game.Game

	shopPanel      *panels.ShopPanel
	warehousePanel *panels.WarehousePanel
	reportPanel    *panels.ReportPanel

	mode         mode
	focusedPanel PanelFocus
	qtyInput     textinput.Model
	pendingID    market.ProductID // product the quantity prompt applies to

	statusMsg string
	width     int
	height    int
	ready     bool
}

// NewModel creates the TUI model for a freshly started game.
func NewModel(g *game.Game) *Model {
	qty := textinput.New()
	qty.Placeholder = "quantity"
	qty.Width = 10
	qty.CharLimit = 9

	m := &Model{
		game:           g,
		shopPanel:      panels.NewShopPanel(g.Market.Products()),
		warehousePanel: panels.NewWarehousePanel(g.Market.Products()),
		reportPanel:    panels.NewReportPanel(),
		qtyInput:       qty,
	}
	m.syncTrader()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// syncTrader points the panels at whoever's turn it is.
func (m *Model) syncTrader() {
	if m.game.Phase() != game.PhaseTurn {
		return
	}
	t := m.game.Current()
	m.shopPanel.SetTrader(t)
	m.warehousePanel.SetTrader(t)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeMenu:
			return m.updateMenu(msg)
		case modeBuyQty, modeSellQty, modeStorage:
			return m.updatePrompt(msg)
		case modeLoan:
			return m.updateLoan(msg)
		case modeReport:
			if msg.String() == "enter" {
				m.game.AcknowledgeDay()
				m.enterMenu()
			}
			return m, nil
		case modeOver:
			if msg.String() == "q" || msg.String() == "enter" {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % 2

	case "b":
		if p := m.shopPanel.Selected(); p != nil {
			m.pendingID = p.ID
			m.startPrompt(modeBuyQty, fmt.Sprintf("buy %s", p.Name))
		}

	case "s":
		if p := m.warehousePanel.Selected(); p != nil {
			m.pendingID = p.ID
			m.startPrompt(modeSellQty, fmt.Sprintf("sell %s", p.Name))
		} else {
			m.statusMsg = "nothing to sell"
		}

	case "g":
		m.startPrompt(modeStorage, "expand storage by")

	case "l":
		m.mode = modeLoan
		m.statusMsg = ""

	case "e":
		m.apply(game.EndRoundAction{})

	default:
		var cmd tea.Cmd
		if m.focusedPanel == FocusShop {
			m.shopPanel.SetFocus(true)
			m.shopPanel, cmd = m.shopPanel.Update(msg)
		} else {
			m.warehousePanel.SetFocus(true)
			m.warehousePanel, cmd = m.warehousePanel.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) startPrompt(target mode, label string) {
	m.mode = target
	m.statusMsg = label
	m.qtyInput.SetValue("")
	m.qtyInput.Focus()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeMenu
		m.statusMsg = ""
		m.qtyInput.Blur()
		return m, nil

	case "enter":
		qty, err := strconv.Atoi(strings.TrimSpace(m.qtyInput.Value()))
		if err != nil || qty <= 0 {
			m.statusMsg = "enter a positive number"
			return m, nil
		}
		prompt := m.mode
		m.mode = modeMenu
		m.qtyInput.Blur()
		switch prompt {
		case modeBuyQty:
			m.apply(game.BuyAction{Product: m.pendingID, Qty: qty})
		case modeSellQty:
			m.apply(game.SellAction{Product: m.pendingID, Qty: qty})
		case modeStorage:
			m.apply(game.ExpandStorageAction{Units: qty})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.qtyInput, cmd = m.qtyInput.Update(msg)
	return m, cmd
}

func (m *Model) updateLoan(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeMenu
		m.statusMsg = ""
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		option, _ := strconv.Atoi(msg.String())
		if option <= len(m.game.LoanOptions()) {
			m.mode = modeMenu
			m.apply(game.TakeLoanAction{Option: option - 1})
		}
	}
	return m, nil
}

// apply runs a game action and routes the outcome to the status line or,
// on a phase change, to the report/leaderboard screens.
func (m *Model) apply(a game.Action) {
	if err := m.game.Apply(a); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = ""

	switch m.game.Phase() {
	case game.PhaseDayReport:
		names := make([]string, 0, len(m.game.Bankruptcies()))
		for _, t := range m.game.Bankruptcies() {
			names = append(names, fmt.Sprintf("%s (%s)", t.Name, t.Company))
		}
		m.reportPanel.SetReports(m.game.Reports(), names)
		m.mode = modeReport
	case game.PhaseOver:
		m.mode = modeOver
	default:
		m.syncTrader()
	}
}

func (m *Model) enterMenu() {
	m.mode = modeMenu
	m.statusMsg = ""
	if m.game.Phase() == game.PhaseOver {
		m.mode = modeOver
		return
	}
	m.syncTrader()
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case modeReport:
		m.reportPanel.SetSize(m.width, m.height)
		return m.reportPanel.View()
	case modeOver:
		return m.viewLeaderboard()
	}

	header := m.viewHeader()

	half := m.width / 2
	m.shopPanel.SetFocus(m.focusedPanel == FocusShop)
	m.warehousePanel.SetFocus(m.focusedPanel == FocusWarehouse)
	m.shopPanel.SetSize(half, m.height-4)
	m.warehousePanel.SetSize(m.width-half, m.height-4)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.shopPanel.View(),
		m.warehousePanel.View(),
	)

	var footer string
	switch m.mode {
	case modeBuyQty, modeSellQty, modeStorage:
		footer = styles.LabelStyle.Render(m.statusMsg+": ") + m.qtyInput.View()
	case modeLoan:
		footer = m.viewLoanMenu()
	default:
		footer = m.viewStatusBar()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) viewHeader() string {
	t := m.game.Current()
	header := fmt.Sprintf("%s of %s │ %s │ Storage %d/%d │ Day %d/%d",
		t.Name, t.Company,
		styles.FormatMoney(t.Capital),
		t.StorageUtilization, t.StorageCapacity,
		m.game.Day(), m.game.DayLimit(),
	)
	if t.Loan != nil {
		header += fmt.Sprintf(" │ loan %s due day %d",
			styles.FormatMoney(t.Loan.Repayment()), t.Loan.DueDay)
	}
	return styles.HighlightStyle.Render(header)
}

func (m *Model) viewStatusBar() string {
	help := []string{
		styles.StatusBarKeyStyle.Render("b") + styles.StatusBarDescStyle.Render(" buy"),
		styles.StatusBarKeyStyle.Render("s") + styles.StatusBarDescStyle.Render(" sell"),
		styles.StatusBarKeyStyle.Render("g") + styles.StatusBarDescStyle.Render(" expand storage"),
		styles.StatusBarKeyStyle.Render("l") + styles.StatusBarDescStyle.Render(" loan"),
		styles.StatusBarKeyStyle.Render("e") + styles.StatusBarDescStyle.Render(" end round"),
		styles.StatusBarKeyStyle.Render("q") + styles.StatusBarDescStyle.Render(" quit"),
	}
	bar := strings.Join(help, " │ ")
	if m.statusMsg != "" {
		bar += " │ " + styles.LossStyle.Render(m.statusMsg)
	}
	return styles.StatusBarStyle.Width(m.width).Render(bar)
}

func (m *Model) viewLoanMenu() string {
	var b strings.Builder
	b.WriteString(styles.LabelStyle.Render("Take a loan: "))
	for i, opt := range m.game.LoanOptions() {
		b.WriteString(fmt.Sprintf("%s %s at %d%%  ",
			styles.StatusBarKeyStyle.Render(fmt.Sprintf("%d)", i+1)),
			styles.FormatMoney(opt.Amount), opt.InterestRate))
	}
	b.WriteString(styles.MutedStyle.Render("esc to cancel"))
	return styles.StatusBarStyle.Width(m.width).Render(b.String())
}

func (m *Model) viewLeaderboard() string {
	var content strings.Builder
	content.WriteString(styles.RenderTitle("Final Standings", true))
	content.WriteString("\n")
	for i, s := range m.game.Leaderboard() {
		row := fmt.Sprintf("%2d. %-12s %-20s %12s",
			i+1, s.Name, s.Company, styles.FormatMoney(s.Capital))
		style := styles.RowStyle
		if i == 0 {
			style = styles.ProfitStyle
		}
		content.WriteString(style.Render(row))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(styles.MutedStyle.Render("press q to exit"))
	return styles.FocusedPanelStyle.Width(m.width - 2).Render(content.String())
}
