package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/merchantcraft/internal/market"
	"github.com/zappabad/merchantcraft/internal/trader"
	"github.com/zappabad/merchantcraft/tui/styles"
)

// ShopPanel lists the market's products with the current trader's
// discount tiers applied.
type ShopPanel struct {
	products      []*market.Product
	trader        *trader.Trader
	selectedIndex int
	focused       bool
	width         int
	height        int
}

// NewShopPanel creates a new shop panel.
func NewShopPanel(products []*market.Product) *ShopPanel {
	return &ShopPanel{products: products}
}

// SetTrader sets whose discounts the panel displays.
func (p *ShopPanel) SetTrader(t *trader.Trader) {
	p.trader = t
}

// Selected returns the product under the cursor.
func (p *ShopPanel) Selected() *market.Product {
	if len(p.products) == 0 {
		return nil
	}
	return p.products[p.selectedIndex]
}

// Update handles messages for the panel.
func (p *ShopPanel) Update(msg tea.Msg) (*ShopPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.products)-1 {
				p.selectedIndex++
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *ShopPanel) View() string {
	var content strings.Builder

	header := fmt.Sprintf("%-3s %-10s %10s %12s %9s",
		"ID", "Product", "Price", "Stock", "Discount")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	for i, prod := range p.products {
		discount := "-"
		if p.trader != nil {
			if d := p.trader.Discounts[prod.ID]; d > 0 {
				discount = fmt.Sprintf("%d%%", d)
			}
		}
		stock := fmt.Sprintf("%d/%d", prod.Availability, prod.MaxAvailability())
		row := fmt.Sprintf("%-3d %-10s %10s %12s %9s",
			prod.ID, prod.Name, styles.FormatMoney(prod.Price), stock, discount)

		style := styles.RowStyle
		if i == p.selectedIndex && p.focused {
			style = styles.SelectedRowStyle
		}
		content.WriteString(style.Render(row))
		if i < len(p.products)-1 {
			content.WriteString("\n")
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("Market", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *ShopPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ShopPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
