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

// WarehousePanel lists what the current trader holds and the revenue a
// sale would bring per unit.
type WarehousePanel struct {
	products      []*market.Product
	trader        *trader.Trader
	selectedIndex int
	focused       bool
	width         int
	height        int
}

// NewWarehousePanel creates a new warehouse panel.
func NewWarehousePanel(products []*market.Product) *WarehousePanel {
	return &WarehousePanel{products: products}
}

// SetTrader sets whose warehouse the panel displays.
func (p *WarehousePanel) SetTrader(t *trader.Trader) {
	p.trader = t
	p.selectedIndex = 0
}

// held returns the owned products in catalog order.
func (p *WarehousePanel) held() []*market.Product {
	if p.trader == nil {
		return nil
	}
	var out []*market.Product
	for _, prod := range p.products {
		if p.trader.Inventory[prod.ID] > 0 {
			out = append(out, prod)
		}
	}
	return out
}

// Selected returns the owned product under the cursor, or nil when the
// warehouse is empty.
func (p *WarehousePanel) Selected() *market.Product {
	held := p.held()
	if len(held) == 0 {
		return nil
	}
	if p.selectedIndex >= len(held) {
		return held[len(held)-1]
	}
	return held[p.selectedIndex]
}

// Update handles messages for the panel.
func (p *WarehousePanel) Update(msg tea.Msg) (*WarehousePanel, tea.Cmd) {
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
			if p.selectedIndex < len(p.held())-1 {
				p.selectedIndex++
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *WarehousePanel) View() string {
	var content strings.Builder

	if p.trader != nil {
		usage := fmt.Sprintf("Storage %d/%d", p.trader.StorageUtilization, p.trader.StorageCapacity)
		content.WriteString(styles.LabelStyle.Render(usage))
		content.WriteString("\n")
	}

	header := fmt.Sprintf("%-3s %-10s %8s %12s", "ID", "Product", "Owned", "Sells at")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	held := p.held()
	if len(held) == 0 {
		content.WriteString(styles.MutedStyle.Render("warehouse empty"))
	}
	for i, prod := range held {
		row := fmt.Sprintf("%-3d %-10s %8d %12s",
			prod.ID, prod.Name, p.trader.Inventory[prod.ID], styles.FormatMoney(prod.SellingPrice()))

		style := styles.RowStyle
		if i == p.selectedIndex && p.focused {
			style = styles.SelectedRowStyle
		}
		content.WriteString(style.Render(row))
		if i < len(held)-1 {
			content.WriteString("\n")
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("Warehouse", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *WarehousePanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *WarehousePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
