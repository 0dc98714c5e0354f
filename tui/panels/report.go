package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/merchantcraft/internal/game"
	"github.com/zappabad/merchantcraft/internal/market"
	"github.com/zappabad/merchantcraft/tui/styles"
)

// ReportPanel renders the end-of-day reports and any bankruptcy notices.
type ReportPanel struct {
	reports      []game.Report
	bankruptcies []string
	width        int
}

// NewReportPanel creates a new report panel.
func NewReportPanel() *ReportPanel {
	return &ReportPanel{}
}

// SetReports sets the reports for the day that just closed.
func (p *ReportPanel) SetReports(reports []game.Report, bankruptcies []string) {
	p.reports = reports
	p.bankruptcies = bankruptcies
}

// SetSize sets the panel dimensions.
func (p *ReportPanel) SetSize(width, _ int) {
	p.width = width
}

// View renders the panel.
func (p *ReportPanel) View() string {
	var content strings.Builder

	for _, name := range p.bankruptcies {
		content.WriteString(styles.LossStyle.Render(fmt.Sprintf("%s is bankrupt!", name)))
		content.WriteString("\n\n")
	}

	for i, r := range p.reports {
		content.WriteString(styles.HighlightStyle.Render(
			fmt.Sprintf("%s (%s) — day %d", r.TraderName, r.Company, r.Day)))
		content.WriteString("\n")
		content.WriteString(reportLine("Capital at start of day", r.PreviousCapital))
		content.WriteString(reportLine("Shopping costs", r.ShoppingCosts))
		content.WriteString(reportLine("Selling revenue", r.SellingRevenue))
		content.WriteString(reportLine("Storage costs", r.StorageCosts))
		if r.LoanCost > 0 {
			content.WriteString(reportLine("Loan repaid", r.LoanCost))
		}
		content.WriteString(reportLine("Current capital", r.CurrentCapital))
		if i < len(p.reports)-1 {
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(styles.MutedStyle.Render("press enter to start the next day"))

	title := styles.RenderTitle("Daily Report", true)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return styles.FocusedPanelStyle.Width(p.width - 2).Render(panel)
}

func reportLine(label string, amount market.Money) string {
	return fmt.Sprintf("%s %s\n",
		styles.LabelStyle.Render(fmt.Sprintf("%-26s", label+":")),
		styles.FormatMoney(amount))
}
