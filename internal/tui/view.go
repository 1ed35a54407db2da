package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/rgehrsitz/taxpilot/internal/output"
	"github.com/rgehrsitz/taxpilot/internal/tui/components"
	"github.com/rgehrsitz/taxpilot/internal/wizard"
)

// View renders the current state of the application
func (m Model) View() string {
	form := m.renderForm()
	panel := m.renderEstimate()

	body := lipgloss.JoinHorizontal(lipgloss.Top, ActiveBorderStyle.Render(form), "  ", BorderStyle.Render(panel))

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		"",
		body,
		"",
		m.renderFeedback(),
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render(fmt.Sprintf("TaxPilot %d", m.engine.Table.Year))
	progress := components.NewProgressBar(m.step+1, wizard.Count()).
		WithLabel(m.Step().Title).
		Render()
	return lipgloss.JoinVertical(lipgloss.Left, title, progress)
}

func (m Model) renderForm() string {
	info := m.Step()
	lines := []string{
		TitleStyle.Render(info.Title),
		SubtitleStyle.Render(info.Hint),
		"",
	}

	if len(m.fields) == 0 {
		lines = append(lines, m.renderReview())
		return strings.Join(lines, "\n")
	}

	for i, f := range m.fields {
		label := LabelStyle.Render(f.Label)
		if i == m.focus {
			label = FocusedLabelStyle.Render("› " + f.Label)
		}
		lines = append(lines, label+m.inputs[i].View())
	}
	return strings.Join(lines, "\n")
}

// renderReview shows the Form 1040 lines on the last step.
func (m Model) renderReview() string {
	draft := m.session.Draft()
	status := m.session.Status()
	report := output.NewReport(m.engine.Table.Year, draft, m.engine.Worksheet(draft), &status)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s  %s\n", draft.FullName(), draft.FilingStatus.Label()))
	for _, sec := range output.PreviewSections(report) {
		sb.WriteString("\n" + SubtitleStyle.Render(sec.Title) + "\n")
		for _, line := range sec.Lines {
			sb.WriteString(fmt.Sprintf("%-5s %-34s %12s\n", line.Number, line.Label, money.FormatCurrency(line.Amount)))
		}
	}
	sb.WriteString("\nReturn status: " + string(status.Step))
	return sb.String()
}

func (m Model) renderEstimate() string {
	r := m.result
	balance := components.NewMetricCard(output.BalanceLabel(r), FormatCurrency(r.RefundOrOwed)).
		WithTrend(r.IsRefund || r.RefundOrOwed.IsZero(), "estimate")

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Live estimate"),
		"",
		components.MetricRow(
			components.NewMetricCard("Total income", FormatCurrency(r.TotalIncome)),
			components.NewMetricCard("Taxable income", FormatCurrency(r.TaxableIncome)),
		),
		"",
		components.MetricRow(
			components.NewMetricCard("Federal tax", FormatCurrency(r.FederalTax)),
			components.NewMetricCard("State tax", FormatCurrency(r.StateTax)),
		),
		"",
		components.MetricRow(
			components.NewMetricCard("Self-employment", FormatCurrency(r.SelfEmploymentTax)),
			components.NewMetricCard("Total tax", FormatCurrency(r.TotalTax)),
		),
		"",
		balance.Render(),
	)
}

func (m Model) renderFeedback() string {
	var lines []string
	if m.err != nil {
		lines = append(lines, ErrorStyle.Render("Error: "+m.err.Error()))
	}
	for _, issue := range m.issues {
		lines = append(lines, ErrorStyle.Render("• "+issue.Message))
	}
	if m.notice != "" {
		lines = append(lines, InfoStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	for _, b := range m.keys.shortcuts() {
		h := b.Help()
		shortcuts = append(shortcuts, StatusKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}
