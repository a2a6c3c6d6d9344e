package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/pstats/internal/ui/components"
	"github.com/j-veylop/pstats/internal/ui/styles"
)

// View renders the dashboard.
func (m *Model) View() string {
	if m.fatal != nil {
		return styles.CenterBoth(
			styles.ErrorTextStyle.Render("Error: "+m.fatal.Error())+"\n\n"+
				styles.HelpStyle.Render("r to retry, q to quit"),
			m.width, m.height,
		)
	}

	if len(m.sites) == 0 {
		return styles.CenterBoth(m.spinner.ViewWithLabel(), m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSiteList(), m.renderStatsCard()))
	b.WriteString("\n")
	b.WriteString(m.renderChart())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Plausible Stats")
	period := styles.PeriodStyle.Render(m.period.Label())
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", period)
}

func (m *Model) renderSiteList() string {
	var rows []string
	for i, site := range m.sites {
		label := site.Domain
		if _, failed := m.siteErrs[site.Domain]; failed {
			label += " " + styles.ErrorTextStyle.Render("!")
		}

		if i == m.selected {
			rows = append(rows, styles.SelectedListItemStyle.Render(label))
		} else {
			rows = append(rows, styles.ListItemStyle.Render(label))
		}
	}

	card := styles.CardTitleStyle.Render(fmt.Sprintf("Sites (%d)", len(m.sites))) +
		"\n" + strings.Join(rows, "\n")
	return styles.CardStyle.Render(card)
}

func (m *Model) renderStatsCard() string {
	domain := m.selectedDomain()
	title := styles.CardTitleStyle.Render(domain)

	if msg, failed := m.siteErrs[domain]; failed {
		return styles.CardStyle.Render(title + "\n" + styles.ErrorTextStyle.Render(msg))
	}

	summary, ok := m.stats[domain]
	if !ok {
		return styles.CardStyle.Render(title + "\n" + m.spinner.ViewWithLabel())
	}

	var rows []string
	for _, name := range summary.Names() {
		value, _ := summary.Get(name)
		rows = append(rows,
			styles.MetricLabelStyle.Render(metricLabel(name))+
				styles.MetricValueStyle.Render(formatValue(name, value)))
	}
	return styles.CardStyle.Render(title + "\n" + strings.Join(rows, "\n"))
}

func (m *Model) renderChart() string {
	if len(m.series) == 0 {
		return styles.HelpStyle.Render("  Loading chart...")
	}

	data := make([]float64, len(m.series))
	for i, p := range m.series {
		data[i] = p.Value
	}

	width := m.width - 10
	height := m.height - 20
	if m.height > 0 && height < 5 {
		// Not enough rows for a chart, fall back to a sparkline.
		return "  " + components.RenderSparkline(data, width)
	}
	return components.RenderLineChart(data, width, height, "visitors")
}

func (m *Model) renderHelp() string {
	bindings := []key.Binding{
		m.keys.NextSite,
		m.keys.PrevSite,
		m.keys.NextPeriod,
		m.keys.Refresh,
		m.keys.Quit,
	}

	var parts []string
	for _, b := range bindings {
		parts = append(parts,
			styles.HelpKeyStyle.Render(b.Help().Key)+" "+
				styles.HelpDescStyle.Render(b.Help().Desc))
	}
	return styles.HelpStyle.Render(strings.Join(parts, "  "))
}

// metricLabel converts an API metric name into a display label.
func metricLabel(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// formatValue renders a metric value, with units for the time metric.
func formatValue(name string, v float64) string {
	if name == "visit_duration" {
		return strconv.FormatFloat(v, 'f', -1, 64) + "s"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
