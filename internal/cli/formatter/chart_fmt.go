package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ChartMetric is one series of the trend chart. Value returns the figure
// on the shared chart axis; Display renders it in its natural unit.
type ChartMetric struct {
	Key     string
	Label   string
	Style   lipgloss.Style
	Value   func(domain.ChartPoint) float64
	Display func(domain.ChartPoint) string
}

// ChartMetrics lists every series in display order.
var ChartMetrics = []ChartMetric{
	{
		Key: "projection", Label: "Projected pension", Style: StyleGreen,
		Value:   func(p domain.ChartPoint) float64 { return p.Projection },
		Display: func(p domain.ChartPoint) string { return FormatEuro(p.Projection) },
	},
	{
		Key: "claim", Label: "Current claim", Style: StyleBlue,
		Value:   func(p domain.ChartPoint) float64 { return p.CurrentClaim },
		Display: func(p domain.ChartPoint) string { return FormatEuro(p.CurrentClaim) },
	},
	{
		Key: "disability", Label: "Disability pension", Style: StyleYellow,
		Value:   func(p domain.ChartPoint) float64 { return p.DisabilityPension },
		Display: func(p domain.ChartPoint) string { return FormatEuro(p.DisabilityPension) },
	},
	{
		Key: "points", Label: "Entgeltpunkte ×100", Style: StylePurple,
		Value:   func(p domain.ChartPoint) float64 { return p.ScaledEntgeltpunkte },
		Display: func(p domain.ChartPoint) string { return FormatPoints(p.ScaledEntgeltpunkte / 100) },
	},
	{
		Key: "income", Label: "Gross income (k€)", Style: StyleAqua,
		Value:   func(p domain.ChartPoint) float64 { return p.GrossIncomeThousands },
		Display: func(p domain.ChartPoint) string { return FormatEuro(p.GrossIncomeThousands * 1000) },
	},
	{
		Key: "contribution", Label: "Contributions (k€)", Style: StyleRed,
		Value:   func(p domain.ChartPoint) float64 { return p.ContributionThousands },
		Display: func(p domain.ChartPoint) string { return FormatEuro(p.ContributionThousands * 1000) },
	},
}

// DefaultChartMetrics are shown when the caller selects none.
var DefaultChartMetrics = []string{"projection", "claim", "disability"}

// LookupChartMetric finds a series by key.
func LookupChartMetric(key string) (ChartMetric, bool) {
	for _, m := range ChartMetrics {
		if m.Key == key {
			return m, true
		}
	}
	return ChartMetric{}, false
}

// ChartMetricKeys returns the keys of every series.
func ChartMetricKeys() []string {
	keys := make([]string, len(ChartMetrics))
	for i, m := range ChartMetrics {
		keys[i] = m.Key
	}
	return keys
}

const (
	boxChrome   = 6
	minBarWidth = 10
)

// FormatChart renders one horizontal bar block per metric, one bar per
// year. All metrics share the same axis, so bars are comparable across
// blocks. width is the total width available, box border included.
func FormatChart(points []domain.ChartPoint, metrics []ChartMetric, width int) string {
	if len(points) == 0 {
		return RenderBox("Trend", Dim("No records to chart."))
	}
	if len(metrics) == 0 {
		return RenderBox("Trend", Dim("No series selected."))
	}

	var axisMax float64
	valueWidth := 0
	for _, m := range metrics {
		for _, p := range points {
			axisMax = max(axisMax, m.Value(p))
			valueWidth = max(valueWidth, lipgloss.Width(m.Display(p)))
		}
	}

	const yearWidth = 4
	barWidth := max(width-boxChrome-yearWidth-valueWidth-2*colGap, minBarWidth)

	blocks := make([]string, 0, len(metrics))
	for _, m := range metrics {
		var b strings.Builder
		b.WriteString(m.Style.Bold(true).Render(m.Label))
		for _, p := range points {
			display := m.Display(p)
			pad := strings.Repeat(" ", valueWidth-lipgloss.Width(display))
			fmt.Fprintf(&b, "\n%s  %s  %s%s",
				Dim(strconv.Itoa(p.Year)),
				RenderBar(m.Value(p), axisMax, barWidth, m.Style),
				pad, display)
		}
		blocks = append(blocks, b.String())
	}

	return RenderBox("Trend", strings.Join(blocks, "\n\n"))
}
