package formatter

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// euroFormatter renders amounts the way German statements print them,
// e.g. "1.234,56 €".
var euroFormatter = money.NewFormatter(2, ",", ".", "€", "1 $")

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatEuro renders a monthly or yearly euro amount rounded to cents.
func FormatEuro(amount float64) string {
	return FormatEuroDecimal(decimal.NewFromFloat(amount))
}

// FormatEuroDecimal renders an exact amount rounded to cents.
func FormatEuroDecimal(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	m := money.New(cents, money.EUR)
	return euroFormatter.Format(m.Amount())
}

// FormatPoints renders Entgeltpunkte with four decimals and a decimal comma.
func FormatPoints(points float64) string {
	return germanDecimal(decimal.NewFromFloat(points).StringFixed(4))
}

// FormatNumber renders a plain figure such as a percentage or a number of
// years, dropping trailing zeros.
func FormatNumber(v float64) string {
	return germanDecimal(decimal.NewFromFloat(v).String())
}

func germanDecimal(s string) string {
	return strings.Replace(s, ".", ",", 1)
}

// OptEuro renders an optional amount, "--" when absent.
func OptEuro(p *float64) string {
	if p == nil {
		return Dim("--")
	}
	return FormatEuro(*p)
}

// OptNumber renders an optional figure with suffix appended, "--" when
// absent.
func OptNumber(p *float64, suffix string) string {
	if p == nil {
		return Dim("--")
	}
	return FormatNumber(*p) + suffix
}

// OptText renders an optional free-text field, "--" when absent or blank.
func OptText(p *string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return Dim("--")
	}
	return *p
}

// YesNo renders an optional flag as Ja/Nein, "--" when absent.
func YesNo(p *bool) string {
	switch {
	case p == nil:
		return Dim("--")
	case *p:
		return StyleGreen.Render("Ja")
	default:
		return "Nein"
	}
}

// StatusPill returns a colored indicator for an employment status label.
func StatusPill(status string) string {
	if strings.TrimSpace(status) == "" {
		return Dim("--")
	}
	marker := "●"
	if !domain.IsKnownStatus(status) {
		marker = "○"
	}
	return StatusStyle(status).Render(marker + " " + status)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom is HumanDate relative to now.
func HumanDateFrom(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.In(now.Location()).Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("02.01.2006")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
