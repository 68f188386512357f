package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a ratio bar like [████░░░░] 45%.
// The bar is colored based on the ratio: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clamp01(pct)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderBar renders a horizontal bar of value relative to maxValue, width
// cells wide, without brackets or labels. Non-zero values always get at
// least one filled cell so small figures stay visible.
func RenderBar(value, maxValue float64, width int, style lipgloss.Style) string {
	width = max(width, 1)
	var pct float64
	if maxValue > 0 {
		pct = clamp01(value / maxValue)
	}

	filled := int(pct*float64(width) + 0.5)
	if filled == 0 && value > 0 && maxValue > 0 {
		filled = 1
	}
	filled = min(filled, width)

	return style.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
