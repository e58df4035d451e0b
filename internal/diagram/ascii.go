package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"
)

// Bar is one fastener family on a utilization diagram
type Bar struct {
	Label       string
	Utilization float64 // %
	Compliant   bool
	Failed      bool   // Family could not be computed
	Note        string // Reason shown for failed families
}

// UtilizationData holds the bars of a utilization diagram
type UtilizationData struct {
	Title string
	Bars  []Bar
}

// DrawUtilizationBars draws one horizontal bar per family, scaled so the
// 100 % limit sits at a fixed column
func DrawUtilizationBars(data UtilizationData) string {
	var sb strings.Builder

	limitCol := 40
	maxCol := 60

	labelWidth := 0
	for _, b := range data.Bars {
		labelWidth = max(labelWidth, utf8.RuneCountInString(b.Label))
	}

	sb.WriteString("\n")
	if data.Title != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(data.Title)))
		sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(data.Title))))
	}

	for _, b := range data.Bars {
		label := fmt.Sprintf("  %-*s │", labelWidth, b.Label)
		if b.Failed {
			sb.WriteString(fmt.Sprintf("%s ✗ cannot compute: %s\n", label, b.Note))
			continue
		}

		n := int(math.Round(b.Utilization / 100 * float64(limitCol)))
		overflow := n > maxCol
		n = min(max(n, 0), maxCol)

		var bar strings.Builder
		for i := 0; i < n; i++ {
			if i < limitCol {
				bar.WriteString("█")
			} else {
				bar.WriteString("▓")
			}
		}
		if overflow {
			bar.WriteString("»")
		}

		mark := "✓"
		if !b.Compliant {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s%s %.1f%% %s\n", label, bar.String(), b.Utilization, mark))
	}

	// 100 % reference
	sb.WriteString(fmt.Sprintf("  %s └%s┤ 100%%\n", strings.Repeat(" ", labelWidth), strings.Repeat("─", limitCol-1)))

	return sb.String()
}

// SweepData is a capacity curve over a range of diameters
type SweepData struct {
	Caption   string
	Diameters []float64 // mm
	Values    []float64 // N
}

// DrawSweepGraph plots a sweep as an ASCII line graph
func DrawSweepGraph(data SweepData) string {
	if len(data.Values) == 0 {
		return ""
	}
	caption := data.Caption
	if n := len(data.Diameters); n > 0 {
		caption = fmt.Sprintf("%s (d = %g … %g mm)", caption, data.Diameters[0], data.Diameters[n-1])
	}
	return asciigraph.Plot(data.Values,
		asciigraph.Height(15),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	border := strings.Repeat("═", width+4)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, width)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, width)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
