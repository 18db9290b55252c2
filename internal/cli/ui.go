package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/layout"
	"github.com/matzehuels/treechart/pkg/render/styles"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
	iconSwatch  = "■"
)

// statusStyle colours text with the status colour of the dark theme.
func statusStyle(s diagram.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Dark().StatusColor(s)))
}

// =============================================================================
// Printer
// =============================================================================

// printer writes styled status lines to a command's output.
type printer struct {
	w io.Writer
}

func (c *CLI) printer() printer { return printer{w: c.Out} }

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (p printer) info(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(p.w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// stats prints chart statistics on a single line.
func (p printer) stats(s layout.Stats) {
	parts := []string{
		fmt.Sprintf("%d categories", s.Categories),
		fmt.Sprintf("%d leaves", s.VisibleLeaves),
	}
	if s.HiddenLeaves > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", s.HiddenLeaves))
	}
	parts = append(parts, fmt.Sprintf("%d connectors", s.Connectors))

	for i, part := range parts {
		parts[i] = StyleDim.Render(part)
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func (p printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func (p printer) newline() {
	fmt.Fprintln(p.w)
}

// categoryTable renders one row per category with its visible and hidden
// leaf counts and box geometry.
func categoryTable(res layout.Result) string {
	rows := make([][]string, 0, len(res.Categories))
	for _, c := range res.Categories {
		rows = append(rows, []string{
			c.Name,
			fmt.Sprint(len(c.Leaves)),
			fmt.Sprint(c.Hidden),
			fmt.Sprintf("%.0f", c.Y),
			fmt.Sprintf("%.0f", c.GroupHeight),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Category", "Visible", "Hidden", "Y", "Group").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}
