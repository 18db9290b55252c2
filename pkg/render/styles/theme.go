// Package styles defines the colour themes used to draw charts.
//
// A [Theme] is plain data: background and surface colours for the category
// boxes and the root circle, connector styling, and one fill colour per leaf
// status. Sinks read it; nothing in this package draws.
package styles

import (
	"slices"
	"strings"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/errors"
)

// Status fill colours shared by every theme.
const (
	ColorCompleted  = "#27ae60"
	ColorPriority   = "#f39c12"
	ColorIncomplete = "#e74c3c"
)

// DefaultRootColor is used when a dataset does not set a root colour.
const DefaultRootColor = "#3498db"

// Theme holds the colours and fonts of a chart.
type Theme struct {
	Name string

	Background    string
	Surface       string // category boxes, root circle, legend panel
	Border        string
	Text          string
	TextSecondary string

	Connector        string
	ConnectorWidth   float64
	ConnectorOpacity float64

	StatusText   string // text drawn on leaf boxes
	StatusColors map[diagram.Status]string

	FontFamily string
}

// Dark is the default theme.
func Dark() Theme {
	return Theme{
		Name:             "dark",
		Background:       "#0f1419",
		Surface:          "#1a2332",
		Border:           "#34495e",
		Text:             "#ffffff",
		TextSecondary:    "#b0b8c4",
		Connector:        "#8b92a0",
		ConnectorWidth:   2,
		ConnectorOpacity: 0.6,
		StatusText:       "#ffffff",
		StatusColors:     statusColors(),
		FontFamily:       defaultFontFamily,
	}
}

// Light is a theme for printing and light backgrounds.
func Light() Theme {
	return Theme{
		Name:             "light",
		Background:       "#ffffff",
		Surface:          "#f4f6f8",
		Border:           "#c8d0d9",
		Text:             "#1a2332",
		TextSecondary:    "#5d6b7a",
		Connector:        "#8b92a0",
		ConnectorWidth:   2,
		ConnectorOpacity: 0.8,
		StatusText:       "#ffffff",
		StatusColors:     statusColors(),
		FontFamily:       defaultFontFamily,
	}
}

const defaultFontFamily = "'Noto Sans CJK TC','Microsoft JhengHei','PingFang TC',sans-serif"

func statusColors() map[diagram.Status]string {
	return map[diagram.Status]string{
		diagram.StatusCompleted:  ColorCompleted,
		diagram.StatusPriority:   ColorPriority,
		diagram.StatusIncomplete: ColorIncomplete,
	}
}

var themes = map[string]func() Theme{
	"dark":  Dark,
	"light": Light,
}

// Names returns the names of the built-in themes in sorted order.
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName returns the built-in theme called name. An empty name selects Dark.
func ByName(name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Dark(), nil
	}
	fn, ok := themes[name]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme,
			"unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

// StatusColor returns the fill colour for leaves with status s.
func (t Theme) StatusColor(s diagram.Status) string {
	if c, ok := t.StatusColors[s]; ok {
		return c
	}
	return t.Border
}

// RootColor returns c, or DefaultRootColor when c is empty.
func (t Theme) RootColor(c string) string {
	if c == "" {
		return DefaultRootColor
	}
	return c
}

// StatusLabel returns the legend label of a status.
func StatusLabel(s diagram.Status) string {
	switch s {
	case diagram.StatusCompleted:
		return "Completed"
	case diagram.StatusPriority:
		return "Priority"
	case diagram.StatusIncomplete:
		return "Incomplete"
	}
	return string(s)
}
