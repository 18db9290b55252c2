package sink

import (
	"encoding/json"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme string
	title string
}

// WithJSONTheme records the theme name in the JSON output.
func WithJSONTheme(name string) JSONOption { return func(r *jsonRenderer) { r.theme = name } }

// WithJSONTitle records the chart title in the JSON output.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

type jsonOutput struct {
	Title     string           `json:"title,omitempty"`
	Theme     string           `json:"theme,omitempty"`
	Visible   []diagram.Status `json:"visible"`
	Bounds    layout.Box       `json:"bounds"`
	Stats     jsonStats        `json:"stats"`
	LeafGap   float64          `json:"leaf_gap"`
	Padding   float64          `json:"padding"`
	FontScale jsonFontScale    `json:"font_scale"`
	layout.Result
}

type jsonStats struct {
	Categories    int `json:"categories"`
	VisibleLeaves int `json:"visible_leaves"`
	HiddenLeaves  int `json:"hidden_leaves"`
	Connectors    int `json:"connectors"`
}

type jsonFontScale struct {
	Category float64 `json:"category"`
	Leaf     float64 `json:"leaf"`
}

// RenderJSON encodes the layout result as indented JSON.
func RenderJSON(res layout.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	st := res.Stats()
	out := jsonOutput{
		Title:   r.title,
		Theme:   r.theme,
		Visible: res.Visibility.Statuses(),
		Bounds:  res.Bounds(),
		Stats: jsonStats{
			Categories:    st.Categories,
			VisibleLeaves: st.VisibleLeaves,
			HiddenLeaves:  st.HiddenLeaves,
			Connectors:    st.Connectors,
		},
		LeafGap: res.Options.LeafGap,
		Padding: res.Options.Padding,
		FontScale: jsonFontScale{
			Category: res.Options.CategoryFontScale,
			Leaf:     res.Options.LeafFontScale,
		},
		Result: res,
	}
	if out.Categories == nil {
		out.Categories = []layout.CategoryNode{}
	}
	if out.Connectors == nil {
		out.Connectors = []layout.Connector{}
	}
	return json.MarshalIndent(out, "", "  ")
}
