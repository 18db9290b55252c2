package layout

import "github.com/matzehuels/treechart/pkg/diagram"

// ConnectorKind distinguishes the two tiers of connector segments.
type ConnectorKind string

const (
	RootToCategory ConnectorKind = "root-category"
	CategoryToLeaf ConnectorKind = "category-leaf"
)

// Connector is a straight segment from a parent anchor to a child anchor.
type Connector struct {
	Kind   ConnectorKind `json:"kind"`
	FromID string        `json:"from_id"`
	ToID   string        `json:"to_id"`
	From   Point         `json:"from"`
	To     Point         `json:"to"`
}

// RootNode is the laid-out root circle.
type RootNode struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	Percent         string  `json:"percent"`
	CompletionRatio float64 `json:"completion_ratio"`
	Color           string  `json:"color,omitempty"`
	CenterY         float64 `json:"center_y"`
	Circle
}

// LeafNode is a laid-out visible leaf.
type LeafNode struct {
	ID           string         `json:"id"`
	Index        int            `json:"index"`         // position among all leaves of the category
	VisibleIndex int            `json:"visible_index"` // position among visible leaves
	Text         string         `json:"text"`
	Status       diagram.Status `json:"status"`
	Box
}

// CategoryNode is a laid-out category and its visible leaves.
type CategoryNode struct {
	ID          string     `json:"id"`
	Index       int        `json:"index"`
	Name        string     `json:"name"`
	SlotY       float64    `json:"slot_y"`
	GroupHeight float64    `json:"group_height"`
	StackHeight float64    `json:"stack_height"`
	Hidden      int        `json:"hidden"`
	Leaves      []LeafNode `json:"leaves"`
	Box
}

// Result is the complete geometry of one layout pass.
type Result struct {
	Options     Options            `json:"-"` // sanitized options of the pass
	Visibility  diagram.Visibility `json:"-"`
	Root        RootNode           `json:"root"`
	Categories  []CategoryNode     `json:"categories"`
	Connectors  []Connector        `json:"connectors"`
	TotalHeight float64            `json:"total_height"`
	Width       float64            `json:"width"`
}

// Stats summarises a layout result.
type Stats struct {
	Categories    int
	VisibleLeaves int
	HiddenLeaves  int
	Connectors    int
}

// Stats returns node and connector counts of r.
func (r Result) Stats() Stats {
	s := Stats{Categories: len(r.Categories), Connectors: len(r.Connectors)}
	for _, c := range r.Categories {
		s.VisibleLeaves += len(c.Leaves)
		s.HiddenLeaves += c.Hidden
	}
	return s
}

// Bounds returns the smallest box containing every drawn element. Odd leaf
// stacks may extend above zero or below TotalHeight, so Bounds is the extent
// to size a viewport with.
func (r Result) Bounds() Box {
	b := r.Root.Circle.Bounds()
	for _, c := range r.Categories {
		b = b.Union(c.Box)
		for _, l := range c.Leaves {
			b = b.Union(l.Box)
		}
	}
	return b
}

// Leaves returns every visible leaf in drawing order.
func (r Result) Leaves() []LeafNode {
	var out []LeafNode
	for _, c := range r.Categories {
		out = append(out, c.Leaves...)
	}
	return out
}
