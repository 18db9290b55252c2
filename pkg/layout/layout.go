package layout

import (
	"github.com/matzehuels/treechart/pkg/diagram"
)

// Compute lays out d with only the leaves whose status is in vis. A nil
// diagram is treated as empty. Compute is pure and safe for concurrent use.
func Compute(d *diagram.Diagram, vis diagram.Visibility, opts ...Option) Result {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o = o.sanitized()

	if d == nil {
		d = &diagram.Diagram{}
	}

	res := Result{
		Options:    o,
		Visibility: vis,
		Categories: make([]CategoryNode, 0, len(d.Categories)),
	}

	var y float64
	for i, cat := range d.Categories {
		if i > 0 {
			y += o.CategoryGap
		}
		node := layoutCategory(i, cat, vis, y, o)
		res.Categories = append(res.Categories, node)
		y += node.GroupHeight
	}
	res.TotalHeight = y

	res.Root = RootNode{
		ID:              diagram.RootID,
		Label:           d.Root.Label,
		Percent:         d.Root.Percent(),
		CompletionRatio: d.Root.CompletionRatio,
		Color:           d.Root.Color,
		CenterY:         res.TotalHeight / 2,
		Circle: Circle{
			X:        o.RootX,
			Y:        res.TotalHeight/2 - o.RootDiameter/2,
			Diameter: o.RootDiameter,
		},
	}
	res.Connectors = connectors(res, o)
	res.Width = max(o.RootX+o.RootDiameter, o.CategoryX+o.CategoryWidth, o.LeafX+o.LeafWidth)
	return res
}

// layoutCategory sizes the slot of one category starting at slotY and places
// its box and visible leaves inside it.
func layoutCategory(i int, cat diagram.Category, vis diagram.Visibility, slotY float64, o Options) CategoryNode {
	node := CategoryNode{
		ID:    diagram.CategoryID(i, cat.Name),
		Index: i,
		Name:  cat.Name,
		SlotY: slotY,
	}
	boxHeight := o.height(cat.Name, o.CategoryWidth, o.CategoryFontScale)

	for j, leaf := range cat.Leaves {
		if !vis.Has(leaf.Status) {
			node.Hidden++
			continue
		}
		node.Leaves = append(node.Leaves, LeafNode{
			ID:           diagram.LeafID(i, j, leaf.Text),
			Index:        j,
			VisibleIndex: len(node.Leaves),
			Text:         leaf.Text,
			Status:       leaf.Status,
			Box: Box{
				X:      o.LeafX,
				Width:  o.LeafWidth,
				Height: o.height(leaf.Text, o.LeafWidth, o.LeafFontScale),
			},
		})
	}

	node.StackHeight = stackHeight(node.Leaves, o.LeafGap)
	node.GroupHeight = max(boxHeight, node.StackHeight)
	node.Box = Box{
		X:      o.CategoryX,
		Y:      slotY + (node.GroupHeight-boxHeight)/2,
		Width:  o.CategoryWidth,
		Height: boxHeight,
	}
	placeLeaves(node.Leaves, node.CenterY(), node.StackHeight, o.LeafGap)
	return node
}

func stackHeight(leaves []LeafNode, gap float64) float64 {
	if len(leaves) == 0 {
		return 0
	}
	var h float64
	for _, l := range leaves {
		h += l.Height
	}
	return h + float64(len(leaves)-1)*gap
}

// placeLeaves sets the Y of each leaf around center. An odd stack is anchored
// on its middle leaf, an even stack is centered as a block.
func placeLeaves(leaves []LeafNode, center, stack, gap float64) {
	n := len(leaves)
	if n == 0 {
		return
	}
	if n%2 == 0 {
		leaves[0].Y = center - stack/2
		for k := 1; k < n; k++ {
			leaves[k].Y = leaves[k-1].Bottom() + gap
		}
		return
	}

	mid := n / 2
	leaves[mid].Y = center - leaves[mid].Height/2
	for k := mid - 1; k >= 0; k-- {
		leaves[k].Y = leaves[k+1].Y - gap - leaves[k].Height
	}
	for k := mid + 1; k < n; k++ {
		leaves[k].Y = leaves[k-1].Bottom() + gap
	}
}

// connectors emits one segment per category and one per visible leaf, all
// anchored on the midpoints computed in this pass.
func connectors(res Result, o Options) []Connector {
	out := make([]Connector, 0, len(res.Categories)+len(res.Leaves()))
	rootAnchor := Point{X: o.RootX + o.RootDiameter, Y: res.Root.CenterY}
	for _, c := range res.Categories {
		out = append(out, Connector{
			Kind:   RootToCategory,
			FromID: res.Root.ID,
			ToID:   c.ID,
			From:   rootAnchor,
			To:     c.LeftMid(),
		})
	}
	for _, c := range res.Categories {
		from := c.RightMid()
		for _, l := range c.Leaves {
			out = append(out, Connector{
				Kind:   CategoryToLeaf,
				FromID: c.ID,
				ToID:   l.ID,
				From:   from,
				To:     l.LeftMid(),
			})
		}
	}
	return out
}
