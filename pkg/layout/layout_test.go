package layout

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/textmetric"
)

const tol = 1e-6

// fixedHeights returns a preset height per text.
type fixedHeights map[string]float64

func (f fixedHeights) BoxHeight(text string, _, _, _ float64) float64 { return f[text] }

func threeLeafDiagram() *diagram.Diagram {
	return &diagram.Diagram{
		Root: diagram.Root{Label: "root", CompletionRatio: 0.5},
		Categories: []diagram.Category{{
			Name: "cat",
			Leaves: []diagram.Leaf{
				{Text: "a", Status: diagram.StatusCompleted},
				{Text: "b", Status: diagram.StatusPriority},
				{Text: "c", Status: diagram.StatusIncomplete},
			},
		}},
	}
}

var threeLeafHeights = fixedHeights{"cat": 40, "a": 80, "b": 60, "c": 100}

func TestOddStackCentersMiddleLeaf(t *testing.T) {
	res := Compute(threeLeafDiagram(), diagram.All(), WithEstimator(threeLeafHeights), WithGaps(50, 20))

	require.Len(t, res.Categories, 1)
	cat := res.Categories[0]
	require.Len(t, cat.Leaves, 3)
	leaves := cat.Leaves

	assert.InDelta(t, 280, cat.StackHeight, tol)
	assert.InDelta(t, 280, cat.GroupHeight, tol)
	assert.InDelta(t, 140, cat.CenterY(), tol)

	assert.InDelta(t, cat.CenterY(), leaves[1].CenterY(), tol)
	assert.InDelta(t, leaves[1].Y, leaves[0].Bottom()+20, tol)
	assert.InDelta(t, leaves[2].Y, leaves[1].Bottom()+20, tol)
	assert.InDelta(t, cat.CenterY()-60/2-20-80/2, leaves[0].CenterY(), tol)

	// The tall last leaf hangs below the slot.
	assert.InDelta(t, 290, leaves[2].Bottom(), tol)
	b := res.Bounds()
	assert.InDelta(t, 10, b.Y, tol)
	assert.InDelta(t, 290, b.Bottom(), tol)
}

func TestEvenStackCentersBlock(t *testing.T) {
	vis := diagram.All().Without(diagram.StatusIncomplete)
	res := Compute(threeLeafDiagram(), vis, WithEstimator(threeLeafHeights), WithGaps(50, 20))

	cat := res.Categories[0]
	require.Len(t, cat.Leaves, 2)
	leaves := cat.Leaves

	assert.InDelta(t, 160, cat.StackHeight, tol)
	assert.InDelta(t, cat.CenterY()-80, leaves[0].Y, tol)
	assert.InDelta(t, leaves[0].Y+80+20, leaves[1].Y, tol)
	assert.InDelta(t, cat.CenterY(), (leaves[0].Y+leaves[1].Bottom())/2, tol)
	assert.Equal(t, 1, cat.Hidden)
}

func TestParityFlip(t *testing.T) {
	d := &diagram.Diagram{Categories: []diagram.Category{{
		Name: "cat",
		Leaves: []diagram.Leaf{
			{Text: "a", Status: diagram.StatusCompleted},
			{Text: "b", Status: diagram.StatusIncomplete},
			{Text: "c", Status: diagram.StatusCompleted},
		},
	}}}
	heights := WithEstimator(fixedHeights{"cat": 40, "a": 80, "b": 60, "c": 100})

	odd := Compute(d, diagram.All(), heights).Categories[0]
	require.Len(t, odd.Leaves, 3)
	assert.InDelta(t, odd.CenterY(), odd.Leaves[1].CenterY(), tol)

	even := Compute(d, diagram.VisibilityOf(diagram.StatusCompleted), heights).Categories[0]
	require.Len(t, even.Leaves, 2)
	assert.Equal(t, "a", even.Leaves[0].Text)
	assert.Equal(t, 0, even.Leaves[0].Index)
	assert.Equal(t, 2, even.Leaves[1].Index)
	assert.Equal(t, 1, even.Leaves[1].VisibleIndex)
	assert.InDelta(t, even.CenterY(), (even.Leaves[0].Y+even.Leaves[1].Bottom())/2, tol)

	// Leaf ids follow the leaf, not its visible position.
	assert.Equal(t, odd.Leaves[2].ID, even.Leaves[1].ID)

	single := Compute(d, diagram.VisibilityOf(diagram.StatusIncomplete), heights).Categories[0]
	require.Len(t, single.Leaves, 1)
	assert.InDelta(t, single.CenterY(), single.Leaves[0].CenterY(), tol)
}

func TestEmptyVisibleSet(t *testing.T) {
	res := Compute(threeLeafDiagram(), diagram.None(), WithEstimator(threeLeafHeights))

	cat := res.Categories[0]
	assert.Empty(t, cat.Leaves)
	assert.Equal(t, 3, cat.Hidden)
	assert.Equal(t, 0.0, cat.StackHeight)
	assert.Equal(t, 40.0, cat.GroupHeight)
	assert.Equal(t, 40.0, res.TotalHeight)
	require.Len(t, res.Connectors, 1)
	assert.Equal(t, RootToCategory, res.Connectors[0].Kind)
}

func TestEmptyDiagram(t *testing.T) {
	for _, d := range []*diagram.Diagram{nil, {}} {
		res := Compute(d, diagram.All())

		assert.Equal(t, 0.0, res.TotalHeight)
		assert.Equal(t, 0.0, res.Root.CenterY)
		assert.InDelta(t, 0, res.Root.Center().Y, tol)
		assert.Empty(t, res.Categories)
		assert.Empty(t, res.Connectors)
		assert.Equal(t, Stats{}, res.Stats())
	}
}

// sampleDiagram has mixed statuses and text lengths across several categories.
func sampleDiagram() *diagram.Diagram {
	statuses := diagram.Statuses
	d := &diagram.Diagram{Root: diagram.Root{Label: "銅級完成率", CompletionRatio: 0.53, Color: "#CD7F32"}}
	for i := range 6 {
		cat := diagram.Category{Name: strings.Repeat("類", 3+i*5)}
		for j := range 1 + i {
			cat.Leaves = append(cat.Leaves, diagram.Leaf{
				Text:   strings.Repeat("項", 5+(i*7+j*13)%60),
				Status: statuses[(i+j)%len(statuses)],
			})
		}
		d.Categories = append(d.Categories, cat)
	}
	return d
}

func checkInvariants(t *testing.T, res Result, gap float64) {
	t.Helper()

	var sum float64
	for i, c := range res.Categories {
		if i > 0 {
			sum += gap
		}
		assert.Equal(t, sum, c.SlotY, "slot y of category %d", i)
		assert.InDelta(t, c.SlotY+c.GroupHeight/2, c.CenterY(), tol)
		assert.GreaterOrEqual(t, c.GroupHeight, c.Height)
		assert.GreaterOrEqual(t, c.GroupHeight, c.StackHeight)
		sum += c.GroupHeight
	}
	assert.Equal(t, sum, res.TotalHeight)
	assert.Equal(t, res.TotalHeight/2, res.Root.CenterY)
	assert.InDelta(t, res.TotalHeight/2, res.Root.Center().Y, tol)

	for _, conn := range res.Connectors {
		switch conn.Kind {
		case RootToCategory:
			assert.Equal(t, res.Root.CenterY, conn.From.Y)
			assert.Equal(t, res.Root.X+res.Root.Diameter, conn.From.X)
		case CategoryToLeaf:
			var found bool
			for _, c := range res.Categories {
				if c.ID == conn.FromID {
					found = true
					assert.Equal(t, c.RightMid(), conn.From)
				}
			}
			assert.True(t, found, "connector from unknown category %s", conn.FromID)
		}
	}
	assert.Equal(t, len(res.Categories)+len(res.Leaves()), len(res.Connectors))
}

func TestInvariants(t *testing.T) {
	d := sampleDiagram()
	for _, vis := range []diagram.Visibility{
		diagram.All(),
		diagram.None(),
		diagram.VisibilityOf(diagram.StatusCompleted),
		diagram.VisibilityOf(diagram.StatusPriority, diagram.StatusIncomplete),
	} {
		t.Run(vis.String(), func(t *testing.T) {
			res := Compute(d, vis)
			checkInvariants(t, res, DefaultCategoryGap)

			for _, c := range res.Categories {
				n := len(c.Leaves)
				if n == 0 {
					continue
				}
				if n%2 == 1 {
					assert.InDelta(t, c.CenterY(), c.Leaves[n/2].CenterY(), tol)
				} else {
					assert.InDelta(t, c.CenterY(), (c.Leaves[0].Y+c.Leaves[n-1].Bottom())/2, tol)
				}
				for k := 1; k < n; k++ {
					assert.InDelta(t, c.Leaves[k-1].Bottom()+DefaultLeafGap, c.Leaves[k].Y, tol)
				}
			}
		})
	}
}

func TestToggleStatus(t *testing.T) {
	d := sampleDiagram()
	before := Compute(d, diagram.All())
	after := Compute(d, diagram.All().Without(diagram.StatusIncomplete))
	checkInvariants(t, after, DefaultCategoryGap)

	removed := map[string]bool{}
	for i, c := range d.Categories {
		for j, l := range c.Leaves {
			if l.Status == diagram.StatusIncomplete {
				removed[diagram.LeafID(i, j, l.Text)] = true
			}
		}
	}
	require.NotEmpty(t, removed)

	var kept []Connector
	for _, conn := range before.Connectors {
		if !removed[conn.ToID] {
			kept = append(kept, conn)
		}
	}
	require.Len(t, after.Connectors, len(kept))
	for i := range kept {
		assert.Equal(t, kept[i].ToID, after.Connectors[i].ToID)
	}
	for _, conn := range after.Connectors {
		assert.False(t, removed[conn.ToID])
	}

	var reduction float64
	for i := range before.Categories {
		reduction += before.Categories[i].GroupHeight - after.Categories[i].GroupHeight
	}
	assert.InDelta(t, before.TotalHeight-reduction, after.TotalHeight, tol)
	assert.Less(t, after.TotalHeight, before.TotalHeight)

	// Toggling back restores the original layout exactly.
	assert.Equal(t, before, Compute(d, diagram.All().Without(diagram.StatusIncomplete).With(diagram.StatusIncomplete)))
}

func TestDeterministic(t *testing.T) {
	d := sampleDiagram()
	vis := diagram.VisibilityOf(diagram.StatusCompleted, diagram.StatusPriority)
	want := Compute(d, vis)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = Compute(d, vis)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestDefaultGeometry(t *testing.T) {
	res := Compute(sampleDiagram(), diagram.All())

	assert.Equal(t, 0.0, res.Root.X)
	assert.Equal(t, 150.0, res.Root.Diameter)
	assert.Equal(t, "53%", res.Root.Percent)
	assert.Equal(t, diagram.RootID, res.Root.ID)
	for _, c := range res.Categories {
		assert.Equal(t, 200.0, c.X)
		assert.Equal(t, 280.0, c.Width)
		assert.GreaterOrEqual(t, c.Height, textmetric.DefaultMinHeight)
		for _, l := range c.Leaves {
			assert.Equal(t, 530.0, l.X)
			assert.Equal(t, 350.0, l.Width)
		}
	}
	assert.Equal(t, 880.0, res.Width)

	st := res.Stats()
	assert.Equal(t, 6, st.Categories)
	assert.Equal(t, 21, st.VisibleLeaves)
	assert.Equal(t, 0, st.HiddenLeaves)
	assert.Equal(t, 27, st.Connectors)
}

func TestDegenerateOptions(t *testing.T) {
	nan := math.NaN()
	res := Compute(sampleDiagram(), diagram.All(),
		WithGaps(nan, -10),
		WithRoot(math.Inf(1), nan),
		WithCategoryColumn(nan, -280),
		WithLeafColumn(530, math.Inf(1)),
		WithFontScales(nan, 0),
		WithPadding(nan),
		WithEstimator(nil),
	)
	checkInvariants(t, res, 0)

	finite := func(vs ...float64) {
		for _, v := range vs {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite value %v", v)
		}
	}
	finite(res.TotalHeight, res.Width, res.Root.X, res.Root.Y, res.Root.Diameter)
	for _, c := range res.Categories {
		finite(c.X, c.Y, c.Width, c.Height, c.SlotY, c.GroupHeight)
		for _, l := range c.Leaves {
			finite(l.X, l.Y, l.Width, l.Height)
			assert.GreaterOrEqual(t, l.Height, 0.0)
		}
	}
	for _, conn := range res.Connectors {
		finite(conn.From.X, conn.From.Y, conn.To.X, conn.To.Y)
	}
}

func TestWithOptions(t *testing.T) {
	o := DefaultOptions()
	o.LeafGap = 5
	o.Estimator = threeLeafHeights

	res := Compute(threeLeafDiagram(), diagram.All(), WithOptions(o))
	assert.InDelta(t, 80+60+100+2*5, res.Categories[0].StackHeight, tol)
}
