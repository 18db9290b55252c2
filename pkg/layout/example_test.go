package layout_test

import (
	"fmt"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/layout"
)

func ExampleCompute() {
	d := &diagram.Diagram{
		Root: diagram.Root{Label: "Bronze", CompletionRatio: 0.53},
		Categories: []diagram.Category{
			{Name: "能源", Leaves: []diagram.Leaf{
				{Text: "建立年度能源統計", Status: diagram.StatusCompleted},
				{Text: "更換節能燈具", Status: diagram.StatusIncomplete},
			}},
		},
	}

	all := layout.Compute(d, diagram.All())
	fmt.Printf("total=%.0f connectors=%d\n", all.TotalHeight, len(all.Connectors))

	done := layout.Compute(d, diagram.VisibilityOf(diagram.StatusCompleted))
	fmt.Printf("total=%.0f connectors=%d\n", done.TotalHeight, len(done.Connectors))
	// Output:
	// total=140 connectors=3
	// total=60 connectors=2
}
