package textmetric_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/treechart/pkg/textmetric"
)

func ExampleEstimateBoxHeight() {
	short := textmetric.EstimateBoxHeight("能源", 280, 0.9, 32)
	long := textmetric.EstimateBoxHeight(strings.Repeat("節", 50), 350, 0.85, 32)
	fmt.Printf("%.1f %.1f\n", short, long)
	// Output: 60.0 93.2
}

func ExampleEstimator_Wrap() {
	e := textmetric.Estimator{BaseCharPx: 10}
	for _, line := range e.Wrap("hierarchical", 50, 1, 0) {
		fmt.Println(line)
	}
	// Output:
	// hiera
	// rchic
	// al
}
