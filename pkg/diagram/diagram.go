package diagram

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/treechart/pkg/errors"
)

// Root is the single summary node at the head of a diagram.
type Root struct {
	Label           string  `json:"label" yaml:"label" toml:"label"`
	CompletionRatio float64 `json:"completion_ratio" yaml:"completion_ratio" toml:"completion_ratio"`
	Color           string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// Percent formats the completion ratio as a whole percentage, e.g. "53%".
// Out-of-range ratios are clamped to [0, 1].
func (r Root) Percent() string {
	ratio := r.CompletionRatio
	if math.IsNaN(ratio) {
		ratio = 0
	}
	ratio = max(0, min(1, ratio))
	return fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
}

// Leaf is a bottom-tier item with a status classification.
type Leaf struct {
	Text   string `json:"text" yaml:"text" toml:"text"`
	Status Status `json:"status" yaml:"status" toml:"status"`
}

// Category is a mid-tier group of leaves.
type Category struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Leaves []Leaf `json:"leaves" yaml:"leaves" toml:"leaves"`
}

// VisibleCount returns how many leaves of c are visible under v.
func (c Category) VisibleCount(v Visibility) int {
	return lo.CountBy(c.Leaves, func(l Leaf) bool { return v.Has(l.Status) })
}

// Diagram is the complete input tree: one root and its ordered categories.
type Diagram struct {
	Root       Root       `json:"root" yaml:"root" toml:"root"`
	Categories []Category `json:"categories" yaml:"categories" toml:"categories"`
}

// LeafCount returns the total number of leaves across all categories.
func (d *Diagram) LeafCount() int {
	return lo.SumBy(d.Categories, func(c Category) int { return len(c.Leaves) })
}

// StatusCounts returns the number of leaves per status.
func (d *Diagram) StatusCounts() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, c := range d.Categories {
		for _, l := range c.Leaves {
			counts[l.Status]++
		}
	}
	return counts
}

// CompletedRatio returns the fraction of leaves whose status is completed.
// A diagram without leaves has ratio 0.
func (d *Diagram) CompletedRatio() float64 {
	total := d.LeafCount()
	if total == 0 {
		return 0
	}
	return float64(d.StatusCounts()[StatusCompleted]) / float64(total)
}

// Validate checks the dataset at the data-layer boundary. The layout engine
// does not call it: layout is total over any well-typed Diagram.
func (d *Diagram) Validate() error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidDataset, "diagram is nil")
	}
	if err := errors.ValidateText("root label", d.Root.Label); err != nil {
		return err
	}
	if err := errors.ValidateRatio("root completion_ratio", d.Root.CompletionRatio); err != nil {
		return err
	}
	if err := errors.ValidateColor("root color", d.Root.Color); err != nil {
		return err
	}
	for i, c := range d.Categories {
		if err := errors.ValidateText(fmt.Sprintf("categories[%d] name", i), c.Name); err != nil {
			return err
		}
		for j, l := range c.Leaves {
			field := fmt.Sprintf("categories[%d].leaves[%d] text", i, j)
			if err := errors.ValidateText(field, l.Text); err != nil {
				return err
			}
			if !l.Status.Valid() {
				return errors.New(errors.ErrCodeInvalidStatus,
					"categories[%d].leaves[%d] has unknown status %q", i, j, l.Status)
			}
		}
	}
	return nil
}
