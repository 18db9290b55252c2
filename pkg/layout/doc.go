// Package layout computes the geometry of a hierarchical chart.
//
// A chart has three columns: a root circle, a column of category boxes, and a
// column of leaf boxes. [Compute] takes a [diagram.Diagram] and the current
// [diagram.Visibility] and returns a [Result] holding every box, the root
// circle, the connector segments between them, and the total height.
//
// # Vertical layout
//
// Box heights come from a [HeightEstimator] (by default
// [textmetric.Estimator]) applied to the category or leaf text against the
// column width. Each category occupies a slot:
//
//	stackHeight = sum(visible leaf heights) + (visible-1) * LeafGap
//	groupHeight = max(category box height, stackHeight)
//
// Slots are stacked top to bottom in declared order, separated by CategoryGap.
// The root circle is centered on half the total height, and each category box
// is centered inside its slot.
//
// Leaves are centered on their category's vertical center. With an odd number
// of visible leaves the middle one sits exactly on the center and the others
// are walked outward, LeafGap apart. With an even number the whole stack is
// centered as a block. Because odd stacks are anchored on a leaf rather than
// on the block, a stack can overhang its slot; use [Result.Bounds] to size a
// viewport.
//
// # Visibility
//
// Hidden leaves contribute no height and no connector. Every call recomputes
// the layout from scratch, so toggling a status and calling Compute again
// never leaves stale geometry behind.
//
// Compute never fails: empty inputs yield an empty chart, and negative or
// non-finite spacing is clamped to zero.
package layout
