// Package diagram defines the dataset a hierarchical chart is built from.
//
// A [Diagram] has exactly one [Root] (a summary metric such as a completion
// percentage), an ordered list of [Category] groups, and within each category
// an ordered list of [Leaf] items. Every leaf carries a [Status] which is used
// both for styling and for filtering: a leaf is visible iff its status is a
// member of the current [Visibility] set.
//
// # Ordering
//
// Category order is significant: categories are stacked top to bottom in the
// order they appear. Leaf order within a category determines which leaf sits
// in the middle of an odd-sized stack.
//
// # Immutability
//
// The layout engine treats a Diagram as read-only. Visibility is the only
// input that changes between layout passes, and it is passed separately:
//
//	vis := diagram.All().Without(diagram.StatusIncomplete)
//	res := layout.Compute(d, vis)
//
// # Identity
//
// Nodes have no IDs in the dataset. [CategoryID] and [LeafID] derive stable
// name-based UUIDs from a node's position and text so renderers can emit the
// same element IDs for the same dataset on every run.
package diagram
