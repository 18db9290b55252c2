package diagram

import (
	"fmt"

	"github.com/google/uuid"
)

// namespace scopes every node ID generated by this package.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/treechart"))

// RootID is the ID of the single root node.
var RootID = uuid.NewSHA1(namespace, []byte("root")).String()

// CategoryID returns the stable ID of the category at index i.
func CategoryID(i int, name string) string {
	return uuid.NewSHA1(namespace, fmt.Appendf(nil, "category/%d/%s", i, name)).String()
}

// LeafID returns the stable ID of leaf j inside category i. The index of the
// leaf within its category is used, not its index among visible leaves, so
// IDs survive visibility changes.
func LeafID(i, j int, text string) string {
	return uuid.NewSHA1(namespace, fmt.Appendf(nil, "leaf/%d/%d/%s", i, j, text)).String()
}
