// core/njtree/newick.go
package njtree

import (
	"strconv"

	"github.com/evolbioinfo/gotree/tree"
	"github.com/pkg/errors"
)

// Newick renders t. Leaves are labelled with names when given (one per
// leaf, matrix order) and with their index otherwise.
func Newick(t *Tree, names []string) (string, error) {
	if names != nil && len(names) != t.leaves {
		return "", errors.Errorf("%d names for %d leaves", len(names), t.leaves)
	}
	gt := tree.NewTree()
	nodes := make([]*tree.Node, t.Len())
	for v := range nodes {
		nodes[v] = gt.NewNode()
		if v < t.leaves {
			name := strconv.Itoa(v)
			if names != nil {
				name = names[v]
			}
			nodes[v].SetName(name)
		}
	}
	for _, e := range t.edges {
		gt.ConnectNodes(nodes[e.Parent], nodes[e.Child]).SetLength(e.Weight)
	}
	gt.SetRoot(nodes[t.root])
	return gt.Newick(), nil
}
