// internal/writers/tree.go
package writers

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"chopper/core/njtree"
	"chopper/pkg/api"
)

// Tree formats.
const (
	FormatNewick = "newick"
	FormatJSON   = "json"
)

// WriteTree writes t in format. names label the leaves and may be nil.
func WriteTree(w io.Writer, format string, t *njtree.Tree, names []string) error {
	switch format {
	case FormatNewick, "":
		s, err := njtree.Newick(t, names)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ToAPITree(t, names))
	default:
		return errors.Errorf("unknown tree format %q", format)
	}
}

// ToAPITree converts a tree to its wire form.
func ToAPITree(t *njtree.Tree, names []string) api.TreeV1 {
	edges := t.Edges()
	out := api.TreeV1{
		Leaves:   t.Leaves(),
		Vertices: t.Len(),
		Root:     int(t.Root()),
		Names:    names,
		Edges:    make([]api.TreeEdgeV1, len(edges)),
	}
	for i, e := range edges {
		out.Edges[i] = api.TreeEdgeV1{Parent: int(e.Parent), Child: int(e.Child), Weight: e.Weight}
	}
	return out
}
