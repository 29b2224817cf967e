// pkg/api/tree_v1.go
package api

// TreeEdgeV1 is a parent→child edge with its rounded weight.
type TreeEdgeV1 struct {
	Parent int     `json:"parent"`
	Child  int     `json:"child"`
	Weight float64 `json:"weight"`
}

// TreeV1 is the stable JSON schema for a guide tree. Vertices 0..Leaves-1
// are the matrix items in order.
type TreeV1 struct {
	Leaves   int          `json:"leaves"`
	Vertices int          `json:"vertices"`
	Root     int          `json:"root"`
	Names    []string     `json:"names,omitempty"`
	Edges    []TreeEdgeV1 `json:"edges"`
}
