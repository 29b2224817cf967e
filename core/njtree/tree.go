// core/njtree/tree.go
package njtree

// VertexID identifies a tree vertex. Leaves are 0..Leaves()-1 in matrix
// order; internal vertices follow in creation order.
type VertexID int

// Edge connects a parent vertex to a child with a rounded weight.
type Edge struct {
	Parent, Child VertexID
	Weight        float64
}

// Tree is a rooted, weighted binary guide tree.
type Tree struct {
	leaves   int
	root     VertexID
	edges    []Edge
	children [][]int // vertex -> indices into edges
}

func newTree(leaves int) *Tree {
	return &Tree{
		leaves:   leaves,
		children: make([][]int, leaves, 2*leaves),
	}
}

func (t *Tree) addVertex() VertexID {
	t.children = append(t.children, nil)
	return VertexID(len(t.children) - 1)
}

func (t *Tree) addEdge(parent, child VertexID, w float64) {
	t.children[parent] = append(t.children[parent], len(t.edges))
	t.edges = append(t.edges, Edge{Parent: parent, Child: child, Weight: w})
}

// Len is the number of vertices, root included.
func (t *Tree) Len() int { return len(t.children) }

// Leaves is the number of leaf vertices (matrix items).
func (t *Tree) Leaves() int { return t.leaves }

// Root returns the designated root vertex.
func (t *Tree) Root() VertexID { return t.root }

// IsLeaf reports whether v is one of the original items.
func (t *Tree) IsLeaf(v VertexID) bool { return int(v) < t.leaves }

// Edges returns all edges in creation order.
func (t *Tree) Edges() []Edge { return append([]Edge(nil), t.edges...) }

// Children returns the edges leaving v in creation order.
func (t *Tree) Children(v VertexID) []Edge {
	idx := t.children[v]
	out := make([]Edge, len(idx))
	for i, e := range idx {
		out[i] = t.edges[e]
	}
	return out
}

// TotalLength is the sum of all edge weights.
func (t *Tree) TotalLength() float64 {
	var s float64
	for _, e := range t.edges {
		s += e.Weight
	}
	return s
}
