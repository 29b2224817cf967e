// core/njtree/build.go
package njtree

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Join describes one merge of the main neighbour-joining loop.
type Join struct {
	Step             int
	I, J             int     // joined matrix indices, I < J; I now holds the merged node
	Total            float64 // minimal pair criterion
	IBranch, JBranch float64 // clamped, unrounded branch lengths
	Vertex           VertexID

	// Copy of the working state after the merge.
	Matrix  *Matrix
	Live    []bool
	RowSums []float64
}

// Builder runs neighbour joining. The zero value is usable.
type Builder struct {
	Logger zerolog.Logger
	// OnJoin, if set, observes every merge step.
	OnJoin func(Join)
}

// Build runs neighbour joining with a silent Builder.
func Build(m *Matrix) (*Tree, error) {
	return Builder{Logger: zerolog.Nop()}.Build(m)
}

type slotState uint8

const (
	slotActive slotState = iota
	slotRemoved
)

// slot maps an original matrix index to the vertex it currently stands for.
type slot struct {
	state  slotState
	vertex VertexID
}

func (s slot) active() bool { return s.state == slotActive }

type joiner struct {
	mat       *Matrix
	n         int
	conn      []slot
	av        []float64
	dTo       []float64
	sum       float64
	remaining int
	tree      *Tree
}

// Build validates m and returns its guide tree. m is not modified.
func (b Builder) Build(m *Matrix) (*Tree, error) {
	if m == nil || m.n == 0 {
		return nil, ErrEmptyMatrix
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := m.n
	t := newTree(n)
	switch n {
	case 1:
		t.root = 0
		return t, nil
	case 2:
		root := t.addVertex()
		w := Round5(m.At(0, 1) / 2)
		t.addEdge(root, 0, w)
		t.addEdge(root, 1, w)
		t.root = root
		return t, nil
	}

	j := &joiner{
		mat:       m.Clone(),
		n:         n,
		conn:      make([]slot, n),
		av:        make([]float64, n),
		dTo:       make([]float64, n),
		remaining: n,
		tree:      t,
	}
	for i := 0; i < n; i++ {
		j.conn[i] = slot{state: slotActive, vertex: VertexID(i)}
		j.mat.set(i, i, 0)
	}
	j.init()

	for step := 0; step < n-3; step++ {
		mi, mj, total := j.selectPair()
		ib, jb, v := j.join(mi, mj)
		b.Logger.Debug().
			Int("step", step).Int("i", mi).Int("j", mj).
			Float64("total", total).Float64("i_branch", ib).Float64("j_branch", jb).
			Msg("join")
		if b.OnJoin != nil {
			b.OnJoin(j.snapshot(step, mi, mj, total, ib, jb, v))
		}
	}

	if err := j.resolveLastThree(); err != nil {
		return nil, err
	}
	return t, nil
}

// init mirrors the upper triangle into the lower one and computes the
// branch sum and per-row sums.
func (j *joiner) init() {
	m := j.mat
	for col := 1; col < j.n; col++ {
		for row := 0; row < col; row++ {
			m.set(col, row, m.At(row, col))
			j.sum += m.At(col, row)
		}
	}
	for col := 0; col < j.n; col++ {
		for row := 0; row < j.n; row++ {
			j.dTo[col] += m.At(col, row)
		}
	}
}

// selectPair scans live pairs with the larger index in the outer loop and
// keeps the first strict minimum. The scan order decides ties.
func (j *joiner) selectPair() (mi, mj int, tmin float64) {
	f := float64(j.remaining)
	found := false
	for col := 1; col < j.n; col++ {
		if !j.conn[col].active() {
			continue
		}
		for row := 0; row < col; row++ {
			if !j.conn[row].active() {
				continue
			}
			total := j.dTo[row] + j.dTo[col] + float64((f-2)*j.mat.At(row, col)) +
				float64(2*(j.sum-j.dTo[row]-j.dTo[col]))
			total /= 2 * (f - 2)
			if !found || total < tmin {
				found = true
				tmin, mi, mj = total, row, col
			}
		}
	}
	return mi, mj, tmin
}

// join merges mj into mi and returns the clamped branch lengths and the new
// internal vertex.
func (j *joiner) join(mi, mj int) (iBranch, jBranch float64, v VertexID) {
	m := j.mat
	f := float64(j.remaining)

	dmin := m.At(mi, mj)
	iOthers := j.dTo[mi] / (f - 2)
	jOthers := j.dTo[mj] / (f - 2)
	iBranch = (dmin + iOthers - jOthers) / 2
	jBranch = dmin - iBranch
	iBranch -= j.av[mi]
	jBranch -= j.av[mj]
	iBranch = max(iBranch, 0)
	jBranch = max(jBranch, 0)

	v = j.tree.addVertex()
	j.tree.addEdge(v, j.conn[mi].vertex, Round5(iBranch))
	j.tree.addEdge(v, j.conn[mj].vertex, Round5(jBranch))

	j.av[mi] = max(dmin, 0) / 2

	j.remaining--
	j.conn[mj] = slot{state: slotRemoved}
	j.conn[mi] = slot{state: slotActive, vertex: v}

	var newSum float64
	for k := 0; k < j.n; k++ {
		if j.conn[k].active() && k != mi {
			nv := (m.At(mi, k) + m.At(mj, k)) / 2
			j.dTo[k] -= nv
			newSum += nv
			m.set(mi, k, nv)
			m.set(k, mi, nv)
			j.sum -= nv
		} else {
			j.sum -= m.At(k, mj)
		}
		m.set(k, mj, 0)
		m.set(mj, k, 0)
	}
	j.dTo[mi] = newSum
	return iBranch, jBranch, v
}

func (j *joiner) resolveLastThree() error {
	var l [3]int
	count := 0
	for i := 0; i < j.n; i++ {
		if !j.conn[i].active() {
			continue
		}
		if count == len(l) {
			return errors.Errorf("more than three live nodes after %d joins", j.n-3)
		}
		l[count] = i
		count++
	}
	if count != len(l) {
		return errors.Errorf("%d live nodes after %d joins, want 3", count, j.n-3)
	}

	m := j.mat
	d01, d02, d12 := m.At(l[0], l[1]), m.At(l[0], l[2]), m.At(l[1], l[2])
	branch := [3]float64{
		(d01 + d02 - d12) / 2,
		(d12 + d01 - d02) / 2,
		(d12 + d02 - d01) / 2,
	}
	for i := range branch {
		branch[i] = max(branch[i]-j.av[l[i]], 0)
	}

	t := j.tree
	inner := t.addVertex()
	t.addEdge(inner, j.conn[l[0]].vertex, Round5(branch[0]))
	t.addEdge(inner, j.conn[l[1]].vertex, Round5(branch[1]))
	root := t.addVertex()
	half := Round5(branch[2] / 2)
	t.addEdge(root, j.conn[l[2]].vertex, half)
	t.addEdge(root, inner, half)
	t.root = root
	return nil
}

func (j *joiner) snapshot(step, mi, mj int, total, ib, jb float64, v VertexID) Join {
	live := make([]bool, j.n)
	for i, s := range j.conn {
		live[i] = s.active()
	}
	return Join{
		Step: step, I: mi, J: mj, Total: total,
		IBranch: ib, JBranch: jb, Vertex: v,
		Matrix:  j.mat.Clone(),
		Live:    live,
		RowSums: append([]float64(nil), j.dTo...),
	}
}
