// Package graph provides the unweighted, undirected adjacency structure the
// topology engines operate on, plus its all-pairs shortest-path matrix.
package graph

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when the source matrix is not square, contains
// non-finite values, or contains negative values.
var ErrInvalidInput = errors.New("graph: invalid input matrix")

// Edge is an undirected edge with U < V.
type Edge struct {
	U int
	V int
}

// Graph is a symmetric, zero-diagonal, boolean adjacency relation over nodes
// 0..N-1. It is immutable after construction; the rewiring engines work on
// copies of the adjacency matrix and rebuild a Graph from the result.
type Graph struct {
	n         int
	adj       [][]bool
	neighbors [][]int
	degrees   []int
	edges     []Edge
}

// FromMatrix builds a Graph from an arbitrary nonnegative numeric matrix by
// thresholding (>0), symmetrizing (max of the matrix and its transpose), and
// zeroing the diagonal.
func FromMatrix(m [][]float64) (*Graph, error) {
	n := len(m)
	for i, row := range m {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidInput, i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value at (%d,%d)", ErrInvalidInput, i, j)
			}
			if v < 0 {
				return nil, fmt.Errorf("%w: negative value at (%d,%d)", ErrInvalidInput, i, j)
			}
		}
	}

	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && (m[i][j] > 0 || m[j][i] > 0) {
				adj[i][j] = true
			}
		}
	}
	return FromAdjacency(adj), nil
}

// FromAdjacency builds a Graph directly from a boolean adjacency matrix.
// The matrix is symmetrized (logical OR with its transpose) and the diagonal
// is ignored; the caller keeps ownership of adj.
func FromAdjacency(adj [][]bool) *Graph {
	n := len(adj)
	g := &Graph{
		n:         n,
		adj:       make([][]bool, n),
		neighbors: make([][]int, n),
		degrees:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		g.adj[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && (adj[i][j] || adj[j][i]) {
				g.adj[i][j] = true
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if g.adj[i][j] {
				g.neighbors[i] = append(g.neighbors[i], j)
			}
		}
		g.degrees[i] = len(g.neighbors[i])
	}
	for u := 0; u < n; u++ {
		for _, v := range g.neighbors[u] {
			if u < v {
				g.edges = append(g.edges, Edge{U: u, V: v})
			}
		}
	}
	return g
}

// FromEdges builds a Graph on n nodes from an undirected edge list.
func FromEdges(n int, edges []Edge) *Graph {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for _, e := range edges {
		if e.U != e.V {
			adj[e.U][e.V] = true
			adj[e.V][e.U] = true
		}
	}
	return FromAdjacency(adj)
}

// N returns the node count.
func (g *Graph) N() int { return g.n }

// NumEdges returns the undirected edge count.
func (g *Graph) NumEdges() int { return len(g.edges) }

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool { return g.adj[u][v] }

// Degree returns the degree of node i.
func (g *Graph) Degree(i int) int { return g.degrees[i] }

// Neighbors returns the neighbor list of node i, sorted ascending.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Neighbors(i int) []int { return g.neighbors[i] }

// Edges returns all undirected edges with U < V, in row-major order.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// Degrees returns a copy of the degree sequence.
func (g *Graph) Degrees() []int {
	out := make([]int, g.n)
	copy(out, g.degrees)
	return out
}

// DegreeSequence returns the degree sequence as float64, the form the
// power-law and assortativity engines consume.
func (g *Graph) DegreeSequence() []float64 {
	out := make([]float64, g.n)
	for i, d := range g.degrees {
		out[i] = float64(d)
	}
	return out
}

// AdjacencyCopy returns a mutable copy of the boolean adjacency matrix.
func (g *Graph) AdjacencyCopy() [][]bool {
	out := make([][]bool, g.n)
	for i := range out {
		out[i] = make([]bool, g.n)
		copy(out[i], g.adj[i])
	}
	return out
}

// Subgraph returns the induced subgraph on the given nodes, relabeled
// 0..len(nodes)-1 in the order supplied.
func (g *Graph) Subgraph(nodes []int) *Graph {
	k := len(nodes)
	adj := make([][]bool, k)
	for i := range adj {
		adj[i] = make([]bool, k)
	}
	for a := 0; a < k; a++ {
		for b := 0; b < k; b++ {
			if a != b && g.adj[nodes[a]][nodes[b]] {
				adj[a][b] = true
			}
		}
	}
	return FromAdjacency(adj)
}

// Relabel returns a copy of the graph with node i renamed to perm[i].
func (g *Graph) Relabel(perm []int) *Graph {
	adj := make([][]bool, g.n)
	for i := range adj {
		adj[i] = make([]bool, g.n)
	}
	for u := 0; u < g.n; u++ {
		for _, v := range g.neighbors[u] {
			adj[perm[u]][perm[v]] = true
		}
	}
	return FromAdjacency(adj)
}
