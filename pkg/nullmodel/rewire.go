// Package nullmodel generates degree-preserving comparison graphs: fully
// randomized rewirings and ring-lattice-biased rewirings.
package nullmodel

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

// Options bounds the rewiring loops. The swap target is SwapsPerEdge times
// the edge count; each target swap is abandoned after AttemptsPerSwap failed
// picks, so generation terminates even when no valid swap exists.
type Options struct {
	SwapsPerEdge    int
	AttemptsPerSwap int
}

// DefaultOptions returns the standard rewiring bounds.
func DefaultOptions() Options {
	return Options{SwapsPerEdge: 10, AttemptsPerSwap: 10}
}

// RandomResult is a randomized rewiring and the number of swaps performed.
type RandomResult struct {
	Graph *graph.Graph
	Swaps int
}

// LatticeResult is a lattice rewiring. Graph carries the original node
// order; Relabeled carries the ring ordering the bias was computed under,
// with Perm mapping original node i to ring position Perm[i].
type LatticeResult struct {
	Graph     *graph.Graph
	Relabeled *graph.Graph
	Perm      []int
	Swaps     int
}

// Generator produces null-model graphs.
type Generator struct {
	opts Options
	rng  *rand.Rand
	log  zerolog.Logger
}

// NewGenerator creates a Generator. Zero option fields take the defaults.
func NewGenerator(opts Options, rng *rand.Rand, log zerolog.Logger) *Generator {
	def := DefaultOptions()
	if opts.SwapsPerEdge <= 0 {
		opts.SwapsPerEdge = def.SwapsPerEdge
	}
	if opts.AttemptsPerSwap <= 0 {
		opts.AttemptsPerSwap = def.AttemptsPerSwap
	}
	return &Generator{opts: opts, rng: rng, log: log}
}

// Random rewires g into a degree-preserving random graph: pick two distinct
// edges, flip the orientation of the second half the time, and swap
// endpoints when the four nodes are pairwise distinct and neither new edge
// exists.
func (gen *Generator) Random(g *graph.Graph) *RandomResult {
	adj, edges, swaps := gen.rewire(g, nil)
	gen.log.Debug().Int("swaps", swaps).Int("edges", len(edges)).Msg("random rewiring done")
	return &RandomResult{Graph: graph.FromAdjacency(adj), Swaps: swaps}
}

// Lattice rewires g with the same swap mechanics but only accepts swaps that
// do not decrease the summed ring proximity of the two edges under a fixed
// random relabeling, biasing the result toward a ring lattice with the same
// degree sequence.
func (gen *Generator) Lattice(g *graph.Graph) *LatticeResult {
	perm := gen.rng.Perm(g.N())
	n := g.N()
	accept := func(a, b, c, d int) bool {
		before := ringProximity(n, perm[a], perm[b]) + ringProximity(n, perm[c], perm[d])
		after := ringProximity(n, perm[a], perm[d]) + ringProximity(n, perm[c], perm[b])
		return after >= before
	}
	adj, edges, swaps := gen.rewire(g, accept)
	gen.log.Debug().Int("swaps", swaps).Int("edges", len(edges)).Msg("lattice rewiring done")
	latt := graph.FromAdjacency(adj)
	return &LatticeResult{
		Graph:     latt,
		Relabeled: latt.Relabel(perm),
		Perm:      perm,
		Swaps:     swaps,
	}
}

// rewire runs the bounded swap loop. accept, when non-nil, vetoes swaps that
// fail the lattice bias; degree preservation is inherent to the swap itself.
func (gen *Generator) rewire(g *graph.Graph, accept func(a, b, c, d int) bool) ([][]bool, []graph.Edge, int) {
	adj := g.AdjacencyCopy()
	edges := append([]graph.Edge(nil), g.Edges()...)
	swaps := 0
	if len(edges) < 2 {
		return adj, edges, swaps
	}
	target := gen.opts.SwapsPerEdge * len(edges)
	for t := 0; t < target; t++ {
		for att := 0; att < gen.opts.AttemptsPerSwap; att++ {
			i := gen.rng.Intn(len(edges))
			j := gen.rng.Intn(len(edges))
			if i == j {
				continue
			}
			a, b := edges[i].U, edges[i].V
			c, d := edges[j].U, edges[j].V
			if gen.rng.Float64() < 0.5 {
				c, d = d, c
			}
			if a == c || a == d || b == c || b == d {
				continue
			}
			if adj[a][d] || adj[c][b] {
				continue
			}
			if accept != nil && !accept(a, b, c, d) {
				continue
			}
			adj[a][b], adj[b][a] = false, false
			adj[c][d], adj[d][c] = false, false
			adj[a][d], adj[d][a] = true, true
			adj[c][b], adj[b][c] = true, true
			edges[i] = orient(a, d)
			edges[j] = orient(c, b)
			swaps++
			break
		}
	}
	return adj, edges, swaps
}

// ringProximity scores how close positions i and j sit on a ring of n
// nodes; larger means nearer the diagonal of the relabeled adjacency.
func ringProximity(n, i, j int) float64 {
	d := i - j
	if d < 0 {
		d = -d
	}
	if n-d < d {
		d = n - d
	}
	return float64(n - d)
}

func orient(u, v int) graph.Edge {
	if u < v {
		return graph.Edge{U: u, V: v}
	}
	return graph.Edge{U: v, V: u}
}
