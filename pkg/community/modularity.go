// Package community provides the stochastic spectral engines: Newman
// modularity via recursive bipartitioning and the perturbation-based
// structural-consistency index.
package community

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

const gainTol = 1e-12

// ModularityEngine repeatedly runs spectral community detection under a
// random node permutation and reports the mean modularity over the
// iterations that converged.
type ModularityEngine struct {
	iterations int
	rng        *rand.Rand
	log        zerolog.Logger
}

// NewModularityEngine creates an engine running the given number of
// stochastic repeats.
func NewModularityEngine(iterations int, rng *rand.Rand, log zerolog.Logger) *ModularityEngine {
	return &ModularityEngine{iterations: iterations, rng: rng, log: log}
}

// Mean runs the engine. Iterations whose eigendecomposition fails are
// recorded as NaN and excluded; if all fail the result is NaN.
func (e *ModularityEngine) Mean(g *graph.Graph) float64 {
	values := make([]float64, e.iterations)
	failed := 0
	for it := 0; it < e.iterations; it++ {
		values[it] = e.run(g)
		if math.IsNaN(values[it]) {
			failed++
		}
	}
	if failed > 0 {
		e.log.Debug().Int("failed", failed).Int("iterations", e.iterations).
			Msg("modularity iterations lost to non-convergence")
	}
	return nanMean(values)
}

// run performs one stochastic repeat: permute the nodes, recursively
// bipartition by the leading eigenvector of each community's modularity
// submatrix with single-node fine-tuning, then score the partition on the
// original node order.
func (e *ModularityEngine) run(g *graph.Graph) float64 {
	n := g.N()
	m2 := 2 * float64(g.NumEdges())
	if n == 0 || m2 == 0 {
		return math.NaN()
	}

	perm := e.rng.Perm(n)
	pg := g.Relabel(perm)

	b := modularityMatrix(pg, m2)

	// Recursive bipartitioning over a worklist of candidate communities.
	assign := make([]int, n)
	nextID := 1
	pending := [][]int{allNodes(n)}
	for len(pending) > 0 {
		group := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if len(group) < 2 {
			continue
		}
		left, right, ok := e.splitGroup(b, group)
		if !ok {
			return math.NaN()
		}
		if left == nil {
			continue // indivisible
		}
		for _, i := range right {
			assign[i] = nextID
		}
		nextID++
		pending = append(pending, left, right)
	}

	// The permutation only reorders labels; invert it so the score is
	// attributed to the original node identities.
	orig := make([]int, n)
	for i := 0; i < n; i++ {
		orig[i] = assign[perm[i]]
	}
	return Modularity(g, orig)
}

// splitGroup bipartitions one community by the sign of the leading
// eigenvector of its modularity submatrix, fine-tunes by flipping the single
// best node until no flip improves the score, and accepts the split only if
// its modularity contribution is strictly positive. A nil left group means
// the community is indivisible; ok is false on eigendecomposition failure.
func (e *ModularityEngine) splitGroup(b *mat.SymDense, group []int) (left, right []int, ok bool) {
	k := len(group)
	bg := mat.NewSymDense(k, nil)
	for a := 0; a < k; a++ {
		rowSum := 0.0
		for _, j := range group {
			rowSum += b.At(group[a], j)
		}
		for c := a; c < k; c++ {
			v := b.At(group[a], group[c])
			if a == c {
				v -= rowSum
			}
			bg.SetSym(a, c, v)
		}
	}

	values, vectors, ok := eigenSym(bg)
	if !ok {
		return nil, nil, false
	}
	lead := len(values) - 1

	s := make([]float64, k)
	for i := 0; i < k; i++ {
		if vectors.At(i, lead) >= 0 {
			s[i] = 1
		} else {
			s[i] = -1
		}
	}
	score := e.fineTune(bg, s)
	if score <= gainTol {
		return nil, nil, true
	}
	for i, si := range s {
		if si > 0 {
			left = append(left, group[i])
		} else {
			right = append(right, group[i])
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return nil, nil, true
	}
	return left, right, true
}

// fineTune greedily flips the single node whose flip most increases
// s'·Bg·s. Every accepted flip strictly increases the score, so the loop
// terminates. Returns the final score.
func (e *ModularityEngine) fineTune(bg *mat.SymDense, s []float64) float64 {
	k := len(s)
	bs := make([]float64, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			bs[i] += bg.At(i, j) * s[j]
		}
	}
	score := 0.0
	for i := 0; i < k; i++ {
		score += s[i] * bs[i]
	}
	for {
		best, bestGain := -1, gainTol
		for i := 0; i < k; i++ {
			gain := -4 * s[i] * (bs[i] - bg.At(i, i)*s[i])
			if gain > bestGain {
				best, bestGain = i, gain
			}
		}
		if best < 0 {
			return score
		}
		delta := -2 * s[best]
		for j := 0; j < k; j++ {
			bs[j] += bg.At(j, best) * delta
		}
		s[best] = -s[best]
		score += bestGain
	}
}

// Modularity scores a community assignment on g: the sum over same-community
// node pairs of A_ij - k_i·k_j/2E, normalized by 2E.
func Modularity(g *graph.Graph, assign []int) float64 {
	n := g.N()
	m2 := 2 * float64(g.NumEdges())
	if m2 == 0 {
		return 0
	}
	q := 0.0
	for i := 0; i < n; i++ {
		ki := float64(g.Degree(i))
		for j := 0; j < n; j++ {
			if assign[i] != assign[j] {
				continue
			}
			a := 0.0
			if g.HasEdge(i, j) {
				a = 1
			}
			q += a - ki*float64(g.Degree(j))/m2
		}
	}
	return q / m2
}

// modularityMatrix builds B = A - k·k'/2E.
func modularityMatrix(g *graph.Graph, m2 float64) *mat.SymDense {
	n := g.N()
	b := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		ki := float64(g.Degree(i))
		for j := i; j < n; j++ {
			a := 0.0
			if g.HasEdge(i, j) {
				a = 1
			}
			b.SetSym(i, j, a-ki*float64(g.Degree(j))/m2)
		}
	}
	return b
}

func allNodes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
