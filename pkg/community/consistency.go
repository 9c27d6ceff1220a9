package community

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

// degenTol bounds the eigenvalue gap below which two eigenvalues are treated
// as a degenerate pair and re-diagonalized together.
const degenTol = 1e-8

// ConsistencyEngine estimates the structural-consistency link-predictability
// index: remove a random slice of edges, reconstruct the remaining graph by
// first-order spectral perturbation, and measure how well the top-ranked
// reconstructed non-edges recover the removed edges.
type ConsistencyEngine struct {
	iterations    int
	probeFraction float64
	rng           *rand.Rand
	log           zerolog.Logger
}

// NewConsistencyEngine creates an engine removing probeFraction of the edges
// per repeat (the measure's canonical fraction is 0.10).
func NewConsistencyEngine(iterations int, probeFraction float64, rng *rand.Rand, log zerolog.Logger) *ConsistencyEngine {
	return &ConsistencyEngine{iterations: iterations, probeFraction: probeFraction, rng: rng, log: log}
}

// Mean runs the engine. Repeats with an empty probe set or a failed
// eigendecomposition count as NaN and are excluded; all-failed yields NaN.
func (e *ConsistencyEngine) Mean(g *graph.Graph) float64 {
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
			Msg("structural-consistency iterations lost")
	}
	return nanMean(values)
}

func (e *ConsistencyEngine) run(g *graph.Graph) float64 {
	n := g.N()
	edges := g.Edges()
	probe := int(e.probeFraction * float64(len(edges)))
	if probe == 0 {
		return math.NaN()
	}

	removed := make([]graph.Edge, len(edges))
	copy(removed, edges)
	e.rng.Shuffle(len(removed), func(i, j int) {
		removed[i], removed[j] = removed[j], removed[i]
	})
	removed = removed[:probe]

	training := g.AdjacencyCopy()
	for _, ed := range removed {
		training[ed.U][ed.V] = false
		training[ed.V][ed.U] = false
	}

	at := mat.NewSymDense(n, nil)
	da := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if training[i][j] {
				at.SetSym(i, j, 1)
			}
		}
	}
	for _, ed := range removed {
		da.SetSym(ed.U, ed.V, 1)
	}

	score, ok := perturbedReconstruction(at, da)
	if !ok {
		return math.NaN()
	}

	// Rank every non-edge of the training graph by reconstructed score;
	// the removed edges are exactly the true edges hiding in that pool.
	type candidate struct {
		u, v int
		s    float64
	}
	var cands []candidate
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !training[i][j] {
				cands = append(cands, candidate{u: i, v: j, s: score.At(i, j)})
			}
		}
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].s > cands[b].s })
	if len(cands) > probe {
		cands = cands[:probe]
	}
	hits := 0
	for _, c := range cands {
		if g.HasEdge(c.u, c.v) {
			hits++
		}
	}
	return float64(hits) / float64(probe)
}

// perturbedReconstruction builds the first-order perturbed matrix of the
// training adjacency at under the perturbation da. Degenerate eigenspaces
// are resolved by re-diagonalizing da restricted to each near-equal
// eigenvalue block.
func perturbedReconstruction(at, da *mat.SymDense) (*mat.Dense, bool) {
	values, vectors, ok := eigenSym(at)
	if !ok {
		return nil, false
	}
	n := len(values)
	out := mat.NewDense(n, n, nil)

	for lo := 0; lo < n; {
		hi := lo + 1
		for hi < n && math.Abs(values[hi]-values[lo]) <= degenTol {
			hi++
		}
		if hi-lo == 1 {
			x := mat.Col(nil, lo, vectors)
			shift := quadForm(da, x)
			accumOuter(out, values[lo]+shift, x)
		} else {
			// Re-diagonalize the perturbation inside the degenerate block.
			m := hi - lo
			block := mat.NewSymDense(m, nil)
			cols := make([][]float64, m)
			for a := 0; a < m; a++ {
				cols[a] = mat.Col(nil, lo+a, vectors)
			}
			daCols := make([][]float64, m)
			for a := 0; a < m; a++ {
				daCols[a] = matVec(da, cols[a])
			}
			for a := 0; a < m; a++ {
				for b := a; b < m; b++ {
					block.SetSym(a, b, dot(cols[a], daCols[b]))
				}
			}
			shifts, rot, ok := eigenSym(block)
			if !ok {
				return nil, false
			}
			for l := 0; l < m; l++ {
				y := make([]float64, n)
				for a := 0; a < m; a++ {
					w := rot.At(a, l)
					for i := range y {
						y[i] += w * cols[a][i]
					}
				}
				accumOuter(out, values[lo]+shifts[l], y)
			}
		}
		lo = hi
	}
	return out, true
}

func matVec(a *mat.SymDense, x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := 0.0
		for j := 0; j < n; j++ {
			s += a.At(i, j) * x[j]
		}
		out[i] = s
	}
	return out
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func quadForm(a *mat.SymDense, x []float64) float64 {
	return dot(x, matVec(a, x))
}

// accumOuter adds w·x·x' into out.
func accumOuter(out *mat.Dense, w float64, x []float64) {
	n := len(x)
	for i := 0; i < n; i++ {
		wi := w * x[i]
		if wi == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			out.Set(i, j, out.At(i, j)+wi*x[j])
		}
	}
}
