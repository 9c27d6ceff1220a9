package community

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

// twoTriangles is the classic two-community graph: triangles {0,1,2} and
// {3,4,5} joined by the bridge 2-3.
func twoTriangles() *graph.Graph {
	return graph.FromEdges(6, []graph.Edge{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2},
		{U: 3, V: 4}, {U: 4, V: 5}, {U: 3, V: 5},
		{U: 2, V: 3},
	})
}

func TestModularityScore(t *testing.T) {
	g := twoTriangles()
	// Known value for the natural split: 2*(3/7 - (7/14)^2).
	q := Modularity(g, []int{0, 0, 0, 1, 1, 1})
	assert.InDelta(t, 2*(3.0/7.0-0.25), q, 1e-12)

	// A single community always scores exactly zero.
	assert.InDelta(t, 0.0, Modularity(g, []int{0, 0, 0, 0, 0, 0}), 1e-12)
}

func TestModularityEngineFindsCommunities(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	eng := NewModularityEngine(20, rng, zerolog.Nop())
	q := eng.Mean(twoTriangles())
	require.False(t, math.IsNaN(q))
	// The spectral split should recover the two triangles.
	assert.InDelta(t, 2*(3.0/7.0-0.25), q, 1e-9)
}

func TestModularityEngineTriangle(t *testing.T) {
	// K3 has no meaningful split; every iteration keeps one community.
	g := graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}})
	rng := rand.New(rand.NewSource(1))
	q := NewModularityEngine(10, rng, zerolog.Nop()).Mean(g)
	assert.InDelta(t, 0.0, q, 1e-9)
}

func TestModularityEngineEdgeless(t *testing.T) {
	g := graph.FromEdges(4, nil)
	rng := rand.New(rand.NewSource(1))
	q := NewModularityEngine(5, rng, zerolog.Nop()).Mean(g)
	assert.True(t, math.IsNaN(q))
}

func TestModularityEngineZeroIterations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := NewModularityEngine(0, rng, zerolog.Nop()).Mean(twoTriangles())
	assert.True(t, math.IsNaN(q))
}

func TestConsistencySmallProbeNaN(t *testing.T) {
	// K3 has 3 edges; 10% of that floors to zero probes, so every
	// iteration is lost and the mean is NaN rather than a crash.
	g := graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}})
	rng := rand.New(rand.NewSource(3))
	v := NewConsistencyEngine(10, 0.10, rng, zerolog.Nop()).Mean(g)
	assert.True(t, math.IsNaN(v))
}

func TestConsistencyBounded(t *testing.T) {
	// K6: 15 edges, one probe per repeat.
	var edges []graph.Edge
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			edges = append(edges, graph.Edge{U: i, V: j})
		}
	}
	g := graph.FromEdges(6, edges)
	rng := rand.New(rand.NewSource(11))
	v := NewConsistencyEngine(30, 0.10, rng, zerolog.Nop()).Mean(g)
	require.False(t, math.IsNaN(v))
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
}

func TestPerturbedReconstructionDegenerateSpectrum(t *testing.T) {
	// A 4-ring's adjacency has a doubly-degenerate zero eigenvalue; the
	// reconstruction must resolve the block instead of failing.
	g := graph.FromEdges(4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 0}})
	rng := rand.New(rand.NewSource(5))
	v := NewConsistencyEngine(20, 0.25, rng, zerolog.Nop()).Mean(g)
	require.False(t, math.IsNaN(v))
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
}

func TestNanMean(t *testing.T) {
	assert.Equal(t, 2.0, nanMean([]float64{1, math.NaN(), 3}))
	assert.True(t, math.IsNaN(nanMean([]float64{math.NaN(), math.NaN()})))
	assert.True(t, math.IsNaN(nanMean(nil)))
}
