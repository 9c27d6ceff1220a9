package centrality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

func TestBetweennessPath(t *testing.T) {
	// Path 0-1-2. Node 1 carries the ordered pairs (0,2) and (2,0);
	// each edge carries 4 ordered pairs.
	g := graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	res := Betweenness(g)

	assert.Equal(t, []float64{0, 2, 0}, res.Node)
	assert.Equal(t, 2.0/3.0, res.NodeMean)
	assert.Equal(t, 4.0, res.Edge[graph.Edge{U: 0, V: 1}])
	assert.Equal(t, 4.0, res.Edge[graph.Edge{U: 1, V: 2}])
	assert.Equal(t, 4.0, res.EdgeMean)
}

func TestBetweennessStar(t *testing.T) {
	// Star with center 0: the center carries all 6 ordered leaf pairs,
	// each spoke carries its leaf's 6 ordered pairs.
	g := graph.FromEdges(4, []graph.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 0, V: 3}})
	res := Betweenness(g)

	assert.Equal(t, []float64{6, 0, 0, 0}, res.Node)
	assert.Equal(t, 1.5, res.NodeMean)
	for _, e := range g.Edges() {
		assert.Equal(t, 6.0, res.Edge[e])
	}
	assert.Equal(t, 6.0, res.EdgeMean)
}

func TestBetweennessRingSplitsPaths(t *testing.T) {
	// 4-ring: opposite nodes are joined by two shortest paths, so each
	// intermediate node picks up 1/2 per ordered pair, totalling 1.
	g := graph.FromEdges(4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 0}})
	res := Betweenness(g)

	for i, b := range res.Node {
		assert.InDelta(t, 1.0, b, 1e-12, "node %d", i)
	}
	assert.InDelta(t, 1.0, res.NodeMean, 1e-12)
}

func TestBetweennessNonNegative(t *testing.T) {
	g := graph.FromEdges(6, []graph.Edge{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 0, V: 2}, {U: 2, V: 3}, {U: 3, V: 4},
	})
	res := Betweenness(g)
	for _, b := range res.Node {
		assert.GreaterOrEqual(t, b, 0.0)
	}
	for _, b := range res.Edge {
		assert.GreaterOrEqual(t, b, 0.0)
	}
}

func TestBetweennessDisconnected(t *testing.T) {
	// Two components: unreachable nodes are placed first in the
	// processing order and contribute zero dependency.
	g := graph.FromEdges(5, []graph.Edge{{U: 0, V: 1}, {U: 2, V: 3}, {U: 3, V: 4}})
	res := Betweenness(g)

	require.Len(t, res.Node, 5)
	assert.Equal(t, 0.0, res.Node[0])
	assert.Equal(t, 2.0, res.Node[3], "node 3 bridges 2 and 4")
	assert.Equal(t, 0.0, res.Node[2])
}

func TestBetweennessEmptyGraph(t *testing.T) {
	g := graph.FromEdges(3, nil)
	res := Betweenness(g)
	assert.Equal(t, []float64{0, 0, 0}, res.Node)
	assert.Equal(t, 0.0, res.EdgeMean)
}
