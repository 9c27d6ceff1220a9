package metrics

import (
	"math"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

// Efficiency computes global and local efficiency together; either measure
// alone needs most of the same work, so the orchestrator requests both at
// once.
//
// Global efficiency is the mean of 1/d over all off-diagonal entries of the
// distance matrix (1/Inf contributes 0). Local efficiency averages, over
// nodes, the global efficiency of each node's neighbor-induced subgraph;
// nodes with fewer than two neighbors contribute 0.
func Efficiency(g *graph.Graph, dist [][]float64) (global, local float64) {
	global = GlobalEfficiency(dist)

	n := g.N()
	if n == 0 {
		return global, math.NaN()
	}
	total := 0.0
	for i := 0; i < n; i++ {
		nb := g.Neighbors(i)
		if len(nb) < 2 {
			continue
		}
		sub := g.Subgraph(nb)
		total += GlobalEfficiency(graph.DistanceMatrix(sub))
	}
	return global, total / float64(n)
}

// GlobalEfficiency returns the mean of reciprocal distances over all
// positive-distance pairs, 0 by convention when no pairs contribute.
func GlobalEfficiency(dist [][]float64) float64 {
	sum, count := 0.0, 0
	for i, row := range dist {
		for j, d := range row {
			if i != j && d > 0 {
				sum += 1 / d
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
