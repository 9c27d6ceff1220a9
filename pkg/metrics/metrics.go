// Package metrics implements the elementary and shortest-path-derived
// topology measures: size, density, clustering, characteristic path length,
// closeness, radiality, efficiency, assortativity, and the local-community
// paradigm correlation.
package metrics

import (
	"math"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

// EdgeCount returns the number of undirected edges, half the adjacency sum.
func EdgeCount(g *graph.Graph) float64 { return float64(g.NumEdges()) }

// AvgDegree returns the mean node degree, 2E/N.
func AvgDegree(g *graph.Graph) float64 {
	if g.N() == 0 {
		return math.NaN()
	}
	return 2 * float64(g.NumEdges()) / float64(g.N())
}

// Density returns the mean of the strictly-upper-triangular adjacency
// entries, E / (N·(N-1)/2).
func Density(g *graph.Graph) float64 {
	n := g.N()
	if n < 2 {
		return math.NaN()
	}
	return float64(g.NumEdges()) / (float64(n) * float64(n-1) / 2)
}

// Clustering returns the mean local clustering coefficient. For a node with
// degree k >= 2 the coefficient is the number of ordered neighbor pairs that
// are themselves adjacent divided by k·(k-1); nodes with degree < 2
// contribute 0.
func Clustering(g *graph.Graph) float64 {
	n := g.N()
	if n == 0 {
		return math.NaN()
	}
	total := 0.0
	for i := 0; i < n; i++ {
		nb := g.Neighbors(i)
		k := len(nb)
		if k < 2 {
			continue
		}
		links := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if g.HasEdge(nb[a], nb[b]) {
					links++
				}
			}
		}
		total += float64(2*links) / float64(k*(k-1))
	}
	return total / float64(n)
}

// CharPathLength returns the mean of all finite, strictly positive entries
// of the distance matrix, or NaN if there are none.
func CharPathLength(dist [][]float64) float64 {
	sum, count := 0.0, 0
	for _, row := range dist {
		for _, d := range row {
			if d > 0 && !math.IsInf(d, 1) {
				sum += d
				count++
			}
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// Closeness returns the mean over nodes of the sum of reciprocal distances
// to all other nodes. Disconnected pairs contribute 0 through 1/Inf.
func Closeness(dist [][]float64) float64 {
	n := len(dist)
	if n == 0 {
		return math.NaN()
	}
	total := 0.0
	for i, row := range dist {
		for j, d := range row {
			if i != j {
				total += 1 / d
			}
		}
	}
	return total / float64(n)
}

// Radiality returns the mean node radiality. Infinite entries are zeroed
// first, D_max is the maximum of the zeroed matrix, and the transform
// D_max + 1 - d is summed over each full row and divided by N-1.
// Unreachable entries are deliberately treated as distance 0 before the
// transform, so they contribute D_max + 1 to the row sum.
func Radiality(dist [][]float64) float64 {
	n := len(dist)
	if n < 2 {
		return math.NaN()
	}
	dmax := 0.0
	for _, row := range dist {
		for _, d := range row {
			if !math.IsInf(d, 1) && d > dmax {
				dmax = d
			}
		}
	}
	total := 0.0
	for _, row := range dist {
		rowSum := 0.0
		for _, d := range row {
			if math.IsInf(d, 1) {
				d = 0
			}
			rowSum += dmax + 1 - d
		}
		total += rowSum / float64(n-1)
	}
	return total / float64(n)
}

// Assortativity returns the degree-degree correlation over edges using the
// closed form (E[didj] - E[.]^2) / (E[(di^2+dj^2)/2] - E[.]^2). A regular
// graph has a zero denominator and yields NaN.
func Assortativity(g *graph.Graph) float64 {
	edges := g.Edges()
	m := float64(len(edges))
	if m == 0 {
		return math.NaN()
	}
	var sumProd, sumHalf, sumSq float64
	for _, e := range edges {
		di := float64(g.Degree(e.U))
		dj := float64(g.Degree(e.V))
		sumProd += di * dj
		sumHalf += 0.5 * (di + dj)
		sumSq += 0.5 * (di*di + dj*dj)
	}
	mean := sumHalf / m
	return (sumProd/m - mean*mean) / (sumSq/m - mean*mean)
}
