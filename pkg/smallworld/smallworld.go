// Package smallworld combines real-graph metrics with averaged null-model
// metrics into the omega and sigma small-world indices and their
// efficiency-based analogues.
package smallworld

import (
	"github.com/gilchrisn/graph-topology-service/pkg/graph"
	"github.com/gilchrisn/graph-topology-service/pkg/metrics"
)

// Indices holds the four small-world measures.
//
//	Omega    = L_rand/L - C/C_latt
//	Sigma    = (C/C_rand) / (L/L_rand)
//	OmegaEff = Eglob_rand/Eglob - Eloc/Eloc_latt
//	SigmaEff = (Eloc/Eloc_rand) / (Eglob/Eglob_rand)
//
// Null-model quantities are means over the respective null set.
type Indices struct {
	Omega    float64
	Sigma    float64
	OmegaEff float64
	SigmaEff float64
}

// profile is the per-graph bundle of quantities the indices consume.
type profile struct {
	pathLen float64
	clust   float64
	effGlob float64
	effLoc  float64
}

// Compose computes the indices for g against random and lattice null sets.
// dist is g's cached distance matrix.
func Compose(g *graph.Graph, dist [][]float64, randSet, lattSet []*graph.Graph) Indices {
	obs := measure(g, dist)
	rnd := averageProfile(randSet)
	lat := averageProfile(lattSet)

	return Indices{
		Omega:    rnd.pathLen/obs.pathLen - obs.clust/lat.clust,
		Sigma:    (obs.clust / rnd.clust) / (obs.pathLen / rnd.pathLen),
		OmegaEff: rnd.effGlob/obs.effGlob - obs.effLoc/lat.effLoc,
		SigmaEff: (obs.effLoc / rnd.effLoc) / (obs.effGlob / rnd.effGlob),
	}
}

func measure(g *graph.Graph, dist [][]float64) profile {
	glob, loc := metrics.Efficiency(g, dist)
	return profile{
		pathLen: metrics.CharPathLength(dist),
		clust:   metrics.Clustering(g),
		effGlob: glob,
		effLoc:  loc,
	}
}

func averageProfile(set []*graph.Graph) profile {
	var avg profile
	if len(set) == 0 {
		return avg
	}
	for _, g := range set {
		p := measure(g, graph.DistanceMatrix(g))
		avg.pathLen += p.pathLen
		avg.clust += p.clust
		avg.effGlob += p.effGlob
		avg.effLoc += p.effLoc
	}
	k := float64(len(set))
	avg.pathLen /= k
	avg.clust /= k
	avg.effGlob /= k
	avg.effLoc /= k
	return avg
}
