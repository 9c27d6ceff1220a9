package metrics

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

// lcpSample holds the per-edge common-neighbor count and the number of links
// among those common neighbors.
type lcpSample struct {
	cn  float64
	lcl float64
}

// LCPCorr returns the local-community-paradigm correlation: the Pearson
// correlation, across all edges with at least one common neighbor, between
// the common-neighbor count and the number of links among those common
// neighbors. Degenerate samples (no qualifying edge, all-zero link counts,
// or a constant series) yield 0.
//
// workers > 1 partitions the per-edge computations across that many
// goroutines. Edges are independent and each result is written to its own
// slot, so the output is identical to the sequential mode.
func LCPCorr(g *graph.Graph, workers int) float64 {
	edges := g.Edges()
	samples := make([]lcpSample, len(edges))

	if workers <= 1 {
		for idx := range edges {
			samples[idx] = lcpEdgeSample(g, edges[idx])
		}
	} else {
		if workers > runtime.NumCPU() {
			workers = runtime.NumCPU()
		}
		var eg errgroup.Group
		chunk := (len(edges) + workers - 1) / workers
		for lo := 0; lo < len(edges); lo += chunk {
			lo, hi := lo, lo+chunk
			if hi > len(edges) {
				hi = len(edges)
			}
			eg.Go(func() error {
				for idx := lo; idx < hi; idx++ {
					samples[idx] = lcpEdgeSample(g, edges[idx])
				}
				return nil
			})
		}
		// Workers never fail; Wait only synchronizes.
		_ = eg.Wait()
	}

	cn := make([]float64, 0, len(samples))
	lcl := make([]float64, 0, len(samples))
	anyLCL := false
	for _, s := range samples {
		if s.cn > 0 {
			cn = append(cn, s.cn)
			lcl = append(lcl, s.lcl)
			if s.lcl > 0 {
				anyLCL = true
			}
		}
	}
	if len(cn) == 0 || !anyLCL {
		return 0
	}
	r := stat.Correlation(cn, lcl, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// lcpEdgeSample computes the common neighbors of an edge's endpoints and the
// edge count inside that common-neighbor set.
func lcpEdgeSample(g *graph.Graph, e graph.Edge) lcpSample {
	var common []int
	for _, w := range g.Neighbors(e.U) {
		if g.HasEdge(e.V, w) {
			common = append(common, w)
		}
	}
	links := 0
	for a := 0; a < len(common); a++ {
		for b := a + 1; b < len(common); b++ {
			if g.HasEdge(common[a], common[b]) {
				links++
			}
		}
	}
	return lcpSample{cn: float64(len(common)), lcl: float64(links)}
}
