// Package centrality computes node and edge betweenness via Brandes'
// single-source dependency accumulation.
package centrality

import (
	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

// Result carries the per-node and per-edge betweenness totals together with
// their means. Node betweenness is averaged over all nodes, edge betweenness
// over existing edges only. Totals count ordered source-target pairs, as the
// accumulation defines them.
type Result struct {
	Node     []float64
	Edge     map[graph.Edge]float64
	NodeMean float64
	EdgeMean float64
}

// Betweenness runs the dependency-accumulation procedure once per source
// node. Each source pass layers the graph breadth-first, counting shortest
// paths and predecessors, then propagates dependencies back in non-increasing
// distance order. Unreachable nodes sit at the front of that order and
// contribute nothing.
func Betweenness(g *graph.Graph) *Result {
	n := g.N()
	res := &Result{
		Node: make([]float64, n),
		Edge: make(map[graph.Edge]float64, g.NumEdges()),
	}

	sigma := make([]float64, n)
	dist := make([]int, n)
	delta := make([]float64, n)
	preds := make([][]int, n)
	order := make([]int, 0, n)
	queue := make([]int, 0, n)

	for s := 0; s < n; s++ {
		for i := 0; i < n; i++ {
			sigma[i] = 0
			dist[i] = -1
			delta[i] = 0
			preds[i] = preds[i][:0]
		}
		// Unreachable nodes keep dist -1 and are prepended to the
		// processing order, where their zero dependency is a no-op.
		order = order[:0]
		sigma[s] = 1
		dist[s] = 0
		queue = append(queue[:0], s)
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			order = append(order, v)
			for _, w := range g.Neighbors(v) {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		for i := len(order) - 1; i >= 0; i-- {
			w := order[i]
			for _, v := range preds[w] {
				c := sigma[v] / sigma[w] * (1 + delta[w])
				delta[v] += c
				res.Edge[edgeKey(v, w)] += c
			}
			if w != s {
				res.Node[w] += delta[w]
			}
		}
	}

	for _, b := range res.Node {
		res.NodeMean += b
	}
	res.NodeMean /= float64(n)
	if g.NumEdges() > 0 {
		for _, b := range res.Edge {
			res.EdgeMean += b
		}
		res.EdgeMean /= float64(g.NumEdges())
	}
	return res
}

func edgeKey(u, v int) graph.Edge {
	if u < v {
		return graph.Edge{U: u, V: v}
	}
	return graph.Edge{U: v, V: u}
}
