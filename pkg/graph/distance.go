package graph

import "math"

// DistanceMatrix computes all-pairs shortest-path hop counts by breadth-first
// search from every node. Entries are +Inf where no path exists and 0 on the
// diagonal.
func DistanceMatrix(g *Graph) [][]float64 {
	n := g.N()
	dist := make([][]float64, n)
	queue := make([]int, 0, n)
	hops := make([]int, n)
	for s := 0; s < n; s++ {
		row := make([]float64, n)
		for i := range row {
			row[i] = math.Inf(1)
		}
		for i := range hops {
			hops[i] = -1
		}
		hops[s] = 0
		row[s] = 0
		queue = append(queue[:0], s)
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range g.Neighbors(v) {
				if hops[w] < 0 {
					hops[w] = hops[v] + 1
					row[w] = float64(hops[w])
					queue = append(queue, w)
				}
			}
		}
		dist[s] = row
	}
	return dist
}
