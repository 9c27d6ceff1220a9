package community

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// eigenSym factorizes a symmetric matrix and returns eigenvalues ascending
// with their eigenvectors as columns. ok is false when the decomposition
// fails to converge; callers treat that iteration as lost rather than
// aborting the whole run.
func eigenSym(a *mat.SymDense) (values []float64, vectors *mat.Dense, ok bool) {
	var eig mat.EigenSym
	if !eig.Factorize(a, true) {
		return nil, nil, false
	}
	values = eig.Values(nil)
	vectors = mat.NewDense(len(values), len(values), nil)
	eig.VectorsTo(vectors)
	return values, vectors, true
}

// nanMean averages the non-NaN entries, NaN when every entry failed.
func nanMean(values []float64) float64 {
	sum, count := 0.0, 0
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}
