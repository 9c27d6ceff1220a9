// Package powerlaw fits a power-law tail to a degree sequence by maximum
// likelihood with KS-minimizing cutoff selection, and estimates a bootstrap
// goodness-of-fit p-value.
package powerlaw

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"
)

// Options tunes the fitting procedure.
type Options struct {
	// FiniteSizeCorrection applies the small-sample bias correction to the
	// continuous-case exponent.
	FiniteSizeCorrection bool
	// GridMin, GridMax, GridStep define the discrete-case exponent search
	// grid. Zero values take the defaults 1.01, 10.00, 0.01.
	GridMin  float64
	GridMax  float64
	GridStep float64
}

func (o Options) grid() (lo, hi, step float64) {
	lo, hi, step = o.GridMin, o.GridMax, o.GridStep
	if lo == 0 {
		lo = 1.01
	}
	if hi == 0 {
		hi = 10.00
	}
	if step == 0 {
		step = 0.01
	}
	return lo, hi, step
}

// FitResult describes a fitted power-law tail.
type FitResult struct {
	Alpha    float64 // exponent
	Xmin     float64 // cutoff: tail = values >= Xmin
	KS       float64 // KS distance between fitted and empirical tail CDF
	Discrete bool
	NTail    int // tail sample size
}

// Fit estimates exponent and cutoff for data. Degrees are treated as
// discrete when every value is integral, unless the minimum exceeds 1000
// and the sample exceeds 100 values, which forces the continuous
// approximation. A sample too degenerate to fit yields NaN fields.
func Fit(data []float64, opts Options) FitResult {
	x := append([]float64(nil), data...)
	sort.Float64s(x)
	if len(x) < 2 || x[0] == x[len(x)-1] {
		return FitResult{Alpha: math.NaN(), Xmin: math.NaN(), KS: math.NaN()}
	}
	discrete := allIntegers(x) && !(x[0] > 1000 && len(x) > 100)
	if discrete {
		return fitDiscrete(x, opts)
	}
	return fitContinuous(x, opts)
}

// fitContinuous scans every distinct value except the largest as a candidate
// cutoff, estimates alpha in closed form, and keeps the cutoff minimizing
// the KS statistic.
func fitContinuous(x []float64, opts Options) FitResult {
	best := FitResult{Alpha: math.NaN(), Xmin: math.NaN(), KS: math.Inf(1)}
	for _, xmin := range candidateCutoffs(x) {
		z := tail(x, xmin)
		n := float64(len(z))
		slog := 0.0
		for _, v := range z {
			slog += math.Log(v / xmin)
		}
		if slog <= 0 {
			continue
		}
		alpha := 1 + n/slog
		ks := 0.0
		for i, v := range z {
			cx := float64(i) / n
			cf := 1 - math.Pow(xmin/v, alpha-1)
			if d := math.Abs(cf - cx); d > ks {
				ks = d
			}
		}
		if ks < best.KS {
			best = FitResult{Alpha: alpha, Xmin: xmin, KS: ks, NTail: len(z)}
		}
	}
	if math.IsInf(best.KS, 1) {
		return FitResult{Alpha: math.NaN(), Xmin: math.NaN(), KS: math.NaN()}
	}
	if opts.FiniteSizeCorrection {
		n := float64(best.NTail)
		best.Alpha = best.Alpha*(n-1)/n + 1/n
	}
	return best
}

// fitDiscrete selects the exponent for each candidate cutoff by direct
// maximization of the discrete log-likelihood over the configured grid,
// with the Hurwitz zeta function as normalizer.
func fitDiscrete(x []float64, opts Options) FitResult {
	lo, hi, step := opts.grid()
	best := FitResult{Alpha: math.NaN(), Xmin: math.NaN(), KS: math.Inf(1), Discrete: true}
	for _, xmin := range candidateCutoffs(x) {
		z := tail(x, xmin)
		n := float64(len(z))
		slog := logSum(z)
		bestL, bestAlpha := math.Inf(-1), math.NaN()
		for a := lo; a <= hi+step/2; a += step {
			l := -a*slog - n*math.Log(mathext.Zeta(a, xmin))
			if l > bestL {
				bestL, bestAlpha = l, a
			}
		}
		if math.IsNaN(bestAlpha) {
			continue
		}
		ks := discreteKS(z, xmin, bestAlpha)
		if ks < best.KS {
			best = FitResult{Alpha: bestAlpha, Xmin: xmin, KS: ks, Discrete: true, NTail: len(z)}
		}
	}
	if math.IsInf(best.KS, 1) {
		return FitResult{Alpha: math.NaN(), Xmin: math.NaN(), KS: math.NaN(), Discrete: true}
	}
	return best
}

// discreteKS compares the fitted discrete CDF against the empirical tail CDF
// over the integer support xmin..max(z).
func discreteKS(z []float64, xmin, alpha float64) float64 {
	n := float64(len(z))
	xmax := z[len(z)-1]
	norm := mathext.Zeta(alpha, xmin)
	ks := 0.0
	cdf := 0.0
	idx := 0
	seen := 0
	for v := xmin; v <= xmax; v++ {
		cdf += math.Pow(v, -alpha) / norm
		for idx < len(z) && z[idx] <= v {
			idx++
			seen++
		}
		emp := float64(seen) / n
		if d := math.Abs(cdf - emp); d > ks {
			ks = d
		}
	}
	return ks
}

// candidateCutoffs returns the distinct positive values of sorted x except
// the largest. Nonpositive values (isolated nodes in a degree sequence)
// cannot anchor a tail and would put the zeta normalizer at its singularity.
func candidateCutoffs(x []float64) []float64 {
	var out []float64
	for _, v := range x {
		if v <= 0 {
			continue
		}
		if len(out) > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	if len(out) > 0 && out[len(out)-1] == x[len(x)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// tail returns the sorted values >= xmin.
func tail(x []float64, xmin float64) []float64 {
	i := sort.SearchFloat64s(x, xmin)
	return x[i:]
}

func allIntegers(x []float64) bool {
	for _, v := range x {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}

func logSum(x []float64) float64 {
	logs := make([]float64, len(x))
	for i, v := range x {
		logs[i] = math.Log(v)
	}
	return floats.Sum(logs)
}
