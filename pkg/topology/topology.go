// Package topology is the measure orchestrator: given a raw adjacency
// matrix and a requested measure set, it normalizes the graph, builds shared
// intermediates (distance matrix, null-model sets) exactly once, dispatches
// to the metric engines, and returns a flat measure-to-value mapping.
package topology

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/graph-topology-service/pkg/centrality"
	"github.com/gilchrisn/graph-topology-service/pkg/community"
	"github.com/gilchrisn/graph-topology-service/pkg/graph"
	"github.com/gilchrisn/graph-topology-service/pkg/metrics"
	"github.com/gilchrisn/graph-topology-service/pkg/nullmodel"
	"github.com/gilchrisn/graph-topology-service/pkg/powerlaw"
	"github.com/gilchrisn/graph-topology-service/pkg/smallworld"
)

// structConsProbeFraction is the edge fraction each structural-consistency
// repeat removes.
const structConsProbeFraction = 0.10

// Result is one computation's output: the requested measures and run
// statistics.
type Result struct {
	Values map[string]float64
	Stats  Stats
}

// Stats carries per-compute observability data.
type Stats struct {
	RuntimeMS    int64
	RandomSwaps  int
	LatticeSwaps int
}

// Engine orchestrates measure computation. A nil config takes the defaults.
type Engine struct {
	cfg *Config
	log zerolog.Logger
}

// NewEngine creates an orchestrator from cfg.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Engine{cfg: cfg, log: cfg.CreateLogger()}
}

// Compute normalizes matrix into a graph and computes the requested
// measures; an empty request computes all 22. Unknown measure names,
// invalid iteration counts, and invalid matrices abort the whole call with
// no partial result.
func (e *Engine) Compute(matrix [][]float64, measures []string) (*Result, error) {
	start := time.Now()

	iters, err := e.cfg.iterations()
	if err != nil {
		return nil, err
	}
	if len(measures) == 0 {
		measures = AllMeasures()
	}
	if err := validateMeasures(measures); err != nil {
		return nil, err
	}
	g, err := graph.FromMatrix(matrix)
	if err != nil {
		return nil, err
	}

	res := &Result{Values: make(map[string]float64, len(measures))}
	s := &session{
		e:     e,
		g:     g,
		iters: iters,
		rng:   rand.New(rand.NewSource(e.cfg.Seed())),
		cache: make(map[string]float64),
		stats: &res.Stats,
	}
	for _, m := range measures {
		if _, done := s.cache[m]; done {
			continue // yielded by an earlier paired computation
		}
		s.dispatch(m)
	}
	// Paired computations may cache values nobody asked for; only the
	// requested names enter the output.
	for _, m := range measures {
		res.Values[m] = s.cache[m]
	}

	res.Stats.RuntimeMS = time.Since(start).Milliseconds()
	e.log.Info().
		Int("nodes", g.N()).
		Int("edges", g.NumEdges()).
		Int("measures", len(res.Values)).
		Int64("runtime_ms", res.Stats.RuntimeMS).
		Msg("topology computation done")
	return res, nil
}

// session memoizes the shared intermediates for one Compute call: the
// distance matrix, the null-model sets, the power-law fit, and every value
// already produced.
type session struct {
	e     *Engine
	g     *graph.Graph
	iters iterationCounts
	rng   *rand.Rand
	cache map[string]float64
	stats *Stats

	dist    [][]float64
	randSet []*graph.Graph
	lattSet []*graph.Graph
	fit     *powerlaw.FitResult
}

func (s *session) distance() [][]float64 {
	if s.dist == nil {
		s.dist = graph.DistanceMatrix(s.g)
	}
	return s.dist
}

func (s *session) nulls() (randSet, lattSet []*graph.Graph) {
	if s.randSet == nil {
		gen := nullmodel.NewGenerator(nullmodel.Options{
			SwapsPerEdge:    s.e.cfg.SwapsPerEdge(),
			AttemptsPerSwap: s.e.cfg.AttemptsPerSwap(),
		}, s.rng, s.e.log)
		s.randSet = make([]*graph.Graph, 0, s.iters.nullRandom)
		for i := 0; i < s.iters.nullRandom; i++ {
			r := gen.Random(s.g)
			s.randSet = append(s.randSet, r.Graph)
			s.stats.RandomSwaps += r.Swaps
		}
		s.lattSet = make([]*graph.Graph, 0, s.iters.nullLattice)
		for i := 0; i < s.iters.nullLattice; i++ {
			l := gen.Lattice(s.g)
			s.lattSet = append(s.lattSet, l.Graph)
			s.stats.LatticeSwaps += l.Swaps
		}
	}
	return s.randSet, s.lattSet
}

func (s *session) powerlawFit() powerlaw.FitResult {
	if s.fit == nil {
		fit := powerlaw.Fit(s.g.DegreeSequence(), s.powerlawOpts())
		s.fit = &fit
	}
	return *s.fit
}

func (s *session) powerlawOpts() powerlaw.Options {
	return powerlaw.Options{FiniteSizeCorrection: s.e.cfg.FiniteSizeCorrection()}
}

// dispatch computes one measure, caching its paired companions along the
// way so a later request for them is a lookup.
func (s *session) dispatch(m string) {
	switch m {
	case MeasureN:
		s.cache[m] = float64(s.g.N())
	case MeasureE:
		s.cache[m] = metrics.EdgeCount(s.g)
	case MeasureAvgDeg:
		s.cache[m] = metrics.AvgDegree(s.g)
	case MeasureDensity:
		s.cache[m] = metrics.Density(s.g)
	case MeasureClustering:
		s.cache[m] = metrics.Clustering(s.g)
	case MeasureCharPath:
		s.cache[m] = metrics.CharPathLength(s.distance())
	case MeasureCloseness:
		s.cache[m] = metrics.Closeness(s.distance())
	case MeasureRadiality:
		s.cache[m] = metrics.Radiality(s.distance())
	case MeasureEfficiencyGlob, MeasureEfficiencyLoc:
		glob, loc := metrics.Efficiency(s.g, s.distance())
		s.cache[MeasureEfficiencyGlob] = glob
		s.cache[MeasureEfficiencyLoc] = loc
	case MeasureAssortativity:
		s.cache[m] = metrics.Assortativity(s.g)
	case MeasureLCPCorr:
		workers := 1
		if s.e.cfg.Parallel() {
			workers = s.e.cfg.NumWorkers()
		}
		s.cache[m] = metrics.LCPCorr(s.g, workers)
	case MeasureEBC, MeasureBC:
		bc := centrality.Betweenness(s.g)
		s.cache[MeasureBC] = bc.NodeMean
		s.cache[MeasureEBC] = bc.EdgeMean
	case MeasureModularity:
		eng := community.NewModularityEngine(s.iters.modularity, s.rng, s.e.log)
		s.cache[m] = eng.Mean(s.g)
	case MeasureStructCons:
		eng := community.NewConsistencyEngine(s.iters.structCons, structConsProbeFraction, s.rng, s.e.log)
		s.cache[m] = eng.Mean(s.g)
	case MeasurePowerlawGamma:
		s.cache[m] = s.powerlawFit().Alpha
	case MeasurePowerlawP:
		fit := s.powerlawFit()
		boot := powerlaw.NewBootstrap(s.iters.powerlawP, s.rng, s.e.log)
		s.cache[MeasurePowerlawP] = boot.PValue(s.g.DegreeSequence(), fit, s.powerlawOpts())
		s.cache[MeasurePowerlawGamma] = fit.Alpha
	case MeasureOmega, MeasureSigma, MeasureOmegaEff, MeasureSigmaEff:
		randSet, lattSet := s.nulls()
		idx := smallworld.Compose(s.g, s.distance(), randSet, lattSet)
		s.cache[MeasureOmega] = idx.Omega
		s.cache[MeasureSigma] = idx.Sigma
		s.cache[MeasureOmegaEff] = idx.OmegaEff
		s.cache[MeasureSigmaEff] = idx.SigmaEff
	}
}
