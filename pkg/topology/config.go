package topology

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages orchestrator configuration using Viper.
type Config struct {
	v *viper.Viper
}

// NewConfig creates a configuration with the standard defaults.
func NewConfig() *Config {
	v := viper.New()

	// Iteration counts for the stochastic measures
	v.SetDefault("iterations.modularity", 100)
	v.SetDefault("iterations.struct_cons", 100)
	v.SetDefault("iterations.powerlaw_p", 1000)
	v.SetDefault("iterations.null_random", 10)
	v.SetDefault("iterations.null_lattice", 10)

	// Randomness
	v.SetDefault("random.seed", time.Now().UnixNano())

	// Performance parameters
	v.SetDefault("performance.parallel", false)
	v.SetDefault("performance.num_workers", runtime.NumCPU())

	// Null-model rewiring bounds
	v.SetDefault("nullmodel.swaps_per_edge", 10)
	v.SetDefault("nullmodel.attempts_per_swap", 10)

	// Power-law fitting
	v.SetDefault("powerlaw.finite_size_correction", false)

	// Logging parameters
	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile loads configuration from file.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Set allows dynamic configuration changes.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Getters for iteration parameters
func (c *Config) ModularityIterations() int { return c.v.GetInt("iterations.modularity") }
func (c *Config) StructConsIterations() int { return c.v.GetInt("iterations.struct_cons") }
func (c *Config) PowerlawReps() int         { return c.v.GetInt("iterations.powerlaw_p") }
func (c *Config) NullRandomCount() int      { return c.v.GetInt("iterations.null_random") }
func (c *Config) NullLatticeCount() int     { return c.v.GetInt("iterations.null_lattice") }

func (c *Config) Seed() int64 { return c.v.GetInt64("random.seed") }

func (c *Config) Parallel() bool   { return c.v.GetBool("performance.parallel") }
func (c *Config) NumWorkers() int  { return c.v.GetInt("performance.num_workers") }
func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

func (c *Config) SwapsPerEdge() int    { return c.v.GetInt("nullmodel.swaps_per_edge") }
func (c *Config) AttemptsPerSwap() int { return c.v.GetInt("nullmodel.attempts_per_swap") }

func (c *Config) FiniteSizeCorrection() bool { return c.v.GetBool("powerlaw.finite_size_correction") }

// iterationCounts snapshots and validates the five stochastic counts.
type iterationCounts struct {
	modularity  int
	structCons  int
	powerlawP   int
	nullRandom  int
	nullLattice int
}

func (c *Config) iterations() (iterationCounts, error) {
	var out iterationCounts
	fields := []struct {
		key string
		dst *int
	}{
		{"iterations.modularity", &out.modularity},
		{"iterations.struct_cons", &out.structCons},
		{"iterations.powerlaw_p", &out.powerlawP},
		{"iterations.null_random", &out.nullRandom},
		{"iterations.null_lattice", &out.nullLattice},
	}
	for _, f := range fields {
		n, err := nonNegativeInt(f.key, c.v.Get(f.key))
		if err != nil {
			return out, err
		}
		*f.dst = n
	}
	return out, nil
}

// nonNegativeInt rejects negative and fractional iteration counts.
func nonNegativeInt(key string, raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%w: %s = %d", ErrInvalidIterationConfig, key, v)
		}
		return v, nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%w: %s = %d", ErrInvalidIterationConfig, key, v)
		}
		return int(v), nil
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s = %v", ErrInvalidIterationConfig, key, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %s = %v", ErrInvalidIterationConfig, key, raw)
	}
}

// CreateLogger creates a zerolog logger based on config.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "topology").Logger()
}
