package topology

import (
	"errors"

	"github.com/gilchrisn/graph-topology-service/pkg/graph"
)

// ErrInvalidInput mirrors graph.ErrInvalidInput so callers can match the
// whole taxonomy against this package alone.
var ErrInvalidInput = graph.ErrInvalidInput

// ErrInvalidMeasureName is returned when a requested measure is outside the
// fixed vocabulary.
var ErrInvalidMeasureName = errors.New("topology: invalid measure name")

// ErrInvalidIterationConfig is returned when an iteration count is negative
// or not an integer.
var ErrInvalidIterationConfig = errors.New("topology: invalid iteration config")
