package simplex

import (
	"math"

	"github.com/go-logr/logr"
)

const (
	// DefaultTolerance is used for every comparison against zero.
	DefaultTolerance = 1e-9

	// DefaultMaxIterations bounds the pivots of one simplex loop run.
	DefaultMaxIterations = 10000
)

// Option configures Solve.
type Option func(*options)

type options struct {
	tol           float64
	maxIterations int
	log           logr.Logger
	// reverseEvery is the period of the backwards entering scan, <= 0
	// disables it.
	reverseEvery int
}

func newOptions(opts []Option) options {
	o := options{
		tol:           DefaultTolerance,
		maxIterations: DefaultMaxIterations,
		log:           logr.Discard(),
		reverseEvery:  reverseEvery,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTolerance sets the zero tolerance. Non-positive or non-finite values
// keep the default.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 && !math.IsInf(tol, 1) {
			o.tol = tol
		}
	}
}

// WithMaxIterations caps the iterations of each simplex loop run. Once the
// cap is hit the solve stops with StatusCyclingSuspected.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithLogger sets the logger. Phase changes are logged at V(1) and pivots
// at V(2).
func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}
