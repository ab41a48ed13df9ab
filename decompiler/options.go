package decompiler

import (
	"math"

	"go.uber.org/zap"
)

// Options configures simplification.
type Options struct {
	// ComplexityThreshold bounds the node count of a statement for
	// rewrites that grow it. Defaults to math.MaxInt (unbounded).
	ComplexityThreshold int

	// MinimumSimplifications suppresses every complexity-increasing
	// rewrite regardless of the threshold.
	MinimumSimplifications bool

	// LeafForwarding still forwards single-node sources (a constant or a
	// register) while complexity-increasing rewrites are suppressed.
	LeafForwarding bool

	// Logger receives per-cycle debug events. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns options with an unbounded threshold.
func DefaultOptions() *Options {
	return &Options{
		ComplexityThreshold: math.MaxInt,
	}
}

func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Options) threshold() int {
	if o.ComplexityThreshold <= 0 {
		return math.MaxInt
	}
	return o.ComplexityThreshold
}
