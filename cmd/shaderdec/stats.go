package main

import (
	"fmt"
	"io"

	"github.com/aclements/go-moremath/stats"

	"github.com/gogpu/shaderdec"
	"github.com/gogpu/shaderdec/ir"
)

// summary accumulates simplification statistics over all decompiled
// shaders.
type summary struct {
	shaders    int
	cycles     []float64
	reduction  []float64
	complexity []float64
}

func (s *summary) add(r *shaderdec.Result) {
	s.shaders++
	s.cycles = append(s.cycles, float64(r.Stats.Cycles))
	if r.Stats.Initial > 0 {
		removed := r.Stats.Initial - r.Stats.Final
		s.reduction = append(s.reduction, float64(removed)/float64(r.Stats.Initial))
	}
	for _, e := range r.Program.Statements {
		s.complexity = append(s.complexity, float64(ir.Complexity(e)))
	}
}

func (s *summary) write(w io.Writer) {
	fmt.Fprintf(w, "shaders: %d\n", s.shaders)
	writeSample(w, "cycles", s.cycles)
	writeSample(w, "statement reduction", s.reduction)
	writeSample(w, "statement complexity", s.complexity)
}

func writeSample(w io.Writer, name string, xs []float64) {
	if len(xs) == 0 {
		fmt.Fprintf(w, "%s: no data\n", name)
		return
	}
	lo, hi := stats.Bounds(xs)
	sd := 0.0
	if len(xs) > 1 {
		sd = stats.StdDev(xs)
	}
	fmt.Fprintf(w, "%s: n=%d mean=%.3g stddev=%.3g min=%g max=%g\n",
		name, len(xs), stats.Mean(xs), sd, lo, hi)
}
