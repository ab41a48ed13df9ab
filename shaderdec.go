// Package shaderdec decompiles Direct3D 9 shader bytecode to HLSL.
//
// The pipeline reads the token stream of a vertex or pixel shader (and its
// embedded constant table and preshader), scans register usage, builds one
// expression statement per instruction, simplifies the statements by
// forwarding single-use values and applying algebraic rewrites, and renders
// the result as an HLSL entry point function.
//
// Example usage:
//
//	source, err := shaderdec.Decompile(blob)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For finer control use the individual stages:
//
//	shader, _ := bytecode.Read(blob, nil)
//	prog, _ := decompiler.Decompile(shader, decompiler.DefaultOptions())
//	source, info, err := hlsl.Compile(prog, hlsl.DefaultOptions())
package shaderdec

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/decompiler"
	"github.com/gogpu/shaderdec/hlsl"
)

// Options configures the whole pipeline.
type Options struct {
	// Decompiler configures simplification. Nil uses the defaults.
	Decompiler *decompiler.Options

	// HLSL configures code generation. Nil uses the defaults.
	HLSL *hlsl.Options

	// Logger receives warnings and debug events from every stage unless
	// a stage option sets its own. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Decompiler: decompiler.DefaultOptions(),
		HLSL:       hlsl.DefaultOptions(),
	}
}

// Result is the outcome of decompiling one shader.
type Result struct {
	// Source is the generated HLSL.
	Source string

	// Shader is the decoded bytecode.
	Shader *bytecode.Shader

	// Program holds the simplified statements.
	Program *decompiler.Program

	// Stats summarizes the simplification run.
	Stats decompiler.Stats

	// Info describes the generated entry point.
	Info *hlsl.TranslationInfo
}

// Decompile decodes a shader blob and returns HLSL source using default
// options.
func Decompile(data []byte) (string, error) {
	r, err := DecompileWithOptions(data, DefaultOptions())
	if err != nil {
		return "", err
	}
	return r.Source, nil
}

// DecompileWithOptions decodes a shader blob and decompiles it.
//
// The pipeline is:
//  1. Decode the token stream and embedded tables
//  2. Scan register usage
//  3. Build and simplify statements
//  4. Generate HLSL
func DecompileWithOptions(data []byte, opts Options) (*Result, error) {
	shader, err := bytecode.Read(data, &bytecode.ReadOptions{Logger: opts.Logger})
	if err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	return DecompileShader(shader, opts)
}

// DecompileShader decompiles an already decoded shader.
func DecompileShader(s *bytecode.Shader, opts Options) (*Result, error) {
	prog, err := decompiler.Decompile(s, opts.decompilerOptions())
	if err != nil {
		return nil, fmt.Errorf("decompile error: %w", err)
	}

	source, info, err := hlsl.Compile(prog, opts.HLSL)
	if err != nil {
		return nil, fmt.Errorf("HLSL generation error: %w", err)
	}

	return &Result{
		Source:  source,
		Shader:  s,
		Program: prog,
		Stats:   prog.Stats,
		Info:    info,
	}, nil
}

// DecompileAll decompiles every shader independently. The returned slice
// is parallel to shaders and holds nil for each shader that failed. A
// panic while decompiling one shader is reported as an internal error for
// that shader only. The error combines every failure; split it with
// multierr.Errors.
func DecompileAll(shaders []*bytecode.Shader, opts Options) ([]*Result, error) {
	log := opts.logger()
	results := make([]*Result, len(shaders))

	var errs error
	for i, s := range shaders {
		r, err := decompileIsolated(s, opts)
		if err != nil {
			log.Warn("shader decompilation failed", zap.Int("index", i), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("shader %d: %w", i, err))
			continue
		}
		results[i] = r
	}
	return results, errs
}

func decompileIsolated(s *bytecode.Shader, opts Options) (r *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			r = nil
			err = decompiler.NewError(decompiler.ErrInternal, -1, "panic: %v", p)
		}
	}()
	return DecompileShader(s, opts)
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// decompilerOptions returns the decompiler options with the pipeline
// logger filled in.
func (o Options) decompilerOptions() *decompiler.Options {
	d := decompiler.DefaultOptions()
	if o.Decompiler != nil {
		c := *o.Decompiler
		d = &c
	}
	if d.Logger == nil {
		d.Logger = o.Logger
	}
	return d
}
