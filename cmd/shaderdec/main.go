// Command shaderdec decompiles Direct3D 9 shader bytecode to HLSL.
//
// Usage:
//
//	shaderdec [options] <input>...
//
// Examples:
//
//	shaderdec shader.pso                  # Decompile to stdout
//	shaderdec -o shader.hlsl shader.pso   # Decompile to file
//	shaderdec -threshold 40 -stats *.vso  # Bound expression size, report statistics
//
// Options are also read from a shaderdec.toml file found in the current
// directory or one of its parents, and from the SHADERDEC_FLAGS
// environment variable, which is split like a shell command line and
// placed before the command line arguments.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gogpu/shaderdec"
	"github.com/gogpu/shaderdec/internal/config"
)

const shaderdecVersion = "0.1.0-dev"

// flagsEnv holds extra command line arguments.
const flagsEnv = "SHADERDEC_FLAGS"

type flags struct {
	output      string
	entry       string
	threshold   int
	minimum     bool
	leaf        bool
	decl        bool
	configPath  string
	stats       bool
	verbose     bool
	showVersion bool
}

func newFlagSet(f *flags, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("shaderdec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.output, "o", "", "output file (default: stdout)")
	fs.StringVar(&f.entry, "entry", "main", "entry point name")
	fs.IntVar(&f.threshold, "threshold", 0, "complexity threshold for expression growth (0: unbounded)")
	fs.BoolVar(&f.minimum, "min", false, "apply only rewrites that do not grow expressions")
	fs.BoolVar(&f.leaf, "leaf", false, "forward constants and registers even when growth is suppressed")
	fs.BoolVar(&f.decl, "decl", false, "emit constant table declarations")
	fs.StringVar(&f.configPath, "config", "", "settings file (default: search for "+config.FileName+")")
	fs.BoolVar(&f.stats, "stats", false, "print simplification statistics to stderr")
	fs.BoolVar(&f.verbose, "v", false, "verbose logging")
	fs.BoolVar(&f.showVersion, "version", false, "print version")
	fs.Usage = func() { usage(fs, stderr) }
	return fs
}

func main() {
	os.Exit(run(os.Args[1:], os.Getenv(flagsEnv), os.Stdout, os.Stderr))
}

// run executes the command and returns the exit status.
func run(args []string, env string, stdout, stderr io.Writer) int {
	extra, err := shellquote.Split(env)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid %s: %v\n", flagsEnv, err)
		return 2
	}

	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(append(extra, args...)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if f.showVersion {
		fmt.Fprintf(stdout, "shaderdec version %s\n", shaderdecVersion)
		return 0
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(stderr, "Error: no input file specified")
		fs.Usage()
		return 1
	}

	log := newLogger(f.verbose, stderr)
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg.Merge(overrides(fs, &f))
	if err := cfg.Validate(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(stderr, "Error: %v\n", e)
		}
		return 1
	}
	if cfg.Path != "" {
		log.Debug("loaded settings", zap.String("path", cfg.Path))
	}

	dopts, hopts := cfg.ToOptions()
	opts := shaderdec.Options{Decompiler: dopts, HLSL: hopts, Logger: log}

	var (
		out  strings.Builder
		errs error
		st   summary
	)
	for _, path := range inputs {
		r, err := decompileFile(path, opts)
		if err != nil {
			log.Warn("shader decompilation failed", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if len(inputs) > 1 {
			fmt.Fprintf(&out, "// %s\n", path)
		}
		out.WriteString(r.Source)
		st.add(r)
	}

	if err := writeOutput(f.output, out.String(), stdout); err != nil {
		errs = multierr.Append(errs, err)
	}
	if f.stats {
		st.write(stderr)
	}

	if errs != nil {
		for _, e := range multierr.Errors(errs) {
			fmt.Fprintf(stderr, "Error: %v\n", e)
		}
		return 1
	}
	return 0
}

func decompileFile(path string, opts shaderdec.Options) (*shaderdec.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return shaderdec.DecompileWithOptions(data, opts)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(".")
}

// overrides returns the settings given explicitly on the command line.
func overrides(fs *flag.FlagSet, f *flags) *config.Config {
	c := &config.Config{}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "entry":
			c.Output.EntryPoint = &f.entry
		case "threshold":
			c.Decompiler.ComplexityThreshold = &f.threshold
		case "min":
			c.Decompiler.MinimumSimplifications = &f.minimum
		case "leaf":
			c.Decompiler.LeafForwarding = &f.leaf
		case "decl":
			c.Output.Declarations = &f.decl
		}
	})
	return c
}

func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(stderr), level)
	return zap.New(core)
}

func writeOutput(path, source string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, source)
		return err
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: shaderdec [options] <input>...\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nEnvironment:\n")
	fmt.Fprintf(w, "  %s  extra options, split like a shell command line\n", flagsEnv)
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  shaderdec shader.pso                 Decompile to stdout\n")
	fmt.Fprintf(w, "  shaderdec -o shader.hlsl shader.pso  Decompile to file\n")
	fmt.Fprintf(w, "  shaderdec -decl -entry ps_main a.pso Emit constant declarations\n")
}
