// d3d9dis - Direct3D 9 shader bytecode disassembler
// Prints the constant table and an assembly-like instruction listing,
// preshader first, optionally followed by the decompiler statements.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gogpu/shaderdec/bytecode"
	"github.com/gogpu/shaderdec/decompiler"
	"github.com/gogpu/shaderdec/ir"
)

// flagsEnv holds extra command line arguments.
const flagsEnv = "D3D9DIS_FLAGS"

func main() {
	os.Exit(run(os.Args[1:], os.Getenv(flagsEnv), os.Stdout, os.Stderr))
}

func run(args []string, env string, stdout, stderr io.Writer) int {
	extra, err := shellquote.Split(env)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid %s: %v\n", flagsEnv, err)
		return 2
	}

	fs := flag.NewFlagSet("d3d9dis", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showIR := fs.Bool("ir", false, "print the statements built from the instructions")
	simplified := fs.Bool("s", false, "print the statements after simplification")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: d3d9dis [options] <file>\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(append(extra, args...)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	log := zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(stderr), zapcore.WarnLevel))
	defer func() { _ = log.Sync() }()

	s, err := bytecode.Read(data, &bytecode.ReadOptions{Logger: log})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "// %s, version %d.%d\n", s.Version.Kind, s.Version.Major, s.Version.Minor)
	io.WriteString(stdout, s.Disassemble())

	if *showIR {
		stmts, err := decompiler.Build(s, decompiler.Scan(s))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		printStatements(stdout, "statements", stmts)
	}
	if *simplified {
		p, err := decompiler.Decompile(s, nil)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		printStatements(stdout, "simplified", p.Statements)
	}
	return 0
}

func printStatements(w io.Writer, title string, stmts []ir.Expression) {
	fmt.Fprintf(w, "\n// %s\n", title)
	for i, e := range stmts {
		fmt.Fprintf(w, "%4d  %s\n", i, ir.Format(e))
	}
}
