package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/sxwasm/sxc/compiler"
	"github.com/sxwasm/sxc/parser"
	"github.com/sxwasm/sxc/token"
)

func main() {
	var (
		verbose = flag.Bool("v", false, "enable debug logging")
		check   = flag.Bool("check", false, "validate the emitted module in a WebAssembly runtime before writing it")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: sxc <input_path> [<output_path>]")
		os.Exit(1)
	}

	inputPath := args[0]
	outputPath := "out.wasm"
	if len(args) == 2 {
		outputPath = args[1]
	}

	if *verbose {
		compiler.SetLogger(newConsoleLogger())
	}

	if err := compileFile(inputPath, outputPath, *check); err != nil {
		writeError(os.Stderr, err)
		os.Exit(1)
	}
}

func compileFile(inputPath, outputPath string, check bool) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	tokens := token.Tokenize(string(src))
	arena, err := parser.New(tokens).Parse()
	if err != nil {
		return err
	}

	out, err := compiler.Compile(arena, compiler.Options{Validate: check})
	if err != nil {
		return err
	}

	return os.WriteFile(outputPath, out, 0o644)
}

// writeError prints the CLI contract's "error: <kind>" prefix followed
// by the error's full message, colorized only when stderr is an
// interactive terminal (spec §6: the contract mandates the plain text,
// color is additive). Errors that are not *compiler.Error use the kind
// "error".
func writeError(w *os.File, err error) {
	var ce *compiler.Error
	kind := "error"
	if errors.As(err, &ce) {
		kind = string(ce.Kind)
	}

	if term.IsTerminal(int(w.Fd())) {
		fmt.Fprintf(w, "\x1b[31merror: %s\x1b[0m: %v\n", kind, err)
		return
	}
	fmt.Fprintf(w, "error: %s: %v\n", kind, err)
}

func newConsoleLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
