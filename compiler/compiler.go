// Package compiler is the core of spec.md: semantic analysis and
// direct binary code generation from the source AST (package ast) to
// a WebAssembly 1.0 (MVP) binary module (package wasmbin). It is a
// pure function from one AST arena to either a byte slice or an
// error (an *Error for faults in the source program) — single-pass, single-threaded, and re-entrant across
// independent calls that share no mutable state (spec §5).
//
// Compile mirrors the teacher's wat.Compile entrypoint
// (github.com/wippyai/wasm-runtime/wat): tokenize/parse happen outside
// this package (spec §1: the tokenizer and parser are external
// collaborators), and this package's only job starts from an already-
// built ast.Arena.
package compiler

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/wasmbin"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger, a no-op by default. Modeled on
// the teacher's engine.Logger (engine/logger.go): the core never
// forces a logging backend on its caller.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs the package-level logger. Call before Compile;
// the core does not synchronize concurrent SetLogger/Compile calls
// (spec §5: the compiler holds no process-wide state beyond this
// optional diagnostic sink, and callers are expected to configure
// logging once at startup).
func SetLogger(l *zap.Logger) {
	logger = l
}

// Options configures a single Compile call.
type Options struct {
	// Validate, if set, compiles (and so validates) the freshly emitted
	// module in a real WebAssembly runtime before returning it (see
	// validate.go).
	// This is off by default: it requires the wazero dependency's
	// runtime to spin up, which is unnecessary overhead for callers
	// that trust the core's own invariants and only want the bytes.
	Validate bool
}

// module holds all state for one compilation: module-level tables
// (spec §3 "Module-level tables") plus the in-progress wasmbin.Module
// the assembler is filling in.
type module struct {
	arena      *ast.Arena
	funcs      map[string]*funcInfo
	defOrder   []string     // function-definition-order names, for Funcs/Code section order
	defHandles []ast.Handle // parallel to defOrder
	exports    []string
	hasMemory  bool
	interner   typeInterner
	out        wasmbin.Module
}

// Compile runs the full core pipeline over a parsed AST arena: declare
// (§4.3), then emit each function body (§4.6) and assemble the module
// (§4.7). On any error the partial wasmbin.Module is discarded and the
// error is returned: a *Error for faults in the source program, or a
// plain error when Options.Validate rejects the emitted module.
func Compile(arena *ast.Arena, opts Options) ([]byte, error) {
	_, out, err := CompileModule(arena, opts)
	return out, err
}

// CompileModule is Compile plus the assembled wasmbin.Module, for
// callers that need the structured section contents rather than just
// the final bytes — cmd/sxcinspect is the one caller in this repo.
func CompileModule(arena *ast.Arena, opts Options) (*wasmbin.Module, []byte, error) {
	m := &module{
		arena: arena,
		funcs: make(map[string]*funcInfo),
	}

	Logger().Debug("collecting declarations", zap.Int("top_level_forms", len(arena.TopLevel)))
	if err := m.collectDeclarations(); err != nil {
		return nil, nil, err
	}

	Logger().Debug("emitting function bodies", zap.Int("functions", len(m.defOrder)))
	if err := m.emitFunctions(); err != nil {
		return nil, nil, err
	}

	Logger().Debug("assembling module")
	out, err := m.assemble()
	if err != nil {
		return nil, nil, err
	}

	if opts.Validate {
		if err := validateModule(out); err != nil {
			return nil, nil, err
		}
	}

	return &m.out, out, nil
}
