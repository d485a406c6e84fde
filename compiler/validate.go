package compiler

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
)

// validateModule compiles freshly emitted bytes in a real WebAssembly
// runtime (which validates them; the module is not instantiated, so
// imports need not be provided), catching anything the core's own invariants
// failed to prevent — a malformed section, a bad opcode sequence, an
// unbalanced stack. Modeled on the teacher's engine.WazeroEngine
// (engine/wazero.go): a bare wazero.Runtime is enough here, since this
// package never needs the teacher's component-model linking layer.
//
// A failure here means the core itself is buggy, not that the source
// program was ill-formed, so it is reported as a plain error rather
// than one of the seven source-facing *Error kinds.
func validateModule(wasmBytes []byte) error {
	ctx := context.Background()
	runtime := wazero.NewRuntime(ctx)
	defer runtime.Close(ctx)

	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		Logger().Warn("emitted module failed runtime validation", zap.Error(err))
		return fmt.Errorf("internal: emitted module failed validation: %w", err)
	}
	return compiled.Close(ctx)
}
