//go:build wasip1 && wasm

// Package wasmhost exposes this repository's own compiler through the
// wasmexec contract described in spec.md §6: a host writes source text
// at a fixed input offset, calls run, and reads a length-prefixed
// result back out of a fixed output region. Building this package for
// GOOS=wasip1 GOARCH=wasm turns the compiler into a .wasm module that
// can compile other .sx programs from inside any wasmexec-compatible
// host, with no process, filesystem, or network access required.
//
// This package only exists under that build configuration: on every
// other platform run() would have nothing meaningful to export, so the
// whole file is build-tag gated.
package wasmhost

import (
	"encoding/binary"
	"unsafe"

	"github.com/sxwasm/sxc/compiler"
	"github.com/sxwasm/sxc/parser"
	"github.com/sxwasm/sxc/token"
)

const (
	inputOffset  = 0x10000
	outputOffset = 0x20000
)

// run implements the wasmexec contract (spec §6): ptr/length identify
// the input already written into this instance's linear memory by the
// host; the return value is an absolute pointer to a 4-byte
// little-endian length prefix followed by that many result bytes,
// always written at outputOffset so repeated calls reuse the same
// region.
//
//go:wasmexport run
func run(ptr uint32, length uint32) uint32 {
	src := memoryAt(ptr, length)

	tokens := token.Tokenize(string(src))
	arena, err := parser.New(tokens).Parse()
	var out []byte
	if err == nil {
		out, err = compiler.Compile(arena, compiler.Options{})
	}

	if err != nil {
		writeOutput([]byte("error: " + errorKind(err)))
		return outputOffset
	}

	writeOutput(out)
	return outputOffset
}

func errorKind(err error) string {
	var ce *compiler.Error
	if ok := asCompilerError(err, &ce); ok {
		return string(ce.Kind)
	}
	return "Overflow"
}

func asCompilerError(err error, target **compiler.Error) bool {
	ce, ok := err.(*compiler.Error)
	if !ok {
		return false
	}
	*target = ce
	return true
}

func writeOutput(payload []byte) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	copy(memoryAt(outputOffset, 4), lenBuf[:])
	copy(memoryAt(outputOffset+4, uint32(len(payload))), payload)
}

// memoryAt reinterprets a region of this module's own linear memory as
// a byte slice. It is safe only because wasip1/wasm is single-threaded
// and this module never frees or moves the arena at ptr while a call
// is in flight.
func memoryAt(ptr, length uint32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
}
