// Package wasmbin is the binary writer and module assembler (spec
// §4.1, §4.7): a growable byte buffer with LEB128/IEEE-754 writes, and
// a Module type the compiler fills in and then asks to Encode into a
// byte-exact WebAssembly 1.0 (MVP) binary.
//
// Adapted from the teacher's wat/internal/ast (Module/FuncType/Instr)
// and wat/internal/encoder (Buffer, section writers, instruction
// encoder), trimmed to the section and instruction set this spec's
// source language can actually produce: Type, Import, Function,
// Memory, Export, and Code only — no Table, Global, Start, Elem, or
// Data sections, since the source language has no tables, module-level
// globals, start function, or data segments (spec §1 Non-goals: no
// WASM features beyond the MVP, no tables; the source language has no
// global-variable or data-segment surface syntax).
package wasmbin

import "github.com/sxwasm/sxc/valtype"

// Module is the output-side representation the assembler builds
// incrementally during compilation and the encoder serializes in one
// pass at the end.
type Module struct {
	Types     []FuncType
	Imports   []Import
	Funcs     []FuncEntry
	HasMemory bool
	Exports   []Export
	Code      []FuncBody
}

// FuncType is a function signature: an ordered parameter list and an
// optional single result. Two signatures compare Equal iff their
// parameter sequences and results match element-wise (spec invariant
// 10: signature interning is structural).
type FuncType struct {
	Params  []valtype.ValType
	Results []valtype.ValType
}

func (ft FuncType) Equal(other FuncType) bool {
	if len(ft.Params) != len(other.Params) || len(ft.Results) != len(other.Results) {
		return false
	}
	for i, p := range ft.Params {
		if p != other.Params[i] {
			return false
		}
	}
	for i, r := range ft.Results {
		if r != other.Results[i] {
			return false
		}
	}
	return true
}

// Import is a single function import: (module, field, signature
// index), in AST declaration order. The source language never imports
// anything but functions (no table/memory/global import heads in
// spec §6), so unlike the teacher's generic Import this has no Kind
// discriminant.
type Import struct {
	Module  string
	Name    string
	TypeIdx uint32
}

// FuncEntry is one Function-section entry: the signature index of a
// defined (non-imported) function, in AST definition order.
type FuncEntry struct {
	TypeIdx uint32
}

// Export is one Export-section entry. Kind is always KindFunc except
// for the single synthesized "memory" export emitted when HasMemory.
type Export struct {
	Name string
	Kind byte
	Idx  uint32
}

const (
	KindFunc   byte = 0x00
	KindMemory byte = 0x02
)

// FuncBody is one Code-section entry: the non-parameter local types in
// declaration order (run-length encoded by the encoder into local
// groups) and the emitted instruction stream.
type FuncBody struct {
	Locals []valtype.ValType
	Code   []Instr
}

// Instr is one instruction: an opcode plus whatever immediate its
// encoding needs, carried as an untyped payload exactly like the
// teacher's ast.Instr — the instruction set here is a small fixed
// subset of the teacher's, so the same dispatch-by-opcode shape in
// instr.go covers it without a larger sum type.
type Instr struct {
	Imm    interface{}
	Opcode byte
}

// Memarg is a load/store's alignment hint and offset. The source
// language never computes its own offset (spec §4.6: "offset 0" is
// always emitted), so Offset exists for completeness but is always 0
// in practice.
type Memarg struct {
	Align  uint32
	Offset uint32
}

// BlockType is the result-type annotation of a block, loop, or if: a
// single value type, or BlockTypeEmpty (0x40) when it yields no value.
type BlockType byte

const BlockTypeEmpty BlockType = 0x40
