// Package valtype defines the closed set of value types shared by the
// source language and the WebAssembly binary it lowers to. A ValType's
// numeric value IS its WebAssembly encoding byte, so the same constant
// is used for declaring a local, typing an expression, and emitting a
// Type-section entry — there is no separate "source type" / "wire type"
// distinction to keep in sync.
package valtype

// ValType is one of the four WebAssembly MVP numeric types. The byte
// value is the type's canonical WebAssembly encoding.
type ValType byte

const (
	I32 ValType = 0x7F
	I64 ValType = 0x7E
	F32 ValType = 0x7D
	F64 ValType = 0x7C
)

// Void is a sentinel distinct from any ValType: it denotes the absence
// of a value and may never appear in a function signature, a local
// declaration, or a block result. Operations keep it out of ValType's
// domain by returning (ValType, bool), with ok=false meaning void.

func (v ValType) String() string {
	switch v {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	}
	return "invalid"
}

// Size is the value's width in bytes.
func (v ValType) Size() int {
	switch v {
	case I32, F32:
		return 4
	case I64, F64:
		return 8
	}
	return 0
}

// AlignExponent is the base-2 logarithm of the type's natural access
// width, the alignment hint byte emitted on load/store instructions.
func (v ValType) AlignExponent() uint32 {
	switch v {
	case I32, F32:
		return 2
	case I64, F64:
		return 3
	}
	return 0
}

// IsFloat reports whether the type is f32 or f64.
func (v ValType) IsFloat() bool {
	return v == F32 || v == F64
}

// Valid reports whether v is one of the four recognized value types.
func Valid(v ValType) bool {
	switch v {
	case I32, I64, F32, F64:
		return true
	}
	return false
}

// Lookup maps a type name from source text to a ValType. ok is false
// for "void" and any unrecognized name — callers that accept "void" in
// an optional-return-type position check for it before calling Lookup.
func Lookup(name string) (ValType, bool) {
	switch name {
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	}
	return 0, false
}
