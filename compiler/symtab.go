package compiler

import "github.com/sxwasm/sxc/valtype"

// funcInfo is a module-level function table entry (spec §3): its
// global index, the interned signature index, and the signature
// itself, kept alongside for the expression typer and body emitter.
type funcInfo struct {
	params    []valtype.ValType
	retType   valtype.ValType
	globalIdx uint32
	typeIdx   uint32
	hasRet    bool
}

// localInfo is a per-function local table entry: the dense local index
// WebAssembly addresses with local.get/local.set, and the declared
// type used by the typer and by store/load type checks.
type localInfo struct {
	idx   uint32
	vtype valtype.ValType
}
