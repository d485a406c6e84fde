// Package ast defines the AST contract the parser hands to the
// semantic analyzer: an immutable arena of tagged-variant nodes
// addressed by dense 32-bit handles, plus an ordered list of top-level
// handles. The arena is append-only and read-only once the parser
// returns it; the analyzer only ever borrows from it.
//
// This mirrors the teacher's wat/internal/ast arena-of-handles design,
// retargeted from a WebAssembly module tree to the source language's
// surface tree: literals, identifiers, operators, control flow, and
// the top-level function/export/import forms.
package ast

import "github.com/sxwasm/sxc/valtype"

// Handle is a dense index into an Arena's Nodes slice. Equality is
// identity — two handles are equal iff they refer to the same node.
type Handle uint32

// Kind discriminates the tagged-variant payload carried by a Node.
type Kind byte

const (
	KindIntLit Kind = iota
	KindFloatLit
	KindIdent
	KindBinary
	KindCall
	KindIf
	KindBlock
	KindLocalDecl
	KindLocalSet
	KindWhile
	KindLoad
	KindStore
	KindFuncDef
	KindExport
	KindImportFunc
)

// BinOp is one of the sixteen recognized binary operators.
type BinOp byte

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDivS
	OpRemS
	OpEq
	OpNe
	OpLtS
	OpGtS
	OpLeS
	OpGeS
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShrS
)

// Param is a single (name, type) pair in a function or import
// signature, in source order.
type Param struct {
	Name string
	Type valtype.ValType
}

// Node is a tagged variant: only the fields relevant to Kind are
// populated. Strings are copies made by the tokenizer; they do not
// alias the original source buffer. The arena is the sole owner of node
// storage, so a Node is valid only as long as its Arena is.
type Node struct {
	// integer literal
	IntVal int64

	// float literal
	FloatVal float64

	// identifier: Name. also used by local-declaration /
	// local-assignment (the declared/assigned local's name), call
	// (Name is the callee), export (Name is the exported function),
	// and function/import definitions (Name is the defined name).
	Name string

	// binary op
	Op          BinOp
	Left, Right Handle

	// call
	Args []Handle

	// if
	Cond, Then, Else Handle
	HasElse          bool

	// block / while body / function body: ordered children
	Children []Handle

	// local declaration: DeclType + Init (initializer expression)
	// local assignment: Init holds the right-hand expression
	DeclType valtype.ValType
	Init     Handle

	// load / store
	MemType valtype.ValType
	Addr    Handle
	Value   Handle

	// function definition / import function
	Params     []Param
	RetType    valtype.ValType
	HasRet     bool
	ModuleName string
	FieldName  string

	Kind Kind
}

// Arena owns every node produced for one compilation unit. It is
// built by the parser and is read-only thereafter.
type Arena struct {
	Nodes    []Node
	TopLevel []Handle
}

// Add appends a node and returns its handle.
func (a *Arena) Add(n Node) Handle {
	a.Nodes = append(a.Nodes, n)
	return Handle(len(a.Nodes) - 1)
}

// Get dereferences a handle. The caller must only pass handles
// obtained from this same Arena.
func (a *Arena) Get(h Handle) *Node {
	return &a.Nodes[h]
}
