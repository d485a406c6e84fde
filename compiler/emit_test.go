package compiler

import (
	"testing"

	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/valtype"
	"github.com/sxwasm/sxc/wasmbin"
)

func TestOpcodeForBinOpRejectsFloatBitwise(t *testing.T) {
	_, err := opcodeForBinOp(valtype.F64, ast.OpAnd)
	assertKind(t, err, KindUnsupportedOp)
}

func TestOpcodeForBinOpRejectsFloatShift(t *testing.T) {
	_, err := opcodeForBinOp(valtype.F32, ast.OpShl)
	assertKind(t, err, KindUnsupportedOp)
}

func TestOpcodeForBinOpIntegerArithmetic(t *testing.T) {
	op, err := opcodeForBinOp(valtype.I32, ast.OpAdd)
	if err != nil || op != wasmbin.OpI32Add {
		t.Errorf("got (%v, %v), want (OpI32Add, nil)", op, err)
	}
}

func TestEmitBlockDropsAllButLast(t *testing.T) {
	arena := &ast.Arena{}
	a := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	b := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 2})

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, nil)

	var code []wasmbin.Instr
	if err := fc.emitBlockChildren(&code, []ast.Handle{a, b}); err != nil {
		t.Fatalf("emitBlockChildren: %v", err)
	}

	var drops int
	for _, ins := range code {
		if ins.Opcode == wasmbin.OpDrop {
			drops++
		}
	}
	if drops != 1 {
		t.Errorf("expected exactly 1 drop (for the non-last child), got %d", drops)
	}
}

func TestEmitStatementsDropsEveryNonVoidChild(t *testing.T) {
	arena := &ast.Arena{}
	a := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	b := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 2})

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, nil)

	var code []wasmbin.Instr
	if err := fc.emitStatements(&code, []ast.Handle{a, b}); err != nil {
		t.Fatalf("emitStatements: %v", err)
	}

	var drops int
	for _, ins := range code {
		if ins.Opcode == wasmbin.OpDrop {
			drops++
		}
	}
	if drops != 2 {
		t.Errorf("expected a drop after every statement, got %d", drops)
	}
}

func TestEmitIfRejectsMismatchedBranchTypes(t *testing.T) {
	arena := &ast.Arena{}
	cond := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	then := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	els := arena.Add(ast.Node{Kind: ast.KindFloatLit, FloatVal: 1})
	ifNode := arena.Get(arena.Add(ast.Node{Kind: ast.KindIf, Cond: cond, Then: then, Else: els, HasElse: true}))

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, nil)

	var code []wasmbin.Instr
	err := fc.emitIf(&code, ifNode)
	assertKind(t, err, KindTypeMismatch)
}

func TestEmitWhileRejectsNonI32Condition(t *testing.T) {
	arena := &ast.Arena{}
	cond := arena.Add(ast.Node{Kind: ast.KindFloatLit, FloatVal: 1})
	whileNode := arena.Get(arena.Add(ast.Node{Kind: ast.KindWhile, Cond: cond}))

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, nil)

	var code []wasmbin.Instr
	err := fc.emitWhile(&code, whileNode)
	assertKind(t, err, KindTypeMismatch)
}

func TestEmitFuncBodyRejectsReturnTypeMismatch(t *testing.T) {
	arena := &ast.Arena{}
	init := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	decl := arena.Add(ast.Node{Kind: ast.KindLocalDecl, Name: "r", DeclType: valtype.I32, Init: init})
	fn := arena.Get(arena.Add(ast.Node{
		Kind:     ast.KindFuncDef,
		Name:     "f",
		HasRet:   true,
		RetType:  valtype.I32,
		Children: []ast.Handle{decl},
	}))

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, nil)

	_, err := fc.emitFuncBody(fn)
	assertKind(t, err, KindTypeMismatch)
}

func TestEmitFuncBodyAcceptsMatchingReturnType(t *testing.T) {
	arena := &ast.Arena{}
	lit := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	fn := arena.Get(arena.Add(ast.Node{
		Kind:     ast.KindFuncDef,
		Name:     "f",
		HasRet:   true,
		RetType:  valtype.I32,
		Children: []ast.Handle{lit},
	}))

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, nil)

	if _, err := fc.emitFuncBody(fn); err != nil {
		t.Fatalf("emitFuncBody: %v", err)
	}
}

func TestEmitCallArgCountMismatch(t *testing.T) {
	arena := &ast.Arena{}
	call := arena.Get(arena.Add(ast.Node{Kind: ast.KindCall, Name: "f"}))

	m := &module{arena: arena, funcs: map[string]*funcInfo{
		"f": {params: []valtype.ValType{valtype.I32}},
	}}
	fc, _ := newFuncCtx(m, nil)

	var code []wasmbin.Instr
	err := fc.emitCall(&code, call)
	assertKind(t, err, KindTypeMismatch)
}
