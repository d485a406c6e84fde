package compiler

import (
	"testing"

	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/valtype"
)

func TestCollectLocalsAssignsDenseIndices(t *testing.T) {
	arena := &ast.Arena{}
	initA := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	declA := arena.Add(ast.Node{Kind: ast.KindLocalDecl, Name: "a", DeclType: valtype.I32, Init: initA})
	initB := arena.Add(ast.Node{Kind: ast.KindFloatLit, FloatVal: 1})
	declB := arena.Add(ast.Node{Kind: ast.KindLocalDecl, Name: "b", DeclType: valtype.F64, Init: initB})

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, []ast.Param{{Name: "p", Type: valtype.I32}})

	if err := fc.collectLocals([]ast.Handle{declA, declB}); err != nil {
		t.Fatalf("collectLocals: %v", err)
	}

	if fc.locals["p"].idx != 0 {
		t.Errorf("param p: got idx %d, want 0", fc.locals["p"].idx)
	}
	if fc.locals["a"].idx != 1 {
		t.Errorf("local a: got idx %d, want 1", fc.locals["a"].idx)
	}
	if fc.locals["b"].idx != 2 {
		t.Errorf("local b: got idx %d, want 2", fc.locals["b"].idx)
	}
	if len(fc.nonParamTypes) != 2 || fc.nonParamTypes[0] != valtype.I32 || fc.nonParamTypes[1] != valtype.F64 {
		t.Errorf("nonParamTypes = %v, want [i32 f64]", fc.nonParamTypes)
	}
}

func TestCollectLocalsDuplicateName(t *testing.T) {
	arena := &ast.Arena{}
	init1 := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	decl1 := arena.Add(ast.Node{Kind: ast.KindLocalDecl, Name: "x", DeclType: valtype.I32, Init: init1})
	init2 := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 2})
	decl2 := arena.Add(ast.Node{Kind: ast.KindLocalDecl, Name: "x", DeclType: valtype.I32, Init: init2})

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, nil)

	err := fc.collectLocals([]ast.Handle{decl1, decl2})
	assertKind(t, err, KindDuplicateDefinition)
}

func TestNewFuncCtxDuplicateParamName(t *testing.T) {
	m := &module{arena: &ast.Arena{}, funcs: map[string]*funcInfo{}}
	_, err := newFuncCtx(m, []ast.Param{
		{Name: "a", Type: valtype.I32},
		{Name: "a", Type: valtype.I32},
	})
	assertKind(t, err, KindDuplicateDefinition)
}

func TestCollectLocalsFindsNestedDeclarations(t *testing.T) {
	arena := &ast.Arena{}
	init := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	decl := arena.Add(ast.Node{Kind: ast.KindLocalDecl, Name: "nested", DeclType: valtype.I32, Init: init})
	cond := arena.Add(ast.Node{Kind: ast.KindIntLit, IntVal: 1})
	body := arena.Add(ast.Node{Kind: ast.KindWhile, Cond: cond, Children: []ast.Handle{decl}})

	m := &module{arena: arena, funcs: map[string]*funcInfo{}}
	fc, _ := newFuncCtx(m, nil)

	if err := fc.collectLocals([]ast.Handle{body}); err != nil {
		t.Fatalf("collectLocals: %v", err)
	}
	if _, ok := fc.locals["nested"]; !ok {
		t.Error("local declared inside a while body was not collected")
	}
}
