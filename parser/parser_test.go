package parser

import (
	"testing"

	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/token"
	"github.com/sxwasm/sxc/valtype"
)

func parse(t *testing.T, src string) *ast.Arena {
	t.Helper()
	arena, err := New(token.Tokenize(src)).Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return arena
}

func TestParseSimpleFunction(t *testing.T) {
	arena := parse(t, `(fn add ((a i32)(b i32)) i32 (+ a b)) (export add)`)
	if len(arena.TopLevel) != 2 {
		t.Fatalf("got %d top-level forms, want 2", len(arena.TopLevel))
	}

	fn := arena.Get(arena.TopLevel[0])
	if fn.Kind != ast.KindFuncDef || fn.Name != "add" {
		t.Fatalf("got %+v, want fn def named add", fn)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Type != valtype.I32 {
		t.Errorf("unexpected params: %+v", fn.Params)
	}
	if !fn.HasRet || fn.RetType != valtype.I32 {
		t.Errorf("expected return type i32, got hasRet=%v type=%v", fn.HasRet, fn.RetType)
	}
	if len(fn.Children) != 1 {
		t.Fatalf("expected 1 body expression, got %d", len(fn.Children))
	}

	body := arena.Get(fn.Children[0])
	if body.Kind != ast.KindBinary || body.Op != ast.OpAdd {
		t.Errorf("expected binary add, got %+v", body)
	}

	exp := arena.Get(arena.TopLevel[1])
	if exp.Kind != ast.KindExport || exp.Name != "add" {
		t.Errorf("expected export add, got %+v", exp)
	}
}

func TestParseVoidFunctionNoReturnType(t *testing.T) {
	arena := parse(t, `(fn noop () (var x i32 0))`)
	fn := arena.Get(arena.TopLevel[0])
	if fn.HasRet {
		t.Errorf("expected no return type, got %v", fn.RetType)
	}
	if len(fn.Children) != 1 {
		t.Fatalf("expected 1 body expression, got %d", len(fn.Children))
	}
	decl := arena.Get(fn.Children[0])
	if decl.Kind != ast.KindLocalDecl || decl.Name != "x" {
		t.Errorf("got %+v", decl)
	}
}

func TestParseImport(t *testing.T) {
	arena := parse(t, `(import "env" "log" log ((x i32)))`)
	imp := arena.Get(arena.TopLevel[0])
	if imp.Kind != ast.KindImportFunc || imp.ModuleName != "env" || imp.FieldName != "log" || imp.Name != "log" {
		t.Fatalf("got %+v", imp)
	}
	if len(imp.Params) != 1 || imp.Params[0].Type != valtype.I32 {
		t.Errorf("unexpected params: %+v", imp.Params)
	}
}

func TestParseIfWithAndWithoutElse(t *testing.T) {
	arena := parse(t, `(fn f ((x i32)) i32 (if (< x 0) (- 0 x) x))`)
	fn := arena.Get(arena.TopLevel[0])
	ifNode := arena.Get(fn.Children[0])
	if ifNode.Kind != ast.KindIf || !ifNode.HasElse {
		t.Fatalf("got %+v", ifNode)
	}

	arena2 := parse(t, `(fn f () (if 1 (block)))`)
	fn2 := arena2.Get(arena2.TopLevel[0])
	if2 := arena2.Get(fn2.Children[0])
	if if2.HasElse {
		t.Errorf("expected no else branch, got one")
	}
}

func TestParseWhileAndBlock(t *testing.T) {
	arena := parse(t, `(fn f ((n i32)) (var i i32 0) (while (< i n) (set i (+ i 1))))`)
	fn := arena.Get(arena.TopLevel[0])
	while := arena.Get(fn.Children[1])
	if while.Kind != ast.KindWhile {
		t.Fatalf("got %+v", while)
	}
	if len(while.Children) != 1 {
		t.Fatalf("expected 1 while-body statement, got %d", len(while.Children))
	}

	arena2 := parse(t, `(fn g () i32 (block (var x i32 1) x))`)
	block := arena2.Get(arena2.Get(arena2.TopLevel[0]).Children[0])
	if block.Kind != ast.KindBlock || len(block.Children) != 2 {
		t.Errorf("expected a block with 2 children, got %+v", block)
	}
}

func TestParseLoadStore(t *testing.T) {
	arena := parse(t, `(fn f ((p i32)) (store i32 p 5) (load i32 p))`)
	fn := arena.Get(arena.TopLevel[0])
	store := arena.Get(fn.Children[0])
	if store.Kind != ast.KindStore || store.MemType != valtype.I32 {
		t.Fatalf("got %+v", store)
	}
	load := arena.Get(fn.Children[1])
	if load.Kind != ast.KindLoad || load.MemType != valtype.I32 {
		t.Fatalf("got %+v", load)
	}
}

func TestParseNumberLiterals(t *testing.T) {
	arena := parse(t, `(fn f () 0x20000 3.5 -7)`)
	fn := arena.Get(arena.TopLevel[0])

	hex := arena.Get(fn.Children[0])
	if hex.Kind != ast.KindIntLit || hex.IntVal != 0x20000 {
		t.Errorf("got %+v, want int 0x20000", hex)
	}
	f := arena.Get(fn.Children[1])
	if f.Kind != ast.KindFloatLit || f.FloatVal != 3.5 {
		t.Errorf("got %+v, want float 3.5", f)
	}
	neg := arena.Get(fn.Children[2])
	if neg.Kind != ast.KindIntLit || neg.IntVal != -7 {
		t.Errorf("got %+v, want int -7", neg)
	}
}

func TestParseCall(t *testing.T) {
	arena := parse(t, `(fn f () (g 1 2))`)
	fn := arena.Get(arena.TopLevel[0])
	call := arena.Get(fn.Children[0])
	if call.Kind != ast.KindCall || call.Name != "g" || len(call.Args) != 2 {
		t.Fatalf("got %+v", call)
	}
}

func TestParseUnclosedInputIsError(t *testing.T) {
	_, err := New(token.Tokenize(`(fn f () (+ 1 2)`)).Parse()
	if err == nil {
		t.Fatal("expected a parse error for unclosed input")
	}
}
