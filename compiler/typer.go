package compiler

import (
	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/valtype"
)

// typeOf is the expression typer (spec §4.4): a pure recursive
// function from a node handle to its value type, or ok=false for
// void. It never emits anything and never mutates funcCtx; it is
// called during emission (to type-check operands and initializers and
// to drive operator/block dispatch). The local collector does not use it.
func (fc *funcCtx) typeOf(h ast.Handle) (valtype.ValType, bool, error) {
	n := fc.m.arena.Get(h)
	switch n.Kind {
	case ast.KindIntLit:
		return valtype.I32, true, nil

	case ast.KindFloatLit:
		return valtype.F64, true, nil

	case ast.KindIdent:
		loc, ok := fc.locals[n.Name]
		if !ok {
			return 0, false, errUndefinedVariable(n.Name)
		}
		return loc.vtype, true, nil

	case ast.KindBinary:
		lt, lok, err := fc.typeOf(n.Left)
		if err != nil {
			return 0, false, err
		}
		rt, rok, err := fc.typeOf(n.Right)
		if err != nil {
			return 0, false, err
		}
		if !lok || !rok || lt != rt {
			return 0, false, errTypeMismatch("binary operator operands have differing types")
		}
		if isComparison(n.Op) {
			return valtype.I32, true, nil
		}
		return lt, true, nil

	case ast.KindCall:
		fi, ok := fc.m.funcs[n.Name]
		if !ok {
			return 0, false, errUndefinedFunction(n.Name)
		}
		if !fi.hasRet {
			return 0, false, nil
		}
		return fi.retType, true, nil

	case ast.KindIf:
		if !n.HasElse {
			return 0, false, nil
		}
		return fc.typeOf(n.Then)

	case ast.KindBlock:
		if len(n.Children) == 0 {
			return 0, false, nil
		}
		return fc.typeOf(n.Children[len(n.Children)-1])

	case ast.KindLoad:
		return n.MemType, true, nil

	case ast.KindLocalDecl, ast.KindLocalSet, ast.KindWhile, ast.KindStore:
		return 0, false, nil
	}

	return 0, false, nil
}

func isComparison(op ast.BinOp) bool {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLtS, ast.OpGtS, ast.OpLeS, ast.OpGeS:
		return true
	}
	return false
}
