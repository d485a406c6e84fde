package compiler

import (
	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/valtype"
)

// funcCtx holds the per-function tables that are reset between
// functions (spec §3 "Per-function tables", design note "Per-function
// reset vs nested contexts"): the local table and the ordered
// non-parameter local type sequence the Code section's local-group
// prefix is built from.
type funcCtx struct {
	m             *module
	locals        map[string]localInfo
	nonParamTypes []valtype.ValType
	paramCount    uint32
}

func newFuncCtx(m *module, params []ast.Param) (*funcCtx, error) {
	fc := &funcCtx{
		m:          m,
		locals:     make(map[string]localInfo, len(params)),
		paramCount: uint32(len(params)),
	}
	for i, p := range params {
		if _, dup := fc.locals[p.Name]; dup {
			return nil, errDuplicateDefinition(p.Name)
		}
		fc.locals[p.Name] = localInfo{idx: uint32(i), vtype: p.Type}
	}
	return fc, nil
}

// collectLocals is the local collector (spec §4.5): a recursive
// pre-order pass over a function body that assigns a dense index to
// every local declaration, in source order, wherever it appears —
// nested inside conditionals, loops, or blocks. It is the only pass
// that inserts into the local table; the emitter never does.
func (fc *funcCtx) collectLocals(body []ast.Handle) error {
	for _, h := range body {
		if err := fc.collectNode(h); err != nil {
			return err
		}
	}
	return nil
}

func (fc *funcCtx) collectNode(h ast.Handle) error {
	n := fc.m.arena.Get(h)
	switch n.Kind {
	case ast.KindIntLit, ast.KindFloatLit, ast.KindIdent:
		return nil

	case ast.KindBinary:
		if err := fc.collectNode(n.Left); err != nil {
			return err
		}
		return fc.collectNode(n.Right)

	case ast.KindCall:
		for _, arg := range n.Args {
			if err := fc.collectNode(arg); err != nil {
				return err
			}
		}
		return nil

	case ast.KindIf:
		if err := fc.collectNode(n.Cond); err != nil {
			return err
		}
		if err := fc.collectNode(n.Then); err != nil {
			return err
		}
		if n.HasElse {
			return fc.collectNode(n.Else)
		}
		return nil

	case ast.KindBlock:
		for _, c := range n.Children {
			if err := fc.collectNode(c); err != nil {
				return err
			}
		}
		return nil

	case ast.KindLocalDecl:
		if _, dup := fc.locals[n.Name]; dup {
			return errDuplicateDefinition(n.Name)
		}
		idx := fc.paramCount + uint32(len(fc.nonParamTypes))
		fc.locals[n.Name] = localInfo{idx: idx, vtype: n.DeclType}
		fc.nonParamTypes = append(fc.nonParamTypes, n.DeclType)
		return fc.collectNode(n.Init)

	case ast.KindLocalSet:
		return fc.collectNode(n.Init)

	case ast.KindWhile:
		if err := fc.collectNode(n.Cond); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := fc.collectNode(c); err != nil {
				return err
			}
		}
		return nil

	case ast.KindLoad:
		return fc.collectNode(n.Addr)

	case ast.KindStore:
		if err := fc.collectNode(n.Addr); err != nil {
			return err
		}
		return fc.collectNode(n.Value)
	}
	return nil
}
