package compiler

import (
	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/valtype"
	"github.com/sxwasm/sxc/wasmbin"
)

// collectDeclarations is the declaration collector (spec §4.3): a
// single pass over top-level AST nodes in two sub-passes (imports,
// then the rest) plus a whole-arena scan for memory use.
func (m *module) collectDeclarations() error {
	if err := m.collectImports(); err != nil {
		return err
	}
	if err := m.collectDefsAndExports(); err != nil {
		return err
	}
	m.hasMemory = m.scanForMemoryUse()
	return nil
}

// collectImports assigns imported functions global indices starting
// at 0, in AST order, ahead of any defined function.
func (m *module) collectImports() error {
	for _, h := range m.arena.TopLevel {
		n := m.arena.Get(h)
		if n.Kind != ast.KindImportFunc {
			continue
		}
		if _, dup := m.funcs[n.Name]; dup {
			return errDuplicateDefinition(n.Name)
		}
		ft := wasmbin.FuncType{Params: paramTypes(n.Params)}
		if n.HasRet {
			ft.Results = []valtype.ValType{n.RetType}
		}
		typeIdx, err := m.interner.intern(ft)
		if err != nil {
			return err
		}

		idx := uint32(len(m.out.Imports))
		info := &funcInfo{
			globalIdx: idx,
			typeIdx:   typeIdx,
			params:    ft.Params,
			retType:   n.RetType,
			hasRet:    n.HasRet,
		}
		m.funcs[n.Name] = info
		m.out.Imports = append(m.out.Imports, wasmbin.Import{
			Module:  n.ModuleName,
			Name:    n.FieldName,
			TypeIdx: typeIdx,
		})
	}
	return nil
}

// collectDefsAndExports walks the remaining top-level forms: function
// definitions (assigned the next global indices after all imports) and
// export directives (appended in declaration order, validated against
// the now-complete function table by the assembler).
func (m *module) collectDefsAndExports() error {
	impCount := uint32(len(m.out.Imports))
	for _, h := range m.arena.TopLevel {
		n := m.arena.Get(h)
		switch n.Kind {
		case ast.KindFuncDef:
			if _, dup := m.funcs[n.Name]; dup {
				return errDuplicateDefinition(n.Name)
			}
			ft := wasmbin.FuncType{Params: paramTypes(n.Params)}
			if n.HasRet {
				ft.Results = []valtype.ValType{n.RetType}
			}
			typeIdx, err := m.interner.intern(ft)
			if err != nil {
				return err
			}

			idx := impCount + uint32(len(m.defOrder))
			m.funcs[n.Name] = &funcInfo{
				globalIdx: idx,
				typeIdx:   typeIdx,
				params:    ft.Params,
				retType:   n.RetType,
				hasRet:    n.HasRet,
			}
			m.defOrder = append(m.defOrder, n.Name)
			m.defHandles = append(m.defHandles, h)

		case ast.KindExport:
			m.exports = append(m.exports, n.Name)
		}
	}
	return nil
}

// scanForMemoryUse sets the memory flag (spec §3 "Memory flag") by
// checking every node in the arena for a load or store, regardless of
// where it is nested.
func (m *module) scanForMemoryUse() bool {
	for i := range m.arena.Nodes {
		switch m.arena.Nodes[i].Kind {
		case ast.KindLoad, ast.KindStore:
			return true
		}
	}
	return false
}

func paramTypes(params []ast.Param) []valtype.ValType {
	if len(params) == 0 {
		return nil
	}
	types := make([]valtype.ValType, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return types
}
