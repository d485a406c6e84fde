package compiler

import "github.com/sxwasm/sxc/wasmbin"

// assemble is the module assembler (spec §4.7): it resolves export
// directives against the now-complete function table, synthesizes the
// "memory" export when the module uses memory, fills in the Type
// section from the interner, and hands the finished wasmbin.Module to
// the encoder.
func (m *module) assemble() ([]byte, error) {
	m.out.Types = m.interner.sigs

	for _, name := range m.exports {
		fi, ok := m.funcs[name]
		if !ok {
			return nil, errUndefinedFunction(name)
		}
		m.out.Exports = append(m.out.Exports, wasmbin.Export{
			Name: name,
			Kind: wasmbin.KindFunc,
			Idx:  fi.globalIdx,
		})
	}

	if m.hasMemory {
		m.out.HasMemory = true
		m.out.Exports = append(m.out.Exports, wasmbin.Export{
			Name: "memory",
			Kind: wasmbin.KindMemory,
			Idx:  0,
		})
	}

	return wasmbin.Encode(&m.out), nil
}
