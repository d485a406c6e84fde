package compiler

import (
	"testing"

	"github.com/sxwasm/sxc/wasmbin"
)

func TestAssembleUnknownExportIsUndefinedFunction(t *testing.T) {
	m := &module{funcs: map[string]*funcInfo{}, exports: []string{"missing"}}
	_, err := m.assemble()
	assertKind(t, err, KindUndefinedFunction)
}

func TestAssembleSynthesizesMemoryExport(t *testing.T) {
	m := &module{
		funcs:     map[string]*funcInfo{"f": {globalIdx: 0}},
		exports:   []string{"f"},
		hasMemory: true,
	}
	out, err := m.assemble()
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !m.out.HasMemory {
		t.Error("expected HasMemory=true on the assembled module")
	}

	var sawMemoryExport bool
	for _, e := range m.out.Exports {
		if e.Name == "memory" && e.Kind == wasmbin.KindMemory {
			sawMemoryExport = true
		}
	}
	if !sawMemoryExport {
		t.Error("expected a synthesized \"memory\" export")
	}
	if len(out) < 8 {
		t.Error("expected a non-trivial encoded module")
	}
}

func TestAssembleNoMemoryExportWhenUnused(t *testing.T) {
	m := &module{funcs: map[string]*funcInfo{}, hasMemory: false}
	if _, err := m.assemble(); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, e := range m.out.Exports {
		if e.Name == "memory" {
			t.Error("unexpected memory export when the module never uses memory")
		}
	}
}
