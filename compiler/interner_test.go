package compiler

import (
	"testing"

	"github.com/sxwasm/sxc/valtype"
	"github.com/sxwasm/sxc/wasmbin"
)

func TestTypeInternerDedup(t *testing.T) {
	var in typeInterner

	ft := wasmbin.FuncType{Params: []valtype.ValType{valtype.I32, valtype.I32}, Results: []valtype.ValType{valtype.I32}}

	i1, err := in.intern(ft)
	if err != nil {
		t.Fatalf("intern: %v", err)
	}
	i2, err := in.intern(ft)
	if err != nil {
		t.Fatalf("intern: %v", err)
	}
	if i1 != i2 {
		t.Errorf("identical signatures got different indices: %d vs %d", i1, i2)
	}
	if len(in.sigs) != 1 {
		t.Errorf("expected one interned signature, got %d", len(in.sigs))
	}
}

func TestTypeInternerDistinguishesSignatures(t *testing.T) {
	tests := []struct {
		name string
		a, b wasmbin.FuncType
	}{
		{
			"different_param_count",
			wasmbin.FuncType{Params: []valtype.ValType{valtype.I32}},
			wasmbin.FuncType{Params: []valtype.ValType{valtype.I32, valtype.I32}},
		},
		{
			"different_param_type",
			wasmbin.FuncType{Params: []valtype.ValType{valtype.I32}},
			wasmbin.FuncType{Params: []valtype.ValType{valtype.F64}},
		},
		{
			"different_result",
			wasmbin.FuncType{Results: []valtype.ValType{valtype.I32}},
			wasmbin.FuncType{Results: []valtype.ValType{valtype.I64}},
		},
		{
			"void_vs_result",
			wasmbin.FuncType{},
			wasmbin.FuncType{Results: []valtype.ValType{valtype.I32}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in typeInterner
			ia, err := in.intern(tt.a)
			if err != nil {
				t.Fatalf("intern a: %v", err)
			}
			ib, err := in.intern(tt.b)
			if err != nil {
				t.Fatalf("intern b: %v", err)
			}
			if ia == ib {
				t.Errorf("expected distinct indices for distinct signatures, got %d for both", ia)
			}
		})
	}
}
