package compiler

import "github.com/sxwasm/sxc/wasmbin"

// typeInterner maps a function signature to a dense index, the Type
// section index both Import- and Function-section entries reference
// (spec §4.2). Equality is structural; collisions are resolved by
// linear scan since modules in this language are small (a handful to
// a few dozen distinct signatures) and a hash map of structs-as-keys
// would just add complexity for no measurable win.
type typeInterner struct {
	sigs []wasmbin.FuncType
}

// intern returns ft's dense index, inserting a fresh entry if this
// exact signature (by parameter sequence and result) hasn't been seen
// before (spec invariant 10).
func (in *typeInterner) intern(ft wasmbin.FuncType) (uint32, error) {
	for i, existing := range in.sigs {
		if existing.Equal(ft) {
			return uint32(i), nil
		}
	}
	if len(in.sigs) >= 1<<32-1 {
		return 0, errOverflow("type index exceeds 32-bit range")
	}
	idx := uint32(len(in.sigs))
	in.sigs = append(in.sigs, ft)
	return idx, nil
}
