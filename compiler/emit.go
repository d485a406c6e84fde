package compiler

import (
	"github.com/sxwasm/sxc/ast"
	"github.com/sxwasm/sxc/valtype"
	"github.com/sxwasm/sxc/wasmbin"
)

// emitFunctions is the body emitter driver (spec §4.6): for each
// defined function, in definition order, it resets the per-function
// tables, runs the local collector, emits the body, and appends the
// resulting wasmbin.FuncEntry/FuncBody pair.
func (m *module) emitFunctions() error {
	for i, name := range m.defOrder {
		h := m.defHandles[i]
		n := m.arena.Get(h)
		fi := m.funcs[name]

		fc, err := newFuncCtx(m, n.Params)
		if err != nil {
			return err
		}
		if err := fc.collectLocals(n.Children); err != nil {
			return err
		}

		code, err := fc.emitFuncBody(n)
		if err != nil {
			return err
		}

		m.out.Funcs = append(m.out.Funcs, wasmbin.FuncEntry{TypeIdx: fi.typeIdx})
		m.out.Code = append(m.out.Code, wasmbin.FuncBody{
			Locals: fc.nonParamTypes,
			Code:   code,
		})
	}
	return nil
}

// emitFuncBody emits a function's body as a block (spec §4.6 "Function
// frame"). If the function declares a return type, the last expression's
// type must equal it (invariant 5); if it declares no return type, a
// non-void trailing value is dropped instead so the stack balances
// against an empty result type (invariant 8).
func (fc *funcCtx) emitFuncBody(n *ast.Node) ([]wasmbin.Instr, error) {
	var code []wasmbin.Instr
	if err := fc.emitBlockChildren(&code, n.Children); err != nil {
		return nil, err
	}
	if n.HasRet {
		if len(n.Children) == 0 {
			return nil, errTypeMismatch("function %q declares return type %s but has an empty body", n.Name, n.RetType)
		}
		last := n.Children[len(n.Children)-1]
		t, ok, err := fc.typeOf(last)
		if err != nil {
			return nil, err
		}
		if !ok || t != n.RetType {
			return nil, errTypeMismatch("function %q declares return type %s but its body produces %s", n.Name, n.RetType, typeOrVoid(ok, t))
		}
	} else if len(n.Children) > 0 {
		last := n.Children[len(n.Children)-1]
		t, ok, err := fc.typeOf(last)
		if err != nil {
			return nil, err
		}
		if ok {
			_ = t
			code = append(code, wasmbin.Instr{Opcode: wasmbin.OpDrop})
		}
	}
	code = append(code, wasmbin.Instr{Opcode: wasmbin.OpEnd})
	return code, nil
}

func typeOrVoid(ok bool, t valtype.ValType) string {
	if !ok {
		return "void"
	}
	return t.String()
}

// emitBlockChildren emits an ordered sequence of expressions with the
// block drop discipline (spec invariant 8 / §4.6 "block"): every
// non-last child whose type is non-void is followed by an explicit
// drop; the last child's value (if any) is left on the stack for the
// enclosing construct.
func (fc *funcCtx) emitBlockChildren(code *[]wasmbin.Instr, children []ast.Handle) error {
	for i, h := range children {
		if err := fc.emitExpr(code, h); err != nil {
			return err
		}
		if i == len(children)-1 {
			continue
		}
		t, ok, err := fc.typeOf(h)
		if err != nil {
			return err
		}
		if ok {
			_ = t
			*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpDrop})
		}
	}
	return nil
}

// emitStatements emits a sequence in statement position, where every
// child's value (including the last) is discarded if non-void. Used
// for a while loop's body (spec §4.6 "while"), which never produces a
// value.
func (fc *funcCtx) emitStatements(code *[]wasmbin.Instr, children []ast.Handle) error {
	for _, h := range children {
		if err := fc.emitExpr(code, h); err != nil {
			return err
		}
		t, ok, err := fc.typeOf(h)
		if err != nil {
			return err
		}
		if ok {
			_ = t
			*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpDrop})
		}
	}
	return nil
}

// emitExpr emits one expression node (spec §4.6's per-construct rules).
func (fc *funcCtx) emitExpr(code *[]wasmbin.Instr, h ast.Handle) error {
	n := fc.m.arena.Get(h)
	switch n.Kind {
	case ast.KindIntLit:
		*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpI32Const, Imm: int32(n.IntVal)})
		return nil

	case ast.KindFloatLit:
		*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpF64Const, Imm: n.FloatVal})
		return nil

	case ast.KindIdent:
		loc, ok := fc.locals[n.Name]
		if !ok {
			return errUndefinedVariable(n.Name)
		}
		*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpLocalGet, Imm: loc.idx})
		return nil

	case ast.KindBinary:
		return fc.emitBinary(code, n)

	case ast.KindCall:
		return fc.emitCall(code, n)

	case ast.KindIf:
		return fc.emitIf(code, n)

	case ast.KindBlock:
		return fc.emitBlockChildren(code, n.Children)

	case ast.KindLocalDecl:
		return fc.emitLocalDecl(code, n)

	case ast.KindLocalSet:
		return fc.emitLocalSet(code, n)

	case ast.KindWhile:
		return fc.emitWhile(code, n)

	case ast.KindLoad:
		return fc.emitLoad(code, n)

	case ast.KindStore:
		return fc.emitStore(code, n)
	}
	return errUnsupportedOperator("node kind %d cannot appear in expression position", n.Kind)
}

func (fc *funcCtx) emitBinary(code *[]wasmbin.Instr, n *ast.Node) error {
	lt, lok, err := fc.typeOf(n.Left)
	if err != nil {
		return err
	}
	rt, rok, err := fc.typeOf(n.Right)
	if err != nil {
		return err
	}
	if !lok || !rok || lt != rt {
		return errTypeMismatch("binary operator operands have differing types")
	}
	op, err := opcodeForBinOp(lt, n.Op)
	if err != nil {
		return err
	}
	if err := fc.emitExpr(code, n.Left); err != nil {
		return err
	}
	if err := fc.emitExpr(code, n.Right); err != nil {
		return err
	}
	*code = append(*code, wasmbin.Instr{Opcode: op})
	return nil
}

func (fc *funcCtx) emitCall(code *[]wasmbin.Instr, n *ast.Node) error {
	fi, ok := fc.m.funcs[n.Name]
	if !ok {
		return errUndefinedFunction(n.Name)
	}
	if len(n.Args) != len(fi.params) {
		return errTypeMismatch("call argument count does not match callee signature")
	}
	for i, arg := range n.Args {
		at, ok, err := fc.typeOf(arg)
		if err != nil {
			return err
		}
		if !ok || at != fi.params[i] {
			return errTypeMismatch("call argument type does not match callee parameter")
		}
		if err := fc.emitExpr(code, arg); err != nil {
			return err
		}
	}
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpCall, Imm: fi.globalIdx})
	return nil
}

func (fc *funcCtx) emitIf(code *[]wasmbin.Instr, n *ast.Node) error {
	ct, cok, err := fc.typeOf(n.Cond)
	if err != nil {
		return err
	}
	if !cok || ct != valtype.I32 {
		return errTypeMismatch("if condition must be i32")
	}
	if err := fc.emitExpr(code, n.Cond); err != nil {
		return err
	}

	if !n.HasElse {
		*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpIf, Imm: wasmbin.BlockType(wasmbin.BlockTypeEmpty)})
		if err := fc.emitExpr(code, n.Then); err != nil {
			return err
		}
		tt, tok, err := fc.typeOf(n.Then)
		if err != nil {
			return err
		}
		if tok {
			_ = tt
			*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpDrop})
		}
		*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpEnd})
		return nil
	}

	tt, tok, err := fc.typeOf(n.Then)
	if err != nil {
		return err
	}
	et, eok, err := fc.typeOf(n.Else)
	if err != nil {
		return err
	}
	if tok != eok || (tok && tt != et) {
		return errTypeMismatch("if/else branches must produce the same type")
	}

	bt := wasmbin.BlockType(wasmbin.BlockTypeEmpty)
	if tok {
		bt = wasmbin.BlockType(tt)
	}
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpIf, Imm: bt})
	if err := fc.emitExpr(code, n.Then); err != nil {
		return err
	}
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpElse})
	if err := fc.emitExpr(code, n.Else); err != nil {
		return err
	}
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpEnd})
	return nil
}

func (fc *funcCtx) emitLocalDecl(code *[]wasmbin.Instr, n *ast.Node) error {
	loc, ok := fc.locals[n.Name]
	if !ok {
		// collectLocals always inserts this entry first; unreachable
		// unless called out of order.
		return errUndefinedVariable(n.Name)
	}
	it, iok, err := fc.typeOf(n.Init)
	if err != nil {
		return err
	}
	if !iok || it != loc.vtype {
		return errTypeMismatch("local initializer type does not match declared type")
	}
	if err := fc.emitExpr(code, n.Init); err != nil {
		return err
	}
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpLocalSet, Imm: loc.idx})
	return nil
}

func (fc *funcCtx) emitLocalSet(code *[]wasmbin.Instr, n *ast.Node) error {
	loc, ok := fc.locals[n.Name]
	if !ok {
		return errUndefinedVariable(n.Name)
	}
	it, iok, err := fc.typeOf(n.Init)
	if err != nil {
		return err
	}
	if !iok || it != loc.vtype {
		return errTypeMismatch("assignment value type does not match local's declared type")
	}
	if err := fc.emitExpr(code, n.Init); err != nil {
		return err
	}
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpLocalSet, Imm: loc.idx})
	return nil
}

// emitWhile emits the four-construct loop shape (spec §4.6 "while"):
// an outer block (the exit target of br_if), wrapping a loop (the
// target of the back-edge br), testing the condition each iteration
// and branching out of the block when it is false.
func (fc *funcCtx) emitWhile(code *[]wasmbin.Instr, n *ast.Node) error {
	ct, cok, err := fc.typeOf(n.Cond)
	if err != nil {
		return err
	}
	if !cok || ct != valtype.I32 {
		return errTypeMismatch("while condition must be i32")
	}

	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpBlock, Imm: wasmbin.BlockType(wasmbin.BlockTypeEmpty)})
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpLoop, Imm: wasmbin.BlockType(wasmbin.BlockTypeEmpty)})

	if err := fc.emitExpr(code, n.Cond); err != nil {
		return err
	}
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpI32Eqz})
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpBrIf, Imm: uint32(1)})

	if err := fc.emitStatements(code, n.Children); err != nil {
		return err
	}

	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpBr, Imm: uint32(0)})
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpEnd}) // loop
	*code = append(*code, wasmbin.Instr{Opcode: wasmbin.OpEnd}) // block
	return nil
}

func (fc *funcCtx) emitLoad(code *[]wasmbin.Instr, n *ast.Node) error {
	at, aok, err := fc.typeOf(n.Addr)
	if err != nil {
		return err
	}
	if !aok || at != valtype.I32 {
		return errTypeMismatch("load address must be i32")
	}
	if err := fc.emitExpr(code, n.Addr); err != nil {
		return err
	}
	op, err := loadOpcode(n.MemType)
	if err != nil {
		return err
	}
	*code = append(*code, wasmbin.Instr{
		Opcode: op,
		Imm:    wasmbin.Memarg{Align: n.MemType.AlignExponent(), Offset: 0},
	})
	return nil
}

func (fc *funcCtx) emitStore(code *[]wasmbin.Instr, n *ast.Node) error {
	at, aok, err := fc.typeOf(n.Addr)
	if err != nil {
		return err
	}
	if !aok || at != valtype.I32 {
		return errTypeMismatch("store address must be i32")
	}
	vt, vok, err := fc.typeOf(n.Value)
	if err != nil {
		return err
	}
	if !vok || vt != n.MemType {
		return errTypeMismatch("store value type does not match declared type")
	}
	if err := fc.emitExpr(code, n.Addr); err != nil {
		return err
	}
	if err := fc.emitExpr(code, n.Value); err != nil {
		return err
	}
	op, err := storeOpcode(n.MemType)
	if err != nil {
		return err
	}
	*code = append(*code, wasmbin.Instr{
		Opcode: op,
		Imm:    wasmbin.Memarg{Align: n.MemType.AlignExponent(), Offset: 0},
	})
	return nil
}

func loadOpcode(vt valtype.ValType) (byte, error) {
	switch vt {
	case valtype.I32:
		return wasmbin.OpI32Load, nil
	case valtype.I64:
		return wasmbin.OpI64Load, nil
	case valtype.F32:
		return wasmbin.OpF32Load, nil
	case valtype.F64:
		return wasmbin.OpF64Load, nil
	}
	return 0, errTypeMismatch("unsupported load type")
}

func storeOpcode(vt valtype.ValType) (byte, error) {
	switch vt {
	case valtype.I32:
		return wasmbin.OpI32Store, nil
	case valtype.I64:
		return wasmbin.OpI64Store, nil
	case valtype.F32:
		return wasmbin.OpF32Store, nil
	case valtype.F64:
		return wasmbin.OpF64Store, nil
	}
	return 0, errTypeMismatch("unsupported store type")
}

// opcodeForBinOp is the operator dispatch table (spec §4.6): it maps a
// (value type, source operator) pair to the one WASM opcode that
// implements it, and rejects combinations the target type does not
// support — floats have no bitwise, remainder, shift, or signed-integer-
// specific operators.
func opcodeForBinOp(vt valtype.ValType, op ast.BinOp) (byte, error) {
	switch vt {
	case valtype.I32:
		switch op {
		case ast.OpAdd:
			return wasmbin.OpI32Add, nil
		case ast.OpSub:
			return wasmbin.OpI32Sub, nil
		case ast.OpMul:
			return wasmbin.OpI32Mul, nil
		case ast.OpDivS:
			return wasmbin.OpI32DivS, nil
		case ast.OpRemS:
			return wasmbin.OpI32RemS, nil
		case ast.OpAnd:
			return wasmbin.OpI32And, nil
		case ast.OpOr:
			return wasmbin.OpI32Or, nil
		case ast.OpXor:
			return wasmbin.OpI32Xor, nil
		case ast.OpShl:
			return wasmbin.OpI32Shl, nil
		case ast.OpShrS:
			return wasmbin.OpI32ShrS, nil
		case ast.OpEq:
			return wasmbin.OpI32Eq, nil
		case ast.OpNe:
			return wasmbin.OpI32Ne, nil
		case ast.OpLtS:
			return wasmbin.OpI32LtS, nil
		case ast.OpGtS:
			return wasmbin.OpI32GtS, nil
		case ast.OpLeS:
			return wasmbin.OpI32LeS, nil
		case ast.OpGeS:
			return wasmbin.OpI32GeS, nil
		}

	case valtype.I64:
		switch op {
		case ast.OpAdd:
			return wasmbin.OpI64Add, nil
		case ast.OpSub:
			return wasmbin.OpI64Sub, nil
		case ast.OpMul:
			return wasmbin.OpI64Mul, nil
		case ast.OpDivS:
			return wasmbin.OpI64DivS, nil
		case ast.OpRemS:
			return wasmbin.OpI64RemS, nil
		case ast.OpAnd:
			return wasmbin.OpI64And, nil
		case ast.OpOr:
			return wasmbin.OpI64Or, nil
		case ast.OpXor:
			return wasmbin.OpI64Xor, nil
		case ast.OpShl:
			return wasmbin.OpI64Shl, nil
		case ast.OpShrS:
			return wasmbin.OpI64ShrS, nil
		case ast.OpEq:
			return wasmbin.OpI64Eq, nil
		case ast.OpNe:
			return wasmbin.OpI64Ne, nil
		case ast.OpLtS:
			return wasmbin.OpI64LtS, nil
		case ast.OpGtS:
			return wasmbin.OpI64GtS, nil
		case ast.OpLeS:
			return wasmbin.OpI64LeS, nil
		case ast.OpGeS:
			return wasmbin.OpI64GeS, nil
		}

	case valtype.F32:
		switch op {
		case ast.OpAdd:
			return wasmbin.OpF32Add, nil
		case ast.OpSub:
			return wasmbin.OpF32Sub, nil
		case ast.OpMul:
			return wasmbin.OpF32Mul, nil
		case ast.OpDivS:
			return wasmbin.OpF32Div, nil
		case ast.OpEq:
			return wasmbin.OpF32Eq, nil
		case ast.OpNe:
			return wasmbin.OpF32Ne, nil
		case ast.OpLtS:
			return wasmbin.OpF32Lt, nil
		case ast.OpGtS:
			return wasmbin.OpF32Gt, nil
		case ast.OpLeS:
			return wasmbin.OpF32Le, nil
		case ast.OpGeS:
			return wasmbin.OpF32Ge, nil
		}

	case valtype.F64:
		switch op {
		case ast.OpAdd:
			return wasmbin.OpF64Add, nil
		case ast.OpSub:
			return wasmbin.OpF64Sub, nil
		case ast.OpMul:
			return wasmbin.OpF64Mul, nil
		case ast.OpDivS:
			return wasmbin.OpF64Div, nil
		case ast.OpEq:
			return wasmbin.OpF64Eq, nil
		case ast.OpNe:
			return wasmbin.OpF64Ne, nil
		case ast.OpLtS:
			return wasmbin.OpF64Lt, nil
		case ast.OpGtS:
			return wasmbin.OpF64Gt, nil
		case ast.OpLeS:
			return wasmbin.OpF64Le, nil
		case ast.OpGeS:
			return wasmbin.OpF64Ge, nil
		}
	}
	return 0, errUnsupportedOperatorFor(vt, op)
}
