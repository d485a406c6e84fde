package wasmbin

// EncodeInstr appends one instruction's opcode and immediate. Adapted
// from the teacher's wat/internal/encoder.EncodeInstr, trimmed to the
// opcodes the body emitter (spec §4.6) ever produces: no br_table,
// call_indirect, table/reference ops, or bulk-memory prefixed ops —
// none of those have a source-language construct that lowers to them.
func EncodeInstr(buf *Buffer, ins Instr) {
	buf.AppendByte(ins.Opcode)

	switch ins.Opcode {
	case OpBr, OpBrIf, OpCall, OpLocalGet, OpLocalSet:
		buf.WriteU32(ins.Imm.(uint32))

	case OpI32Const:
		buf.WriteI32(ins.Imm.(int32))

	case OpI64Const:
		buf.WriteI64(ins.Imm.(int64))

	case OpF32Const:
		buf.WriteF32(ins.Imm.(float32))

	case OpF64Const:
		buf.WriteF64(ins.Imm.(float64))

	case OpBlock, OpLoop, OpIf:
		bt := ins.Imm.(BlockType)
		buf.AppendByte(byte(bt))

	case OpI32Load, OpI64Load, OpF32Load, OpF64Load,
		OpI32Store, OpI64Store, OpF32Store, OpF64Store:
		ma := ins.Imm.(Memarg)
		buf.WriteU32(ma.Align)
		buf.WriteU32(ma.Offset)
	}
}
