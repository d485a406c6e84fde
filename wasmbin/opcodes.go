package wasmbin

// Control and variable opcodes (spec §4.6, §4.7).
const (
	OpBlock    byte = 0x02
	OpLoop     byte = 0x03
	OpIf       byte = 0x04
	OpElse     byte = 0x05
	OpEnd      byte = 0x0B
	OpBr       byte = 0x0C
	OpBrIf     byte = 0x0D
	OpCall     byte = 0x10
	OpDrop     byte = 0x1A
	OpLocalGet byte = 0x20
	OpLocalSet byte = 0x21
	OpI32Const byte = 0x41
	OpI64Const byte = 0x42
	OpF32Const byte = 0x43
	OpF64Const byte = 0x44
)

// Load/store opcodes, indexed by valtype.ValType (spec §4.6 table).
const (
	OpI32Load  byte = 0x28
	OpI64Load  byte = 0x29
	OpF32Load  byte = 0x2A
	OpF64Load  byte = 0x2B
	OpI32Store byte = 0x36
	OpI64Store byte = 0x37
	OpF32Store byte = 0x38
	OpF64Store byte = 0x39
)

const OpI32Eqz byte = 0x45

// Arithmetic, comparison, and bitwise opcodes, one set per value type
// (spec §4.6 "Operator dispatch table"). compiler/emit.go picks among
// these by (value type, source operator); wasmbin just names the
// bytes.
const (
	OpI32Add  byte = 0x6A
	OpI32Sub  byte = 0x6B
	OpI32Mul  byte = 0x6C
	OpI32DivS byte = 0x6D
	OpI32RemS byte = 0x6F
	OpI32And  byte = 0x71
	OpI32Or   byte = 0x72
	OpI32Xor  byte = 0x73
	OpI32Shl  byte = 0x74
	OpI32ShrS byte = 0x75
	OpI32Eq   byte = 0x46
	OpI32Ne   byte = 0x47
	OpI32LtS  byte = 0x48
	OpI32GtS  byte = 0x4A
	OpI32LeS  byte = 0x4C
	OpI32GeS  byte = 0x4E

	OpI64Add  byte = 0x7C
	OpI64Sub  byte = 0x7D
	OpI64Mul  byte = 0x7E
	OpI64DivS byte = 0x7F
	OpI64RemS byte = 0x81
	OpI64And  byte = 0x83
	OpI64Or   byte = 0x84
	OpI64Xor  byte = 0x85
	OpI64Shl  byte = 0x86
	OpI64ShrS byte = 0x87
	OpI64Eq   byte = 0x51
	OpI64Ne   byte = 0x52
	OpI64LtS  byte = 0x53
	OpI64GtS  byte = 0x55
	OpI64LeS  byte = 0x57
	OpI64GeS  byte = 0x59

	OpF32Add byte = 0x92
	OpF32Sub byte = 0x93
	OpF32Mul byte = 0x94
	OpF32Div byte = 0x95
	OpF32Eq  byte = 0x5B
	OpF32Ne  byte = 0x5C
	OpF32Lt  byte = 0x5D
	OpF32Gt  byte = 0x5E
	OpF32Le  byte = 0x5F
	OpF32Ge  byte = 0x60

	OpF64Add byte = 0xA0
	OpF64Sub byte = 0xA1
	OpF64Mul byte = 0xA2
	OpF64Div byte = 0xA3
	OpF64Eq  byte = 0x61
	OpF64Ne  byte = 0x62
	OpF64Lt  byte = 0x63
	OpF64Gt  byte = 0x64
	OpF64Le  byte = 0x65
	OpF64Ge  byte = 0x66
)

// Section IDs, in the mandated ascending emission order (spec §4.7).
const (
	SectionType   byte = 1
	SectionImport byte = 2
	SectionFunc   byte = 3
	SectionMemory byte = 5
	SectionExport byte = 7
	SectionCode   byte = 10
)

const (
	FuncTypeMarker byte = 0x60
	LimitsNoMax    byte = 0x00
)
