package wasmbin

// Encode assembles the final byte-exact WebAssembly binary (spec
// §4.7): magic, version, then each non-empty section in strictly
// ascending section-ID order. Adapted from the teacher's
// wat/internal/encoder.Encode, with the Table/Global/Start/Elem/Data
// sections removed — this Module type never populates them.
func Encode(m *Module) []byte {
	buf := &Buffer{}
	buf.WriteBytes([]byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00})

	if len(m.Types) > 0 {
		encodeTypeSection(buf, m)
	}
	if len(m.Imports) > 0 {
		encodeImportSection(buf, m)
	}
	if len(m.Funcs) > 0 {
		encodeFuncSection(buf, m)
	}
	if m.HasMemory {
		encodeMemorySection(buf)
	}
	if len(m.Exports) > 0 {
		encodeExportSection(buf, m)
	}
	if len(m.Code) > 0 {
		encodeCodeSection(buf, m)
	}

	return buf.Bytes
}

func writeSection(buf *Buffer, id byte, content *Buffer) {
	buf.AppendByte(id)
	buf.WriteU32(uint32(len(content.Bytes)))
	buf.WriteBytes(content.Bytes)
}

func encodeTypeSection(buf *Buffer, m *Module) {
	sec := &Buffer{}
	sec.WriteU32(uint32(len(m.Types)))
	for _, ft := range m.Types {
		sec.AppendByte(FuncTypeMarker)
		sec.WriteU32(uint32(len(ft.Params)))
		for _, p := range ft.Params {
			sec.AppendByte(byte(p))
		}
		sec.WriteU32(uint32(len(ft.Results)))
		for _, r := range ft.Results {
			sec.AppendByte(byte(r))
		}
	}
	writeSection(buf, SectionType, sec)
}

func encodeImportSection(buf *Buffer, m *Module) {
	sec := &Buffer{}
	sec.WriteU32(uint32(len(m.Imports)))
	for _, imp := range m.Imports {
		sec.WriteString(imp.Module)
		sec.WriteString(imp.Name)
		sec.AppendByte(KindFunc)
		sec.WriteU32(imp.TypeIdx)
	}
	writeSection(buf, SectionImport, sec)
}

func encodeFuncSection(buf *Buffer, m *Module) {
	sec := &Buffer{}
	sec.WriteU32(uint32(len(m.Funcs)))
	for _, f := range m.Funcs {
		sec.WriteU32(f.TypeIdx)
	}
	writeSection(buf, SectionFunc, sec)
}

// encodeMemorySection always emits exactly one memory with no maximum
// and an initial size of one page, per spec §4.7 step 5.
func encodeMemorySection(buf *Buffer) {
	sec := &Buffer{}
	sec.WriteU32(1)
	sec.WriteLimits(1)
	writeSection(buf, SectionMemory, sec)
}

func encodeExportSection(buf *Buffer, m *Module) {
	sec := &Buffer{}
	sec.WriteU32(uint32(len(m.Exports)))
	for _, e := range m.Exports {
		sec.WriteString(e.Name)
		sec.AppendByte(e.Kind)
		sec.WriteU32(e.Idx)
	}
	writeSection(buf, SectionExport, sec)
}

func encodeCodeSection(buf *Buffer, m *Module) {
	sec := &Buffer{}
	sec.WriteU32(uint32(len(m.Code)))
	for _, c := range m.Code {
		code := &Buffer{}

		var groups []struct {
			count uint32
			vt    byte
		}
		for _, l := range c.Locals {
			if len(groups) > 0 && groups[len(groups)-1].vt == byte(l) {
				groups[len(groups)-1].count++
			} else {
				groups = append(groups, struct {
					count uint32
					vt    byte
				}{1, byte(l)})
			}
		}

		code.WriteU32(uint32(len(groups)))
		for _, g := range groups {
			code.WriteU32(g.count)
			code.AppendByte(g.vt)
		}

		for _, instr := range c.Code {
			EncodeInstr(code, instr)
		}

		sec.WriteU32(uint32(len(code.Bytes)))
		sec.WriteBytes(code.Bytes)
	}
	writeSection(buf, SectionCode, sec)
}
