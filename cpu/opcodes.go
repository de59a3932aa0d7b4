package cpu

// instrDesc is the fixed, precomputed micro-op program generator for one
// opcode value. build queues that opcode's full cycle sequence onto
// c.queue when it is fetched.
type instrDesc struct {
	name  string
	jam   bool
	build func(c *CPU)
}

var table [256]instrDesc

func init() {
	for i := range table {
		table[i] = instrDesc{name: "???", build: func(c *CPU) {
			// undocumented/reserved opcode: behaves as a 2-cycle NOP on the
			// silicon this core targets (2A03), matching common test ROMs'
			// expectations for opcodes with no assigned behavior.
			build(ModeImplied, KindImplied, func(c *CPU) {})(c)
		}}
	}
	for _, op := range jamOpcodes {
		table[op] = instrDesc{name: "JAM", jam: true}
	}

	def := func(opcode uint8, name string, mode AddrMode, kind AccessKind, fn operandOp) {
		b := build(mode, kind, fn)
		table[opcode] = instrDesc{name: name, build: b}
	}

	// --- load/store ---
	def(0xA9, "LDA", ModeImmediate, KindRead, opLDA)
	def(0xA5, "LDA", ModeZeroPage, KindRead, opLDA)
	def(0xB5, "LDA", ModeZeroPageX, KindRead, opLDA)
	def(0xAD, "LDA", ModeAbsolute, KindRead, opLDA)
	def(0xBD, "LDA", ModeAbsoluteX, KindRead, opLDA)
	def(0xB9, "LDA", ModeAbsoluteY, KindRead, opLDA)
	def(0xA1, "LDA", ModeIndirectX, KindRead, opLDA)
	def(0xB1, "LDA", ModeIndirectY, KindRead, opLDA)

	def(0xA2, "LDX", ModeImmediate, KindRead, opLDX)
	def(0xA6, "LDX", ModeZeroPage, KindRead, opLDX)
	def(0xB6, "LDX", ModeZeroPageY, KindRead, opLDX)
	def(0xAE, "LDX", ModeAbsolute, KindRead, opLDX)
	def(0xBE, "LDX", ModeAbsoluteY, KindRead, opLDX)

	def(0xA0, "LDY", ModeImmediate, KindRead, opLDY)
	def(0xA4, "LDY", ModeZeroPage, KindRead, opLDY)
	def(0xB4, "LDY", ModeZeroPageX, KindRead, opLDY)
	def(0xAC, "LDY", ModeAbsolute, KindRead, opLDY)
	def(0xBC, "LDY", ModeAbsoluteX, KindRead, opLDY)

	def(0x85, "STA", ModeZeroPage, KindWrite, opSTA)
	def(0x95, "STA", ModeZeroPageX, KindWrite, opSTA)
	def(0x8D, "STA", ModeAbsolute, KindWrite, opSTA)
	def(0x9D, "STA", ModeAbsoluteX, KindWrite, opSTA)
	def(0x99, "STA", ModeAbsoluteY, KindWrite, opSTA)
	def(0x81, "STA", ModeIndirectX, KindWrite, opSTA)
	def(0x91, "STA", ModeIndirectY, KindWrite, opSTA)

	def(0x86, "STX", ModeZeroPage, KindWrite, opSTX)
	def(0x96, "STX", ModeZeroPageY, KindWrite, opSTX)
	def(0x8E, "STX", ModeAbsolute, KindWrite, opSTX)

	def(0x84, "STY", ModeZeroPage, KindWrite, opSTY)
	def(0x94, "STY", ModeZeroPageX, KindWrite, opSTY)
	def(0x8C, "STY", ModeAbsolute, KindWrite, opSTY)

	// --- transfers ---
	def(0xAA, "TAX", ModeImplied, KindImplied, func(c *CPU) { c.X = c.A; c.P.SetNZ(c.X) })
	def(0xA8, "TAY", ModeImplied, KindImplied, func(c *CPU) { c.Y = c.A; c.P.SetNZ(c.Y) })
	def(0xBA, "TSX", ModeImplied, KindImplied, func(c *CPU) { c.X = c.SP; c.P.SetNZ(c.X) })
	def(0x8A, "TXA", ModeImplied, KindImplied, func(c *CPU) { c.A = c.X; c.P.SetNZ(c.A) })
	def(0x9A, "TXS", ModeImplied, KindImplied, func(c *CPU) { c.SP = c.X })
	def(0x98, "TYA", ModeImplied, KindImplied, func(c *CPU) { c.A = c.Y; c.P.SetNZ(c.A) })

	// --- stack ---
	table[0x48] = instrDesc{name: "PHA", build: func(c *CPU) {
		c.queue = append(c.queue,
			func(c *CPU) { c.read(c.PC) }, // dummy read of next opcode byte, PC unchanged
			func(c *CPU) { c.push8(c.A) },
		)
	}}
	table[0x08] = instrDesc{name: "PHP", build: func(c *CPU) {
		c.queue = append(c.queue,
			func(c *CPU) { c.read(c.PC) },
			func(c *CPU) { c.push8(c.P.pushByte(true)) },
		)
	}}
	table[0x68] = instrDesc{name: "PLA", build: func(c *CPU) {
		c.queue = append(c.queue,
			func(c *CPU) { c.read(c.PC) },
			func(c *CPU) { c.read(c.stackAddr()) },
			func(c *CPU) { c.A = c.pull8(); c.P.SetNZ(c.A) },
		)
	}}
	table[0x28] = instrDesc{name: "PLP", build: func(c *CPU) {
		c.queue = append(c.queue,
			func(c *CPU) { c.read(c.PC) },
			func(c *CPU) { c.read(c.stackAddr()) },
			func(c *CPU) { c.P = fromPulledByte(c.pull8()) },
		)
	}}

	// --- arithmetic / logic ---
	arith := func(op uint8, mode AddrMode, kind AccessKind, name string, fn operandOp) { def(op, name, mode, kind, fn) }
	arith(0x69, ModeImmediate, KindRead, "ADC", opADC)
	arith(0x65, ModeZeroPage, KindRead, "ADC", opADC)
	arith(0x75, ModeZeroPageX, KindRead, "ADC", opADC)
	arith(0x6D, ModeAbsolute, KindRead, "ADC", opADC)
	arith(0x7D, ModeAbsoluteX, KindRead, "ADC", opADC)
	arith(0x79, ModeAbsoluteY, KindRead, "ADC", opADC)
	arith(0x61, ModeIndirectX, KindRead, "ADC", opADC)
	arith(0x71, ModeIndirectY, KindRead, "ADC", opADC)

	arith(0xE9, ModeImmediate, KindRead, "SBC", opSBC)
	arith(0xE5, ModeZeroPage, KindRead, "SBC", opSBC)
	arith(0xF5, ModeZeroPageX, KindRead, "SBC", opSBC)
	arith(0xED, ModeAbsolute, KindRead, "SBC", opSBC)
	arith(0xFD, ModeAbsoluteX, KindRead, "SBC", opSBC)
	arith(0xF9, ModeAbsoluteY, KindRead, "SBC", opSBC)
	arith(0xE1, ModeIndirectX, KindRead, "SBC", opSBC)
	arith(0xF1, ModeIndirectY, KindRead, "SBC", opSBC)
	def(0xEB, "SBC", ModeImmediate, KindRead, opSBC) // unofficial duplicate

	logic := func(op uint8, mode AddrMode, kind AccessKind, name string, fn operandOp) { def(op, name, mode, kind, fn) }
	logic(0x29, ModeImmediate, KindRead, "AND", opAND)
	logic(0x25, ModeZeroPage, KindRead, "AND", opAND)
	logic(0x35, ModeZeroPageX, KindRead, "AND", opAND)
	logic(0x2D, ModeAbsolute, KindRead, "AND", opAND)
	logic(0x3D, ModeAbsoluteX, KindRead, "AND", opAND)
	logic(0x39, ModeAbsoluteY, KindRead, "AND", opAND)
	logic(0x21, ModeIndirectX, KindRead, "AND", opAND)
	logic(0x31, ModeIndirectY, KindRead, "AND", opAND)

	logic(0x49, ModeImmediate, KindRead, "EOR", opEOR)
	logic(0x45, ModeZeroPage, KindRead, "EOR", opEOR)
	logic(0x55, ModeZeroPageX, KindRead, "EOR", opEOR)
	logic(0x4D, ModeAbsolute, KindRead, "EOR", opEOR)
	logic(0x5D, ModeAbsoluteX, KindRead, "EOR", opEOR)
	logic(0x59, ModeAbsoluteY, KindRead, "EOR", opEOR)
	logic(0x41, ModeIndirectX, KindRead, "EOR", opEOR)
	logic(0x51, ModeIndirectY, KindRead, "EOR", opEOR)

	logic(0x09, ModeImmediate, KindRead, "ORA", opORA)
	logic(0x05, ModeZeroPage, KindRead, "ORA", opORA)
	logic(0x15, ModeZeroPageX, KindRead, "ORA", opORA)
	logic(0x0D, ModeAbsolute, KindRead, "ORA", opORA)
	logic(0x1D, ModeAbsoluteX, KindRead, "ORA", opORA)
	logic(0x19, ModeAbsoluteY, KindRead, "ORA", opORA)
	logic(0x01, ModeIndirectX, KindRead, "ORA", opORA)
	logic(0x11, ModeIndirectY, KindRead, "ORA", opORA)

	def(0x24, "BIT", ModeZeroPage, KindRead, opBIT)
	def(0x2C, "BIT", ModeAbsolute, KindRead, opBIT)

	def(0xC9, "CMP", ModeImmediate, KindRead, func(c *CPU) { opCompare(c, c.A) })
	def(0xC5, "CMP", ModeZeroPage, KindRead, func(c *CPU) { opCompare(c, c.A) })
	def(0xD5, "CMP", ModeZeroPageX, KindRead, func(c *CPU) { opCompare(c, c.A) })
	def(0xCD, "CMP", ModeAbsolute, KindRead, func(c *CPU) { opCompare(c, c.A) })
	def(0xDD, "CMP", ModeAbsoluteX, KindRead, func(c *CPU) { opCompare(c, c.A) })
	def(0xD9, "CMP", ModeAbsoluteY, KindRead, func(c *CPU) { opCompare(c, c.A) })
	def(0xC1, "CMP", ModeIndirectX, KindRead, func(c *CPU) { opCompare(c, c.A) })
	def(0xD1, "CMP", ModeIndirectY, KindRead, func(c *CPU) { opCompare(c, c.A) })

	def(0xE0, "CPX", ModeImmediate, KindRead, func(c *CPU) { opCompare(c, c.X) })
	def(0xE4, "CPX", ModeZeroPage, KindRead, func(c *CPU) { opCompare(c, c.X) })
	def(0xEC, "CPX", ModeAbsolute, KindRead, func(c *CPU) { opCompare(c, c.X) })

	def(0xC0, "CPY", ModeImmediate, KindRead, func(c *CPU) { opCompare(c, c.Y) })
	def(0xC4, "CPY", ModeZeroPage, KindRead, func(c *CPU) { opCompare(c, c.Y) })
	def(0xCC, "CPY", ModeAbsolute, KindRead, func(c *CPU) { opCompare(c, c.Y) })

	// --- increments/decrements ---
	def(0xE6, "INC", ModeZeroPage, KindRMW, opINC)
	def(0xF6, "INC", ModeZeroPageX, KindRMW, opINC)
	def(0xEE, "INC", ModeAbsolute, KindRMW, opINC)
	def(0xFE, "INC", ModeAbsoluteX, KindRMW, opINC)
	def(0xC6, "DEC", ModeZeroPage, KindRMW, opDEC)
	def(0xD6, "DEC", ModeZeroPageX, KindRMW, opDEC)
	def(0xCE, "DEC", ModeAbsolute, KindRMW, opDEC)
	def(0xDE, "DEC", ModeAbsoluteX, KindRMW, opDEC)
	def(0xE8, "INX", ModeImplied, KindImplied, func(c *CPU) { c.X++; c.P.SetNZ(c.X) })
	def(0xC8, "INY", ModeImplied, KindImplied, func(c *CPU) { c.Y++; c.P.SetNZ(c.Y) })
	def(0xCA, "DEX", ModeImplied, KindImplied, func(c *CPU) { c.X--; c.P.SetNZ(c.X) })
	def(0x88, "DEY", ModeImplied, KindImplied, func(c *CPU) { c.Y--; c.P.SetNZ(c.Y) })

	// --- shifts/rotates ---
	def(0x0A, "ASL", ModeAccumulator, KindImplied, func(c *CPU) { c.A = opShiftLeft(c, c.A) })
	def(0x06, "ASL", ModeZeroPage, KindRMW, func(c *CPU) { c.fetched = opShiftLeft(c, c.fetched) })
	def(0x16, "ASL", ModeZeroPageX, KindRMW, func(c *CPU) { c.fetched = opShiftLeft(c, c.fetched) })
	def(0x0E, "ASL", ModeAbsolute, KindRMW, func(c *CPU) { c.fetched = opShiftLeft(c, c.fetched) })
	def(0x1E, "ASL", ModeAbsoluteX, KindRMW, func(c *CPU) { c.fetched = opShiftLeft(c, c.fetched) })

	def(0x4A, "LSR", ModeAccumulator, KindImplied, func(c *CPU) { c.A = opShiftRight(c, c.A) })
	def(0x46, "LSR", ModeZeroPage, KindRMW, func(c *CPU) { c.fetched = opShiftRight(c, c.fetched) })
	def(0x56, "LSR", ModeZeroPageX, KindRMW, func(c *CPU) { c.fetched = opShiftRight(c, c.fetched) })
	def(0x4E, "LSR", ModeAbsolute, KindRMW, func(c *CPU) { c.fetched = opShiftRight(c, c.fetched) })
	def(0x5E, "LSR", ModeAbsoluteX, KindRMW, func(c *CPU) { c.fetched = opShiftRight(c, c.fetched) })

	def(0x2A, "ROL", ModeAccumulator, KindImplied, func(c *CPU) { c.A = opRotateLeft(c, c.A) })
	def(0x26, "ROL", ModeZeroPage, KindRMW, func(c *CPU) { c.fetched = opRotateLeft(c, c.fetched) })
	def(0x36, "ROL", ModeZeroPageX, KindRMW, func(c *CPU) { c.fetched = opRotateLeft(c, c.fetched) })
	def(0x2E, "ROL", ModeAbsolute, KindRMW, func(c *CPU) { c.fetched = opRotateLeft(c, c.fetched) })
	def(0x3E, "ROL", ModeAbsoluteX, KindRMW, func(c *CPU) { c.fetched = opRotateLeft(c, c.fetched) })

	def(0x6A, "ROR", ModeAccumulator, KindImplied, func(c *CPU) { c.A = opRotateRight(c, c.A) })
	def(0x66, "ROR", ModeZeroPage, KindRMW, func(c *CPU) { c.fetched = opRotateRight(c, c.fetched) })
	def(0x76, "ROR", ModeZeroPageX, KindRMW, func(c *CPU) { c.fetched = opRotateRight(c, c.fetched) })
	def(0x6E, "ROR", ModeAbsolute, KindRMW, func(c *CPU) { c.fetched = opRotateRight(c, c.fetched) })
	def(0x7E, "ROR", ModeAbsoluteX, KindRMW, func(c *CPU) { c.fetched = opRotateRight(c, c.fetched) })

	// --- flags ---
	def(0x18, "CLC", ModeImplied, KindImplied, func(c *CPU) { c.P.SetCarry(false) })
	def(0x38, "SEC", ModeImplied, KindImplied, func(c *CPU) { c.P.SetCarry(true) })
	def(0x58, "CLI", ModeImplied, KindImplied, func(c *CPU) { c.P.SetInterruptDisable(false) })
	def(0x78, "SEI", ModeImplied, KindImplied, func(c *CPU) { c.P.SetInterruptDisable(true) })
	def(0xB8, "CLV", ModeImplied, KindImplied, func(c *CPU) { c.P.SetOverflow(false) })
	def(0xD8, "CLD", ModeImplied, KindImplied, func(c *CPU) { c.P.SetDecimal(false) })
	def(0xF8, "SED", ModeImplied, KindImplied, func(c *CPU) { c.P.SetDecimal(true) })

	// --- branches ---
	def(0x90, "BCC", ModeRelative, KindBranch, func(c *CPU) { branchIf(c, !c.P.Carry()) })
	def(0xB0, "BCS", ModeRelative, KindBranch, func(c *CPU) { branchIf(c, c.P.Carry()) })
	def(0xF0, "BEQ", ModeRelative, KindBranch, func(c *CPU) { branchIf(c, c.P.Zero()) })
	def(0xD0, "BNE", ModeRelative, KindBranch, func(c *CPU) { branchIf(c, !c.P.Zero()) })
	def(0x30, "BMI", ModeRelative, KindBranch, func(c *CPU) { branchIf(c, c.P.Negative()) })
	def(0x10, "BPL", ModeRelative, KindBranch, func(c *CPU) { branchIf(c, !c.P.Negative()) })
	def(0x50, "BVC", ModeRelative, KindBranch, func(c *CPU) { branchIf(c, !c.P.Overflow()) })
	def(0x70, "BVS", ModeRelative, KindBranch, func(c *CPU) { branchIf(c, c.P.Overflow()) })

	// --- jumps/calls ---
	def(0x4C, "JMP", ModeAbsolute, KindJump, nil)
	def(0x6C, "JMP", ModeIndirect, KindJump, nil)
	table[0x20] = instrDesc{name: "JSR", build: buildJSR}
	table[0x60] = instrDesc{name: "RTS", build: buildRTS}
	table[0x40] = instrDesc{name: "RTI", build: buildRTI}
	table[0x00] = instrDesc{name: "BRK", build: func(c *CPU) { c.triggerBRK() }}

	// --- misc ---
	def(0xEA, "NOP", ModeImplied, KindImplied, func(c *CPU) {})
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		def(op, "NOP", ModeImplied, KindImplied, func(c *CPU) {})
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		def(op, "NOP", ModeImmediate, KindRead, func(c *CPU) {})
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		def(op, "NOP", ModeZeroPage, KindRead, func(c *CPU) {})
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		def(op, "NOP", ModeZeroPageX, KindRead, func(c *CPU) {})
	}
	def(0x0C, "NOP", ModeAbsolute, KindRead, func(c *CPU) {})
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		def(op, "NOP", ModeAbsoluteX, KindRead, func(c *CPU) {})
	}

	// --- documented unofficial combos, grounded on original_source's
	// 6502 core and blargg's opcode reference used by most nestest ROMs ---
	lax := func(op uint8, mode AddrMode) {
		def(op, "LAX", mode, KindRead, func(c *CPU) { opLDA(c); c.X = c.A })
	}
	lax(0xA7, ModeZeroPage)
	lax(0xB7, ModeZeroPageY)
	lax(0xAF, ModeAbsolute)
	lax(0xBF, ModeAbsoluteY)
	lax(0xA3, ModeIndirectX)
	lax(0xB3, ModeIndirectY)

	sax := func(op uint8, mode AddrMode) {
		def(op, "SAX", mode, KindWrite, func(c *CPU) { c.fetched = c.A & c.X })
	}
	sax(0x87, ModeZeroPage)
	sax(0x97, ModeZeroPageY)
	sax(0x8F, ModeAbsolute)
	sax(0x83, ModeIndirectX)

	rmwCombo := func(op uint8, mode AddrMode, name string, fn func(c *CPU)) {
		def(op, name, mode, KindRMW, fn)
	}
	dcp := func(c *CPU) {
		c.fetched--
		result := c.A - c.fetched
		c.P.SetCarry(c.A >= c.fetched)
		c.P.SetNZ(result)
	}
	rmwCombo(0xC7, ModeZeroPage, "DCP", dcp)
	rmwCombo(0xD7, ModeZeroPageX, "DCP", dcp)
	rmwCombo(0xCF, ModeAbsolute, "DCP", dcp)
	rmwCombo(0xDF, ModeAbsoluteX, "DCP", dcp)
	rmwCombo(0xDB, ModeAbsoluteY, "DCP", dcp)
	rmwCombo(0xC3, ModeIndirectX, "DCP", dcp)
	rmwCombo(0xD3, ModeIndirectY, "DCP", dcp)

	isc := func(c *CPU) { c.fetched++; opSBCValue(c, c.fetched) }
	rmwCombo(0xE7, ModeZeroPage, "ISC", isc)
	rmwCombo(0xF7, ModeZeroPageX, "ISC", isc)
	rmwCombo(0xEF, ModeAbsolute, "ISC", isc)
	rmwCombo(0xFF, ModeAbsoluteX, "ISC", isc)
	rmwCombo(0xFB, ModeAbsoluteY, "ISC", isc)
	rmwCombo(0xE3, ModeIndirectX, "ISC", isc)
	rmwCombo(0xF3, ModeIndirectY, "ISC", isc)

	slo := func(c *CPU) { c.fetched = opShiftLeft(c, c.fetched); c.A |= c.fetched; c.P.SetNZ(c.A) }
	rmwCombo(0x07, ModeZeroPage, "SLO", slo)
	rmwCombo(0x17, ModeZeroPageX, "SLO", slo)
	rmwCombo(0x0F, ModeAbsolute, "SLO", slo)
	rmwCombo(0x1F, ModeAbsoluteX, "SLO", slo)
	rmwCombo(0x1B, ModeAbsoluteY, "SLO", slo)
	rmwCombo(0x03, ModeIndirectX, "SLO", slo)
	rmwCombo(0x13, ModeIndirectY, "SLO", slo)

	rla := func(c *CPU) { c.fetched = opRotateLeft(c, c.fetched); c.A &= c.fetched; c.P.SetNZ(c.A) }
	rmwCombo(0x27, ModeZeroPage, "RLA", rla)
	rmwCombo(0x37, ModeZeroPageX, "RLA", rla)
	rmwCombo(0x2F, ModeAbsolute, "RLA", rla)
	rmwCombo(0x3F, ModeAbsoluteX, "RLA", rla)
	rmwCombo(0x3B, ModeAbsoluteY, "RLA", rla)
	rmwCombo(0x23, ModeIndirectX, "RLA", rla)
	rmwCombo(0x33, ModeIndirectY, "RLA", rla)

	sre := func(c *CPU) { c.fetched = opShiftRight(c, c.fetched); c.A ^= c.fetched; c.P.SetNZ(c.A) }
	rmwCombo(0x47, ModeZeroPage, "SRE", sre)
	rmwCombo(0x57, ModeZeroPageX, "SRE", sre)
	rmwCombo(0x4F, ModeAbsolute, "SRE", sre)
	rmwCombo(0x5F, ModeAbsoluteX, "SRE", sre)
	rmwCombo(0x5B, ModeAbsoluteY, "SRE", sre)
	rmwCombo(0x43, ModeIndirectX, "SRE", sre)
	rmwCombo(0x53, ModeIndirectY, "SRE", sre)

	rra := func(c *CPU) { c.fetched = opRotateRight(c, c.fetched); opADCValue(c, c.fetched) }
	rmwCombo(0x67, ModeZeroPage, "RRA", rra)
	rmwCombo(0x77, ModeZeroPageX, "RRA", rra)
	rmwCombo(0x6F, ModeAbsolute, "RRA", rra)
	rmwCombo(0x7F, ModeAbsoluteX, "RRA", rra)
	rmwCombo(0x7B, ModeAbsoluteY, "RRA", rra)
	rmwCombo(0x63, ModeIndirectX, "RRA", rra)
	rmwCombo(0x73, ModeIndirectY, "RRA", rra)
}

var jamOpcodes = []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2}

func buildJSR(c *CPU) {
	c.queue = append(c.queue,
		func(c *CPU) { c.addr = uint16(c.read(c.PC)); c.PC++ },
		func(c *CPU) { c.read(c.stackAddr()) }, // internal delay, real hardware peeks the stack
		func(c *CPU) { c.push8(uint8((c.PC) >> 8)) },
		func(c *CPU) { c.push8(uint8(c.PC)) },
		func(c *CPU) {
			c.addr |= uint16(c.read(c.PC)) << 8
			c.PC = c.addr
		},
	)
}

func buildRTS(c *CPU) {
	c.queue = append(c.queue,
		func(c *CPU) { c.read(c.stackAddr()) },
		func(c *CPU) { c.read(c.stackAddr()) },
		func(c *CPU) { c.addr = uint16(c.pull8()) },
		func(c *CPU) { c.addr |= uint16(c.pull8()) << 8 },
		func(c *CPU) { c.PC = c.addr + 1; c.read(c.PC - 1) },
	)
}

func buildRTI(c *CPU) {
	c.queue = append(c.queue,
		func(c *CPU) { c.read(c.PC) }, // dummy read of next opcode byte, PC unchanged
		func(c *CPU) { c.read(c.stackAddr()) },
		func(c *CPU) { c.P = fromPulledByte(c.pull8()) },
		func(c *CPU) { c.addr = uint16(c.pull8()) },
		func(c *CPU) {
			c.addr |= uint16(c.pull8()) << 8
			c.PC = c.addr
			// RTI's flag update is visible immediately, unlike CLI/SEI/PLP:
			// P is loaded two cycles before RTI ends, so the one-cycle-behind
			// snapshot already reflects it at the next instruction boundary
			// -- see PollInterruptLines.
		},
	)
}
