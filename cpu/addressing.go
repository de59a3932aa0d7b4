package cpu

// AddrMode identifies one of the 6502's addressing modes.
type AddrMode uint8

const (
	ModeImplied AddrMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

// AccessKind describes how an instruction touches its operand once the
// effective address is known: spec.md §4.1 groups every opcode into one of
// these six cycle-timing families.
type AccessKind uint8

const (
	KindRead AccessKind = iota
	KindWrite
	KindRMW
	KindJump
	KindImplied
	KindBranch
)

// operandOp is what an instruction does once its operand is ready.
//   - Read: c.fetched holds the operand; op reads it.
//   - Write: op computes the byte to store; the addressing builder writes
//     it to c.addr.
//   - RMW: c.fetched holds the old value; op mutates it in place; the
//     builder writes it back.
//   - Implied/Accumulator: op operates directly on registers.
type operandOp func(c *CPU)

// build queues the micro-ops for one instruction, given its addressing
// mode, access kind and operation. Each returned closure performs exactly
// one bus cycle, matching TickCycle's contract.
func build(mode AddrMode, kind AccessKind, op operandOp) func(c *CPU) {
	switch kind {
	case KindImplied:
		return func(c *CPU) {
			c.queue = append(c.queue, func(c *CPU) {
				c.read(c.PC) // dummy read of next opcode byte, PC unchanged
				op(c)
			})
		}
	case KindBranch:
		return func(c *CPU) { buildBranch(c, op) }
	case KindJump:
		return func(c *CPU) { buildJump(c, mode) }
	}

	switch mode {
	case ModeImmediate:
		return func(c *CPU) {
			c.queue = append(c.queue, func(c *CPU) {
				c.fetched = c.read(c.PC)
				c.PC++
				op(c)
			})
		}
	case ModeZeroPage:
		return func(c *CPU) { buildZeroPage(c, kind, op) }
	case ModeZeroPageX:
		return func(c *CPU) { buildZeroPageIndexed(c, &c.X, kind, op) }
	case ModeZeroPageY:
		return func(c *CPU) { buildZeroPageIndexed(c, &c.Y, kind, op) }
	case ModeAbsolute:
		return func(c *CPU) { buildAbsolute(c, kind, op) }
	case ModeAbsoluteX:
		return func(c *CPU) { buildAbsoluteIndexed(c, &c.X, kind, op) }
	case ModeAbsoluteY:
		return func(c *CPU) { buildAbsoluteIndexed(c, &c.Y, kind, op) }
	case ModeIndirectX:
		return func(c *CPU) { buildIndirectX(c, kind, op) }
	case ModeIndirectY:
		return func(c *CPU) { buildIndirectY(c, kind, op) }
	}
	panic("cpu: unhandled addressing mode")
}

func buildZeroPage(c *CPU, kind AccessKind, op operandOp) {
	c.queue = append(c.queue, func(c *CPU) {
		c.addr = uint16(c.read(c.PC))
		c.PC++
	})
	appendAccess(c, kind, op)
}

func buildZeroPageIndexed(c *CPU, idx *uint8, kind AccessKind, op operandOp) {
	c.queue = append(c.queue,
		func(c *CPU) { c.ptr = c.read(c.PC); c.PC++ },
		func(c *CPU) {
			c.read(uint16(c.ptr)) // dummy read at unindexed address
			c.addr = uint16(c.ptr + *idx)
		},
	)
	appendAccess(c, kind, op)
}

func buildAbsolute(c *CPU, kind AccessKind, op operandOp) {
	c.queue = append(c.queue,
		func(c *CPU) { c.addr = uint16(c.read(c.PC)); c.PC++ },
		func(c *CPU) { c.addr |= uint16(c.read(c.PC)) << 8; c.PC++ },
	)
	appendAccess(c, kind, op)
}

func buildAbsoluteIndexed(c *CPU, idx *uint8, kind AccessKind, op operandOp) {
	var base uint16
	c.queue = append(c.queue,
		func(c *CPU) { c.addr = uint16(c.read(c.PC)); c.PC++ },
		func(c *CPU) {
			hi := uint16(c.read(c.PC)) << 8
			c.PC++
			base = hi | c.addr
			effLow := (base & 0xFF00) | uint16(uint8(base)+*idx)
			c.pageCrossed = uint8(base>>8) != uint8(effLow>>8) || uint16(uint8(base)+*idx) < uint16(uint8(base))
			c.addr = effLow
		},
	)

	if kind == KindRead {
		c.queue = append(c.queue, func(c *CPU) {
			if !c.pageCrossed {
				c.fetched = c.read(c.addr)
				op(c)
				return
			}
			c.read(c.addr) // wrong-page dummy read
			c.addr = base + uint16(*idx)
			c.queue = append(c.queue, func(c *CPU) {
				c.fetched = c.read(c.addr)
				op(c)
			})
		})
		return
	}

	c.queue = append(c.queue, func(c *CPU) {
		c.read(c.addr) // dummy read regardless of crossing
		c.addr = base + uint16(*idx)
	})
	appendAccess(c, kind, op)
}

func buildIndirectX(c *CPU, kind AccessKind, op operandOp) {
	c.queue = append(c.queue,
		func(c *CPU) { c.ptr = c.read(c.PC); c.PC++ },
		func(c *CPU) { c.read(uint16(c.ptr)) },
		func(c *CPU) {
			c.ptr += c.X
			c.addr = uint16(c.read(uint16(c.ptr)))
		},
		func(c *CPU) { c.addr |= uint16(c.read(uint16(c.ptr+1))) << 8 },
	)
	appendAccess(c, kind, op)
}

func buildIndirectY(c *CPU, kind AccessKind, op operandOp) {
	var base uint16
	c.queue = append(c.queue,
		func(c *CPU) { c.ptr = c.read(c.PC); c.PC++ },
		func(c *CPU) { c.addr = uint16(c.read(uint16(c.ptr))) },
		func(c *CPU) {
			hi := uint16(c.read(uint16(c.ptr + 1))) << 8
			base = hi | c.addr
			effLow := (base & 0xFF00) | uint16(uint8(base)+c.Y)
			c.pageCrossed = uint8(base>>8) != uint8(effLow>>8) || uint16(uint8(base)+c.Y) < uint16(uint8(base))
			c.addr = effLow
		},
	)

	if kind == KindRead {
		c.queue = append(c.queue, func(c *CPU) {
			if !c.pageCrossed {
				c.fetched = c.read(c.addr)
				op(c)
				return
			}
			c.read(c.addr)
			c.addr = base + uint16(c.Y)
			c.queue = append(c.queue, func(c *CPU) {
				c.fetched = c.read(c.addr)
				op(c)
			})
		})
		return
	}

	c.queue = append(c.queue, func(c *CPU) {
		c.read(c.addr)
		c.addr = base + uint16(c.Y)
	})
	appendAccess(c, kind, op)
}

// appendAccess queues the final read/write/RMW step(s) once c.addr holds
// the effective address.
func appendAccess(c *CPU, kind AccessKind, op operandOp) {
	switch kind {
	case KindRead:
		c.queue = append(c.queue, func(c *CPU) {
			c.fetched = c.read(c.addr)
			op(c)
		})
	case KindWrite:
		c.queue = append(c.queue, func(c *CPU) {
			op(c)
			c.write(c.addr, c.fetched)
		})
	case KindRMW:
		c.queue = append(c.queue,
			func(c *CPU) { c.fetched = c.read(c.addr) },
			func(c *CPU) { c.write(c.addr, c.fetched) }, // dummy write-back of old value
			func(c *CPU) {
				op(c)
				c.write(c.addr, c.fetched)
			},
		)
	}
}

// buildJump handles JMP absolute (3 cycles) and JMP indirect (5 cycles,
// with the classic page-wrap bug where a pointer ending in $xxFF wraps the
// high-byte fetch to $xx00 instead of crossing into the next page).
func buildJump(c *CPU, mode AddrMode) {
	c.queue = append(c.queue, func(c *CPU) { c.addr = uint16(c.read(c.PC)); c.PC++ })
	if mode == ModeAbsolute {
		c.queue = append(c.queue, func(c *CPU) {
			c.addr |= uint16(c.read(c.PC)) << 8
			c.PC = c.addr
		})
		return
	}
	c.queue = append(c.queue,
		func(c *CPU) { c.addr |= uint16(c.read(c.PC)) << 8; c.PC++ },
		func(c *CPU) { c.fetched = c.read(c.addr) },
		func(c *CPU) {
			hiAddr := (c.addr &^ 0x00FF) | uint16(uint8(c.addr)+1)
			c.PC = uint16(c.read(hiAddr))<<8 | uint16(c.fetched)
		},
	)
}

// buildBranch queues a relative branch: c.fetched is cleared to 0, then
// op(c) reports whether the branch is taken by calling branchIf, which sets
// c.fetched to 1 when it is.
func buildBranch(c *CPU, op operandOp) {
	c.queue = append(c.queue, func(c *CPU) {
		offset := int8(c.read(c.PC))
		c.PC++
		c.fetched = 0
		op(c)
		if c.fetched == 0 {
			return
		}
		target := uint16(int32(c.PC) + int32(offset))
		c.queue = append(c.queue, func(c *CPU) {
			c.read(c.PC) // dummy read of the following opcode byte
			same := (c.PC & 0xFF00) == (target & 0xFF00)
			oldPC := c.PC
			c.PC = (oldPC &^ 0x00FF) | (target & 0x00FF)
			if same {
				c.PC = target
				return
			}
			c.queue = append(c.queue, func(c *CPU) {
				c.read(c.PC) // dummy read at the not-yet-fixed-up page
				c.PC = target
			})
		})
	})
}

// branchIf is called by each branch opcode's op with its condition.
func branchIf(c *CPU, taken bool) {
	if taken {
		c.fetched = 1
	}
}
