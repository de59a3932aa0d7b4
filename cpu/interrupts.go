package cpu

// beginInterrupt queues the 7-cycle BRK/IRQ/NMI dispatch sequence
// (spec.md §3's interrupt lifecycle). brk is true only for a real BRK
// instruction, which reads and discards a padding byte and pushes P with
// bit 4 set; hardware-triggered NMI/IRQ read the same PC twice without
// advancing it and push P with bit 4 clear.
//
// The vector to service is decided when the sequence begins, but is
// re-checked one cycle before the vector fetch (cycle 6) so a higher
// priority NMI arriving during the sequence can hijack an in-flight BRK or
// IRQ -- spec.md §3's hijacking note, grounded on arl-nestor/hw/cpu.go's
// handleInterrupts.
func (c *CPU) beginInterrupt(vector uint16, brk bool) {
	c.inInterruptSequence = true
	pc := c.PC

	c.queue = append(c.queue,
		func(c *CPU) {
			if brk {
				c.read(c.PC)
				c.PC++
			} else {
				c.read(pc)
			}
		},
	)
	if !brk {
		// A hardware-triggered sequence has no opcode fetch of its own to
		// supply the "read next instruction byte" cycle BRK gets for free
		// from fetchOpcode; it spends a second dummy read at PC instead so
		// both paths total 7 cycles -- spec.md §3.
		c.queue = append(c.queue, func(c *CPU) { c.read(pc) })
	}

	c.queue = append(c.queue,
		func(c *CPU) { c.push8(uint8(pc >> 8)) },
		func(c *CPU) { c.push8(uint8(pc)) },
		func(c *CPU) {
			c.push8(c.P.pushByte(brk))
			// A pending NMI edge hijacks any BRK/IRQ still in the pipeline:
			// the vector fetched below switches to NMI's, matching hardware.
			if c.nmiPending {
				vector = NMIVector
				c.nmiPending = false
			}
			c.P.SetInterruptDisable(true)
		},
		func(c *CPU) { c.addr = uint16(c.read(vector)) },
		func(c *CPU) {
			c.addr |= uint16(c.read(vector+1)) << 8
			c.PC = c.addr
			c.inInterruptSequence = false
		},
	)
}

// beginReset queues the 7-cycle RESET sequence. Unlike BRK/IRQ/NMI, the
// three stack "pushes" are dummy reads: RESET never writes memory, it only
// decrements SP as a side effect of the sequence.
func (c *CPU) beginReset(warm bool) {
	c.inInterruptSequence = true
	if warm {
		c.P.SetInterruptDisable(true)
	}

	c.queue = append(c.queue,
		func(c *CPU) { c.read(c.PC) },
		func(c *CPU) { c.read(c.PC) },
		func(c *CPU) { c.read(c.stackAddr()); c.SP-- },
		func(c *CPU) { c.read(c.stackAddr()); c.SP-- },
		func(c *CPU) { c.read(c.stackAddr()); c.SP-- },
		func(c *CPU) { c.addr = uint16(c.read(ResetVector)) },
		func(c *CPU) {
			c.addr |= uint16(c.read(ResetVector+1)) << 8
			c.PC = c.addr
			c.inInterruptSequence = false
		},
	)
}

// triggerBRK is invoked by the BRK opcode's build step; it defers to the
// same sequence hardware interrupts use, with brk=true.
func (c *CPU) triggerBRK() {
	c.beginInterrupt(IRQVector, true)
}
