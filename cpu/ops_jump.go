// ops_jump.go - DJNZ, JR d, and JR cc,d.
package cpu

// opDJNZ decrements B and, if the result is nonzero, adds a fetched signed
// displacement to PC.
func (c *CPU) opDJNZ() (uint8, error) {
	newB := c.BC.Upper() - 1
	c.BC.SetUpper(newB)

	disp := int8(c.bus.Read8(c.PC, false))
	c.PC++

	cycles := uint8(TestRegCycles + IncDecRegCycles)
	if newB != 0 {
		c.PC = uint16(int32(c.PC) + int32(disp))
		cycles += MemoryAccessCycles + 2*IncDecRegCycles
	}
	return cycles, nil
}

// opJR unconditionally adds a fetched signed displacement to PC. The "+5"
// cycle adjustment (rather than the canonical Z80 total of 12) is retained
// verbatim from the source; see DESIGN.md.
func (c *CPU) opJR() (uint8, error) {
	disp := int8(c.bus.Read8(c.PC, false))
	c.PC++
	c.PC = uint16(int32(c.PC) + int32(disp))

	return MemoryAccessCycles + 5, nil
}

// jrCondition reports whether condition index idx (0=NZ,1=Z,2=NC,3=C) holds.
func (c *CPU) jrCondition(idx byte) bool {
	switch idx {
	case 0:
		return !c.F.Has(FlagZ)
	case 1:
		return c.F.Has(FlagZ)
	case 2:
		return !c.F.Has(FlagC)
	case 3:
		return c.F.Has(FlagC)
	default:
		return false
	}
}

// opJRCC adds a fetched signed displacement to PC only if the condition
// selected by Y-4 holds; otherwise PC merely steps past the displacement
// byte.
func (c *CPU) opJRCC() (uint8, error) {
	taken := c.jrCondition(c.decoded.Y - 4)

	disp := int8(c.bus.Read8(c.PC, false))
	c.PC++

	cycles := uint8(TestRegCycles)
	if taken {
		c.PC = uint16(int32(c.PC) + int32(disp))
		cycles += MemoryAccessCycles + 2*IncDecRegCycles
	}
	return cycles, nil
}
