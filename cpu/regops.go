// regops.go - the 3-bit register-operand index ("table r") shared by LD,
// INC/DEC, and ALU instructions.
package cpu

// isMemOperand reports whether operand index idx selects (HL) rather than a
// plain 8-bit register, i.e. whether an access costs MemoryAccessCycles.
func isMemOperand(idx byte) bool {
	return idx == 6
}

// readOperand returns the current value of the 8-bit operand selected by idx.
func (c *CPU) readOperand(idx byte) byte {
	switch idx {
	case 0:
		return c.BC.Upper()
	case 1:
		return c.BC.Lower()
	case 2:
		return c.DE.Upper()
	case 3:
		return c.DE.Lower()
	case 4:
		return c.HL.Upper()
	case 5:
		return c.HL.Lower()
	case 6:
		return c.bus.Read8(c.HL.Combined(), false)
	case 7:
		return c.A
	default:
		return 0
	}
}

// writeOperand stores value into the 8-bit operand selected by idx.
func (c *CPU) writeOperand(idx byte, value byte) {
	switch idx {
	case 0:
		c.BC.SetUpper(value)
	case 1:
		c.BC.SetLower(value)
	case 2:
		c.DE.SetUpper(value)
	case 3:
		c.DE.SetLower(value)
	case 4:
		c.HL.SetUpper(value)
	case 5:
		c.HL.SetLower(value)
	case 6:
		c.bus.Write8(c.HL.Combined(), value, false)
	case 7:
		c.A = value
	}
}
