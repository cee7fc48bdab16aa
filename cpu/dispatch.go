// dispatch.go - the execute-phase opcode table, structured as the nested
// x/y/z switch the original source uses rather than the teacher's per-opcode
// function-pointer table; this keeps the (x,y,z) decomposition front and
// center since the subset implemented here is small.
package cpu

func (c *CPU) dispatch() (uint8, error) {
	d := c.decoded

	switch d.X {
	case 0:
		switch d.Z {
		case 0:
			switch d.Y {
			case 0:
				return c.opNOP()
			case 2:
				return c.opDJNZ()
			case 3:
				return c.opJR()
			case 4, 5, 6, 7:
				return c.opJRCC()
			default:
				return 0, UnimplementedInstruction{Opcode: c.currentOpcode, Mnemonic: "EX AF,AF'"}
			}
		case 4:
			return c.opINCR()
		case 5:
			return c.opDECR()
		case 6:
			return c.opLDRImm()
		default:
			return 0, UnimplementedInstruction{Opcode: c.currentOpcode}
		}
	case 1:
		if d.Z == 6 && d.Y == 6 {
			return 0, UnimplementedInstruction{Opcode: c.currentOpcode, Mnemonic: "HALT"}
		}
		return c.opLDRR()
	case 2:
		switch d.Y {
		case 0:
			return c.opADDAR()
		case 2:
			return c.opSUBR()
		default:
			return 0, UnimplementedInstruction{Opcode: c.currentOpcode, Mnemonic: "ALU instruction"}
		}
	default:
		return 0, UnimplementedInstruction{Opcode: c.currentOpcode}
	}
}
