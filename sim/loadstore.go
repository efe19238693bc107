package sim

import "github.com/rv32iss/rv32iss/decode"

// execLoadStore executes the memory-access instructions. The effective
// address is always rs1 + imm. Loads read exactly one input (rs1) plus the
// memory value; the narrower loads sign- or zero-extend into the 32-bit
// destination. Stores read two inputs (rs1, rs2) and commit the memory
// write, truncating rs2 to the access width.
func (s *Simulator) execLoadStore(st *step, inst decode.Instruction) error {
	rs1, err := st.readReg(s, inst.Rs1)
	if err != nil {
		return err
	}
	addr := rs1 + inst.Imm

	switch inst.Op {
	case decode.OpLB:
		v, err := st.readMemByte(s, addr)
		if err != nil {
			return err
		}
		st.writeReg(s, inst.Rd, uint32(int32(int8(v))))
		return nil
	case decode.OpLBU:
		v, err := st.readMemByte(s, addr)
		if err != nil {
			return err
		}
		st.writeReg(s, inst.Rd, v)
		return nil
	case decode.OpLH:
		v, err := st.readMemHalf(s, addr)
		if err != nil {
			return err
		}
		st.writeReg(s, inst.Rd, uint32(int32(int16(v))))
		return nil
	case decode.OpLHU:
		v, err := st.readMemHalf(s, addr)
		if err != nil {
			return err
		}
		st.writeReg(s, inst.Rd, v)
		return nil
	case decode.OpLW:
		v, err := st.readMemWord(s, addr)
		if err != nil {
			return err
		}
		st.writeReg(s, inst.Rd, v)
		return nil
	}

	rs2, err := st.readReg(s, inst.Rs2)
	if err != nil {
		return err
	}

	switch inst.Op {
	case decode.OpSB:
		return st.writeMemByte(s, addr, byte(rs2))
	case decode.OpSH:
		return st.writeMemHalf(s, addr, uint16(rs2))
	case decode.OpSW:
		return st.writeMemWord(s, addr, rs2)
	}
	return nil
}
