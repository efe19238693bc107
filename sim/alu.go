package sim

import "github.com/rv32iss/rv32iss/decode"

// execALU executes the instructions whose result depends only on register
// operands and/or an immediate: LUI, AUIPC, and the OP-IMM/OP arithmetic and
// logic instructions. None of these touch memory or change control flow.
func (s *Simulator) execALU(st *step, inst decode.Instruction) error {
	switch inst.Op {
	case decode.OpLUI:
		st.writeReg(s, inst.Rd, inst.Imm)
		return nil

	case decode.OpAUIPC:
		st.writeReg(s, inst.Rd, s.PC+inst.Imm)
		return nil
	}

	rs1, err := st.readReg(s, inst.Rs1)
	if err != nil {
		return err
	}

	switch inst.Op {
	case decode.OpADDI:
		st.writeReg(s, inst.Rd, rs1+inst.Imm)
		return nil
	case decode.OpSLTI:
		st.writeReg(s, inst.Rd, boolWord(int32(rs1) < int32(inst.Imm)))
		return nil
	case decode.OpSLTIU:
		st.writeReg(s, inst.Rd, boolWord(rs1 < inst.Imm))
		return nil
	case decode.OpXORI:
		st.writeReg(s, inst.Rd, rs1^inst.Imm)
		return nil
	case decode.OpORI:
		st.writeReg(s, inst.Rd, rs1|inst.Imm)
		return nil
	case decode.OpANDI:
		st.writeReg(s, inst.Rd, rs1&inst.Imm)
		return nil
	case decode.OpSLLI:
		st.writeReg(s, inst.Rd, rs1<<inst.Shamt)
		return nil
	case decode.OpSRLI:
		st.writeReg(s, inst.Rd, rs1>>inst.Shamt)
		return nil
	case decode.OpSRAI:
		st.writeReg(s, inst.Rd, uint32(int32(rs1)>>inst.Shamt))
		return nil
	}

	rs2, err := st.readReg(s, inst.Rs2)
	if err != nil {
		return err
	}

	switch inst.Op {
	case decode.OpADD:
		st.writeReg(s, inst.Rd, rs1+rs2)
	case decode.OpSUB:
		st.writeReg(s, inst.Rd, rs1-rs2)
	case decode.OpSLL:
		st.writeReg(s, inst.Rd, rs1<<(rs2&0x1F))
	case decode.OpSLT:
		st.writeReg(s, inst.Rd, boolWord(int32(rs1) < int32(rs2)))
	case decode.OpSLTU:
		st.writeReg(s, inst.Rd, boolWord(rs1 < rs2))
	case decode.OpXOR:
		st.writeReg(s, inst.Rd, rs1^rs2)
	case decode.OpSRL:
		st.writeReg(s, inst.Rd, rs1>>(rs2&0x1F))
	case decode.OpSRA:
		st.writeReg(s, inst.Rd, uint32(int32(rs1)>>(rs2&0x1F)))
	case decode.OpOR:
		st.writeReg(s, inst.Rd, rs1|rs2)
	case decode.OpAND:
		st.writeReg(s, inst.Rd, rs1&rs2)
	}
	return nil
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
