package sim

import "github.com/rv32iss/rv32iss/decode"

// execBranch executes the control-flow instructions: the two unconditional
// jumps (JAL, JALR) and the six conditional branches. Record.Branched is
// set whenever the instruction writes PC (every jump, every taken branch,
// even one whose target is PC+4) — a not-taken branch leaves it false and
// lets Step's default PC+4 advance stand.
func (s *Simulator) execBranch(st *step, inst decode.Instruction, pc uint32) error {
	switch inst.Op {
	case decode.OpJAL:
		st.writeReg(s, inst.Rd, pc+4)
		st.branch(pc + inst.Imm)
		return nil

	case decode.OpJALR:
		rs1, err := st.readReg(s, inst.Rs1)
		if err != nil {
			return err
		}
		target := (rs1 + inst.Imm) &^ 1
		st.writeReg(s, inst.Rd, pc+4)
		st.branch(target)
		return nil
	}

	rs1, err := st.readReg(s, inst.Rs1)
	if err != nil {
		return err
	}
	rs2, err := st.readReg(s, inst.Rs2)
	if err != nil {
		return err
	}

	var taken bool
	switch inst.Op {
	case decode.OpBEQ:
		taken = rs1 == rs2
	case decode.OpBNE:
		taken = rs1 != rs2
	case decode.OpBLT:
		taken = int32(rs1) < int32(rs2)
	case decode.OpBGE:
		taken = int32(rs1) >= int32(rs2)
	case decode.OpBLTU:
		taken = rs1 < rs2
	case decode.OpBGEU:
		taken = rs1 >= rs2
	}

	if taken {
		st.branch(pc + inst.Imm)
	}
	return nil
}
