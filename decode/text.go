package decode

import "fmt"

// Text renders the reference disassembly text used inside golden-log trace
// lines. It is not a general-purpose disassembler: only the forms needed
// by the trace format are produced.
func (i Instruction) Text(pc uint32) string {
	switch i.Op {
	case OpLUI:
		return fmt.Sprintf("lui %s, 0x%x", i.Rd, i.Imm>>12)
	case OpAUIPC:
		return fmt.Sprintf("auipc %s, 0x%x", i.Rd, i.Imm>>12)
	case OpJAL:
		return fmt.Sprintf("jal %s, .%s", i.Rd, signedOffset(i.Imm))
	case OpJALR:
		return fmt.Sprintf("jalr %s, 0x%x(%s)", i.Rd, i.Imm, i.Rs1)
	case OpBEQ:
		return branchText("beq", i, pc)
	case OpBNE:
		return branchText("bne", i, pc)
	case OpBLT:
		return branchText("blt", i, pc)
	case OpBGE:
		return branchText("bge", i, pc)
	case OpBLTU:
		return branchText("bltu", i, pc)
	case OpBGEU:
		return branchText("bgeu", i, pc)
	case OpLB:
		return loadText("lb", i)
	case OpLH:
		return loadText("lh", i)
	case OpLW:
		return loadText("lw", i)
	case OpLBU:
		return loadText("lbu", i)
	case OpLHU:
		return loadText("lhu", i)
	case OpSB:
		return storeText("sb", i)
	case OpSH:
		return storeText("sh", i)
	case OpSW:
		return storeText("sw", i)
	case OpADDI:
		return immText("addi", i)
	case OpSLTI:
		return immText("slti", i)
	case OpSLTIU:
		return immText("sltiu", i)
	case OpXORI:
		return immText("xori", i)
	case OpORI:
		return immText("ori", i)
	case OpANDI:
		return immText("andi", i)
	case OpSLLI:
		return shiftText("slli", i)
	case OpSRLI:
		return shiftText("srli", i)
	case OpSRAI:
		return shiftText("srai", i)
	case OpADD:
		return rrrText("add", i)
	case OpSUB:
		return rrrText("sub", i)
	case OpSLL:
		return rrrText("sll", i)
	case OpSLT:
		return rrrText("slt", i)
	case OpSLTU:
		return rrrText("sltu", i)
	case OpXOR:
		return rrrText("xor", i)
	case OpSRL:
		return rrrText("srl", i)
	case OpSRA:
		return rrrText("sra", i)
	case OpOR:
		return rrrText("or", i)
	case OpAND:
		return rrrText("and", i)
	case OpFENCE:
		return "fence"
	case OpECALL:
		return "ecall"
	case OpEBREAK:
		return "ebreak"
	case OpMRET:
		return "mret"
	case OpDRET:
		return "dret"
	default:
		return "<unknown instruction>"
	}
}

func signedOffset(imm uint32) string {
	v := int32(imm)
	if v >= 0 {
		return fmt.Sprintf("+0x%x", v)
	}
	return fmt.Sprintf("-0x%x", -v)
}

func branchText(mnemonic string, i Instruction, _ uint32) string {
	return fmt.Sprintf("%s %s, %s, .%s", mnemonic, i.Rs1, i.Rs2, signedOffset(i.Imm))
}

func loadText(mnemonic string, i Instruction) string {
	return fmt.Sprintf("%s %s, 0x%x(%s)", mnemonic, i.Rd, i.Imm, i.Rs1)
}

func storeText(mnemonic string, i Instruction) string {
	return fmt.Sprintf("%s %s, 0x%x(%s)", mnemonic, i.Rs2, i.Imm, i.Rs1)
}

func immText(mnemonic string, i Instruction) string {
	return fmt.Sprintf("%s %s, %s, 0x%x", mnemonic, i.Rd, i.Rs1, i.Imm)
}

func shiftText(mnemonic string, i Instruction) string {
	return fmt.Sprintf("%s %s, %s, 0x%x", mnemonic, i.Rd, i.Rs1, i.Shamt)
}

func rrrText(mnemonic string, i Instruction) string {
	return fmt.Sprintf("%s %s, %s, %s", mnemonic, i.Rd, i.Rs1, i.Rs2)
}
