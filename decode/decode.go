package decode

import "github.com/rv32iss/rv32iss/register"

// Opcode field values (low 7 bits of the instruction word).
const (
	opcodeLUI     = 0b0110111
	opcodeAUIPC   = 0b0010111
	opcodeJAL     = 0b1101111
	opcodeJALR    = 0b1100111
	opcodeBRANCH  = 0b1100011
	opcodeLOAD    = 0b0000011
	opcodeSTORE   = 0b0100011
	opcodeOPIMM   = 0b0010011
	opcodeOP      = 0b0110011
	opcodeMISCMEM = 0b0001111
	opcodeSYSTEM  = 0b1110011
)

const (
	sysECALL  = 0x00000073
	sysEBREAK = 0x00100073
	sysMRET   = 0x30200073
	sysDRET   = 0x7B200073
)

func fieldOpcode(inst uint32) uint32 { return inst & 0x7F }
func fieldRd(inst uint32) uint32     { return (inst >> 7) & 0x1F }
func fieldFunct3(inst uint32) uint32 { return (inst >> 12) & 0x7 }
func fieldRs1(inst uint32) uint32    { return (inst >> 15) & 0x1F }
func fieldRs2(inst uint32) uint32    { return (inst >> 20) & 0x1F }
func fieldFunct7(inst uint32) uint32 { return (inst >> 25) & 0x7F }
func fieldShamt(inst uint32) uint32  { return (inst >> 20) & 0x1F }

// immI extracts and sign-extends the I-type immediate: imm[0..10] <-
// inst[20..30], imm[11..31] <- inst[31].
func immI(inst uint32) uint32 {
	return uint32(int32(inst) >> 20)
}

// immS extracts and sign-extends the S-type immediate.
func immS(inst uint32) uint32 {
	imm := ((inst >> 7) & 0x1F) | ((inst>>25)&0x7F)<<5
	if imm&0x800 != 0 {
		imm |= 0xFFFFF000
	}
	return imm
}

// immB extracts and sign-extends the B-type immediate (bit 0 is always 0).
func immB(inst uint32) uint32 {
	imm := ((inst>>8)&0xF)<<1 | ((inst>>25)&0x3F)<<5 | ((inst>>7)&1)<<11 | ((inst>>31)&1)<<12
	if imm&0x1000 != 0 {
		imm |= 0xFFFFE000
	}
	return imm
}

// immU extracts the U-type immediate: low 12 bits are zero, high 20 bits
// come straight from inst[31:12].
func immU(inst uint32) uint32 {
	return inst & 0xFFFFF000
}

// immJ extracts and sign-extends the J-type immediate (bit 0 is always 0).
func immJ(inst uint32) uint32 {
	imm := ((inst>>21)&0x3FF)<<1 | ((inst>>20)&1)<<11 | ((inst>>12)&0xFF)<<12 | ((inst>>31)&1)<<20
	if imm&0x100000 != 0 {
		imm |= 0xFFE00000
	}
	return imm
}

func reg(inst uint32, field uint32) (register.ID, error) {
	id, err := register.FromField(field)
	if err != nil {
		return 0, newError(ErrUnknownRegister, inst, field)
	}
	return id, nil
}

// Decode transforms a 32-bit instruction word into a tagged Instruction, or
// fails with a decode error. Decode is a pure function: it has no side
// effects and consults nothing beyond the word itself.
func Decode(inst uint32) (Instruction, error) {
	opcode := fieldOpcode(inst)

	switch opcode {
	case opcodeLUI:
		rd, err := reg(inst, fieldRd(inst))
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpLUI, Rd: rd, Imm: immU(inst)}, nil

	case opcodeAUIPC:
		rd, err := reg(inst, fieldRd(inst))
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpAUIPC, Rd: rd, Imm: immU(inst)}, nil

	case opcodeJAL:
		rd, err := reg(inst, fieldRd(inst))
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpJAL, Rd: rd, Imm: immJ(inst)}, nil

	case opcodeJALR:
		if fieldFunct3(inst) != 0 {
			return Instruction{}, newError(ErrUnknownFunct3, inst, fieldFunct3(inst))
		}
		rd, err := reg(inst, fieldRd(inst))
		if err != nil {
			return Instruction{}, err
		}
		rs1, err := reg(inst, fieldRs1(inst))
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpJALR, Rd: rd, Rs1: rs1, Imm: immI(inst)}, nil

	case opcodeBRANCH:
		op, err := branchOp(inst)
		if err != nil {
			return Instruction{}, err
		}
		rs1, err := reg(inst, fieldRs1(inst))
		if err != nil {
			return Instruction{}, err
		}
		rs2, err := reg(inst, fieldRs2(inst))
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Rs1: rs1, Rs2: rs2, Imm: immB(inst)}, nil

	case opcodeLOAD:
		op, err := loadOp(inst)
		if err != nil {
			return Instruction{}, err
		}
		rd, err := reg(inst, fieldRd(inst))
		if err != nil {
			return Instruction{}, err
		}
		rs1, err := reg(inst, fieldRs1(inst))
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Rd: rd, Rs1: rs1, Imm: immI(inst)}, nil

	case opcodeSTORE:
		op, err := storeOp(inst)
		if err != nil {
			return Instruction{}, err
		}
		rs1, err := reg(inst, fieldRs1(inst))
		if err != nil {
			return Instruction{}, err
		}
		rs2, err := reg(inst, fieldRs2(inst))
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Rs1: rs1, Rs2: rs2, Imm: immS(inst)}, nil

	case opcodeOPIMM:
		return decodeOpImm(inst)

	case opcodeOP:
		return decodeOp(inst)

	case opcodeMISCMEM:
		if fieldFunct3(inst) != 0 {
			return Instruction{}, newError(ErrUnknownFunct3, inst, fieldFunct3(inst))
		}
		fm := (inst >> 28) & 0xF
		pred := (inst >> 24) & 0xF
		succ := (inst >> 20) & 0xF
		return Instruction{Op: OpFENCE, FM: fm, Pred: pred, Succ: succ}, nil

	case opcodeSYSTEM:
		return decodeSystem(inst)

	default:
		return Instruction{}, newError(ErrUnknownOpcode, inst, opcode)
	}
}

func branchOp(inst uint32) (Op, error) {
	switch fieldFunct3(inst) {
	case 0b000:
		return OpBEQ, nil
	case 0b001:
		return OpBNE, nil
	case 0b100:
		return OpBLT, nil
	case 0b101:
		return OpBGE, nil
	case 0b110:
		return OpBLTU, nil
	case 0b111:
		return OpBGEU, nil
	default:
		return 0, newError(ErrUnknownFunct3, inst, fieldFunct3(inst))
	}
}

func loadOp(inst uint32) (Op, error) {
	switch fieldFunct3(inst) {
	case 0b000:
		return OpLB, nil
	case 0b001:
		return OpLH, nil
	case 0b010:
		return OpLW, nil
	case 0b100:
		return OpLBU, nil
	case 0b101:
		return OpLHU, nil
	default:
		return 0, newError(ErrUnknownFunct3, inst, fieldFunct3(inst))
	}
}

func storeOp(inst uint32) (Op, error) {
	switch fieldFunct3(inst) {
	case 0b000:
		return OpSB, nil
	case 0b001:
		return OpSH, nil
	case 0b010:
		return OpSW, nil
	default:
		return 0, newError(ErrUnknownFunct3, inst, fieldFunct3(inst))
	}
}

func decodeOpImm(inst uint32) (Instruction, error) {
	rd, err := reg(inst, fieldRd(inst))
	if err != nil {
		return Instruction{}, err
	}
	rs1, err := reg(inst, fieldRs1(inst))
	if err != nil {
		return Instruction{}, err
	}

	switch fieldFunct3(inst) {
	case 0b000:
		return Instruction{Op: OpADDI, Rd: rd, Rs1: rs1, Imm: immI(inst)}, nil
	case 0b010:
		return Instruction{Op: OpSLTI, Rd: rd, Rs1: rs1, Imm: immI(inst)}, nil
	case 0b011:
		return Instruction{Op: OpSLTIU, Rd: rd, Rs1: rs1, Imm: immI(inst)}, nil
	case 0b100:
		return Instruction{Op: OpXORI, Rd: rd, Rs1: rs1, Imm: immI(inst)}, nil
	case 0b110:
		return Instruction{Op: OpORI, Rd: rd, Rs1: rs1, Imm: immI(inst)}, nil
	case 0b111:
		return Instruction{Op: OpANDI, Rd: rd, Rs1: rs1, Imm: immI(inst)}, nil
	case 0b001:
		if fieldFunct7(inst) != 0 {
			return Instruction{}, newError(ErrReservedBitsNonZero, inst, fieldFunct7(inst))
		}
		return Instruction{Op: OpSLLI, Rd: rd, Rs1: rs1, Shamt: fieldShamt(inst)}, nil
	case 0b101:
		switch fieldFunct7(inst) {
		case 0b0000000:
			return Instruction{Op: OpSRLI, Rd: rd, Rs1: rs1, Shamt: fieldShamt(inst)}, nil
		case 0b0100000:
			return Instruction{Op: OpSRAI, Rd: rd, Rs1: rs1, Shamt: fieldShamt(inst)}, nil
		default:
			return Instruction{}, newError(ErrUnknownFunct7, inst, fieldFunct7(inst))
		}
	default:
		return Instruction{}, newError(ErrUnknownFunct3, inst, fieldFunct3(inst))
	}
}

func decodeOp(inst uint32) (Instruction, error) {
	rd, err := reg(inst, fieldRd(inst))
	if err != nil {
		return Instruction{}, err
	}
	rs1, err := reg(inst, fieldRs1(inst))
	if err != nil {
		return Instruction{}, err
	}
	rs2, err := reg(inst, fieldRs2(inst))
	if err != nil {
		return Instruction{}, err
	}
	funct7 := fieldFunct7(inst)

	base := Instruction{Rd: rd, Rs1: rs1, Rs2: rs2}

	switch fieldFunct3(inst) {
	case 0b000:
		switch funct7 {
		case 0b0000000:
			base.Op = OpADD
		case 0b0100000:
			base.Op = OpSUB
		default:
			return Instruction{}, newError(ErrUnknownFunct7, inst, funct7)
		}
	case 0b001:
		if funct7 != 0 {
			return Instruction{}, newError(ErrUnknownFunct7, inst, funct7)
		}
		base.Op = OpSLL
	case 0b010:
		if funct7 != 0 {
			return Instruction{}, newError(ErrUnknownFunct7, inst, funct7)
		}
		base.Op = OpSLT
	case 0b011:
		if funct7 != 0 {
			return Instruction{}, newError(ErrUnknownFunct7, inst, funct7)
		}
		base.Op = OpSLTU
	case 0b100:
		if funct7 != 0 {
			return Instruction{}, newError(ErrUnknownFunct7, inst, funct7)
		}
		base.Op = OpXOR
	case 0b101:
		switch funct7 {
		case 0b0000000:
			base.Op = OpSRL
		case 0b0100000:
			base.Op = OpSRA
		default:
			return Instruction{}, newError(ErrUnknownFunct7, inst, funct7)
		}
	case 0b110:
		if funct7 != 0 {
			return Instruction{}, newError(ErrUnknownFunct7, inst, funct7)
		}
		base.Op = OpOR
	case 0b111:
		if funct7 != 0 {
			return Instruction{}, newError(ErrUnknownFunct7, inst, funct7)
		}
		base.Op = OpAND
	default:
		return Instruction{}, newError(ErrUnknownFunct3, inst, fieldFunct3(inst))
	}
	return base, nil
}

func decodeSystem(inst uint32) (Instruction, error) {
	switch inst {
	case sysECALL:
		return Instruction{Op: OpECALL}, nil
	case sysEBREAK:
		return Instruction{Op: OpEBREAK}, nil
	case sysMRET:
		return Instruction{Op: OpMRET}, nil
	case sysDRET:
		return Instruction{Op: OpDRET}, nil
	default:
		return Instruction{}, newError(ErrUnknownSystemEncoding, inst, 0)
	}
}
