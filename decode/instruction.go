package decode

import "github.com/rv32iss/rv32iss/register"

// Op tags the variant of a decoded Instruction. Go has no sum type, so
// Instruction carries the union of every variant's fields and a switch on
// Op (here, and in the execution engine) picks out the ones that are
// meaningful for a given instruction, rather than a per-opcode virtual
// table.
type Op int

const (
	OpLUI Op = iota
	OpAUIPC
	OpJAL
	OpJALR
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU
	OpSB
	OpSH
	OpSW
	OpADDI
	OpSLTI
	OpSLTIU
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI
	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpFENCE
	OpECALL
	OpEBREAK
	OpMRET
	OpDRET
)

// Instruction is a decoded instruction: the Op tag plus the operand fields
// that matter for that tag. Immediates are stored already sign-extended to
// 32 bits (two's-complement); shift amounts are stored as unsigned 5-bit
// values.
type Instruction struct {
	Op Op

	Rd  register.ID
	Rs1 register.ID
	Rs2 register.ID

	Imm   uint32 // sign-extended immediate (I/S/B/U/J formats)
	Shamt uint32 // 5-bit shift amount (SLLI/SRLI/SRAI)

	// FENCE-only fields.
	FM   uint32
	Pred uint32
	Succ uint32
}

var opNames = map[Op]string{
	OpLUI: "lui", OpAUIPC: "auipc", OpJAL: "jal", OpJALR: "jalr",
	OpBEQ: "beq", OpBNE: "bne", OpBLT: "blt", OpBGE: "bge", OpBLTU: "bltu", OpBGEU: "bgeu",
	OpLB: "lb", OpLH: "lh", OpLW: "lw", OpLBU: "lbu", OpLHU: "lhu",
	OpSB: "sb", OpSH: "sh", OpSW: "sw",
	OpADDI: "addi", OpSLTI: "slti", OpSLTIU: "sltiu", OpXORI: "xori", OpORI: "ori", OpANDI: "andi",
	OpSLLI: "slli", OpSRLI: "srli", OpSRAI: "srai",
	OpADD: "add", OpSUB: "sub", OpSLL: "sll", OpSLT: "slt", OpSLTU: "sltu",
	OpXOR: "xor", OpSRL: "srl", OpSRA: "sra", OpOR: "or", OpAND: "and",
	OpFENCE: "fence", OpECALL: "ecall", OpEBREAK: "ebreak", OpMRET: "mret", OpDRET: "dret",
}

// String renders the instruction mnemonic, used in diagnostics.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}

// IsBranchOrJump reports whether Op is one of the control-flow instructions
// that may set PC to something other than PC+4.
func (op Op) IsBranchOrJump() bool {
	switch op {
	case OpJAL, OpJALR, OpBEQ, OpBNE, OpBLT, OpBGE, OpBLTU, OpBGEU:
		return true
	default:
		return false
	}
}
