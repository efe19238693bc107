package sim

import "github.com/rv32iss/rv32iss/decode"

// execSystem executes the instructions that don't fit the ALU, branch, or
// load/store categories: FENCE, which this engine treats as a no-op since
// it models no reordering to constrain, and the four privileged-return /
// trap-entry encodings, whose actual semantics (CSR file, trap vectors,
// debug mode) are out of scope and so surface NotImplementedError instead
// of silently doing nothing.
func (s *Simulator) execSystem(st *step, inst decode.Instruction) error {
	switch inst.Op {
	case decode.OpFENCE:
		return nil
	case decode.OpECALL, decode.OpEBREAK, decode.OpMRET, decode.OpDRET:
		return &NotImplementedError{Op: inst.Op}
	default:
		return &NotImplementedError{Op: inst.Op}
	}
}
