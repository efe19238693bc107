package trace

import (
	"fmt"
	"strings"

	"github.com/rv32iss/rv32iss/decode"
)

// Record is the per-step output value of the execution engine: the program
// counter at fetch, the decoded instruction, the reserved trap/debug flags,
// whether the step overwrote PC, and the ordered lists of reads and
// committed writes.
type Record struct {
	PC           uint32
	Instruction  decode.Instruction
	TrapHandling bool // reserved, always false: trap handling is out of scope
	Debug        bool // reserved, always false: debug mode is out of scope

	Branched bool
	NewPC    uint32 // meaningful only when Branched

	Inputs    []Value
	Committed []Value
}

// String renders the reference golden-log textual form:
//
//	0xPPPPPPPP: [TD] <right-aligned 25-char instruction text> |[ Branching: 0xDDDDDDDD][ Input: [v1, v2, …]][ Commited: [v1, v2, …]]
func (r Record) String() string {
	t := ' '
	if r.TrapHandling {
		t = 'T'
	}
	d := ' '
	if r.Debug {
		d = 'D'
	}

	text := r.Instruction.Text(r.PC)
	padded := fmt.Sprintf("%25s", text)

	var b strings.Builder
	fmt.Fprintf(&b, "0x%08X: [%c%c] %s |", r.PC, t, d, padded)

	if r.Branched {
		fmt.Fprintf(&b, " Branching: 0x%08X", r.NewPC)
	}
	if len(r.Inputs) > 0 {
		b.WriteString(" Input: [")
		writeValues(&b, r.Inputs)
		b.WriteString("]")
	}
	if len(r.Committed) > 0 {
		b.WriteString(" Commited: [")
		writeValues(&b, r.Committed)
		b.WriteString("]")
	}

	return b.String()
}

func writeValues(b *strings.Builder, values []Value) {
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
}
