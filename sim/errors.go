package sim

import (
	"fmt"

	"github.com/rv32iss/rv32iss/decode"
)

// NotImplementedError is returned when Step decodes ECALL, EBREAK, MRET, or
// DRET: their execution semantics (trap handling, the CSR file, and
// debug-mode entry/exit) are out of scope for this engine, so execution
// surfaces this fault rather than silently treating them as no-ops.
type NotImplementedError struct {
	Op decode.Op
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("sim: execution of %v is not implemented (trap/debug architecture is out of scope)", e.Op)
}
