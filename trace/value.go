package trace

import (
	"fmt"

	"github.com/rv32iss/rv32iss/register"
)

// Origin identifies where a Value came from: a register, or a memory
// location of a given access width. Exactly one of Reg / IsMemory is
// meaningful at a time.
type Origin struct {
	IsMemory bool
	Reg      register.ID

	Addr  uint32
	Width uint32 // 1, 2, or 4 bytes; only meaningful when IsMemory
}

// RegisterOrigin builds an Origin describing a register read/write.
func RegisterOrigin(reg register.ID) Origin {
	return Origin{Reg: reg}
}

// MemoryOrigin builds an Origin describing a memory read/write of the given
// width in bytes.
func MemoryOrigin(addr, width uint32) Origin {
	return Origin{IsMemory: true, Addr: addr, Width: width}
}

// Value pairs an Origin with the 32-bit word observed there. Narrower
// memory values are zero-extended into Word; the narrower width is
// recorded in Origin so formatting can render the right number of hex
// digits.
type Value struct {
	Origin Origin
	Word   uint32
}

// String renders a Value the way golden-log trace lines do: "Xn =
// 0xWWWWWWWW" for registers, "mem[0xA…] = 0xWWWWWWWW" for memory, with the
// address formatted using 2/4/8 hex digits for a byte/half/word access.
func (v Value) String() string {
	if v.Origin.IsMemory {
		digits := addrDigits(v.Origin.Width)
		return fmt.Sprintf("mem[0x%0*X] = 0x%08X", digits, v.Origin.Addr, v.Word)
	}
	return fmt.Sprintf("%s = 0x%08X", v.Origin.Reg, v.Word)
}

func addrDigits(width uint32) int {
	switch width {
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 8
	}
}
