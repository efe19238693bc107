package register

import (
	"fmt"

	"github.com/rv32iss/rv32iss/memory"
)

// ID is a register identifier: X0..X15 (the 16-entry integer file modeled
// here, rather than the standard 32), plus the two non-standard
// program-counter-like registers XMPC/XDPC reachable only via the
// out-of-scope CSR mechanism. ID is total over 0..17; a 5-bit field >= 18
// names no register, and FromField rejects it.
type ID int

const (
	X0 ID = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	XMPC
	XDPC
)

// FromField decodes a 5-bit instruction register field into an ID. Fields
// >= 18 have no register and are a decode error.
func FromField(field uint32) (ID, error) {
	if field >= 18 {
		return 0, fmt.Errorf("register: field %d does not name a register (valid range is X0..X17)", field)
	}
	return ID(field), nil
}

// String renders the conventional RV32I register name.
func (r ID) String() string {
	switch r {
	case XMPC:
		return "XMPC"
	case XDPC:
		return "XDPC"
	default:
		return fmt.Sprintf("X%d", int(r))
	}
}

// File is the register file: a partial mapping from ID to 32-bit word, with
// X0 hard-wired to zero and lazy initialization of X1..X17 under a
// configured init policy.
type File struct {
	init   memory.InitPolicy
	values map[ID]uint32
}

// NewFile builds an empty register file using init to synthesize values for
// registers that have never been read or written.
func NewFile(init memory.InitPolicy) *File {
	return &File{init: init, values: make(map[ID]uint32)}
}

// Read returns the current value of reg. X0 always reads as 0. Any other
// register absent from the map is synthesized from the configured init
// policy, inserted, and returned; under ErrorPolicy this fails with an
// uninitialized-register error instead.
func (f *File) Read(reg ID) (uint32, error) {
	if reg == X0 {
		return 0, nil
	}
	if v, ok := f.values[reg]; ok {
		return v, nil
	}
	if f.init.IsError() {
		return 0, uninitRegister(reg)
	}
	v := f.init.Word()
	f.values[reg] = v
	return v, nil
}

// Write overwrites reg with w and returns the value actually stored. Writes
// to X0 are silently dropped; the returned value is still 0, so that
// commit lists have a fixed shape per instruction regardless of whether the
// destination happened to be the zero register.
func (f *File) Write(reg ID, w uint32) uint32 {
	if reg == X0 {
		return 0
	}
	f.values[reg] = w
	return w
}
