package register

import "fmt"

// UninitRegisterError is returned by Read when a register has never been
// written and the file's init policy forbids synthesizing a value. It
// carries the offending register so callers can branch with errors.Is
// against ErrUninitRegister, mirroring the shape of memory.FaultError.
type UninitRegisterError struct {
	Reg ID
}

func (e *UninitRegisterError) Error() string {
	return fmt.Sprintf("register: read of uninitialized register %s", e.Reg)
}

// Is supports errors.Is(err, ErrUninitRegister) regardless of which
// register was involved.
func (e *UninitRegisterError) Is(target error) bool {
	_, ok := target.(*UninitRegisterError)
	return ok
}

// ErrUninitRegister is the sentinel matched by errors.Is(err,
// register.ErrUninitRegister).
var ErrUninitRegister = &UninitRegisterError{}

func uninitRegister(reg ID) error {
	return &UninitRegisterError{Reg: reg}
}
