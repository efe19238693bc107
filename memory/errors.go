package memory

import "fmt"

// FaultError is returned by every fallible memory/router operation. It
// carries a Kind so callers can branch with errors.Is against the Err*
// sentinels below, and an Addr/Len for diagnostics.
type FaultError struct {
	Kind Kind
	Addr uint32
	Len  uint32
}

// Kind enumerates the ways a memory/router operation can fail.
type Kind int

const (
	KindUnmappedAddress Kind = iota
	KindCrossesBoundary
	KindWriteToReadOnly
	KindUninitRead
)

func (e *FaultError) Error() string {
	switch e.Kind {
	case KindUnmappedAddress:
		return fmt.Sprintf("memory: unmapped address 0x%08X", e.Addr)
	case KindCrossesBoundary:
		return fmt.Sprintf("memory: access at 0x%08X length %d crosses a region boundary", e.Addr, e.Len)
	case KindWriteToReadOnly:
		return fmt.Sprintf("memory: write to read-only region at 0x%08X", e.Addr)
	case KindUninitRead:
		return fmt.Sprintf("memory: read of uninitialized byte at 0x%08X", e.Addr)
	default:
		return fmt.Sprintf("memory: fault at 0x%08X", e.Addr)
	}
}

// Is supports errors.Is(err, ErrUnmappedAddress) and friends by comparing
// Kind, so callers need not know about FaultError's shape.
func (e *FaultError) Is(target error) bool {
	other, ok := target.(*FaultError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel FaultErrors for errors.Is comparisons (Addr/Len are ignored by Is).
var (
	ErrUnmappedAddress = &FaultError{Kind: KindUnmappedAddress}
	ErrCrossesBoundary = &FaultError{Kind: KindCrossesBoundary}
	ErrWriteToReadOnly = &FaultError{Kind: KindWriteToReadOnly}
	ErrUninitRead      = &FaultError{Kind: KindUninitRead}
)

func unmappedAddress(addr uint32) error {
	return &FaultError{Kind: KindUnmappedAddress, Addr: addr}
}

func crossesBoundary(addr, length uint32) error {
	return &FaultError{Kind: KindCrossesBoundary, Addr: addr, Len: length}
}

func writeToReadOnly(addr uint32) error {
	return &FaultError{Kind: KindWriteToReadOnly, Addr: addr}
}

func uninitRead(addr uint32) error {
	return &FaultError{Kind: KindUninitRead, Addr: addr}
}
