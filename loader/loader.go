// Package loader puts a raw binary image into a simulator's memory. It
// knows nothing about ELF or assembly: an image is just bytes, and loading
// it means programming each one into its target address in order, exactly
// what an image-loading step does before execution starts.
package loader

import "fmt"

// Memory is the subset of sim.Simulator's surface the loader needs. Taking
// an interface here, rather than depending on package sim directly, keeps
// the loader usable against anything that exposes the same Program*
// contract — the router, a simulator, or a test double.
type Memory interface {
	ProgramByte(addr uint32, b byte) error
}

// LoadImage programs every byte of image into memory starting at base,
// in order. It stops and returns the first error encountered (typically an
// unmapped address or a cross-region image), leaving whatever prefix
// already succeeded in place.
func LoadImage(mem Memory, base uint32, image []byte) error {
	for i, b := range image {
		addr := base + uint32(i)
		if err := mem.ProgramByte(addr, b); err != nil {
			return fmt.Errorf("loader: failed to program byte %d at 0x%08X: %w", i, addr, err)
		}
	}
	return nil
}
