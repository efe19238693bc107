package memory

// BlockSize is the size, in bytes, of a lazily allocated storage block.
// Regions spanning a large address range (up to the full 4 GiB space)
// allocate storage only for the blocks that are actually touched.
const BlockSize = 256

// RegionType distinguishes writable RAM from read-only-to-executed-code ROM.
// ROM rejects WriteByte/WriteHalf/WriteWord but accepts the Program*
// variants used at image-load time.
type RegionType int

const (
	RAM RegionType = iota
	ROM
)

// cell is one byte slot: either written (ok==true, value holds the byte) or
// unwritten (ok==false). A distinct bool, rather than overloading a zero
// value, is required because 0x00 is a perfectly legal written byte.
type cell struct {
	value byte
	ok    bool
}

type block [BlockSize]cell

// Region is a single contiguous address range backed by lazily allocated
// fixed-size blocks. It holds per-byte written/unwritten state and an
// initialization policy used to synthesize a value when an unwritten byte
// is read.
type Region struct {
	Start  uint32
	Length uint32
	Type   RegionType
	Init   InitPolicy

	blocks map[uint32]*block
}

// NewRegion constructs an empty region; no blocks are allocated until first
// touch.
func NewRegion(start, length uint32, typ RegionType, init InitPolicy) *Region {
	return &Region{
		Start:  start,
		Length: length,
		Type:   typ,
		Init:   init,
		blocks: make(map[uint32]*block),
	}
}

// Contains reports whether the region fully contains [addr, addr+length).
func (r *Region) Contains(addr, length uint32) bool {
	if addr < r.Start {
		return false
	}
	end := r.Start + r.Length
	return addr-r.Start+length <= end-r.Start
}

func (r *Region) blockFor(addr uint32) (*block, uint32) {
	off := addr - r.Start
	idx := off / BlockSize
	slot := off % BlockSize
	b, ok := r.blocks[idx]
	if !ok {
		b = new(block)
		r.blocks[idx] = b
	}
	return b, slot
}

// ProgramByte marks the byte at addr as written with value b, bypassing the
// write-protected flag. This is the image-loading path: it is the only way
// to put a definite value into a ROM region.
func (r *Region) ProgramByte(addr uint32, b byte) {
	blk, slot := r.blockFor(addr)
	blk[slot] = cell{value: b, ok: true}
}

// WriteByte has the same effect as ProgramByte when the region is writable;
// otherwise it fails with ErrWriteToReadOnly.
func (r *Region) WriteByte(addr uint32, b byte) error {
	if r.Type == ROM {
		return writeToReadOnly(addr)
	}
	r.ProgramByte(addr, b)
	return nil
}

// ReadByte returns the byte at addr: its written value if one exists,
// otherwise a value synthesized from the region's init policy. Uninitialized
// reads never commit the synthesized value back to storage, so repeated
// reads under Random keep drawing fresh values.
func (r *Region) ReadByte(addr uint32) (byte, error) {
	off := addr - r.Start
	idx := off / BlockSize
	slot := off % BlockSize
	if blk, ok := r.blocks[idx]; ok {
		if c := blk[slot]; c.ok {
			return c.value, nil
		}
	}
	if r.Init.IsError() {
		return 0, uninitRead(addr)
	}
	return r.Init.byteAt(addr), nil
}

// ProgramHalf/ProgramWord and WriteHalf/WriteWord decompose into 2 or 4
// byte-level calls in little-endian order.

func (r *Region) ProgramHalf(addr uint32, h uint16) {
	r.ProgramByte(addr, byte(h))
	r.ProgramByte(addr+1, byte(h>>8))
}

func (r *Region) ProgramWord(addr uint32, w uint32) {
	r.ProgramByte(addr, byte(w))
	r.ProgramByte(addr+1, byte(w>>8))
	r.ProgramByte(addr+2, byte(w>>16))
	r.ProgramByte(addr+3, byte(w>>24))
}

func (r *Region) WriteHalf(addr uint32, h uint16) error {
	if r.Type == ROM {
		return writeToReadOnly(addr)
	}
	r.ProgramHalf(addr, h)
	return nil
}

func (r *Region) WriteWord(addr uint32, w uint32) error {
	if r.Type == ROM {
		return writeToReadOnly(addr)
	}
	r.ProgramWord(addr, w)
	return nil
}

func (r *Region) ReadHalf(addr uint32) (uint16, error) {
	lo, err := r.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	hi, err := r.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (r *Region) ReadWord(addr uint32) (uint32, error) {
	b0, err := r.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	b1, err := r.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	b2, err := r.ReadByte(addr + 2)
	if err != nil {
		return 0, err
	}
	b3, err := r.ReadByte(addr + 3)
	if err != nil {
		return 0, err
	}
	return uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24, nil
}
