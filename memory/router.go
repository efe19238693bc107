package memory

// Router holds an ordered sequence of regions and resolves an address plus
// access length to exactly one region. Regions are not required to be
// sorted or non-overlapping; the first region whose range contains the
// address wins.
type Router struct {
	Regions []*Region
}

// NewRouter builds a router over the given regions, in priority order.
func NewRouter(regions ...*Region) *Router {
	return &Router{Regions: regions}
}

// find returns the first region containing addr, or ErrUnmappedAddress.
//
// The offset-based comparison (rather than addr < r.Start+r.Length) matters
// for a region that reaches the top of the address space: Start+Length
// itself overflows uint32 to 0 there, which would make every addr compare
// false against it.
func (rt *Router) find(addr uint32) (*Region, error) {
	for _, r := range rt.Regions {
		if addr >= r.Start && addr-r.Start < r.Length {
			return r, nil
		}
	}
	return nil, unmappedAddress(addr)
}

// resolve finds the region for a length-L access at addr and checks that the
// whole access is contained within it.
func (rt *Router) resolve(addr, length uint32) (*Region, error) {
	r, err := rt.find(addr)
	if err != nil {
		return nil, err
	}
	if !r.Contains(addr, length) {
		return nil, crossesBoundary(addr, length)
	}
	return r, nil
}

func (rt *Router) ReadByte(addr uint32) (byte, error) {
	r, err := rt.resolve(addr, 1)
	if err != nil {
		return 0, err
	}
	return r.ReadByte(addr)
}

func (rt *Router) ReadHalf(addr uint32) (uint16, error) {
	r, err := rt.resolve(addr, 2)
	if err != nil {
		return 0, err
	}
	return r.ReadHalf(addr)
}

func (rt *Router) ReadWord(addr uint32) (uint32, error) {
	r, err := rt.resolve(addr, 4)
	if err != nil {
		return 0, err
	}
	return r.ReadWord(addr)
}

func (rt *Router) WriteByte(addr uint32, b byte) error {
	r, err := rt.resolve(addr, 1)
	if err != nil {
		return err
	}
	return r.WriteByte(addr, b)
}

func (rt *Router) WriteHalf(addr uint32, h uint16) error {
	r, err := rt.resolve(addr, 2)
	if err != nil {
		return err
	}
	return r.WriteHalf(addr, h)
}

func (rt *Router) WriteWord(addr uint32, w uint32) error {
	r, err := rt.resolve(addr, 4)
	if err != nil {
		return err
	}
	return r.WriteWord(addr, w)
}

// ProgramByte/Half/Word bypass write protection, used by the image loader.
func (rt *Router) ProgramByte(addr uint32, b byte) error {
	r, err := rt.resolve(addr, 1)
	if err != nil {
		return err
	}
	r.ProgramByte(addr, b)
	return nil
}

func (rt *Router) ProgramHalf(addr uint32, h uint16) error {
	r, err := rt.resolve(addr, 2)
	if err != nil {
		return err
	}
	r.ProgramHalf(addr, h)
	return nil
}

func (rt *Router) ProgramWord(addr uint32, w uint32) error {
	r, err := rt.resolve(addr, 4)
	if err != nil {
		return err
	}
	r.ProgramWord(addr, w)
	return nil
}
