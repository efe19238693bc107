package memory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32iss/rv32iss/memory"
)

func newTestRouter() *memory.Router {
	rom := memory.NewRegion(0x1000000, 0x8000, memory.ROM, memory.ErrorPolicy())
	ram := memory.NewRegion(0x2000000, 0x8000, memory.RAM, memory.ErrorPolicy())
	return memory.NewRouter(rom, ram)
}

func TestRouter_UnmappedAddressFaults(t *testing.T) {
	rt := newTestRouter()
	_, err := rt.ReadByte(0x9999999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, memory.ErrUnmappedAddress))
}

func TestRouter_CrossesBoundaryFaults(t *testing.T) {
	rt := newTestRouter()
	romEnd := uint32(0x1000000 + 0x8000)

	require.NoError(t, rt.ProgramByte(romEnd-1, 0xAB))

	_, err := rt.ReadWord(romEnd - 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, memory.ErrCrossesBoundary))

	_, err = rt.ReadHalf(romEnd - 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, memory.ErrCrossesBoundary))
}

func TestRouter_FirstMatchingRegionWins(t *testing.T) {
	// Overlapping regions are permitted but discouraged; the router must
	// pick the first match rather than erroring.
	first := memory.NewRegion(0x1000, 0x1000, memory.RAM, memory.FixedBytePolicy(1))
	second := memory.NewRegion(0x1000, 0x1000, memory.RAM, memory.FixedBytePolicy(2))
	rt := memory.NewRouter(first, second)

	got, err := rt.ReadByte(0x1500)
	require.NoError(t, err)
	assert.Equal(t, byte(1), got)
}

func TestRouter_ROMAcceptsProgramRejectsWrite(t *testing.T) {
	rt := newTestRouter()
	require.NoError(t, rt.ProgramWord(0x1000000, 0x12345678))

	err := rt.WriteWord(0x1000000, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, memory.ErrWriteToReadOnly))

	got, err := rt.ReadWord(0x1000000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), got)
}

func TestRouter_UnalignedAccessIsPermitted(t *testing.T) {
	rt := newTestRouter()
	require.NoError(t, rt.ProgramWord(0x2000000, 0xDEADBEEF))

	// byte 0x2000001 is not 4-byte aligned; unaligned access is permitted.
	got, err := rt.ReadHalf(0x2000001)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xADBE), got)
}
