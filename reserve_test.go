package ancha_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/p4l1ly/ancha"
)

func TestReserveSlotsAccumulates(t *testing.T) {
	r := ancha.NewReserve()
	require.Equal(t, 1, r.Align)
	require.Equal(t, 0, r.Size)

	ancha.ReserveSlots[uint8](r, 3)
	require.Equal(t, 3, r.Size)
	require.Equal(t, 1, r.Align)

	ancha.ReserveSlots[uint32](r, 1)
	// The uint8s already wrote 3 bytes; a uint32 slot rounds up to the
	// next 4-byte boundary before claiming its 4 bytes.
	require.Equal(t, 8, r.Size)
	require.Equal(t, 4, r.Align)

	ancha.ReserveSlots[uint64](r, 2)
	require.Equal(t, 24, r.Size)
	require.Equal(t, 8, r.Align)
}
