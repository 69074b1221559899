package ancha_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/p4l1ly/ancha"
	"github.com/p4l1ly/ancha/internal/origintest"
)

func TestPairRoundTrip(t *testing.T) {
	strategy := ancha.NewPairStrategy[uint32, uint32, string, ancha.Blob](
		ancha.DirectCopy[uint32]{}, ancha.BlobStrategy{})
	origin := ancha.PairOrigin[uint32, string]{A: 42, B: "hello, pair"}

	check := origintest.Snapshot(t, origin)
	p := anchizeRoot[ancha.PairOrigin[uint32, string], ancha.Pair[uint32, ancha.Blob]](t, strategy, origin, nil)
	check()

	require.Equal(t, origin.A, p.A)
	require.Equal(t, origin.B, p.B().String())
}

func TestPairOfPairs(t *testing.T) {
	inner := ancha.NewPairStrategy[uint16, uint16, string, ancha.Blob](
		ancha.DirectCopy[uint16]{}, ancha.BlobStrategy{})
	outer := ancha.NewPairStrategy[uint8, uint8, ancha.PairOrigin[uint16, string], ancha.Pair[uint16, ancha.Blob]](
		ancha.DirectCopy[uint8]{}, inner)

	origin := ancha.PairOrigin[uint8, ancha.PairOrigin[uint16, string]]{
		A: 7,
		B: ancha.PairOrigin[uint16, string]{A: 99, B: "nested"},
	}

	p := anchizeRoot[
		ancha.PairOrigin[uint8, ancha.PairOrigin[uint16, string]],
		ancha.Pair[uint8, ancha.Pair[uint16, ancha.Blob]],
	](t, outer, origin, nil)

	require.Equal(t, uint8(7), p.A)
	require.Equal(t, uint16(99), p.B().A)
	require.Equal(t, "nested", p.B().B().String())
}
