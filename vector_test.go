package ancha_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/p4l1ly/ancha"
	"github.com/p4l1ly/ancha/internal/origintest"
)

func anchizeRoot[O, A any](t testing.TB, strategy ancha.DynStrategy[O, A], origin O, ctx ancha.Context) *A {
	t.Helper()
	r := ancha.NewReserve()
	strategy.Reserve(origin, ctx, r)
	require.Greater(t, r.Size, 0)

	buf := make([]byte, r.Size+r.Align)
	cur := ancha.NewCursor[byte](buf)
	end, err := strategy.Anchize(origin, ctx, cur)
	require.NoError(t, err)
	require.LessOrEqual(t, end.Offset(), len(buf))
	require.Equal(t, r.Size, end.Offset())

	root := ancha.Transmute[A](cur)
	strategy.Deanchize(cur)
	return root.Get()
}

func TestVectorRoundTrip(t *testing.T) {
	strategy := ancha.NewVectorStrategy[int32, int32](ancha.DirectCopy[int32]{})
	origin := []int32{1, 2, 3, 4, 5}

	check := origintest.Snapshot(t, origin)
	v := anchizeRoot[[]int32, ancha.Vector[int32]](t, strategy, origin, nil)
	check()

	require.Equal(t, len(origin), v.Len())
	require.Equal(t, origin, v.AsSlice())

	for i, e := range v.Iter() {
		require.Equal(t, origin[i], *e)
	}
}

func TestVectorEmpty(t *testing.T) {
	strategy := ancha.NewVectorStrategy[uint64, uint64](ancha.DirectCopy[uint64]{})
	v := anchizeRoot[[]uint64, ancha.Vector[uint64]](t, strategy, nil, nil)
	require.Equal(t, 0, v.Len())
}

func TestVectorGetOutOfRange(t *testing.T) {
	strategy := ancha.NewVectorStrategy[byte, byte](ancha.DirectCopy[byte]{})
	v := anchizeRoot[[]byte, ancha.Vector[byte]](t, strategy, []byte{9}, nil)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*ancha.ContractError)
		require.True(t, ok, "expected a *ContractError, got %T", r)
	}()
	v.Get(5)
}

func TestVectorAlignmentBoundaries(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 8, 9, 15, 16} {
		origin := make([]uint16, n)
		for i := range origin {
			origin[i] = uint16(i*7 + 1)
		}

		strategy := ancha.NewVectorStrategy[uint16, uint16](ancha.DirectCopy[uint16]{})
		v := anchizeRoot[[]uint16, ancha.Vector[uint16]](t, strategy, origin, nil)
		require.Equal(t, origin, v.AsSlice())
	}
}
