package ancha_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/p4l1ly/ancha"
	"github.com/p4l1ly/ancha/internal/origintest"
)

func TestSequenceRoundTrip(t *testing.T) {
	strategy := ancha.NewSequenceStrategy[string, ancha.Blob](ancha.BlobStrategy{})
	origin := []string{"", "foo", "barbaz", "a"}

	check := origintest.Snapshot(t, origin)
	s := anchizeRoot[[]string, ancha.Sequence[ancha.Blob]](t, strategy, origin, nil)
	check()

	require.Equal(t, len(origin), s.Len())

	i := 0
	for e := range s.Iter() {
		require.Equal(t, origin[i], e.String())
		i++
	}
	require.Equal(t, len(origin), i)

	for i, want := range origin {
		require.Equal(t, want, s.Get(i).String())
	}
}

func TestSequenceEmpty(t *testing.T) {
	strategy := ancha.NewSequenceStrategy[string, ancha.Blob](ancha.BlobStrategy{})
	s := anchizeRoot[[]string, ancha.Sequence[ancha.Blob]](t, strategy, nil, nil)
	require.Equal(t, 0, s.Len())
}

func TestSequenceGetOutOfRange(t *testing.T) {
	strategy := ancha.NewSequenceStrategy[string, ancha.Blob](ancha.BlobStrategy{})
	s := anchizeRoot[[]string, ancha.Sequence[ancha.Blob]](t, strategy, []string{"x"}, nil)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*ancha.ContractError)
		require.True(t, ok, "expected a *ContractError, got %T", r)
	}()
	s.Get(3)
}
