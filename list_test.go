package ancha_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/p4l1ly/ancha"
	"github.com/p4l1ly/ancha/internal/origintest"
)

func TestListRoundTrip(t *testing.T) {
	strategy := ancha.NewListStrategy[string, ancha.Blob](ancha.BlobStrategy{})
	origin := []string{"alpha", "", "gamma-delta"}

	check := origintest.Snapshot(t, origin)
	l := anchizeRoot[[]string, ancha.List[ancha.Blob]](t, strategy, origin, nil)
	check()

	var got []string
	for payload := range l.Iter() {
		got = append(got, payload.String())
	}
	require.Equal(t, origin, got)
}

func TestListEmpty(t *testing.T) {
	strategy := ancha.NewListStrategy[string, ancha.Blob](ancha.BlobStrategy{})
	l := anchizeRoot[[]string, ancha.List[ancha.Blob]](t, strategy, nil, nil)
	require.True(t, l.Empty())

	count := 0
	for range l.Iter() {
		count++
	}
	require.Equal(t, 0, count)
}

func TestListHeadOnEmptyPanics(t *testing.T) {
	strategy := ancha.NewListStrategy[string, ancha.Blob](ancha.BlobStrategy{})
	l := anchizeRoot[[]string, ancha.List[ancha.Blob]](t, strategy, nil, nil)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*ancha.ContractError)
		require.True(t, ok, "expected a *ContractError, got %T", r)
	}()
	l.Head()
}
