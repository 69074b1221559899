package ancha_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/p4l1ly/ancha"
	"github.com/p4l1ly/ancha/internal/origintest"
)

func TestMapRoundTrip(t *testing.T) {
	strategy := ancha.NewMapStrategy[uint32, uint32, string, ancha.Blob](
		ancha.DirectCopy[uint32]{}, ancha.BlobStrategy{})
	origin := []ancha.MapEntryOrigin[uint32, string]{
		{Key: 1, Value: "one"},
		{Key: 2, Value: "two-two"},
		{Key: 3, Value: ""},
	}

	check := origintest.Snapshot(t, origin)
	m := anchizeRoot[
		[]ancha.MapEntryOrigin[uint32, string],
		ancha.Map[uint32, ancha.Blob],
	](t, strategy, origin, nil)
	check()

	require.Equal(t, len(origin), m.Len())
	for _, e := range origin {
		v, ok := m.Get(e.Key)
		require.True(t, ok)
		require.Equal(t, e.Value, v.String())
	}

	_, ok := m.Get(999)
	require.False(t, ok)
}

func TestMapIter(t *testing.T) {
	strategy := ancha.NewMapStrategy[uint8, uint8, string, ancha.Blob](
		ancha.DirectCopy[uint8]{}, ancha.BlobStrategy{})
	origin := []ancha.MapEntryOrigin[uint8, string]{
		{Key: 10, Value: "ten"},
		{Key: 20, Value: "twenty"},
	}

	m := anchizeRoot[
		[]ancha.MapEntryOrigin[uint8, string],
		ancha.Map[uint8, ancha.Blob],
	](t, strategy, origin, nil)

	seen := map[uint8]string{}
	for k, v := range m.Iter() {
		seen[*k] = v.String()
	}
	require.Equal(t, map[uint8]string{10: "ten", 20: "twenty"}, seen)
}

func TestMapEmpty(t *testing.T) {
	strategy := ancha.NewMapStrategy[uint8, uint8, string, ancha.Blob](
		ancha.DirectCopy[uint8]{}, ancha.BlobStrategy{})
	m := anchizeRoot[
		[]ancha.MapEntryOrigin[uint8, string],
		ancha.Map[uint8, ancha.Blob],
	](t, strategy, nil, nil)
	require.Equal(t, 0, m.Len())
	_, ok := m.Get(1)
	require.False(t, ok)
}
