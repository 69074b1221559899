// Package origintest holds small test-only helpers for asserting that a
// strategy's Reserve and Anchize passes never mutate the origin value
// they are handed.
package origintest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tiendc/go-deepcopy"
)

// Snapshot deep-copies origin and returns a func that, called later,
// fails t unless origin still deep-equals the snapshot. Use it to wrap a
// Reserve+Anchize call and confirm it left the origin untouched:
//
//	check := origintest.Snapshot(t, origin)
//	strategy.Reserve(origin, ctx, r)
//	check()
func Snapshot[T any](t testing.TB, origin T) func() {
	t.Helper()
	var before T
	require.NoError(t, deepcopy.Copy(&before, &origin))
	return func() {
		t.Helper()
		require.Equal(t, before, origin, "origin was mutated during reserve/anchize")
	}
}
