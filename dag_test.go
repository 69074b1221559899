package ancha_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/p4l1ly/ancha"
)

// buildBDD constructs a small BDD where the "c" subtree is reachable two
// ways — directly as the root's high child, and as b's high child — so
// tests can assert it is anchized once and shared, not duplicated. Internal
// nodes carry a string variable name; leaves carry a bool terminal, a
// genuinely different type, to exercise the split between DagStrategy's
// Variable and Leaf strategies.
func buildBDD() (root, b, c *ancha.DagOrigin[string, bool]) {
	leafFalse := &ancha.DagOrigin[string, bool]{Terminal: false}
	leafTrue := &ancha.DagOrigin[string, bool]{Terminal: true}

	c = &ancha.DagOrigin[string, bool]{Variable: "c", Low: leafFalse, High: leafTrue}
	b = &ancha.DagOrigin[string, bool]{Variable: "b", Low: leafFalse, High: c}
	root = &ancha.DagOrigin[string, bool]{Variable: "a", Low: b, High: c}
	return root, b, c
}

func newTestDagStrategy() ancha.DagStrategy[string, [8]byte, bool, bool] {
	return ancha.NewDagStrategy[string, [8]byte, bool, bool](fixedLabel{}, ancha.DirectCopy[bool]{})
}

func TestDagRoundTripAndSharing(t *testing.T) {
	root, _, _ := buildBDD()

	strategy := newTestDagStrategy()
	r := ancha.NewReserve()
	strategy.Reserve(root, nil, r)

	buf := make([]byte, r.Size+r.Align)
	cur := ancha.NewCursor[byte](buf)
	_, err := strategy.Anchize(root, nil, cur)
	require.NoError(t, err)

	view := ancha.Transmute[ancha.DagNode[[8]byte, bool]](cur)
	strategy.Deanchize(cur)

	n := view.Get()
	require.Equal(t, "a", labelString(*n.Variable()))
	require.True(t, n.HasLow())
	require.True(t, n.HasHigh())

	low := n.LowNode()
	require.Equal(t, "b", labelString(*low.Variable()))
	require.False(t, *low.LowNode().Terminal())

	cViaRoot := n.HighNode()
	cViaB := low.HighNode()
	require.Equal(t, "c", labelString(*cViaRoot.Variable()))
	require.Same(t, cViaRoot, cViaB, "the shared c subtree must anchize to a single node")
}

func TestDagCycleRejected(t *testing.T) {
	a := &ancha.DagOrigin[string, bool]{Variable: "a"}
	b := &ancha.DagOrigin[string, bool]{Variable: "b", Low: a}
	a.High = b // a -> b -> a, a cycle

	strategy := newTestDagStrategy()
	r := ancha.NewReserve()

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		_, ok := rec.(*ancha.ContractError)
		require.True(t, ok, "expected a *ContractError, got %T", rec)
	}()
	strategy.Reserve(a, nil, r)
}

func TestDagEvaluate(t *testing.T) {
	root, _, _ := buildBDD()

	strategy := newTestDagStrategy()
	r := ancha.NewReserve()
	strategy.Reserve(root, nil, r)

	buf := make([]byte, r.Size+r.Align)
	cur := ancha.NewCursor[byte](buf)
	_, err := strategy.Anchize(root, nil, cur)
	require.NoError(t, err)

	view := ancha.Transmute[ancha.DagNode[[8]byte, bool]](cur)
	strategy.Deanchize(cur)
	n := view.Get()

	assign := map[string]bool{"a": true, "b": false, "c": true}
	leaf := n.Evaluate(func(variable *[8]byte) bool {
		return assign[labelString(*variable)]
	})
	require.True(t, *leaf.Terminal())
}

// fixedLabel anchizes a short string into a fixed 8-byte array, used as a
// stand-in for a real BDD variable label type in these tests.
type fixedLabel struct{}

func (fixedLabel) AnchizeStatic(origin string, _ ancha.Context, slot *[8]byte) error {
	copy(slot[:], origin)
	return nil
}

func (fixedLabel) DeanchizeStatic(*[8]byte) {}

func labelString(b [8]byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}
