// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ancha

import (
	"github.com/p4l1ly/ancha/internal/debug"
	"github.com/p4l1ly/ancha/internal/xunsafe"
)

// DagOrigin is a node of a caller-built binary decision diagram. A leaf has
// Low == High == nil and only Terminal is meaningful; an internal node has
// both children set and only Variable is meaningful. Shared subtrees are
// expressed the ordinary Go way, by two parents holding the same
// *DagOrigin — identity, not value equality, is what Reserve and Anchize
// use to recognize sharing.
type DagOrigin[VO, LO any] struct {
	Variable  VO
	Terminal  LO
	Low, High *DagOrigin[VO, LO]
}

// DagNode is the ancha representation of one DAG node. Every node has the
// same byte size regardless of whether it ends up holding a Variable or a
// Terminal, so that Deanchize's extent-discovery walk (see below) can keep
// treating the graph as a uniform array of fixed-size records; the field
// that isn't in play for a given node is simply unused space.
//
// Low and High hold a byte offset relative to the buffer's base before
// Deanchize, and an absolute address after — the same convention
// [ListNode.next] and [MapEntry.Value] use. A leaf is a node with both
// links equal to noAddr.
type DagNode[VA, LA any] struct {
	Low, High xunsafe.Addr[byte]
	variable  VA
	terminal  LA
}

// IsLeaf reports whether n has no children.
func (n *DagNode[VA, LA]) IsLeaf() bool { return n.Low.SignBit() && n.High.SignBit() }

// HasLow reports whether n has a low child.
func (n *DagNode[VA, LA]) HasLow() bool { return !n.Low.SignBit() }

// HasHigh reports whether n has a high child.
func (n *DagNode[VA, LA]) HasHigh() bool { return !n.High.SignBit() }

// LowNode returns the low child. Valid only after Deanchize.
func (n *DagNode[VA, LA]) LowNode() *DagNode[VA, LA] {
	if !n.HasLow() {
		violate("DagNode.LowNode", "node has no low child")
	}
	return xunsafe.Retype[DagNode[VA, LA]](n.Low).AssertValid()
}

// HighNode returns the high child. Valid only after Deanchize.
func (n *DagNode[VA, LA]) HighNode() *DagNode[VA, LA] {
	if !n.HasHigh() {
		violate("DagNode.HighNode", "node has no high child")
	}
	return xunsafe.Retype[DagNode[VA, LA]](n.High).AssertValid()
}

// Variable returns the internal node's label. It panics with a
// *ContractError if n is a leaf.
func (n *DagNode[VA, LA]) Variable() *VA {
	if n.IsLeaf() {
		violate("DagNode.Variable", "called on a leaf node")
	}
	return &n.variable
}

// Terminal returns the leaf's payload. It panics with a *ContractError if
// n is an internal node.
func (n *DagNode[VA, LA]) Terminal() *LA {
	if !n.IsLeaf() {
		violate("DagNode.Terminal", "called on an internal node")
	}
	return &n.terminal
}

// Evaluate walks from n to a leaf, calling decide at every internal node
// to choose the high child (true) or the low child (false), and returns
// the leaf it lands on. This is the canonical BDD evaluation: decide
// inspects the internal node's variable and consults whatever assignment
// the caller is evaluating against.
func (n *DagNode[VA, LA]) Evaluate(decide func(variable *VA) bool) *DagNode[VA, LA] {
	cur := n
	for !cur.IsLeaf() {
		// decide's outcome isn't known ahead of the call, so prefetch
		// both children rather than guess which one will be taken.
		if cur.HasLow() {
			xunsafe.Ping(cur.LowNode())
		}
		if cur.HasHigh() {
			xunsafe.Ping(cur.HighNode())
		}
		if decide(cur.Variable()) {
			cur = cur.HighNode()
		} else {
			cur = cur.LowNode()
		}
	}
	return cur
}

// DagStrategy is the DynStrategy for a *DagOrigin[VO, LO] rooted DAG.
// Variable and Leaf are both StaticStrategy because a DagNode's contents
// are embedded directly in the fixed-size node record, the same way Vector
// embeds its elements — there is no variable-size tail here, just a
// shared, possibly-cyclic-looking graph of fixed-size records. The two
// strategies are kept separate, rather than collapsed into one payload
// type shared by leaves and internal nodes, because a BDD's variable
// labels and its terminal payloads are ordinarily unrelated types (e.g. a
// variable name versus a boolean).
type DagStrategy[VO, VA, LO, LA any] struct {
	Variable StaticStrategy[VO, VA]
	Leaf     StaticStrategy[LO, LA]
}

// NewDagStrategy builds a DagStrategy from its variable and leaf
// strategies.
func NewDagStrategy[VO, VA, LO, LA any](variable StaticStrategy[VO, VA], leaf StaticStrategy[LO, LA]) DagStrategy[VO, VA, LO, LA] {
	return DagStrategy[VO, VA, LO, LA]{Variable: variable, Leaf: leaf}
}

type dagColor uint8

const (
	dagWhite dagColor = iota
	dagGray
	dagBlack
)

// Reserve implements DynStrategy. It walks the graph with a three-color
// DFS: white nodes are unvisited, gray nodes are on the current path, and
// black nodes are fully accounted for. Revisiting a gray node means the
// graph closes a cycle on itself, which is not a DAG — Reserve rejects it
// rather than let Anchize loop on it later. Revisiting a black node is
// ordinary content sharing and costs nothing extra.
func (s DagStrategy[VO, VA, LO, LA]) Reserve(origin *DagOrigin[VO, LO], ctx Context, r *Reserve) {
	if origin == nil {
		violate("Dag.Reserve", "origin must not be nil")
	}
	seen := make(map[*DagOrigin[VO, LO]]dagColor)
	s.reserve(origin, ctx, r, seen)
}

func (s DagStrategy[VO, VA, LO, LA]) reserve(n *DagOrigin[VO, LO], ctx Context, r *Reserve, seen map[*DagOrigin[VO, LO]]dagColor) {
	if n == nil {
		return
	}
	switch seen[n] {
	case dagBlack:
		return
	case dagGray:
		violate("Dag.Reserve", "cycle detected: a node is reachable from itself")
	}

	seen[n] = dagGray
	ReserveSlots[DagNode[VA, LA]](r, 1)
	s.reserve(n.Low, ctx, r, seen)
	s.reserve(n.High, ctx, r, seen)
	seen[n] = dagBlack
}

// Anchize implements DynStrategy. It assumes a prior Reserve already
// proved the graph acyclic, and assigns each distinct node an address the
// first time it is discovered, breadth-first, via a FIFO work queue —
// children are enqueued low before high. Content-shared nodes are only
// ever anchized once: the address map is keyed on origin node identity.
func (s DagStrategy[VO, VA, LO, LA]) Anchize(origin *DagOrigin[VO, LO], ctx Context, cur Cursor[byte]) (Cursor[byte], error) {
	if origin == nil {
		violate("Dag.Anchize", "origin must not be nil")
	}

	addrs := make(map[*DagOrigin[VO, LO]]xunsafe.Addr[byte])
	var queue []*DagOrigin[VO, LO]
	next := Transmute[DagNode[VA, LA]](cur).Align()

	alloc := func(n *DagOrigin[VO, LO]) xunsafe.Addr[byte] {
		if n == nil {
			return noAddr
		}
		if addr, ok := addrs[n]; ok {
			return addr
		}
		addr := xunsafe.Addr[byte](next.Offset())
		addrs[n] = addr
		queue = append(queue, n)
		next = next.Behind(1)
		return addr
	}
	alloc(origin)

	base := cur.Base()
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		nodeCur := Transmute[DagNode[VA, LA]](cur.AtByte(base.ByteAdd(int(addrs[n]))))
		node := nodeCur.Get()
		isLeaf := n.Low == nil && n.High == nil
		if isLeaf {
			if err := s.Leaf.AnchizeStatic(n.Terminal, ctx, &node.terminal); err != nil {
				return Cursor[byte]{}, err
			}
		} else {
			if err := s.Variable.AnchizeStatic(n.Variable, ctx, &node.variable); err != nil {
				return Cursor[byte]{}, err
			}
		}
		node.Low = alloc(n.Low)
		node.High = alloc(n.High)
	}

	debug.Log(nil, "dag.anchize", "nodes=%d", len(addrs))
	return Transmute[byte](next), nil
}

// Deanchize implements DynStrategy. The node count was never written
// anywhere, so Deanchize rediscovers the graph's extent itself: it walks
// from the root following the still-relative Low/High links, visiting
// each distinct address once, promoting every link it follows to an
// absolute address, and tracking the highest offset it touches. Because
// Anchize bump-allocated nodes contiguously starting at the root, that
// highest offset plus one node's size is exactly the end of the region —
// which only holds because every node, leaf or internal, has the same
// size (see [DagNode]).
func (s DagStrategy[VO, VA, LO, LA]) Deanchize(cur Cursor[byte]) Cursor[byte] {
	hcur := Transmute[DagNode[VA, LA]](cur).Align()
	base := cur.Base()

	rootOff := hcur.Offset()
	visited := map[int]bool{rootOff: true}
	queue := []int{rootOff}
	maxOff := rootOff

	for len(queue) > 0 {
		off := queue[0]
		queue = queue[1:]
		if off > maxOff {
			maxOff = off
		}

		node := Transmute[DagNode[VA, LA]](cur.AtByte(base.ByteAdd(off))).Get()
		if node.Low.SignBit() && node.High.SignBit() {
			s.Leaf.DeanchizeStatic(&node.terminal)
		} else {
			s.Variable.DeanchizeStatic(&node.variable)
		}

		for _, child := range [2]*xunsafe.Addr[byte]{&node.Low, &node.High} {
			if child.SignBit() {
				continue
			}
			childOff := int(*child)
			*child = base.ByteAdd(childOff)
			if !visited[childOff] {
				visited[childOff] = true
				queue = append(queue, childOff)
			}
		}
	}

	last := Transmute[DagNode[VA, LA]](cur.AtByte(base.ByteAdd(maxOff)))
	debug.Log(nil, "dag.deanchize", "nodes=%d", len(visited))
	return Transmute[byte](last.Behind(1))
}
