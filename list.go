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
	"iter"

	"github.com/p4l1ly/ancha/internal/xunsafe"
)

// noAddr marks the absence of a link: a list's tail, an empty list's
// head, or (in [DagNode]) a missing child. No real offset or address is ever
// all bits set, so it can never collide with a live value — the same
// reasoning xunsafe.Addr.SignBit relies on.
const noAddr = xunsafe.Addr[byte](-1)

// ListNode is the ancha representation of one intrusive list link: a next
// field followed immediately by its payload. PA is unused in the struct
// body for the same reason [Vector]'s element type is — the payload lives
// in the VLA tail, not in the Go struct, so ListNode[PA] never carries
// PA's alignment into its own header.
//
// next holds a byte offset relative to the buffer's base while the list
// is still in anchized (relocatable) form, and an absolute address once
// Deanchize has promoted it.
type ListNode[PA any] struct {
	next xunsafe.Addr[byte]
}

// HasNext reports whether this node has a successor.
func (n *ListNode[PA]) HasNext() bool { return !n.next.SignBit() }

// Next returns the following node. It is only valid to call after
// Deanchize has promoted the list's offsets to pointers.
func (n *ListNode[PA]) Next() *ListNode[PA] {
	if !n.HasNext() {
		violate("ListNode.Next", "called on the tail node")
	}
	return xunsafe.Retype[ListNode[PA]](n.next).AssertValid()
}

// Payload returns a pointer to this node's payload record.
func (n *ListNode[PA]) Payload() *PA { return xunsafe.Beyond[PA](n).Get(0) }

// List is the ancha representation of an intrusive singly linked list:
// just a head link, pointing at the first [ListNode], or noAddr if the
// list is empty.
type List[PA any] struct {
	head xunsafe.Addr[byte]
}

// Empty reports whether the list has no nodes.
func (l *List[PA]) Empty() bool { return l.head.SignBit() }

// Head returns the first node. Valid only after Deanchize.
func (l *List[PA]) Head() *ListNode[PA] {
	if l.Empty() {
		violate("List.Head", "called on an empty list")
	}
	return xunsafe.Retype[ListNode[PA]](l.head).AssertValid()
}

// Iter walks the payloads in list order.
func (l *List[PA]) Iter() iter.Seq[*PA] {
	return func(yield func(*PA) bool) {
		if l.Empty() {
			return
		}
		n := l.Head()
		for {
			if n.HasNext() {
				// The chain is only ever walked forward, so the next
				// node is always about to be touched.
				xunsafe.Ping(n.Next())
			}
			if !yield(n.Payload()) {
				return
			}
			if !n.HasNext() {
				return
			}
			n = n.Next()
		}
	}
}

// ListStrategy is the DynStrategy for a List[PA], parameterized by the
// payload's own DynStrategy. Because each node carries an explicit link to
// its successor, the payload strategy need not satisfy [Extent] the way a
// [Sequence] element must: the list never has to ask a payload how big it
// is to find what follows.
type ListStrategy[PO, PA any] struct {
	Payload DynStrategy[PO, PA]
}

// NewListStrategy builds a ListStrategy from a payload strategy.
func NewListStrategy[PO, PA any](payload DynStrategy[PO, PA]) ListStrategy[PO, PA] {
	return ListStrategy[PO, PA]{Payload: payload}
}

// Reserve implements DynStrategy.
func (s ListStrategy[PO, PA]) Reserve(origin []PO, ctx Context, r *Reserve) {
	ReserveSlots[List[PA]](r, 1)
	for _, o := range origin {
		ReserveSlots[ListNode[PA]](r, 1)
		s.Payload.Reserve(o, ctx, r)
	}
}

// Anchize implements DynStrategy.
func (s ListStrategy[PO, PA]) Anchize(origin []PO, ctx Context, cur Cursor[byte]) (Cursor[byte], error) {
	hcur := Transmute[List[PA]](cur).Align()
	ncur := Transmute[byte](hcur.Behind(1))
	hcur.Get().head = noAddr

	var prev Cursor[ListNode[PA]]
	havePrev := false
	for _, o := range origin {
		nodeCur := Transmute[ListNode[PA]](ncur).Align()
		nodeCur.Get().next = noAddr

		if havePrev {
			prev.Get().next = xunsafe.Addr[byte](nodeCur.Offset())
		} else {
			hcur.Get().head = xunsafe.Addr[byte](nodeCur.Offset())
		}

		pcur := Transmute[byte](nodeCur.Behind(1))
		var err error
		pcur, err = s.Payload.Anchize(o, ctx, pcur)
		if err != nil {
			return Cursor[byte]{}, err
		}
		ncur = Transmute[byte](pcur)
		prev = nodeCur
		havePrev = true
	}
	return ncur, nil
}

// Deanchize implements DynStrategy.
func (s ListStrategy[PO, PA]) Deanchize(cur Cursor[byte]) Cursor[byte] {
	hcur := Transmute[List[PA]](cur).Align()
	ncur := Transmute[byte](hcur.Behind(1))

	headOff := hcur.Get().head
	if headOff.SignBit() {
		return ncur
	}

	base := cur.Base()
	nodeAddr := base.ByteAdd(int(headOff))
	hcur.Get().head = nodeAddr

	nodeCur := cur.AtByte(nodeAddr)
	var last Cursor[byte]
	for {
		hc := Transmute[ListNode[PA]](nodeCur)
		nextOff := hc.Get().next
		pcur := Transmute[byte](hc.Behind(1))
		last = s.Payload.Deanchize(pcur)

		if nextOff.SignBit() {
			break
		}
		nodeAddr = base.ByteAdd(int(nextOff))
		hc.Get().next = nodeAddr
		nodeCur = cur.AtByte(nodeAddr)
	}
	return last
}
