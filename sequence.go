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
	"github.com/p4l1ly/ancha/internal/xunsafe/layout"
)

// Extent is implemented by ancha record types whose byte size cannot be
// known statically. End reports the byte offset, from the start of the
// record, of the first byte not belonging to it — no trailing alignment
// applied, matching the alignment discipline every DynStrategy obeys.
//
// [Sequence] requires it of its element type so that it can walk a packed
// run of variable-size elements without any per-element header.
type Extent interface {
	End() int
}

// Sequence is the ancha representation of a length-prefixed packed array
// of variable-size elements: { count, element_0, element_1, ... }. Unlike
// [Vector], there is no way to index in O(1): elements differ in size, so
// reaching the i'th one means walking from the start asking each element
// how long it is.
type Sequence[EA Extent] struct {
	Count uint64
}

// Len returns the number of elements in this sequence.
func (s *Sequence[EA]) Len() int { return int(s.Count) }

// Iter walks the packed elements in order, re-aligning to EA's alignment
// before each one. Unlike [Vector], elements are reached by a running byte
// offset rather than a scaled index, since they vary in size — this is
// exactly what [xunsafe.VLA.ByteGet] is for.
func (s *Sequence[EA]) Iter() iter.Seq[*EA] {
	return func(yield func(*EA) bool) {
		tail := xunsafe.Beyond[EA](s)
		off := 0
		for range s.Len() {
			off = layout.RoundUp(off, layout.Align[EA]())
			e := tail.ByteGet(off)
			if !yield(e) {
				return
			}
			off += (*e).End()
		}
	}
}

// Get returns the i'th element, panicking with a *ContractError if i is
// out of range. This is an O(n) walk, since element sizes vary.
func (s *Sequence[EA]) Get(i int) *EA {
	if i < 0 || i >= s.Len() {
		violate("Sequence.Get", "index %d out of range [0, %d)", i, s.Len())
	}
	j := 0
	for e := range s.Iter() {
		if j == i {
			return e
		}
		j++
	}
	panic("ancha: unreachable")
}

// SequenceStrategy is the DynStrategy for a Sequence[EA], parameterized by
// the element's own DynStrategy.
type SequenceStrategy[EO any, EA Extent] struct {
	Elem DynStrategy[EO, EA]
}

// NewSequenceStrategy builds a SequenceStrategy from an element strategy.
func NewSequenceStrategy[EO any, EA Extent](elem DynStrategy[EO, EA]) SequenceStrategy[EO, EA] {
	return SequenceStrategy[EO, EA]{Elem: elem}
}

// Reserve implements DynStrategy.
func (s SequenceStrategy[EO, EA]) Reserve(origin []EO, ctx Context, r *Reserve) {
	ReserveSlots[Sequence[EA]](r, 1)
	for _, o := range origin {
		s.Elem.Reserve(o, ctx, r)
	}
}

// Anchize implements DynStrategy.
func (s SequenceStrategy[EO, EA]) Anchize(origin []EO, ctx Context, cur Cursor[byte]) (Cursor[byte], error) {
	hcur := Transmute[Sequence[EA]](cur).Align()
	hcur.Get().Count = uint64(len(origin))

	ecur := Transmute[byte](hcur.Behind(1))
	for _, o := range origin {
		var err error
		ecur, err = s.Elem.Anchize(o, ctx, ecur)
		if err != nil {
			return Cursor[byte]{}, err
		}
	}
	return ecur, nil
}

// Deanchize implements DynStrategy.
func (s SequenceStrategy[EO, EA]) Deanchize(cur Cursor[byte]) Cursor[byte] {
	hcur := Transmute[Sequence[EA]](cur).Align()
	n := hcur.Get().Len()

	ecur := Transmute[byte](hcur.Behind(1))
	for range n {
		ecur = s.Elem.Deanchize(ecur)
	}
	return ecur
}

// Blob is the ancha representation of a variable-length byte payload: a
// length word followed by the raw bytes. It is the canonical [Extent]-
// satisfying element type for a [Sequence] of strings or byte runs.
type Blob struct {
	Length uint64
}

// Len returns the number of payload bytes.
func (b *Blob) Len() int { return int(b.Length) }

// Bytes exposes the payload as a byte slice aliasing the buffer.
func (b *Blob) Bytes() []byte { return xunsafe.Beyond[byte](b).Slice(b.Len()) }

// String exposes the payload as a string aliasing the buffer.
func (b *Blob) String() string {
	return xunsafe.String(xunsafe.Cast[byte](xunsafe.Beyond[byte](b)), b.Len())
}

// End implements Extent.
func (b Blob) End() int {
	return layout.Size[Blob]() + b.Len()
}

// BlobStrategy is the DynStrategy for a string origin anchized as a Blob.
type BlobStrategy struct{}

// Reserve implements DynStrategy.
func (BlobStrategy) Reserve(origin string, _ Context, r *Reserve) {
	ReserveSlots[Blob](r, 1)
	ReserveSlots[byte](r, len(origin))
}

// Anchize implements DynStrategy.
func (BlobStrategy) Anchize(origin string, _ Context, cur Cursor[byte]) (Cursor[byte], error) {
	hcur := Transmute[Blob](cur).Align()
	hcur.Get().Length = uint64(len(origin))

	bcur := Transmute[byte](hcur.Behind(1))
	copy(xunsafe.Slice(bcur.Get(), len(origin)), origin)
	return bcur.Behind(len(origin)), nil
}

// Deanchize implements DynStrategy. A Blob holds no offset-form pointer
// fields, so there is nothing to repair — it only needs to compute where
// its payload ends.
func (BlobStrategy) Deanchize(cur Cursor[byte]) Cursor[byte] {
	hcur := Transmute[Blob](cur).Align()
	n := hcur.Get().Len()
	bcur := Transmute[byte](hcur.Behind(1))
	return bcur.Behind(n)
}
