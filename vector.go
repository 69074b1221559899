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

	"github.com/p4l1ly/ancha/internal/debug"
	"github.com/p4l1ly/ancha/internal/xunsafe"
	"github.com/p4l1ly/ancha/internal/xunsafe/layout"
)

// Vector is the ancha (in-buffer) representation of a length-prefixed
// packed array of fixed-size elements: { length, element[0..length) }.
//
// EA is unused in the struct body; it exists so that Vector[EA] is a
// distinct type per element type, while every instantiation keeps the
// same one-word size and alignment as the header alone — the packed
// elements live in the VLA tail, not in the Go struct.
type Vector[EA any] struct {
	Length uint64
}

// Len returns the number of elements in this vector.
func (v *Vector[EA]) Len() int { return int(v.Length) }

func (v *Vector[EA]) elems() *xunsafe.VLA[EA] { return xunsafe.Beyond[EA](v) }

// Get returns a pointer to the i'th element, panicking with a
// *ContractError if i is out of range.
func (v *Vector[EA]) Get(i int) *EA {
	if i < 0 || i >= v.Len() {
		violate("Vector.Get", "index %d out of range [0, %d)", i, v.Len())
	}
	return v.elems().Get(i)
}

// AsSlice exposes the packed elements directly as a Go slice, with no
// copy: the slice aliases the buffer.
func (v *Vector[EA]) AsSlice() []EA {
	return v.elems().Slice(v.Len())
}

// Iter yields (index, element pointer) pairs in order.
func (v *Vector[EA]) Iter() iter.Seq2[int, *EA] {
	return func(yield func(int, *EA) bool) {
		for i := range v.Len() {
			if !yield(i, v.Get(i)) {
				return
			}
		}
	}
}

// VectorBehind returns a typed pointer to whatever ancha record sits
// immediately after v, aligned to After's requirement. This is how a
// sibling record chains off the end of a vector without either side
// needing to know the other's size up front — see [Pair] for the
// composed form of this pattern.
func VectorBehind[After, EA any](v *Vector[EA]) *After {
	tail := v.elems().Get(v.Len())
	addr := xunsafe.AddrOf(tail).RoundUpTo(layout.Align[After]())
	return xunsafe.Retype[After](addr).AssertValid()
}

// VectorStrategy is the DynStrategy for a Vector[EA], parameterized by the
// element's own StaticStrategy.
type VectorStrategy[EO, EA any] struct {
	Elem StaticStrategy[EO, EA]
}

// NewVectorStrategy builds a VectorStrategy from an element strategy.
func NewVectorStrategy[EO, EA any](elem StaticStrategy[EO, EA]) VectorStrategy[EO, EA] {
	return VectorStrategy[EO, EA]{Elem: elem}
}

// Reserve implements DynStrategy.
func (s VectorStrategy[EO, EA]) Reserve(origin []EO, _ Context, r *Reserve) {
	ReserveSlots[Vector[EA]](r, 1)
	ReserveSlots[EA](r, len(origin))
}

// Anchize implements DynStrategy.
func (s VectorStrategy[EO, EA]) Anchize(origin []EO, ctx Context, cur Cursor[byte]) (Cursor[byte], error) {
	hcur := Transmute[Vector[EA]](cur).Align()
	hcur.Get().Length = uint64(len(origin))

	ecur := Transmute[EA](hcur.Behind(1))
	for _, o := range origin {
		ecur = ecur.Align()
		if err := s.Elem.AnchizeStatic(o, ctx, ecur.Get()); err != nil {
			return Cursor[byte]{}, err
		}
		ecur = ecur.Behind(1)
	}
	return Transmute[byte](ecur), nil
}

// Deanchize implements DynStrategy.
func (s VectorStrategy[EO, EA]) Deanchize(cur Cursor[byte]) Cursor[byte] {
	hcur := Transmute[Vector[EA]](cur).Align()
	n := hcur.Get().Len()

	ecur := Transmute[EA](hcur.Behind(1))
	for range n {
		ecur = ecur.Align()
		s.Elem.DeanchizeStatic(ecur.Get())
		ecur = ecur.Behind(1)
	}
	debug.Log(nil, "vector.deanchize", "n=%d", n)
	return Transmute[byte](ecur)
}
