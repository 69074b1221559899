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

// StaticStrategy describes how to reserve/anchize/deanchize one element
// whose ancha representation has statically known size: no cursor is
// involved, just a slot to write into.
//
// Origin is the caller's in-memory element type; Ancha is its in-buffer
// record type. Implementations must be deterministic: the same (origin,
// ctx) pair must always produce the same bytes, since the round-trip and
// determinism properties depend on it.
type StaticStrategy[Origin, Ancha any] interface {
	// AnchizeStatic writes one element into slot. ctx is the pass's
	// context value, passed unchanged from the root strategy.
	AnchizeStatic(origin Origin, ctx Context, slot *Ancha) error

	// DeanchizeStatic repairs one element in place, promoting any
	// offset-form pointer fields it holds to absolute pointers.
	DeanchizeStatic(slot *Ancha)
}

// DynStrategy describes how to reserve/anchize/deanchize one element or
// composite whose ancha representation has a variable-size tail.
//
// Every implementation must obey the entry-only alignment discipline:
// Anchize and Deanchize align the cursor to Ancha's alignment exactly
// once, at entry, and return a cursor positioned immediately past their
// last byte with no trailing alignment. Reserve must perform the
// byte-for-byte identical alignment decisions Anchize does, or the two
// passes will silently disagree about where records start.
type DynStrategy[Origin, Ancha any] interface {
	// Reserve accounts for the space and alignment this element will
	// need, without writing anything.
	Reserve(origin Origin, ctx Context, r *Reserve)

	// Anchize writes origin starting at cur (which Anchize aligns to
	// Ancha itself) and returns a cursor past the last byte written.
	Anchize(origin Origin, ctx Context, cur Cursor[byte]) (Cursor[byte], error)

	// Deanchize walks the same region Anchize wrote, promoting every
	// offset-form pointer field to an absolute pointer, and returns a
	// cursor past the last byte it touched.
	Deanchize(cur Cursor[byte]) Cursor[byte]
}

// StaticAsDyn promotes a [StaticStrategy] into a [DynStrategy] by treating
// "one fixed-size element" as the degenerate case of a variable-size
// region: reserve one slot, align-write-advance.
//
// This is what lets a container whose element slot takes a DynStrategy —
// a [List] payload, a [Map] value, a [Pair]'s second element — accept a
// plain [DirectCopy] or other static leaf without the caller writing any
// glue. ([Vector] takes a StaticStrategy element directly.)
type StaticAsDyn[Origin, Ancha any] struct {
	Static StaticStrategy[Origin, Ancha]
}

// Dyn wraps a StaticStrategy as a DynStrategy.
func Dyn[Origin, Ancha any](s StaticStrategy[Origin, Ancha]) StaticAsDyn[Origin, Ancha] {
	return StaticAsDyn[Origin, Ancha]{Static: s}
}

// Reserve implements DynStrategy.
func (s StaticAsDyn[Origin, Ancha]) Reserve(_ Origin, _ Context, r *Reserve) {
	ReserveSlots[Ancha](r, 1)
}

// Anchize implements DynStrategy.
func (s StaticAsDyn[Origin, Ancha]) Anchize(origin Origin, ctx Context, cur Cursor[byte]) (Cursor[byte], error) {
	acur := Transmute[Ancha](cur).Align()
	if err := s.Static.AnchizeStatic(origin, ctx, acur.Get()); err != nil {
		return Cursor[byte]{}, err
	}
	return Transmute[byte](acur.Behind(1)), nil
}

// Deanchize implements DynStrategy.
func (s StaticAsDyn[Origin, Ancha]) Deanchize(cur Cursor[byte]) Cursor[byte] {
	acur := Transmute[Ancha](cur).Align()
	s.Static.DeanchizeStatic(acur.Get())
	return Transmute[byte](acur.Behind(1))
}
