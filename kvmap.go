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

// MapEntry is one slot of a Map's key/pointer table: a fixed-size key
// alongside a link to its value. Like [ListNode.next], Value holds a byte
// offset relative to the buffer's base until Deanchize promotes it to an
// absolute address.
type MapEntry[KA any] struct {
	Key   KA
	Value xunsafe.Addr[byte]
}

// Map is the ancha representation of a keyed map in array form:
// { length, (key, value_ptr)[0..length), value payloads... }. Keys are
// fixed-size and live packed in the table; values are variable-size and
// are appended after the whole table, so that growing one value never
// shifts another key's offset.
//
// Lookup is a linear scan over the table, not a hash probe — this mirrors
// the teacher's array-backed container story rather than introducing a
// hash layout with no ancha-side rehashing story.
type Map[KA comparable, VA any] struct {
	Length uint64
}

// Len returns the number of entries.
func (m *Map[KA, VA]) Len() int { return int(m.Length) }

func (m *Map[KA, VA]) table() *xunsafe.VLA[MapEntry[KA]] { return xunsafe.Beyond[MapEntry[KA]](m) }

// EntryKey returns a pointer to the i'th entry's key.
func (m *Map[KA, VA]) EntryKey(i int) *KA {
	if i < 0 || i >= m.Len() {
		violate("Map.EntryKey", "index %d out of range [0, %d)", i, m.Len())
	}
	return &m.table().Get(i).Key
}

// EntryValue returns a pointer to the i'th entry's value. Valid only
// after Deanchize.
func (m *Map[KA, VA]) EntryValue(i int) *VA {
	if i < 0 || i >= m.Len() {
		violate("Map.EntryValue", "index %d out of range [0, %d)", i, m.Len())
	}
	return xunsafe.Retype[VA](m.table().Get(i).Value).AssertValid()
}

// Get looks up key by linear scan, returning its value and whether it was
// found.
func (m *Map[KA, VA]) Get(key KA) (*VA, bool) {
	for i := range m.Len() {
		if *m.EntryKey(i) == key {
			return m.EntryValue(i), true
		}
	}
	return nil, false
}

// Iter yields (key, value) pairs in table order.
func (m *Map[KA, VA]) Iter() iter.Seq2[*KA, *VA] {
	return func(yield func(*KA, *VA) bool) {
		for i := range m.Len() {
			if !yield(m.EntryKey(i), m.EntryValue(i)) {
				return
			}
		}
	}
}

// MapEntryOrigin is one caller-side (key, value) pair to anchize.
type MapEntryOrigin[KO, VO any] struct {
	Key   KO
	Value VO
}

// MapStrategy is the DynStrategy for a Map[KA, VA].
type MapStrategy[KO, KA comparable, VO, VA any] struct {
	Key   StaticStrategy[KO, KA]
	Value DynStrategy[VO, VA]
}

// NewMapStrategy builds a MapStrategy from its key and value strategies.
func NewMapStrategy[KO, KA comparable, VO, VA any](key StaticStrategy[KO, KA], value DynStrategy[VO, VA]) MapStrategy[KO, KA, VO, VA] {
	return MapStrategy[KO, KA, VO, VA]{Key: key, Value: value}
}

// Reserve implements DynStrategy.
func (s MapStrategy[KO, KA, VO, VA]) Reserve(origin []MapEntryOrigin[KO, VO], ctx Context, r *Reserve) {
	ReserveSlots[Map[KA, VA]](r, 1)
	ReserveSlots[MapEntry[KA]](r, len(origin))
	for _, e := range origin {
		s.Value.Reserve(e.Value, ctx, r)
	}
}

// Anchize implements DynStrategy. It writes the header and key table
// first, leaving each entry's Value field as a placeholder, then appends
// value payloads in order, backpatching each placeholder with the value's
// aligned start offset once it is known.
func (s MapStrategy[KO, KA, VO, VA]) Anchize(origin []MapEntryOrigin[KO, VO], ctx Context, cur Cursor[byte]) (Cursor[byte], error) {
	hcur := Transmute[Map[KA, VA]](cur).Align()
	hcur.Get().Length = uint64(len(origin))

	ecur := Transmute[MapEntry[KA]](hcur.Behind(1))
	entries := make([]Cursor[MapEntry[KA]], len(origin))
	for i, e := range origin {
		ecur = ecur.Align()
		if err := s.Key.AnchizeStatic(e.Key, ctx, &ecur.Get().Key); err != nil {
			return Cursor[byte]{}, err
		}
		entries[i] = ecur
		ecur = ecur.Behind(1)
	}

	vcur := Transmute[byte](ecur)
	for i, e := range origin {
		aligned := Transmute[VA](vcur).Align()
		entries[i].Get().Value = xunsafe.Addr[byte](aligned.Offset())

		var err error
		vcur, err = s.Value.Anchize(e.Value, ctx, Transmute[byte](aligned))
		if err != nil {
			return Cursor[byte]{}, err
		}
	}
	return vcur, nil
}

// Deanchize implements DynStrategy.
func (s MapStrategy[KO, KA, VO, VA]) Deanchize(cur Cursor[byte]) Cursor[byte] {
	hcur := Transmute[Map[KA, VA]](cur).Align()
	n := hcur.Get().Len()

	ecur := Transmute[MapEntry[KA]](hcur.Behind(1))
	entries := make([]Cursor[MapEntry[KA]], n)
	for i := range n {
		ecur = ecur.Align()
		s.Key.DeanchizeStatic(&ecur.Get().Key)
		entries[i] = ecur
		ecur = ecur.Behind(1)
	}

	base := cur.Base()
	last := Transmute[byte](ecur)
	for i := range n {
		off := int(entries[i].Get().Value)
		valAddr := base.ByteAdd(off)
		entries[i].Get().Value = valAddr
		last = s.Value.Deanchize(cur.AtByte(valAddr))
	}
	return last
}
