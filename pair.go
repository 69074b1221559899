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
	"github.com/p4l1ly/ancha/internal/xunsafe"
	"github.com/p4l1ly/ancha/internal/xunsafe/layout"
)

// Pair is the ancha representation of two adjacent records, b immediately
// following a. Unlike [Vector] or [Map], a Pair carries no header and
// introduces no alignment of its own: Go gives Pair[AA, BA] the same size
// and alignment as AA alone, since BA is never embedded as a field — so a
// Pair used as an element of some other container aligns exactly as AA
// would on its own, delegating entirely to its first member.
type Pair[AA, BA any] struct {
	A AA
}

// B returns a pointer to the second element, which starts immediately
// after A, rounded up to BA's own alignment.
func (p *Pair[AA, BA]) B() *BA {
	addr := xunsafe.AddrOf(&p.A).ByteAdd(layout.Size[AA]()).RoundUpTo(layout.Align[BA]())
	return xunsafe.Retype[BA](addr).AssertValid()
}

// PairOrigin is the caller-side counterpart of Pair: two origin values
// anchized independently, back to back.
type PairOrigin[AO, BO any] struct {
	A AO
	B BO
}

// PairStrategy is the DynStrategy for a Pair[AA, BA]. The first element
// must be a StaticStrategy — Pair relies on knowing AA's size statically
// to place B without a header — while the second may be any DynStrategy,
// static or composite.
type PairStrategy[AO, AA, BO, BA any] struct {
	A StaticStrategy[AO, AA]
	B DynStrategy[BO, BA]
}

// NewPairStrategy builds a PairStrategy from its two element strategies.
func NewPairStrategy[AO, AA, BO, BA any](a StaticStrategy[AO, AA], b DynStrategy[BO, BA]) PairStrategy[AO, AA, BO, BA] {
	return PairStrategy[AO, AA, BO, BA]{A: a, B: b}
}

// Reserve implements DynStrategy.
func (s PairStrategy[AO, AA, BO, BA]) Reserve(origin PairOrigin[AO, BO], ctx Context, r *Reserve) {
	ReserveSlots[AA](r, 1)
	s.B.Reserve(origin.B, ctx, r)
}

// Anchize implements DynStrategy.
func (s PairStrategy[AO, AA, BO, BA]) Anchize(origin PairOrigin[AO, BO], ctx Context, cur Cursor[byte]) (Cursor[byte], error) {
	acur := Transmute[AA](cur).Align()
	if err := s.A.AnchizeStatic(origin.A, ctx, acur.Get()); err != nil {
		return Cursor[byte]{}, err
	}
	bcur := Transmute[byte](acur.Behind(1))
	return s.B.Anchize(origin.B, ctx, bcur)
}

// Deanchize implements DynStrategy.
func (s PairStrategy[AO, AA, BO, BA]) Deanchize(cur Cursor[byte]) Cursor[byte] {
	acur := Transmute[AA](cur).Align()
	s.A.DeanchizeStatic(acur.Get())
	bcur := Transmute[byte](acur.Behind(1))
	return s.B.Deanchize(bcur)
}
