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

// Reserve is the running (size, max-alignment) pair a reserve pass
// accumulates. Its final Size is exactly how many bytes the caller must
// allocate; its final Align is the alignment that allocation must satisfy.
//
// A zero Reserve is not valid to use directly — call [NewReserve]. Every
// strategy's Reserve method threads a *Reserve through its whole walk and
// mutates it in place; a Reserve is never meant to be copied by value, so
// it embeds a NoCopy marker to let go vet catch it if one ever is.
type Reserve struct {
	Size  int
	Align int

	_ xunsafe.NoCopy
}

// NewReserve returns an empty reserve with the minimum alignment of one
// byte, ready to accumulate slots.
func NewReserve() *Reserve {
	return &Reserve{Align: 1}
}

// ReserveSlots reserves n slots of type T: it pads r.Size up to T's
// alignment, then adds n*sizeof(T). The n == 0 form is the idiomatic
// "align only" operation used at component entry (see the alignment
// discipline documented on [DynStrategy]).
//
// r.Align is widened to T's alignment if that exceeds what has been seen
// so far; it never narrows.
func ReserveSlots[T any](r *Reserve, n int) {
	align := layout.Align[T]()
	r.Size = layout.RoundUp(r.Size, align)
	r.Size += n * layout.Size[T]()
	if align > r.Align {
		r.Align = align
	}
}
