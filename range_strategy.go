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
	"github.com/p4l1ly/ancha/internal/zc"
)

// RangeStrategy is the DynStrategy for a string anchized as a packed
// zc.Range immediately followed by its bytes. It is the single-word
// alternative to [BlobStrategy]: a zc.Range's offset is relative to
// whatever source pointer the caller supplies when reading it back (see
// [zc.Range.Bytes]/[zc.Range.String]), rather than self-relative the way
// Blob is, so it composes naturally wherever the reader already tracks
// the buffer's own base address — e.g. as a [Map] value or a [Pair]'s
// second element.
type RangeStrategy struct{}

// Reserve implements DynStrategy.
func (RangeStrategy) Reserve(origin string, _ Context, r *Reserve) {
	ReserveSlots[zc.Range](r, 1)
	ReserveSlots[byte](r, len(origin))
}

// Anchize implements DynStrategy.
func (RangeStrategy) Anchize(origin string, _ Context, cur Cursor[byte]) (Cursor[byte], error) {
	hcur := Transmute[zc.Range](cur).Align()
	bcur := Transmute[byte](hcur.Behind(1))
	copy(xunsafe.Slice(bcur.Get(), len(origin)), origin)
	*hcur.Get() = zc.NewRaw(bcur.Offset(), len(origin))
	return bcur.Behind(len(origin)), nil
}

// Deanchize implements DynStrategy. A zc.Range carries no pointer field to
// promote — it is read back relative to an explicit source pointer the
// caller supplies — so there is nothing to repair, only a span to skip.
func (RangeStrategy) Deanchize(cur Cursor[byte]) Cursor[byte] {
	hcur := Transmute[zc.Range](cur).Align()
	n := hcur.Get().Len()
	bcur := Transmute[byte](hcur.Behind(1))
	return bcur.Behind(n)
}
