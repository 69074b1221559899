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

// Cursor is a typed, single-threaded, linear view over a mutable byte
// buffer: every write advances it, and it is never rewound. T is a tag
// type used only to set the rounding of [Cursor.Align], to scale
// [Cursor.Behind] and to type the pointer returned by [Cursor.Get] — the
// cursor itself is just a byte address plus the
// buffer's base and one-past-the-end addresses (the latter needed for
// [Cursor.Offset] and for catching a reserve/anchize mismatch before it
// corrupts adjacent memory).
type Cursor[T any] struct {
	base xunsafe.Addr[byte]
	end  xunsafe.Addr[byte]
	pos  xunsafe.Addr[byte]
}

// NewCursor builds a cursor over buf, positioned at its first byte. buf is
// forced to escape to the heap: every component address derived from this
// cursor is an [xunsafe.Addr], a plain integer the garbage collector does
// not track, so buf must not live on a stack frame that the runtime could
// later move out from under it.
func NewCursor[T any](buf []byte) Cursor[T] {
	if len(buf) == 0 {
		violate("NewCursor", "buffer must be non-empty")
	}
	p := xunsafe.Escape(&buf[0])
	base := xunsafe.AddrOf(p)
	return Cursor[T]{base: base, end: xunsafe.EndOf(buf), pos: base}
}

// Offset returns the cursor's position relative to the buffer's base.
func (c Cursor[T]) Offset() int {
	return c.pos.Sub(c.base)
}

// Get returns a raw writable pointer to a T at the cursor's current
// position. The caller is responsible for having aligned the cursor to T
// first, e.g. via [Cursor.Align].
func (c Cursor[T]) Get() *T {
	if c.pos.ByteAdd(layout.Size[T]()) > c.end {
		violate("Cursor.Get", "access at offset %d would overrun the %d-byte buffer",
			c.pos.Sub(c.base), c.end.Sub(c.base))
	}
	return xunsafe.Retype[T](c.pos).AssertValid()
}

// Align rounds the cursor up to T's own alignment requirement. Per the
// engine's entry-only alignment discipline, this is called once at the
// start of a component's anchize/deanchize, and again at the top of every
// loop iteration over a homogeneous sequence — never at exit.
func (c Cursor[T]) Align() Cursor[T] {
	return Cursor[T]{base: c.base, end: c.end, pos: c.pos.RoundUpTo(layout.Align[T]())}
}

// Behind skips n elements of T (i.e. n*sizeof(T) bytes), producing a
// cursor immediately past them. No alignment is performed — the next
// component is responsible for aligning itself at entry.
func (c Cursor[T]) Behind(n int) Cursor[T] {
	return Cursor[T]{base: c.base, end: c.end, pos: c.pos.ByteAdd(n * layout.Size[T]())}
}

// Transmute reinterprets a cursor as pointing to a different element type,
// without moving it. This is how a composite strategy hands off to a
// sub-strategy of a different ancha type: align to the sub-strategy's
// type, transmute to it, recurse, transmute the result back to byte.
func Transmute[To, From any](c Cursor[From]) Cursor[To] {
	return Cursor[To]{base: c.base, end: c.end, pos: c.pos}
}

// Base returns the cursor's buffer-base address — the reference point for
// the relative offsets that some components (e.g. List) store in place of
// a pointer before Deanchize promotes them to absolute addresses.
func (c Cursor[T]) Base() xunsafe.Addr[byte] { return c.base }

// AtByte returns a cursor over the same buffer, repositioned at the given
// absolute byte address.
func (c Cursor[T]) AtByte(addr xunsafe.Addr[byte]) Cursor[byte] {
	return Cursor[byte]{base: c.base, end: c.end, pos: addr}
}
