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

// Package zc provides a packed, fixed-size representation of a byte range
// relative to some larger buffer — the ancha form of a string or byte-slice
// leaf, as written by [github.com/p4l1ly/ancha.RangeStrategy].
package zc

import (
	"fmt"
	"math"

	"github.com/p4l1ly/ancha/internal/debug"
	"github.com/p4l1ly/ancha/internal/trace"
	"github.com/p4l1ly/ancha/internal/xunsafe"
)

// Range is a fixed-size (8 byte, uint64-aligned) stand-in for a []byte,
// packed as
//
//	struct { offset, len uint32 }
//
// The zero value faithfully represents an empty slice. Because both fields
// are part of one machine word, a Range is itself a valid fixed-size ancha
// element: copying it is copying the whole "pointer".
type Range uint64

// New creates a Range over src, starting at start, of the given length.
func New(src, start *byte, length int) Range {
	offset := xunsafe.Sub(start, src)
	return NewRaw(offset, length)
}

// NewRaw builds a Range directly from an offset and length.
func NewRaw(offset, length int) Range {
	debug.Assert(offset <= math.MaxUint32 && length <= math.MaxUint32,
		"offset too large for zc: [%d:%d]", offset, length)
	return Range(uint32(offset)) | Range(uint32(length))<<32
}

// Start returns the start offset of this range within its source.
func (r Range) Start() int { return int(uint32(r)) }

// End returns the end offset of this range within its source.
func (r Range) End() int { return r.Start() + r.Len() }

// Len returns the length of this range.
func (r Range) Len() int { return int(r >> 32) }

// Bytes converts this range into a byte slice, given its source.
func (r Range) Bytes(src *byte) []byte {
	if r.Len() == 0 {
		return nil
	}
	return xunsafe.Slice(xunsafe.Add(src, r.Start()), r.Len())
}

// String converts this range into a string, given its source.
func (r Range) String(src *byte) string {
	if r.Len() == 0 {
		return ""
	}
	return xunsafe.String(xunsafe.Add(src, r.Start()), r.Len())
}

// Format implements fmt.Formatter.
func (r Range) Format(s fmt.State, verb rune) {
	trace.Fprintf("[%d:%d]", r.Start(), r.End()).Format(s, verb)
}
