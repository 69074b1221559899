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

package xunsafe

import (
	"unsafe"

	"github.com/p4l1ly/ancha/internal/xunsafe/layout"
)

// Slice reinterprets p as the head of a slice of len elements.
func Slice[P ~*E, E any, I Int](p P, length I) []E {
	return Slice2(p, length, length)
}

// Slice2 is like [Slice], but allows specifying length and capacity
// separately.
func Slice2[P ~*E, E any, I Int](p P, length, cap I) []E {
	return unsafe.Slice((*E)(p), cap)[:length]
}

// Bytes reinterprets the memory at p as a byte slice of sizeof(E) bytes.
func Bytes[P ~*E, E any](p P) []byte {
	return Slice(Cast[byte](p), layout.Size[E]())
}

// String reinterprets the memory at p as a string of the given length.
func String[P ~*E, E any, I Int](p P, length I) string {
	return unsafe.String(Cast[byte](p), length)
}
