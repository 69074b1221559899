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

// Package ancha is a zero-copy, in-place serialization engine.
//
// Given an in-memory "origin" value (vectors, tuples, linked lists, packed
// sequences of variable-size elements, key-value maps, and shared binary
// decision diagrams), ancha produces a single contiguous byte buffer whose
// bit pattern is the serialized representation. A buffer goes through three
// phases:
//
//   - Reserve walks the origin and computes the exact size and maximum
//     alignment of the buffer the caller must allocate.
//   - Anchize walks the origin a second time, writing bytes into the
//     caller-allocated buffer and embedding offsets (relative to the
//     buffer's base) wherever one ancha record needs to refer to another.
//   - Deanchize walks the buffer once, rewriting every such offset into an
//     absolute pointer, after which the buffer can be reinterpreted
//     in place as a typed graph of structures: no allocation, no copy.
//
// All three phases are driven by a strategy tree the caller builds to
// mirror the shape of the ancha type: [Vector], [Sequence], [List], [Pair],
// [Map], and [DagNode] compose the way the data they describe composes, with
// [DirectCopy] at the scalar leaves. The same tree drives all three phases,
// which is what keeps reserve and anchize from silently drifting apart.
//
// ancha does not normalize endianness, version buffers, or validate a
// buffer it did not produce itself: deanchize assumes it is looking at the
// output of a matching anchize.
package ancha

// Context is an opaque, caller-supplied value threaded identically through
// every recursive strategy call in a single pass. The engine never
// inspects it; it exists so that strategies which need shared, mutable, or
// read-only state (an interning table, a shared counter, a dictionary) do
// not need to reach for a package-level global to get it.
//
// Sub-strategies in a composed tree must agree on what concrete type they
// expect behind Context, or ignore it entirely — the same way callers of
// [context.Context].Value agree out of band on the keys they use.
type Context = any
