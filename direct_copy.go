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

// DirectCopy is the default fixed-size strategy for a trivially copyable
// scalar: the ancha type is the origin type itself, and both passes are a
// straight bitwise copy (anchize) or no-op (deanchize, since there is
// nothing to repair).
type DirectCopy[T any] struct{}

// AnchizeStatic implements StaticStrategy.
func (DirectCopy[T]) AnchizeStatic(origin T, _ Context, slot *T) error {
	*slot = origin
	return nil
}

// DeanchizeStatic implements StaticStrategy.
func (DirectCopy[T]) DeanchizeStatic(*T) {}
