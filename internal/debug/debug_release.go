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

//go:build !debug

package debug

import "testing"

// Enabled is false when the engine was built without the debug tag.
const Enabled = false

// Capture is a no-op outside of debug builds.
func Capture(testing.TB) func() { return func() {} }

// Log is a no-op outside of debug builds; args are never evaluated into a
// format because the call itself is expected to be guarded by Enabled at
// expensive call sites.
func Log([]any, string, string, ...any) {}

// Assert is a no-op outside of debug builds.
func Assert(bool, string, ...any) {}
