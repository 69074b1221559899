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

import "fmt"

// ContractError reports a violation of the engine's calling contract: a
// cyclic or nil DAG origin, an out-of-range index, an accessor called on a
// missing link or on the wrong kind of DAG node, an empty buffer, or a
// cursor access that would overrun the buffer. The engine does not check
// a buffer's alignment, and does not detect a second deanchize of an
// already-deanchized buffer.
//
// These are programmer errors, not data errors. The engine does not try to
// recover from them; it panics with a *ContractError so that a recover()
// at a process boundary can still tell what went wrong.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("ancha: %s: %s", e.Op, e.Msg)
}

func violate(op, format string, args ...any) {
	panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
