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

//go:build debug

// Package debug includes debugging helpers for the reserve/anchize/deanchize
// passes. It is compiled in only under the "debug" build tag, so a release
// build of the engine pays nothing for it.
package debug

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/timandy/routine"
)

// Enabled is true if the binary was built with the debug tag.
const Enabled = true

var (
	debugPattern *regexp.Regexp
	nocapture    = flag.Bool("ancha.nocapture", false, "disables capturing debug logs as test logs")
	tls          = routine.NewInheritableThreadLocal[testing.TB]()
)

func init() {
	flag.Func("ancha.filter", "regexp to filter debug logs by", func(s string) (err error) {
		debugPattern, err = regexp.Compile(s)
		return err
	})
}

// Capture routes Log output for the current goroutine to t, for the
// duration of a test. The returned func detaches it again.
func Capture(t testing.TB) func() {
	tls.Set(t)
	return func() { tls.Remove() }
}

// Log prints debugging information to stderr, or to the current test's log
// if one has been attached with [Capture].
//
// context is optional args for fmt.Printf that are printed before operation,
// useful for tagging a group of related log lines (e.g. a buffer's base
// address) ahead of the per-call detail.
func Log(context []any, operation string, format string, args ...any) {
	skip := 1
again:
	pc, file, line, _ := runtime.Caller(skip)

	fn := runtime.FuncForPC(pc)
	name := fn.Name()
	name = name[strings.LastIndex(name, ".")+1:]
	if strings.HasPrefix(name, "log") || strings.Contains(name, "Log") {
		skip++
		goto again
	}

	pkg := fn.Name()
	pkg = strings.TrimPrefix(pkg, "github.com/p4l1ly/ancha/")
	pkg = strings.TrimPrefix(pkg, "internal/")
	if i := strings.Index(pkg, "."); i >= 0 {
		pkg = pkg[:i]
	}

	file = filepath.Base(file)

	buf := new(strings.Builder)

	_, _ = fmt.Fprintf(buf, "%s/%s:%d [g%d", pkg, file, line, routine.Goid())
	if len(context) >= 1 {
		_, _ = fmt.Fprintf(buf, ", "+context[0].(string), context[1:]...)
	}
	_, _ = fmt.Fprintf(buf, "] %s: ", operation)
	_, _ = fmt.Fprintf(buf, format, args...)

	if debugPattern != nil && !debugPattern.MatchString(buf.String()) {
		return
	}

	if t := tls.Get(); !*nocapture && t != nil {
		t.Log(buf.String())
		return
	}

	_, _ = buf.Write([]byte{'\n'})
	_, _ = os.Stderr.WriteString(buf.String())
}

// Assert panics if cond is false. Compiled out entirely in release builds.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("ancha: internal assertion failed: "+format, args...))
	}
}
