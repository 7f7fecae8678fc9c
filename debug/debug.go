// Package debug provides the build-time debug flag and assertion helpers
// shared by the engine packages.
package debug

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Assert panics with a formatted message if condition is false. Used for
// internal invariants that are unreachable on valid kernel inputs; a
// failure indicates a corrupted kernel build or seed-data mismatch, not a
// user error.
func Assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic("internal invariant violation: " + fmt.Sprintf(format, args...) + "\n" + Stack())
	}
}

// Stack returns a compact rendering of the current call stack.
func Stack() string {
	var sbb strings.Builder
	WriteStack(&sbb)
	return sbb.String()
}

// WriteStack writes the current call stack to sbb, one frame per line.
func WriteStack(sbb *strings.Builder) {
	// derived from: https://golang.org/pkg/runtime/#example_Frames
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]
	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()
		fe := strings.Split(frame.Function, "/")
		function := fe[len(fe)-1]
		file := frame.File

		if !Debug {
			if strings.Contains(function, "runtime.gopanic") {
				continue
			}
			file = filepath.Base(file)
		}

		sbb.WriteString(function)
		sbb.WriteByte('\n')
		sbb.WriteByte('\t')
		sbb.WriteString(file)
		sbb.WriteByte(':')
		sbb.WriteString(strconv.Itoa(frame.Line))
		sbb.WriteByte('\n')
		if !more {
			break
		}
	}
}
