// Package crash reports panics through the logger, restores the terminal
// and exits.
package crash

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ExitCode is the process status after a crash.
const ExitCode = 2

var (
	mu       sync.Mutex
	cleanups []func()
	exit     = os.Exit
)

// OnCrash registers fn to run before the process exits on a panic, most
// recent first. The viewer uses it to hand the terminal back.
func OnCrash(fn func()) {
	mu.Lock()
	defer mu.Unlock()
	cleanups = append(cleanups, fn)
}

// Handle reports r, where it was raised, and exits. A nil r is ignored so
// it can be called straight from a deferred recover.
func Handle(log *zap.Logger, r any) {
	if r == nil {
		return
	}

	mu.Lock()
	fns := cleanups
	cleanups = nil
	mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}

	log.Error("panic",
		zap.String("message", fmt.Sprint(r)),
		zap.String("location", origin()),
		zap.ByteString("stack", debug.Stack()),
	)
	_ = log.Sync()
	exit(ExitCode)
}

// Go runs fn on a new goroutine with panic reporting.
func Go(log *zap.Logger, fn func()) {
	go func() {
		defer func() {
			Handle(log, recover())
		}()
		fn()
	}()
}

// origin finds the frame that raised the panic: the first non-runtime
// frame below runtime.gopanic.
func origin() string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	panicking := false
	for {
		f, more := frames.Next()
		switch {
		case f.Function == "runtime.gopanic":
			panicking = true
		case panicking && !strings.HasPrefix(f.Function, "runtime."):
			return fmt.Sprintf("%s:%d", f.File, f.Line)
		}
		if !more {
			return "unknown"
		}
	}
}
