package log

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"dumpscope/internal/logging"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup installs the default slog logger. With DUMPSCOPE_LOG_TO_FILE=1 the
// output goes to a timestamped debug log file readable with the logs
// command; otherwise records are written to stderr.
func Setup(debugMode bool) {
	initOnce.Do(func() {
		if debugMode || logging.IsDebug() {
			debugMode = true
		}

		var handler slog.Handler
		if os.Getenv("DUMPSCOPE_LOG_TO_FILE") == "1" {
			handler = logging.NewLogger().Logger
		} else {
			handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     level(debugMode),
				AddSource: debugMode,
			})
		}

		slog.SetDefault(slog.New(handler))
		initialized.Store(true)
	})
}

func level(debugMode bool) slog.Level {
	if debugMode {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func Initialized() bool {
	return initialized.Load()
}

func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		if Initialized() {
			slog.Error(fmt.Sprintf("Panic in %s", name),
				"panic", r,
				"stack", string(debug.Stack()))
		}
		if cleanup != nil {
			cleanup()
		}
	}
}
