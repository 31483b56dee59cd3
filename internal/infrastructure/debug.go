package infrastructure

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"bpmsclient/internal/config"
)

// DebugLogger writes "[<AppName>] <message>" diagnostics when the client environment
// has ENABLE_DEBUG_MODE set. With debug mode off every call is a no-op. Records are
// written at debug level straight to the sink's handler, so the debug flag alone
// decides whether they appear, not BPMS_LOGGING_LEVEL.
type DebugLogger struct {
	enabled bool
	prefix  string
	sink    *slog.Logger
}

// NewDebugLogger binds a debug logger to env. A nil sink uses the process logger.
func NewDebugLogger(env config.Environment, sink *slog.Logger) *DebugLogger {
	if sink == nil {
		sink = GetLogger()
	}
	return &DebugLogger{
		enabled: env.EnableDebugMode,
		prefix:  "[" + env.AppName + "] ",
		sink:    sink,
	}
}

// Enabled reports whether messages are emitted
func (d *DebugLogger) Enabled() bool {
	return d != nil && d.enabled
}

// Log emits message with optional data. data is attached under the "data" key only
// when non-nil.
func (d *DebugLogger) Log(ctx context.Context, message string, data any) {
	if !d.Enabled() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var pcs [1]uintptr
	runtime.Callers(2, pcs[:])
	r := slog.NewRecord(time.Now(), slog.LevelDebug, d.prefix+message, pcs[0])
	r.AddAttrs(slog.Bool("debug", true))
	if data != nil {
		r.AddAttrs(slog.Any("data", data))
	}
	_ = d.sink.Handler().Handle(ctx, r)
}
