package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadtower/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered roadmap.svg (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Hook adapters
// =============================================================================

// logHooks forwards library events to the logger at debug level. Failures
// are logged at warn level since the command reports them itself.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.HTTPHooks    = logHooks{}
	_ observability.HandoffHooks = logHooks{}
	_ observability.RenderHooks  = logHooks{}
)

func newLogHooks(l *log.Logger) logHooks { return logHooks{logger: l} }

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("Request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("Response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("Request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h logHooks) OnPut(_ context.Context, backend, slot string, size int) {
	h.logger.Debug("Stored payload", "backend", backend, "slot", slot, "bytes", size)
}

func (h logHooks) OnTake(_ context.Context, backend, slot string, found bool) {
	h.logger.Debug("Took payload", "backend", backend, "slot", slot, "found", found)
}

func (h logHooks) OnLayoutStart(_ context.Context, phases int) {
	h.logger.Debug("Laying out roadmap", "phases", phases)
}

func (h logHooks) OnLayoutComplete(_ context.Context, primitives int, height float64, d time.Duration) {
	h.logger.Debug("Layout done", "primitives", primitives, "height", height, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("Rendering", "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("Render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("Rendered", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}

// =============================================================================
// Context
// =============================================================================

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
