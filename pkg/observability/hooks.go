// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about backend calls, handoff slot operations, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Libraries in roadtower never log. They emit events here, and the CLI maps
// them onto its logger.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    observability.SetHandoffHooks(&myHandoffHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnLayoutStart(ctx, phases)
//	// ... build the scene ...
//	observability.Render().OnLayoutComplete(ctx, primitives, height, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the layout engine and sinks.
type RenderHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, phases int)
	OnLayoutComplete(ctx context.Context, primitives int, height float64, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Handoff Hooks
// =============================================================================

// HandoffHooks receives events from handoff slot operations.
type HandoffHooks interface {
	// OnPut records a payload written to a slot.
	OnPut(ctx context.Context, backend, slot string, size int)

	// OnTake records a take; found is false when the slot was empty.
	OnTake(ctx context.Context, backend, slot string, found bool)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnLayoutStart(context.Context, int)                                  {}
func (NoopRenderHooks) OnLayoutComplete(context.Context, int, float64, time.Duration)       {}
func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopHandoffHooks is a no-op implementation of HandoffHooks.
type NoopHandoffHooks struct{}

func (NoopHandoffHooks) OnPut(context.Context, string, string, int)   {}
func (NoopHandoffHooks) OnTake(context.Context, string, string, bool) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks  RenderHooks  = NoopRenderHooks{}
	handoffHooks HandoffHooks = NoopHandoffHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetHandoffHooks registers custom handoff hooks.
// This should be called once at application startup before any slot operations.
func SetHandoffHooks(h HandoffHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		handoffHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Handoff returns the registered handoff hooks.
func Handoff() HandoffHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return handoffHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	handoffHooks = NoopHandoffHooks{}
	httpHooks = NoopHTTPHooks{}
}
