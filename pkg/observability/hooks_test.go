package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Render hooks
	r := NoopRenderHooks{}
	r.OnLayoutStart(ctx, 3)
	r.OnLayoutComplete(ctx, 42, 1200, time.Millisecond)
	r.OnRenderStart(ctx, "svg")
	r.OnRenderComplete(ctx, "svg", 2048, time.Millisecond, nil)

	// Handoff hooks
	s := NoopHandoffHooks{}
	s.OnPut(ctx, "memory", "roadmapData", 1024)
	s.OnTake(ctx, "memory", "roadmapData", true)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "localhost:5000", "/check_roadmap/u1")
	h.OnResponse(ctx, "GET", "localhost:5000", "/check_roadmap/u1", 200, time.Second)
	h.OnError(ctx, "POST", "localhost:5000", "/generate_roadmap", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Handoff().(NoopHandoffHooks); !ok {
		t.Error("Handoff() should return NoopHandoffHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customHandoff := &testHandoffHooks{}
	SetHandoffHooks(customHandoff)
	if Handoff() != customHandoff {
		t.Error("SetHandoffHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
	if _, ok := Handoff().(NoopHandoffHooks); !ok {
		t.Error("Reset() should restore NoopHandoffHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testHandoffHooks{}
	SetHandoffHooks(custom)

	// Setting nil should be ignored
	SetHandoffHooks(nil)

	if Handoff() != custom {
		t.Error("SetHandoffHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testRenderHooks struct{ NoopRenderHooks }
type testHandoffHooks struct{ NoopHandoffHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
