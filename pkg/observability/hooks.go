// Package observability lets callers watch renders, cache traffic and API
// requests without the core packages depending on a metrics backend.
//
// Three hook interfaces cover the event sources. Each has a no-op default;
// a process swaps in its own implementation once at startup:
//
//	observability.Register(observability.NewLogHooks(logger))
//
// and the instrumented code fetches the current hooks on every event:
//
//	observability.Pipeline().OnRenderStart(ctx, formats)
//
// [LogHooks] is the bundled implementation; it writes every event to a
// charm logger at debug level.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, series, values int)
	OnLayoutComplete(ctx context.Context, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache traffic. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives one pair of events per HTTP request. route is the
// matched route pattern, not the raw path.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration, error)           {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores every event.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// The registry holds boxed interfaces so that atomic.Value always sees the
// same concrete type.
type (
	pipelineBox struct{ PipelineHooks }
	cacheBox    struct{ CacheHooks }
	serverBox   struct{ ServerHooks }
)

var pipelineHooks, cacheHooks, serverHooks atomic.Value

func init() { Reset() }

// SetPipelineHooks installs pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.Store(pipelineBox{h})
	}
}

// SetCacheHooks installs cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(cacheBox{h})
	}
}

// SetServerHooks installs server hooks. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		serverHooks.Store(serverBox{h})
	}
}

// Register installs h for every hook interface it implements.
func Register(h any) {
	if p, ok := h.(PipelineHooks); ok {
		SetPipelineHooks(p)
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
	}
	if s, ok := h.(ServerHooks); ok {
		SetServerHooks(s)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.Load().(pipelineBox).PipelineHooks }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheHooks.Load().(cacheBox).CacheHooks }

// Server returns the installed server hooks.
func Server() ServerHooks { return serverHooks.Load().(serverBox).ServerHooks }

// Reset restores the no-op hooks.
func Reset() {
	pipelineHooks.Store(pipelineBox{NoopPipelineHooks{}})
	cacheHooks.Store(cacheBox{NoopCacheHooks{}})
	serverHooks.Store(serverBox{NoopServerHooks{}})
}
