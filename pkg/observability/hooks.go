// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about dataset loading, layout passes, rendering, and legend
// toggles in the interactive explorer.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the layout engine stays
// free of observability dependencies.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetExploreHooks(&myExploreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, vis.String(), nodeCount)
//	// ... compute layout ...
//	observability.Pipeline().OnLayoutComplete(ctx, vis.String(), connectors, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the chart pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, leafCount int, duration time.Duration, err error)

	// Layout events. The engine cannot fail, so completion carries no error.
	OnLayoutStart(ctx context.Context, visibility string, nodeCount int)
	OnLayoutComplete(ctx context.Context, visibility string, connectors int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Explore Hooks
// =============================================================================

// ExploreHooks receives events from the interactive explorer.
type ExploreHooks interface {
	// OnToggle records a legend toggle and the resulting visibility set.
	OnToggle(ctx context.Context, status string, visible bool, visibility string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopExploreHooks is a no-op implementation of ExploreHooks.
type NoopExploreHooks struct{}

func (NoopExploreHooks) OnToggle(context.Context, string, bool, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	exploreHooks  ExploreHooks  = NoopExploreHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetExploreHooks registers custom explorer hooks.
func SetExploreHooks(h ExploreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exploreHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Explore returns the registered explorer hooks.
func Explore() ExploreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exploreHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	exploreHooks = NoopExploreHooks{}
}
