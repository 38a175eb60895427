// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about imports, event dispatch and the HTTP
// service.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The Prometheus implementation lives in internal/metrics and is installed
// by the CLI; library code only ever calls the accessors below.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetImportHooks(metrics.NewImportHooks(reg))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Import().OnImportStart(ctx, "gml", "INT")
//	// ... parse ...
//	observability.Import().OnImportComplete(ctx, "gml", "INT", stats, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Import Hooks
// =============================================================================

// ImportStats summarizes what an import installed.
type ImportStats struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
}

// ImportHooks receives events from the import dispatcher.
type ImportHooks interface {
	OnImportStart(ctx context.Context, format, regime string)
	OnImportComplete(ctx context.Context, format, regime string, stats ImportStats, duration time.Duration, err error)
}

// =============================================================================
// Event Hooks
// =============================================================================

// EventHooks receives events from graph event buses.
type EventHooks interface {
	// OnDispatch records delivery of one event to n listeners.
	OnDispatch(kind string, listeners int)

	// OnListenerPanic records a listener that panicked and was skipped.
	OnListenerPanic(kind string, recovered any)

	// OnDepthExceeded records a re-entrant emission rejected at depth.
	OnDepthExceeded(depth int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP service.
type ServerHooks interface {
	OnRequest(ctx context.Context, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopImportHooks is a no-op implementation of ImportHooks.
type NoopImportHooks struct{}

func (NoopImportHooks) OnImportStart(context.Context, string, string) {}
func (NoopImportHooks) OnImportComplete(context.Context, string, string, ImportStats, time.Duration, error) {
}

// NoopEventHooks is a no-op implementation of EventHooks.
type NoopEventHooks struct{}

func (NoopEventHooks) OnDispatch(string, int)      {}
func (NoopEventHooks) OnListenerPanic(string, any) {}
func (NoopEventHooks) OnDepthExceeded(int)         {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	importHooks ImportHooks = NoopImportHooks{}
	eventHooks  EventHooks  = NoopEventHooks{}
	serverHooks ServerHooks = NoopServerHooks{}
	hooksMu     sync.RWMutex
)

// SetImportHooks registers custom import hooks.
// This should be called once at application startup before any import.
func SetImportHooks(h ImportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		importHooks = h
	}
}

// SetEventHooks registers custom event hooks.
func SetEventHooks(h EventHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		eventHooks = h
	}
}

// SetServerHooks registers custom HTTP service hooks.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Import returns the registered import hooks.
func Import() ImportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return importHooks
}

// Events returns the registered event hooks.
func Events() EventHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return eventHooks
}

// Server returns the registered HTTP service hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	importHooks = NoopImportHooks{}
	eventHooks = NoopEventHooks{}
	serverHooks = NoopServerHooks{}
}
