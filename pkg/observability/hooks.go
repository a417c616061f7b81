// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about relay room activity and canvas store mutations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRelayHooks(&myRelayHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Relay().OnJoin(ctx, roomID, participants)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Relay Hooks
// =============================================================================

// RelayHooks receives events from relay room activity.
type RelayHooks interface {
	// OnJoin records a participant joining a room. participants is the
	// room size after the join.
	OnJoin(ctx context.Context, roomID string, participants int)

	// OnLeave records a participant leaving a room. participants is the
	// room size after the leave.
	OnLeave(ctx context.Context, roomID string, participants int)

	// OnOps records a batch of document operations applied to a room.
	OnOps(ctx context.Context, roomID string, count int)

	// OnSnapshot records a room snapshot write to the room store.
	OnSnapshot(ctx context.Context, roomID string, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from canvas store mutations.
type StoreHooks interface {
	// OnCanvasCreated records a canvas creation.
	OnCanvasCreated(ctx context.Context, templateID string)

	// OnCanvasMutated records any mutation that touches a canvas
	// (node add/move/remove, viewport update).
	OnCanvasMutated(ctx context.Context, canvasID string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRelayHooks is a no-op implementation of RelayHooks.
type NoopRelayHooks struct{}

func (NoopRelayHooks) OnJoin(context.Context, string, int)                       {}
func (NoopRelayHooks) OnLeave(context.Context, string, int)                      {}
func (NoopRelayHooks) OnOps(context.Context, string, int)                        {}
func (NoopRelayHooks) OnSnapshot(context.Context, string, time.Duration, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnCanvasCreated(context.Context, string) {}
func (NoopStoreHooks) OnCanvasMutated(context.Context, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	relayHooks RelayHooks = NoopRelayHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetRelayHooks registers custom relay hooks.
// This should be called once at application startup before serving rooms.
func SetRelayHooks(h RelayHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		relayHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before opening the store.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Relay returns the registered relay hooks.
func Relay() RelayHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return relayHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	relayHooks = NoopRelayHooks{}
	storeHooks = NoopStoreHooks{}
}
