// Package storefront is the presentation façade over catalog, cart
// and order. It validates input, coordinates the two-step add-to-cart
// transaction, and keeps the last error and loading flag the UI
// reads. Failures never escape as panics; every operation reports a
// success flag plus a stored human-readable message.
package storefront

import (
	"context"
	"time"
)

// viewState is the shared UI-facing state: the single most recent
// error (overwritten each call, not a queue) and a loading flag.
// Viewmodels are single-session; callers do not share one across
// goroutines.
type viewState struct {
	lastErr string
	loading bool
	// latency emulates a remote call in the mock setup. Zero in
	// tests; a real backend replaces it with actual I/O.
	latency time.Duration
}

// Err returns the most recent error message, empty when none.
func (s *viewState) Err() string { return s.lastErr }

// ClearErr resets the error state.
func (s *viewState) ClearErr() { s.lastErr = "" }

// Loading reports whether an operation is in flight.
func (s *viewState) Loading() bool { return s.loading }

func (s *viewState) setErr(msg string) { s.lastErr = msg }

func (s *viewState) begin() {
	s.loading = true
	s.lastErr = ""
}

func (s *viewState) end() { s.loading = false }

// simulateLatency waits for the configured artificial delay,
// honoring ctx cancellation.
func (s *viewState) simulateLatency(ctx context.Context) {
	if s.latency <= 0 {
		return
	}
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
	}
}
