// Package resource implements the data-loading lifecycle shared by every
// dashboard deck: a tri-state resource (data / loading / error) driven by a
// generation counter so that superseded fetches can never overwrite newer
// results.
package resource

import (
	"context"
	"errors"
)

// State is the observable state of one loaded resource. After a fetch
// settles, either Err is nil and Data holds the latest result, or Err is set
// and Data retains the last successful value (stale but displayable).
// Loading is true only while a fetch for the current generation is in
// flight.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     error
}

// Loader owns the fetch lifecycle for one resource. It is not safe for
// concurrent use: Begin and Commit are called from the single UI goroutine
// (the Bubble Tea update loop), while the fetch itself runs elsewhere and
// reports back via Commit.
type Loader[T any] struct {
	gen    uint64
	cancel context.CancelFunc
	state  State[T]
}

// Begin starts a new fetch generation. Any in-flight fetch from a previous
// generation is cancelled; its eventual Commit will be rejected. The
// returned context must be passed to the transport call, and the returned
// generation handed back to Commit with the result.
func (l *Loader[T]) Begin(parent context.Context) (uint64, context.Context) {
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel

	// Previous data stays visible until the new result (or failure) lands.
	l.state.Loading = true
	l.state.Err = nil
	return l.gen, ctx
}

// Commit applies a fetch result if gen is still the current generation.
// Returns false when the result was discarded: either the fetch was
// superseded, or it ended in cancellation (which must never surface as an
// error).
func (l *Loader[T]) Commit(gen uint64, data T, err error) bool {
	if gen != l.gen {
		return false
	}
	// A cancelled fetch performs no state update at all: not even an error.
	if err != nil && errors.Is(err, context.Canceled) {
		return false
	}

	l.state.Loading = false
	if err != nil {
		l.state.Err = err
		return true
	}
	l.state.Data = data
	l.state.HasData = true
	l.state.Err = nil
	return true
}

// Cancel aborts the in-flight fetch, if any, without starting a new one.
// Used when the owning view unmounts.
func (l *Loader[T]) Cancel() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// State returns a snapshot of the current resource state.
func (l *Loader[T]) State() State[T] { return l.state }

// Generation returns the current fetch generation.
func (l *Loader[T]) Generation() uint64 { return l.gen }

// Loading reports whether a fetch for the current generation is in flight.
func (l *Loader[T]) Loading() bool { return l.state.Loading }
