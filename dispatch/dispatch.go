package dispatch

import (
	"context"
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
)

// Dispatcher starts a new, independent invocation with the given payload.
// Implementations must not wait for that invocation to complete.
type Dispatcher interface {
	Dispatch(ctx context.Context, p payload.Payload) error
}

// Func adapts an ordinary function to the Dispatcher interface.
type Func func(ctx context.Context, p payload.Payload) error

// Dispatch calls f(ctx, p).
func (f Func) Dispatch(ctx context.Context, p payload.Payload) error {
	return f(ctx, p)
}

// Recorder is a Dispatcher that only remembers what it was asked to dispatch.
type Recorder struct {
	mu       sync.Mutex
	payloads []payload.Payload
}

// Dispatch records p.
func (r *Recorder) Dispatch(_ context.Context, p payload.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
	return nil
}

// Payloads returns a copy of the recorded payloads in dispatch order.
func (r *Recorder) Payloads() []payload.Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]payload.Payload, len(r.payloads))
	copy(out, r.payloads)
	return out
}

// Len returns the number of recorded dispatches.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}
