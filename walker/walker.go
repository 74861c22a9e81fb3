package walker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/dispatch"
	pwerrors "github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/errors"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/table"
)

// DefaultIdentifier is the attribute every record is expected to carry.
const DefaultIdentifier = "codeUAI"

// State is the position of an invocation in the chain.
type State string

const (
	// StateScanning is the state of an invocation that is reading its page.
	StateScanning State = "SCANNING"

	// StateContinued means the next invocation has been dispatched.
	StateContinued State = "CONTINUED"

	// StateDone means the table has been fully scanned.
	StateDone State = "DONE"
)

// PageReader reads one page of the table. It is implemented by *table.Reader.
type PageReader interface {
	ReadPage(ctx context.Context, startAfter payload.Cursor) (*table.Page, error)
}

// Result is the outcome of a successful step.
type Result struct {
	// Payload is the state after the scan.
	Payload payload.Payload

	// State is StateContinued or StateDone.
	State State
}

// Walker scans pages and continues the chain.
type Walker struct {
	reader     PageReader
	dispatcher dispatch.Dispatcher
	identifier string
	logger     *slog.Logger
}

// Option is a functional option for configuring a Walker.
type Option func(*Walker)

// WithLogger configures the walker with a logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// WithIdentifier sets the attribute checked on every record.
func WithIdentifier(attr string) Option {
	return func(w *Walker) {
		if attr != "" {
			w.identifier = attr
		}
	}
}

// New creates a Walker. The dispatcher may be nil for walkers that are only
// used with Drain or Scan.
func New(reader PageReader, dispatcher dispatch.Dispatcher, opts ...Option) (*Walker, error) {
	if reader == nil {
		return nil, pwerrors.New(pwerrors.CodeInvalidConfig, "new", fmt.Errorf("page reader cannot be nil"))
	}

	w := &Walker{
		reader:     reader,
		dispatcher: dispatcher,
		identifier: DefaultIdentifier,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Identifier returns the attribute checked on every record.
func (w *Walker) Identifier() string {
	return w.identifier
}

// Scan reads the page at p's cursor and returns the advanced payload.
// Records missing the identifier are logged and otherwise counted normally.
func (w *Walker) Scan(ctx context.Context, p payload.Payload) (payload.Payload, error) {
	if err := p.Validate(); err != nil {
		return p, pwerrors.New(pwerrors.CodeInvalidInput, "scan", err)
	}

	page, err := w.reader.ReadPage(ctx, p.Cursor)
	if err != nil {
		return p, pwerrors.New(pwerrors.CodeScanFailed, "scan", err)
	}

	for _, record := range page.Records {
		if !record.Has(w.identifier) {
			w.warn(ctx, "record missing identifier",
				"identifier", w.identifier,
				"record", record.String())
		}
	}

	next := p.Advance(len(page.Records), page.Next)
	w.info(ctx, "scanned count",
		"scanned_count", next.ScannedCount,
		"page_records", len(page.Records),
		"evaluated_count", page.ScannedCount,
		"has_more", next.HasMore())

	return next, nil
}

// Continue dispatches the next invocation when p carries a cursor and
// reports whether it did.
func (w *Walker) Continue(ctx context.Context, p payload.Payload) (bool, error) {
	if !p.HasMore() {
		w.info(ctx, "NO MORE ITEMS TO SCAN!",
			"scanned_count", p.ScannedCount)
		return false, nil
	}

	if w.dispatcher == nil {
		return false, pwerrors.New(pwerrors.CodeDispatchFailed, "dispatch", fmt.Errorf("no dispatcher configured"))
	}
	if err := w.dispatcher.Dispatch(ctx, p); err != nil {
		return false, pwerrors.New(pwerrors.CodeDispatchFailed, "dispatch", err)
	}
	return true, nil
}

// Step scans one page and continues the chain if more records remain.
func (w *Walker) Step(ctx context.Context, p payload.Payload) (*Result, error) {
	next, err := w.Scan(ctx, p)
	if err != nil {
		return nil, err
	}

	continued, err := w.Continue(ctx, next)
	if err != nil {
		return nil, err
	}

	state := StateDone
	if continued {
		state = StateContinued
	}
	return &Result{Payload: next, State: state}, nil
}

// Drain scans pages in this process until the table is exhausted or ctx is
// done, and returns the final payload. Nothing is dispatched. On error, the
// returned payload is the last one successfully reached, so the walk can be
// resumed from it.
func (w *Walker) Drain(ctx context.Context, p payload.Payload) (payload.Payload, error) {
	for {
		if err := ctx.Err(); err != nil {
			return p, err
		}

		next, err := w.Scan(ctx, p)
		if err != nil {
			return p, err
		}
		p = next

		if !p.HasMore() {
			w.info(ctx, "NO MORE ITEMS TO SCAN!",
				"scanned_count", p.ScannedCount)
			return p, nil
		}
	}
}

func (w *Walker) info(ctx context.Context, msg string, args ...any) {
	if w.logger != nil {
		w.logger.InfoContext(ctx, msg, args...)
	}
}

func (w *Walker) warn(ctx context.Context, msg string, args ...any) {
	if w.logger != nil {
		w.logger.WarnContext(ctx, msg, args...)
	}
}
