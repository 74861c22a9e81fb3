// Package logging adds Lambda invocation metadata to structured log records.
package logging

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// RequestIDKey is the attribute carrying the Lambda request ID.
const RequestIDKey = "request_id"

// LambdaHandler decorates a slog.Handler with the request ID of the Lambda
// invocation found in the record's context, if any.
type LambdaHandler struct {
	slog.Handler
}

// NewLambdaHandler wraps h.
func NewLambdaHandler(h slog.Handler) *LambdaHandler {
	return &LambdaHandler{Handler: h}
}

// Handle adds the request ID and forwards the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *LambdaHandler) Handle(ctx context.Context, r slog.Record) error {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		r.AddAttrs(slog.String(RequestIDKey, lc.AwsRequestID))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a LambdaHandler over the underlying handler's WithAttrs.
func (h *LambdaHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LambdaHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup returns a LambdaHandler over the underlying handler's WithGroup.
func (h *LambdaHandler) WithGroup(name string) slog.Handler {
	return &LambdaHandler{Handler: h.Handler.WithGroup(name)}
}
