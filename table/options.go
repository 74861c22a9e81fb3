package table

import "log/slog"

const (
	// DefaultPageSize is the number of items requested per scan.
	DefaultPageSize int32 = 1000

	// MaxPageSize bounds the page size a reader will request.
	MaxPageSize int32 = 10000
)

// readerOptions holds configuration options for a Reader.
type readerOptions struct {
	logger         *slog.Logger
	pageSize       int32
	consistentRead bool
}

// Option is a functional option for configuring a Reader.
type Option func(*readerOptions)

// WithLogger configures the reader with a logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *readerOptions) {
		opts.logger = logger
	}
}

// WithPageSize sets the number of items requested per page.
// Values outside 1..MaxPageSize are rejected by NewReader.
func WithPageSize(size int32) Option {
	return func(opts *readerOptions) {
		opts.pageSize = size
	}
}

// WithConsistentRead requests strongly consistent scans.
func WithConsistentRead(consistent bool) Option {
	return func(opts *readerOptions) {
		opts.consistentRead = consistent
	}
}

func defaultOptions() *readerOptions {
	return &readerOptions{
		pageSize: DefaultPageSize,
	}
}
