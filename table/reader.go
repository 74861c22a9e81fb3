package table

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
)

// Page is the result of one table read.
type Page struct {
	// Records are the items returned, in the table's scan order.
	Records []Record

	// Next is the continuation key. It is absent exactly when the table has
	// been fully scanned.
	Next payload.Cursor

	// ScannedCount is the number of items the table evaluated for this page,
	// as reported by DynamoDB.
	ScannedCount int32
}

// Reader reads pages from a single DynamoDB table.
//
// Thread Safety: a Reader is immutable after construction and safe for
// concurrent use.
type Reader struct {
	api            DynamoDBAPI
	tableName      string
	pageSize       int32
	consistentRead bool
	logger         *slog.Logger
}

// NewReader creates a Reader for tableName.
func NewReader(api DynamoDBAPI, tableName string, opts ...Option) (*Reader, error) {
	if api == nil {
		return nil, fmt.Errorf("%w: dynamodb client cannot be nil", ErrInvalidInput)
	}
	if tableName == "" {
		return nil, fmt.Errorf("%w: table name cannot be empty", ErrInvalidInput)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.pageSize < 1 || options.pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page size %d out of range 1..%d", ErrInvalidInput, options.pageSize, MaxPageSize)
	}

	return &Reader{
		api:            api,
		tableName:      tableName,
		pageSize:       options.pageSize,
		consistentRead: options.consistentRead,
		logger:         options.logger,
	}, nil
}

// TableName returns the name of the table being read.
func (r *Reader) TableName() string {
	return r.tableName
}

// PageSize returns the number of items requested per page.
func (r *Reader) PageSize() int32 {
	return r.pageSize
}

// ReadPage reads one page starting after startAfter, or from the beginning
// of the table when startAfter is absent.
func (r *Reader) ReadPage(ctx context.Context, startAfter payload.Cursor) (*Page, error) {
	input := &dynamodb.ScanInput{
		TableName:         aws.String(r.tableName),
		Limit:             aws.Int32(r.pageSize),
		ExclusiveStartKey: startAfter.Key(),
	}
	if r.consistentRead {
		input.ConsistentRead = aws.Bool(true)
	}

	if r.logger != nil {
		r.logger.DebugContext(ctx, "scanning page",
			"table_name", r.tableName,
			"page_size", r.pageSize,
			"resume", !startAfter.IsZero())
	}

	output, err := r.api.Scan(ctx, input)
	if err != nil {
		return nil, &Error{Op: "scan", Table: r.tableName, Err: classify(err)}
	}
	if output == nil {
		return nil, &Error{Op: "scan", Table: r.tableName, Err: fmt.Errorf("empty response")}
	}

	records := make([]Record, len(output.Items))
	for i, item := range output.Items {
		records[i] = Record(item)
	}

	return &Page{
		Records:      records,
		Next:         payload.FromKey(output.LastEvaluatedKey),
		ScannedCount: output.ScannedCount,
	}, nil
}
