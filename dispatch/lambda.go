package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
)

// MaxAsyncPayloadSize is the largest event Lambda accepts for an
// asynchronous invocation.
const MaxAsyncPayloadSize = 256 * 1024

var (
	// ErrNotAccepted is returned when Lambda answers an asynchronous invoke
	// with anything other than 202 Accepted.
	ErrNotAccepted = errors.New("dispatch: invocation not accepted")

	// ErrPayloadTooLarge is returned when the encoded payload exceeds MaxAsyncPayloadSize.
	ErrPayloadTooLarge = errors.New("dispatch: payload too large")

	// ErrInvalidInput indicates that the dispatcher was misconfigured.
	ErrInvalidInput = errors.New("dispatch: invalid input")
)

// LambdaAPI defines the Lambda operations used by this package.
type LambdaAPI interface {
	// Invoke invokes a Lambda function.
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Verify that the AWS Lambda client implements our interface
var _ LambdaAPI = (*lambda.Client)(nil)

// LambdaDispatcher dispatches payloads as asynchronous Lambda invocations.
type LambdaDispatcher struct {
	api          LambdaAPI
	functionName string
	logger       *slog.Logger
}

// LambdaOption is a functional option for configuring a LambdaDispatcher.
type LambdaOption func(*LambdaDispatcher)

// WithLogger configures the dispatcher with a logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) LambdaOption {
	return func(d *LambdaDispatcher) {
		d.logger = logger
	}
}

// NewLambdaDispatcher creates a dispatcher invoking functionName, which may be
// a function name, ARN, or qualified name.
func NewLambdaDispatcher(api LambdaAPI, functionName string, opts ...LambdaOption) (*LambdaDispatcher, error) {
	if api == nil {
		return nil, fmt.Errorf("%w: lambda client cannot be nil", ErrInvalidInput)
	}
	if functionName == "" {
		return nil, fmt.Errorf("%w: function name cannot be empty", ErrInvalidInput)
	}

	d := &LambdaDispatcher{
		api:          api,
		functionName: functionName,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch queues an asynchronous invocation of the target function with p
// as its event.
func (d *LambdaDispatcher) Dispatch(ctx context.Context, p payload.Payload) error {
	body, err := p.Encode()
	if err != nil {
		return err
	}
	if len(body) > MaxAsyncPayloadSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(body))
	}

	if d.logger != nil {
		d.logger.DebugContext(ctx, "invoking next page",
			"function_name", d.functionName,
			"scanned_count", p.ScannedCount)
	}

	output, err := d.api.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(d.functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        body,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("invoke %s: %s: %s: %w",
				d.functionName, apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
		}
		return fmt.Errorf("invoke %s: %w", d.functionName, err)
	}

	if output == nil {
		return fmt.Errorf("%w: %s returned no response", ErrNotAccepted, d.functionName)
	}
	if output.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: %s returned status %d", ErrNotAccepted, d.functionName, output.StatusCode)
	}
	if output.FunctionError != nil {
		return fmt.Errorf("%w: %s: %s", ErrNotAccepted, d.functionName, aws.ToString(output.FunctionError))
	}

	if d.logger != nil {
		d.logger.InfoContext(ctx, "next page invoked",
			"function_name", d.functionName,
			"scanned_count", p.ScannedCount)
	}
	return nil
}
