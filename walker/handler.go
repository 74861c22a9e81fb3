package walker

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	pwerrors "github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/errors"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
)

// doneBody is the JSON encoded success message.
var doneBody = mustJSON("Done!")

// Handle runs one step and converts its outcome into a response. Success
// means this invocation's scan and optional dispatch completed, not that the
// whole chain has finished.
func (w *Walker) Handle(ctx context.Context, p payload.Payload) events.APIGatewayProxyResponse {
	if _, err := w.Step(ctx, p); err != nil {
		return w.Fail(ctx, err)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       doneBody,
	}
}

// HandleEvent decodes a raw invocation event and runs Handle. Events that
// cannot be decoded fail without touching the table.
func (w *Walker) HandleEvent(ctx context.Context, event json.RawMessage) events.APIGatewayProxyResponse {
	p, err := payload.Decode(event)
	if err != nil {
		return w.Fail(ctx, pwerrors.New(pwerrors.CodeInvalidInput, "decode", err))
	}
	return w.Handle(ctx, p)
}

// Fail logs err and returns the failure response carrying its JSON form.
func (w *Walker) Fail(ctx context.Context, err error) events.APIGatewayProxyResponse {
	if w.logger != nil {
		code := pwerrors.CodeOf(err)
		w.logger.ErrorContext(ctx, failureMessage(code),
			"code", code,
			"error", err)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       string(pwerrors.Marshal(err)),
	}
}

func failureMessage(code pwerrors.ErrorCode) string {
	switch code {
	case pwerrors.CodeScanFailed:
		return "SCAN ERROR"
	case pwerrors.CodeDispatchFailed:
		return "INVOKE ERROR"
	case pwerrors.CodeInvalidInput:
		return "INPUT ERROR"
	default:
		return "SCAN/INVOKE ERROR"
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
