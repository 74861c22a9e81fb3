// Command pagewalker is the Lambda function that scans one page of a
// DynamoDB table and asynchronously invokes itself for the next page.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/internal/app"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/internal/config"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/internal/logging"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/walker"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "pagewalker: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	base := cfg.Logger(os.Stdout)
	logger := slog.New(logging.NewLambdaHandler(base.Handler())).With(
		"table_name", cfg.TableName,
		"function_name", cfg.FunctionName,
	)

	w, err := app.Load(ctx, cfg, logger)
	if err != nil {
		return err
	}

	lambda.Start(newHandler(w))
	return nil
}

// newHandler adapts the walker to the Lambda runtime. Failures are reported
// in the response, never as an invocation error, so Lambda does not retry
// the asynchronous event on its own.
func newHandler(w *walker.Walker) func(context.Context, json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
		return w.HandleEvent(ctx, event), nil
	}
}
