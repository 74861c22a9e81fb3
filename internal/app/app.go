// Package app wires the page walker from its configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/dispatch"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/internal/config"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/table"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/walker"
)

// Clients are the AWS service clients the walker talks to.
type Clients struct {
	DynamoDB table.DynamoDBAPI
	Lambda   dispatch.LambdaAPI
}

// NewClients creates DynamoDB and Lambda clients from an SDK configuration.
func NewClients(awsCfg aws.Config) Clients {
	return Clients{
		DynamoDB: dynamodb.NewFromConfig(awsCfg),
		Lambda:   lambda.NewFromConfig(awsCfg),
	}
}

// NewWalker builds a walker over the configured table that continues the
// chain by invoking the configured function. A nil Lambda client yields a
// walker without a dispatcher, suitable for Drain.
func NewWalker(cfg *config.Config, clients Clients, logger *slog.Logger) (*walker.Walker, error) {
	reader, err := table.NewReader(clients.DynamoDB, cfg.TableName,
		table.WithPageSize(cfg.PageSize),
		table.WithConsistentRead(cfg.ConsistentRead),
		table.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create table reader: %w", err)
	}

	var d dispatch.Dispatcher
	if clients.Lambda != nil {
		ld, err := dispatch.NewLambdaDispatcher(clients.Lambda, cfg.FunctionName, dispatch.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create dispatcher: %w", err)
		}
		d = ld
	}

	return walker.New(reader, d,
		walker.WithIdentifier(cfg.Identifier),
		walker.WithLogger(logger),
	)
}

// Load reads the configuration, builds the clients and returns the walker.
func Load(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*walker.Walker, error) {
	awsCfg, err := cfg.AWS(ctx)
	if err != nil {
		return nil, err
	}
	return NewWalker(cfg, NewClients(awsCfg), logger)
}
