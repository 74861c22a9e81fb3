package table

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBAPI defines the DynamoDB operations used by this package.
// It allows the Reader to be tested with mocks.
type DynamoDBAPI interface {
	// Scan reads one page of items from a table.
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Verify that the AWS DynamoDB client implements our interface
var _ DynamoDBAPI = (*dynamodb.Client)(nil)
