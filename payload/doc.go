// Package payload defines the state carried from one invocation of the page
// walker to the next: the running count of scanned records and the opaque
// resume cursor returned by the table.
//
// The payload is the only channel between invocations. It is created fresh by
// each invocation, consumed within it, and never stored.
//
// Wire format
//
// The JSON form matches what the function sends to itself:
//
//	{"ScannedCount": 2000, "LastEvaluatedKey": {"codeUAI": {"S": "0750001A"}}}
//
// The cursor is kept in DynamoDB JSON so it can be handed back to the table
// unchanged. External triggers may name it resumeCursor instead.
package payload
