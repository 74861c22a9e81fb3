// Package table reads a DynamoDB table one bounded page at a time.
//
// A Reader issues a single Scan per call, starting after an optional resume
// cursor, and hands back the records together with the table's continuation
// key. It never retries on its own; retry behavior is left to the SDK client
// it is given.
package table
