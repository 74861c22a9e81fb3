// Package dispatch starts the next invocation of the page walk chain.
//
// The production Dispatcher asynchronously invokes a Lambda function with
// InvocationType Event: the call returns as soon as Lambda has queued the
// event and never observes the outcome of the invocation it started.
package dispatch
