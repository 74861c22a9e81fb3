// Package walker runs one step of a self-recursing table scan.
//
// A step scans one page starting at the payload's cursor, warns about records
// that lack the identifier attribute, adds the page length to the running
// count, and when the table returned a continuation key, dispatches the next
// invocation with the updated payload. The chain ends when a page comes back
// without a continuation key.
//
//	SCANNING --(key returned)--> CONTINUED --(next invocation)--> SCANNING
//	SCANNING --(no key)--------> DONE
//
// Handle wraps a step for a synchronous caller: any failure is logged and
// turned into a 500 response, success into a 200. Nothing is retried.
//
// Drain is the in-process alternative: it scans page after page in one
// process without dispatching anything.
package walker
