package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNegativeCount is returned when a payload carries a negative scanned count.
	ErrNegativeCount = errors.New("scanned count must not be negative")

	// ErrConflictingCursor is returned when an event carries both
	// LastEvaluatedKey and resumeCursor.
	ErrConflictingCursor = errors.New("event carries both LastEvaluatedKey and resumeCursor")
)

// Payload is the state handed from one invocation of the chain to the next.
type Payload struct {
	// ScannedCount is the running total of records observed so far in the
	// chain. It never decreases.
	ScannedCount int64 `json:"ScannedCount"`

	// Cursor is the position to resume from. Absent on the first invocation,
	// and absent after a scan that reached the end of the table.
	Cursor Cursor `json:"LastEvaluatedKey,omitempty"`
}

// Start returns the payload of the first invocation of a chain.
func Start() Payload {
	return Payload{}
}

// HasMore reports whether the payload carries a resume cursor, i.e. whether
// a continuation should be dispatched.
func (p Payload) HasMore() bool {
	return !p.Cursor.IsZero()
}

// Validate checks the payload invariants.
func (p Payload) Validate() error {
	if p.ScannedCount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, p.ScannedCount)
	}
	return nil
}

// Advance returns the payload after a page of n records, resuming at next.
func (p Payload) Advance(n int, next Cursor) Payload {
	return Payload{
		ScannedCount: p.ScannedCount + int64(n),
		Cursor:       next,
	}
}

// Encode serializes the payload for the next invocation.
func (p Payload) Encode() ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return b, nil
}

// event is the accepted input form. resumeCursor is the name external
// triggers use for the cursor; chained invocations send LastEvaluatedKey.
type event struct {
	Payload
	ResumeCursor Cursor `json:"resumeCursor"`
}

// Decode parses an invocation event. An empty or null event is the first
// invocation of a chain.
func Decode(data []byte) (Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Start(), nil
	}

	var e event
	if err := json.Unmarshal(data, &e); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}

	p := e.Payload
	if !e.ResumeCursor.IsZero() {
		if !p.Cursor.IsZero() {
			return Payload{}, ErrConflictingCursor
		}
		p.Cursor = e.ResumeCursor
	}
	if err := p.Validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}
