package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrUnsupportedKeyType is returned when a cursor attribute is not one of the
// DynamoDB key types (S, N, B).
var ErrUnsupportedKeyType = errors.New("unsupported key attribute type")

// Cursor is the table position to resume scanning from. It is the
// LastEvaluatedKey of a DynamoDB scan and is passed back to the table as the
// ExclusiveStartKey of the next one. Callers must treat it as opaque.
type Cursor map[string]types.AttributeValue

// IsZero reports whether the cursor is absent.
func (c Cursor) IsZero() bool {
	return len(c) == 0
}

// Key returns the cursor as a DynamoDB key, or nil when the cursor is absent.
func (c Cursor) Key() map[string]types.AttributeValue {
	if c.IsZero() {
		return nil
	}
	return maps.Clone(map[string]types.AttributeValue(c))
}

// keyAttribute is the DynamoDB JSON form of a single key attribute.
type keyAttribute struct {
	S *string `json:"S,omitempty"`
	N *string `json:"N,omitempty"`
	B []byte  `json:"B,omitempty"`
}

// MarshalJSON encodes the cursor in DynamoDB JSON. An absent cursor encodes as null.
func (c Cursor) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}

	out := make(map[string]keyAttribute, len(c))
	for name, av := range c {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			out[name] = keyAttribute{S: &v.Value}
		case *types.AttributeValueMemberN:
			out[name] = keyAttribute{N: &v.Value}
		case *types.AttributeValueMemberB:
			out[name] = keyAttribute{B: v.Value}
		default:
			return nil, fmt.Errorf("cursor attribute %q: %w: %T", name, ErrUnsupportedKeyType, av)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a cursor from DynamoDB JSON. null and {} decode to an
// absent cursor.
func (c *Cursor) UnmarshalJSON(data []byte) error {
	var raw map[string]keyAttribute
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode cursor: %w", err)
	}
	if len(raw) == 0 {
		*c = nil
		return nil
	}

	out := make(Cursor, len(raw))
	for name, attr := range raw {
		switch {
		case attr.S != nil:
			out[name] = &types.AttributeValueMemberS{Value: *attr.S}
		case attr.N != nil:
			out[name] = &types.AttributeValueMemberN{Value: *attr.N}
		case attr.B != nil:
			out[name] = &types.AttributeValueMemberB{Value: attr.B}
		default:
			return fmt.Errorf("cursor attribute %q: %w", name, ErrUnsupportedKeyType)
		}
	}
	*c = out
	return nil
}

// ParseCursor decodes a cursor from its DynamoDB JSON text. An empty string
// yields an absent cursor.
func ParseCursor(s string) (Cursor, error) {
	if s == "" {
		return nil, nil
	}
	var c Cursor
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return nil, err
	}
	return c, nil
}

// String returns the DynamoDB JSON text of the cursor, for logging.
func (c Cursor) String() string {
	b, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid cursor: %v>", err)
	}
	return string(b)
}

// FromKey wraps a DynamoDB key as a cursor.
func FromKey(key map[string]types.AttributeValue) Cursor {
	if len(key) == 0 {
		return nil
	}
	return Cursor(key)
}
