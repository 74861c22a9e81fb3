package table

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Record is a single table item. Only the identifier attribute is ever
// inspected; everything else is opaque.
type Record map[string]types.AttributeValue

// Has reports whether the record carries a value for attr. An absent
// attribute or a DynamoDB NULL both count as missing.
func (r Record) Has(attr string) bool {
	av, ok := r[attr]
	if !ok || av == nil {
		return false
	}
	if null, ok := av.(*types.AttributeValueMemberNULL); ok && null.Value {
		return false
	}
	return true
}

// String renders the record as plain JSON for log output. Numbers keep their
// exact DynamoDB text, so large numeric keys stay recognisable.
func (r Record) String() string {
	var plain map[string]any
	err := attributevalue.UnmarshalMapWithOptions(r, &plain, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return fmt.Sprintf("<unrenderable record: %v>", err)
	}
	b, err := json.Marshal(jsonNumbers(plain))
	if err != nil {
		return fmt.Sprintf("<unrenderable record: %v>", err)
	}
	return string(b)
}

// jsonNumbers replaces decoded attributevalue.Number values with json.Number
// so they render as JSON numbers rather than strings.
func jsonNumbers(v any) any {
	switch t := v.(type) {
	case attributevalue.Number:
		return json.Number(t)
	case []attributevalue.Number:
		out := make([]json.Number, len(t))
		for i, n := range t {
			out[i] = json.Number(n)
		}
		return out
	case map[string]any:
		for k, e := range t {
			t[k] = jsonNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = jsonNumbers(e)
		}
		return t
	default:
		return v
	}
}
