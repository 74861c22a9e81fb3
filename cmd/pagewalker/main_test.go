package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/dispatch"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/table"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/walker"
)

type onePage struct {
	next payload.Cursor
}

func (o onePage) ReadPage(context.Context, payload.Cursor) (*table.Page, error) {
	return &table.Page{
		Records: []table.Record{{"codeUAI": &types.AttributeValueMemberS{Value: "0750001A"}}},
		Next:    o.next,
	}, nil
}

func TestHandler(t *testing.T) {
	rec := &dispatch.Recorder{}
	w, err := walker.New(onePage{next: payload.Cursor{"codeUAI": &types.AttributeValueMemberS{Value: "0750001A"}}}, rec)
	require.NoError(t, err)
	h := newHandler(w)

	resp, err := h(context.Background(), json.RawMessage(`{"ScannedCount":0}`))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, `"Done!"`, resp.Body)
	require.Equal(t, 1, rec.Len())
	assert.Equal(t, int64(1), rec.Payloads()[0].ScannedCount)

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"statusCode":200`)
	assert.Contains(t, string(out), `"body":"\"Done!\""`)
}

func TestHandlerReportsFailureInResponse(t *testing.T) {
	w, err := walker.New(onePage{}, nil)
	require.NoError(t, err)
	h := newHandler(w)

	resp, err := h(context.Background(), json.RawMessage(`{"ScannedCount":-5}`))
	require.NoError(t, err, "failures must not surface as invocation errors")
	assert.Equal(t, 500, resp.StatusCode)
	assert.Contains(t, resp.Body, "INVALID_INPUT")
}
