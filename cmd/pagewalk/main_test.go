package main

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/dispatch"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/table"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/walker"
)

// countingTable serves n records in pages of size, keyed by position.
type countingTable struct {
	n, size int
}

func (c countingTable) ReadPage(_ context.Context, after payload.Cursor) (*table.Page, error) {
	start := 0
	if v, ok := after["pos"].(*types.AttributeValueMemberN); ok {
		last, err := strconv.Atoi(v.Value)
		if err != nil {
			return nil, err
		}
		start = last + 1
	}
	end := min(start+c.size, c.n)
	page := &table.Page{Records: make([]table.Record, end-start)}
	for i := range page.Records {
		page.Records[i] = table.Record{"codeUAI": &types.AttributeValueMemberS{Value: "x"}}
	}
	if end < c.n {
		page.Next = payload.Cursor{"pos": &types.AttributeValueMemberN{Value: strconv.Itoa(end - 1)}}
	}
	return page, nil
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, modeLoop, opts.mode)

	opts, err = parseFlags([]string{"--mode=step", "--count=2000", `--cursor={"pos":{"N":"1999"}}`})
	require.NoError(t, err)
	assert.Equal(t, modeStep, opts.mode)

	start, err := opts.start()
	require.NoError(t, err)
	assert.Equal(t, int64(2000), start.ScannedCount)
	assert.True(t, start.HasMore())

	_, err = parseFlags([]string{"--mode=forever"})
	require.Error(t, err)

	opts, err = parseFlags([]string{"--count=-1"})
	require.NoError(t, err)
	_, err = opts.start()
	require.ErrorIs(t, err, payload.ErrNegativeCount)
}

func TestWalkLoop(t *testing.T) {
	w, err := walker.New(countingTable{n: 2500, size: 1000}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, walk(context.Background(), w, modeLoop, payload.Start(), &out))
	assert.Equal(t, "DONE {\"ScannedCount\":2500}\n", out.String())
}

func TestWalkStep(t *testing.T) {
	rec := &dispatch.Recorder{}
	w, err := walker.New(countingTable{n: 2500, size: 1000}, rec)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, walk(context.Background(), w, modeStep, payload.Start(), &out))
	assert.Equal(t, 1, rec.Len())
	assert.Contains(t, out.String(), "CONTINUED")
	assert.Contains(t, out.String(), `"ScannedCount":1000`)
}

func TestWalkLoopCancelled(t *testing.T) {
	w, err := walker.New(countingTable{n: 2500, size: 1000}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err = walk(ctx, w, modeLoop, payload.Start(), &out)
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out.String(), "SCANNING")
}
