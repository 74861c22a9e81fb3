//go:build integration

package walker_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/dispatch"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/table"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/walker"
)

type school struct {
	CodeUAI string `dynamodbav:"codeUAI"`
	Name    string `dynamodbav:"name,omitempty"`
}

func seedSchools(t *testing.T, n int) *table.Reader {
	t.Helper()

	client := testutil.SetupDynamoDB(t)
	ctx := context.Background()
	tableName := "Etablissements"

	require.NoError(t, testutil.CreateTable(ctx, client, tableName, "codeUAI"))

	items := make([]school, n)
	for i := range items {
		items[i] = school{CodeUAI: fmt.Sprintf("%07dA", i), Name: fmt.Sprintf("school %d", i)}
	}
	require.NoError(t, testutil.PutItems(ctx, client, tableName, items))

	reader, err := table.NewReader(client, tableName, table.WithPageSize(1000))
	require.NoError(t, err)
	return reader
}

func TestIntegrationChain(t *testing.T) {
	reader := seedSchools(t, 2500)
	ctx := context.Background()

	rec := &dispatch.Recorder{}
	w, err := walker.New(reader, rec)
	require.NoError(t, err)

	p := payload.Start()
	pages := 0
	for {
		res, err := w.Step(ctx, p)
		require.NoError(t, err)
		pages++
		p = res.Payload
		if res.State == walker.StateDone {
			break
		}
		require.Less(t, pages, 10, "chain did not terminate")

		// Redeliver through the wire form, as Lambda would.
		sent := rec.Payloads()[rec.Len()-1]
		body, err := sent.Encode()
		require.NoError(t, err)
		p, err = payload.Decode(body)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, 2, rec.Len())
	assert.EqualValues(t, 2500, p.ScannedCount)
	assert.True(t, p.Cursor.IsZero())
}

func TestIntegrationDrain(t *testing.T) {
	reader := seedSchools(t, 1200)

	w, err := walker.New(reader, nil)
	require.NoError(t, err)

	final, err := w.Drain(context.Background(), payload.Start())
	require.NoError(t, err)
	assert.EqualValues(t, 1200, final.ScannedCount)
	assert.False(t, final.HasMore())
}

func TestIntegrationHandleEmptyEvent(t *testing.T) {
	reader := seedSchools(t, 10)

	rec := &dispatch.Recorder{}
	w, err := walker.New(reader, rec)
	require.NoError(t, err)

	resp := w.HandleEvent(context.Background(), nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, `"Done!"`, resp.Body)
	assert.Zero(t, rec.Len())
}
