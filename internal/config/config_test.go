package config

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pwerrors "github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"AWS_REGION",
		"PAGEWALKER_REGION",
		"PAGEWALKER_TABLE_NAME",
		"PAGEWALKER_FUNCTION_NAME",
		"PAGEWALKER_PAGE_SIZE",
		"PAGEWALKER_IDENTIFIER",
		"PAGEWALKER_ENDPOINT",
		"PAGEWALKER_MAX_ATTEMPTS",
		"PAGEWALKER_CONSISTENT_READ",
		"PAGEWALKER_LOG_LEVEL",
		"PAGEWALKER_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, DefaultTableName, cfg.TableName)
	assert.Equal(t, DefaultFunctionName, cfg.FunctionName)
	assert.Equal(t, int32(DefaultPageSize), cfg.PageSize)
	assert.Equal(t, DefaultIdentifier, cfg.Identifier)
	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Empty(t, cfg.Endpoint)
	assert.False(t, cfg.ConsistentRead)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("PAGEWALKER_TABLE_NAME", "Schools")
	t.Setenv("PAGEWALKER_FUNCTION_NAME", "arn:aws:lambda:us-east-1:000000000000:function:walk")
	t.Setenv("PAGEWALKER_PAGE_SIZE", "25")
	t.Setenv("PAGEWALKER_IDENTIFIER", "uai")
	t.Setenv("PAGEWALKER_ENDPOINT", "http://localhost:4566")
	t.Setenv("PAGEWALKER_MAX_ATTEMPTS", "3")
	t.Setenv("PAGEWALKER_CONSISTENT_READ", "true")
	t.Setenv("PAGEWALKER_LOG_LEVEL", "DEBUG")
	t.Setenv("PAGEWALKER_LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "Schools", cfg.TableName)
	assert.Equal(t, "arn:aws:lambda:us-east-1:000000000000:function:walk", cfg.FunctionName)
	assert.Equal(t, int32(25), cfg.PageSize)
	assert.Equal(t, "uai", cfg.Identifier)
	assert.Equal(t, "http://localhost:4566", cfg.Endpoint)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.True(t, cfg.ConsistentRead)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadRegionPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("PAGEWALKER_REGION", "eu-central-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "page size too large", key: "PAGEWALKER_PAGE_SIZE", value: "20000"},
		{name: "negative page size", key: "PAGEWALKER_PAGE_SIZE", value: "-1"},
		{name: "short table name", key: "PAGEWALKER_TABLE_NAME", value: "ab"},
		{name: "bad endpoint", key: "PAGEWALKER_ENDPOINT", value: "not a url"},
		{name: "bad log level", key: "PAGEWALKER_LOG_LEVEL", value: "verbose"},
		{name: "bad log format", key: "PAGEWALKER_LOG_FORMAT", value: "xml"},
		{name: "zero attempts", key: "PAGEWALKER_MAX_ATTEMPTS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, pwerrors.HasCode(err, pwerrors.CodeInvalidConfig))
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.Logger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "table_name", "Etablissements")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "Etablissements", line["table_name"])

	buf.Reset()
	cfg = &Config{LogLevel: "debug", LogFormat: "text"}
	cfg.Logger(&buf).Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestAWS(t *testing.T) {
	cfg := &Config{Region: "eu-west-1", MaxAttempts: 2, Endpoint: "http://localhost:4566"}
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	awsCfg, err := cfg.AWS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", awsCfg.Region)
	assert.Equal(t, 2, awsCfg.RetryMaxAttempts)
	require.NotNil(t, awsCfg.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *awsCfg.BaseEndpoint)
}
