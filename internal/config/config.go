package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	pwerrors "github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/errors"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "PAGEWALKER"

// Deployment defaults.
const (
	DefaultRegion       = "eu-west-1"
	DefaultTableName    = "Etablissements"
	DefaultFunctionName = "recursive_get_db_2"
	DefaultPageSize     = 1000
	DefaultIdentifier   = "codeUAI"
	DefaultMaxAttempts  = 1
)

// Config is the static configuration of one deployment.
type Config struct {
	// Region is the AWS region of both the table and the function.
	Region string `mapstructure:"region" validate:"required"`

	// TableName is the table to walk.
	TableName string `mapstructure:"table_name" validate:"required,min=3,max=255"`

	// FunctionName is the Lambda function invoked for the next page.
	FunctionName string `mapstructure:"function_name" validate:"required"`

	// PageSize is the number of records requested per page.
	PageSize int32 `mapstructure:"page_size" validate:"min=1,max=10000"`

	// Identifier is the attribute every record is expected to carry.
	Identifier string `mapstructure:"identifier" validate:"required"`

	// Endpoint overrides the AWS endpoint for both services, e.g. LocalStack.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`

	// MaxAttempts is the SDK attempt budget per call; 1 disables retries.
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=1,max=10"`

	// ConsistentRead requests strongly consistent scans.
	ConsistentRead bool `mapstructure:"consistent_read"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat is json or text.
	LogFormat string `mapstructure:"log_format" validate:"oneof=json text"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("table_name", DefaultTableName)
	v.SetDefault("function_name", DefaultFunctionName)
	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("identifier", DefaultIdentifier)
	v.SetDefault("endpoint", "")
	v.SetDefault("max_attempts", DefaultMaxAttempts)
	v.SetDefault("consistent_read", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// PAGEWALKER_REGION wins over AWS_REGION, which wins over the default.
	if err := v.BindEnv("region", EnvPrefix+"_REGION", "AWS_REGION"); err != nil {
		return nil, pwerrors.New(pwerrors.CodeInvalidConfig, "load", err)
	}
	v.SetDefault("region", DefaultRegion)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, pwerrors.New(pwerrors.CodeInvalidConfig, "load", fmt.Errorf("decode environment: %w", err))
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return pwerrors.New(pwerrors.CodeInvalidConfig, "validate", err)
	}
	return nil
}

// AWS builds the SDK configuration shared by the DynamoDB and Lambda clients.
func (c *Config) AWS(ctx context.Context) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
		awsconfig.WithRetryMaxAttempts(c.MaxAttempts),
	}
	if c.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(c.Endpoint))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// Logger builds the structured logger described by the configuration.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func (c *Config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
