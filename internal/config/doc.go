// Package config loads the static configuration of the page walker from the
// environment.
//
// All settings are read from variables prefixed with PAGEWALKER_ (for
// example PAGEWALKER_TABLE_NAME). The region additionally falls back to the
// standard AWS_REGION variable that the Lambda runtime always sets.
package config
