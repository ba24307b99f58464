package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/leapstack-labs/sqlround/pkg/format"
	"github.com/leapstack-labs/sqlround/pkg/parser"
)

// OutputModes lists the accepted values of the output key.
var OutputModes = []string{"auto", "text", "markdown", "json", "yaml"}

// Validate checks every key and reports all offending ones. An
// unimplemented dialect such as mysql is valid here; it fails when the
// engine is created.
func (c *Config) Validate() error {
	var errs []error

	if _, err := dialect.ParseID(c.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("dialect: %w", err))
	}
	if !slices.Contains(OutputModes, strings.ToLower(c.Output)) {
		errs = append(errs, fmt.Errorf("output: invalid mode %q (valid: %s)", c.Output, strings.Join(OutputModes, ", ")))
	}
	if c.Format.Indent < format.MinIndent || c.Format.Indent > format.MaxIndent {
		errs = append(errs, fmt.Errorf("format.indent: %d is outside %d..%d", c.Format.Indent, format.MinIndent, format.MaxIndent))
	}
	if _, err := format.ParseKeywordCase(c.Format.KeywordCase); err != nil {
		errs = append(errs, fmt.Errorf("format.keyword_case: %w", err))
	}
	if c.Parser.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("parser.max_depth: must be positive, got %d", c.Parser.MaxDepth))
	}
	if c.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: must be positive, got %s", c.Watch.Debounce))
	}
	if c.Serve.Addr == "" {
		errs = append(errs, errors.New("serve.addr: is required"))
	}
	if c.Serve.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("serve.shutdown_timeout: must be positive, got %s", c.Serve.ShutdownTimeout))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// DialectID resolves the configured dialect.
func (c *Config) DialectID() (dialect.ID, error) {
	return dialect.ParseID(c.Dialect)
}

// FormatOptions returns the formatter options.
func (c *Config) FormatOptions() format.Options {
	kc, _ := format.ParseKeywordCase(c.Format.KeywordCase)
	return format.Options{IndentWidth: c.Format.Indent, KeywordCase: kc}
}

// EngineOptions returns the pipeline options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Parser: parser.Options{MaxDepth: c.Parser.MaxDepth},
		Format: c.FormatOptions(),
	}
}

// NewPipeline builds the pipeline for the configured dialect. Unsupported
// dialects surface here as *dialect.ConfigurationError.
func (c *Config) NewPipeline() (*engine.Pipeline, error) {
	id, err := c.DialectID()
	if err != nil {
		return nil, err
	}
	return engine.New(id, c.EngineOptions())
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("invalid level %q (valid: debug, info, warn, error)", s)
}
