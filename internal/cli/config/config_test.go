package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/format"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlags mirrors the persistent flags registered by the root command.
func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("dialect", "d", "", "")
	fs.StringP("output", "o", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("no-color", false, "")
	fs.Int("indent", 0, "")
	fs.String("keyword-case", "", "")
	fs.Int("max-depth", 0, "")
	fs.Duration("debounce", 0, "")
	fs.Bool("check", false, "")
	return fs
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()

	writeConfig(t, dir, "sqlround.yaml", `
dialect: mssql
output: json
format:
  indent: 4
  keyword_case: lower
watch:
  debounce: 1s
serve:
  addr: ":9000"
`)
	t.Setenv("SQLROUND_FORMAT__INDENT", "6")
	t.Setenv("SQLROUND_SERVE__SHUTDOWN_TIMEOUT", "30s")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--indent", "8", "-d", "postgres", "--check"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect, "flag beats file")
	assert.Equal(t, "json", cfg.Output, "file beats default")
	assert.Equal(t, 8, cfg.Format.Indent, "flag beats env and file")
	assert.Equal(t, "lower", cfg.Format.KeywordCase)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.Equal(t, 30*time.Second, cfg.Serve.ShutdownTimeout, "env beats default")
	assert.Equal(t, DefaultMaxDepth, cfg.Parser.MaxDepth)
	assert.Equal(t, filepath.Join(dir, "sqlround.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_SearchesParents(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".sqlround.yaml", "dialect: sqlanywhere\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlanywhere", cfg.Dialect)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	path := writeConfig(t, t.TempDir(), "custom.yaml", "parser:\n  max_depth: 50\n")
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Parser.MaxDepth)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()
	writeConfig(t, dir, "sqlround.yaml", `
dialect: oracle
format:
  indent: 12
  keyword_case: title
log:
  level: loud
`)

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	for _, key := range []string{"dialect:", "format.indent:", "format.keyword_case:", "log.level:"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"defaults", func(*Config) {}, ""},
		{"mysql is valid config", func(c *Config) { c.Dialect = "mysql" }, ""},
		{"alias", func(c *Config) { c.Dialect = "tsql" }, ""},
		{"bad output", func(c *Config) { c.Output = "html" }, "output:"},
		{"zero indent", func(c *Config) { c.Format.Indent = 0 }, "format.indent:"},
		{"negative depth", func(c *Config) { c.Parser.MaxDepth = -1 }, "parser.max_depth:"},
		{"zero debounce", func(c *Config) { c.Watch.Debounce = 0 }, "watch.debounce:"},
		{"empty addr", func(c *Config) { c.Serve.Addr = "" }, "serve.addr:"},
		{"zero shutdown", func(c *Config) { c.Serve.ShutdownTimeout = 0 }, "serve.shutdown_timeout:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestConfig_Conversions(t *testing.T) {
	cfg := Default()
	cfg.Dialect = "sqlserver"
	cfg.Format = FormatConfig{Indent: 4, KeywordCase: "lower"}
	cfg.Parser.MaxDepth = 10

	id, err := cfg.DialectID()
	require.NoError(t, err)
	assert.Equal(t, dialect.MsSqlServer, id)

	opts := cfg.EngineOptions()
	assert.Equal(t, 10, opts.Parser.MaxDepth)
	assert.Equal(t, format.Options{IndentWidth: 4, KeywordCase: format.KeywordLower}, opts.Format)

	p, err := cfg.NewPipeline()
	require.NoError(t, err)
	assert.Equal(t, dialect.MsSqlServer, p.Dialect().ID)

	cfg.Dialect = "mysql"
	_, err = cfg.NewPipeline()
	assert.ErrorIs(t, err, dialect.ErrUnsupportedDialect)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	var buf bytes.Buffer
	logger := NewLogger(&buf, cfg)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	cfg.Verbose = true
	logger = NewLogger(&buf, cfg)
	logger.Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}

func TestGetLogger_Fallback(t *testing.T) {
	assert.NotNil(t, GetLogger(t.Context()))

	var buf bytes.Buffer
	logger := NewLogger(&buf, Default())
	ctx := WithLogger(t.Context(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
