// Package config loads sqlround CLI configuration.
//
// Values are layered, lowest precedence first: built-in defaults, the
// YAML config file, SQLROUND_ environment variables, then flags that were
// set on the command line.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Dialect string       `koanf:"dialect"`
	Output  string       `koanf:"output"`
	Verbose bool         `koanf:"verbose"`
	NoColor bool         `koanf:"no_color"`
	Format  FormatConfig `koanf:"format"`
	Parser  ParserConfig `koanf:"parser"`
	Watch   WatchConfig  `koanf:"watch"`
	Serve   ServeConfig  `koanf:"serve"`
	Log     LogConfig    `koanf:"log"`
}

// FormatConfig controls the multi-line formatter.
type FormatConfig struct {
	Indent      int    `koanf:"indent"`
	KeywordCase string `koanf:"keyword_case"`
}

// ParserConfig controls the parser.
type ParserConfig struct {
	MaxDepth int `koanf:"max_depth"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
	Write    bool          `koanf:"write"`
}

// ServeConfig controls the HTTP API.
type ServeConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Default configuration values.
const (
	DefaultDialect         = "generic"
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultIndent          = 2
	DefaultKeywordCase     = "upper"
	DefaultMaxDepth        = 200
	DefaultDebounce        = 200 * time.Millisecond
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultLogLevel        = "warn"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Dialect: DefaultDialect,
		Output:  DefaultOutput,
		Format:  FormatConfig{Indent: DefaultIndent, KeywordCase: DefaultKeywordCase},
		Parser:  ParserConfig{MaxDepth: DefaultMaxDepth},
		Watch:   WatchConfig{Debounce: DefaultDebounce},
		Serve:   ServeConfig{Addr: DefaultAddr, ShutdownTimeout: DefaultShutdownTimeout},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}
