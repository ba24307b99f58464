// Package main provides end-to-end tests for the sqlround CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlround/internal/cli"
	"github.com/leapstack-labs/sqlround/internal/cli/config"
)

// run executes the CLI in an empty working directory and returns stdout,
// stderr and the error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "sqlround-cli")
	if err != nil {
		panic(err)
	}
	// Keep config discovery away from any sqlround.yaml above the repo.
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if !strings.Contains(out, "sqlround v"+cli.Version) {
		t.Errorf("version output should contain the version, got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "", "--help")
	if err != nil {
		t.Fatalf("help command error = %v", err)
	}
	for _, expected := range []string{"format", "reconstruct", "parse", "tokens", "dialects", "repl", "watch", "serve", "lsp"} {
		if !strings.Contains(out, expected) {
			t.Errorf("help output should contain %q, got: %s", expected, out)
		}
	}
}

func TestFormatStdin(t *testing.T) {
	out, _, err := run(t, "select a, b from t where x = 1", "format")
	if err != nil {
		t.Fatalf("format error = %v", err)
	}
	want := "SELECT\n  a,\n  b\nFROM t\nWHERE\n  x = 1\n"
	if out != want {
		t.Errorf("format output = %q, want %q", out, want)
	}
}

func TestFormatIndentFlag(t *testing.T) {
	out, _, err := run(t, "select a from t", "format", "--indent", "4", "--keyword-case", "lower")
	if err != nil {
		t.Fatalf("format error = %v", err)
	}
	if out != "select\n    a\nfrom t\n" {
		t.Errorf("format output = %q", out)
	}
}

func TestReconstructDialects(t *testing.T) {
	tests := []struct {
		dialect string
		input   string
		want    string
	}{
		{"mssql", "select top 5 [Name] from [Users]", "SELECT TOP 5 [Name] FROM [Users]\n"},
		{"postgres", "select \"a\" from t limit 3", "SELECT \"a\" FROM t LIMIT 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			out, _, err := run(t, tt.input, "reconstruct", "-d", tt.dialect)
			if err != nil {
				t.Fatalf("reconstruct error = %v", err)
			}
			if out != tt.want {
				t.Errorf("reconstruct output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestDialectFromEnv(t *testing.T) {
	t.Setenv("SQLROUND_DIALECT", "mssql")
	out, _, err := run(t, "select [a] from t", "reconstruct")
	if err != nil {
		t.Fatalf("reconstruct error = %v", err)
	}
	if out != "SELECT [a] FROM t\n" {
		t.Errorf("reconstruct output = %q", out)
	}
}

func TestUnsupportedDialect(t *testing.T) {
	_, _, err := run(t, "select 1", "format", "-d", "mysql")
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Errorf("mysql should fail as unsupported, got: %v", err)
	}
}

func TestUnknownDialect(t *testing.T) {
	_, _, err := run(t, "select 1", "format", "-d", "oracle")
	if err == nil || !strings.Contains(err.Error(), "dialect") {
		t.Errorf("unknown dialect should fail config validation, got: %v", err)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, errOut, err := run(t, "SELECT a\nFROM", "format")
	if err == nil {
		t.Fatal("format should fail on a parse error")
	}
	if !strings.Contains(errOut, "<stdin>:2:5:") {
		t.Errorf("stderr should carry the error position, got: %s", errOut)
	}
}

func TestFormatCheckAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	if err := os.WriteFile(path, []byte("select a from t"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "", "format", "--check", dir); err == nil {
		t.Error("--check should fail on an unformatted file")
	}

	if _, _, err := run(t, "", "format", "--write", dir); err != nil {
		t.Fatalf("--write error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "SELECT\n  a\nFROM t\n" {
		t.Errorf("rewritten file = %q", data)
	}

	if _, _, err := run(t, "", "format", "--check", dir); err != nil {
		t.Errorf("--check should pass after --write, got: %v", err)
	}
}

func TestParseJSON(t *testing.T) {
	out, _, err := run(t, "select a from t", "parse", "-o", "json")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	var doc []map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("parse output is not JSON: %v\n%s", err, out)
	}
	if len(doc) != 1 || doc[0]["statement"] != "SELECT" {
		t.Errorf("unexpected parse output: %s", out)
	}
}

func TestDialectsCommand(t *testing.T) {
	out, _, err := run(t, "", "dialects", "-o", "json")
	if err != nil {
		t.Fatalf("dialects error = %v", err)
	}
	for _, id := range []string{"generic", "mssql", "postgres", "sqlanywhere", "mysql"} {
		if !strings.Contains(out, `"`+id+`"`) {
			t.Errorf("dialects output should list %s, got: %s", id, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, "", "completion", shell)
			if err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
			if out == "" {
				t.Errorf("completion %s printed nothing", shell)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, "", "unknown-command")
	if err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestLSP_Initialize(t *testing.T) {
	frame := func(body string) string {
		return "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
	}
	stdin := frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`) +
		frame(`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`) +
		frame(`{"jsonrpc":"2.0","method":"exit"}`)

	out, _, err := run(t, stdin, "lsp", "--dialect", "postgres")
	if err != nil {
		t.Fatalf("lsp failed: %v", err)
	}
	if !strings.Contains(out, `"name":"sqlround"`) || !strings.Contains(out, `"documentFormattingProvider":true`) {
		t.Errorf("initialize response missing server info: %s", out)
	}
}

func TestLSP_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "lsp.log")
	body := `{"jsonrpc":"2.0","method":"exit"}`
	stdin := "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body

	_, stderr, err := run(t, stdin, "lsp", "--dialect", "mssql", "--log-level", "info", "--log-file", logPath)
	if err != nil {
		t.Fatalf("lsp failed: %v", err)
	}
	if strings.Contains(stderr, "LSP server starting") {
		t.Errorf("logs should go to the file, stderr: %s", stderr)
	}
	data, err := os.ReadFile(logPath) //#nosec G304 -- test temp dir
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "LSP server starting") || !strings.Contains(string(data), "dialect=mssql") {
		t.Errorf("unexpected log contents: %s", data)
	}
}
