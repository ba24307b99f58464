// Package testutil captures renderer output for command tests.
package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlround/internal/cli/output"
	"github.com/stretchr/testify/assert"
)

// TestRenderer is a Renderer whose stdout and stderr land in buffers.
type TestRenderer struct {
	*output.Renderer
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// NewTestRenderer returns a renderer in mode. isTTY controls whether
// styling is applied in text mode.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	tr := &TestRenderer{}
	tr.Renderer = output.NewRendererWithTTY(&tr.stdout, &tr.stderr, isTTY, mode)
	return tr
}

// NewTestRendererText simulates an interactive terminal.
func NewTestRendererText() *TestRenderer { return NewTestRenderer(output.ModeText, true) }

// NewTestRendererMarkdown simulates piped output.
func NewTestRendererMarkdown() *TestRenderer { return NewTestRenderer(output.ModeMarkdown, false) }

// Output is everything written to stdout so far.
func (tr *TestRenderer) Output() string { return tr.stdout.String() }

// ErrorOutput is everything written to stderr so far.
func (tr *TestRenderer) ErrorOutput() string { return tr.stderr.String() }

// Reset discards captured output, e.g. between REPL lines.
func (tr *TestRenderer) Reset() {
	tr.stdout.Reset()
	tr.stderr.Reset()
}

func AssertContains(t *testing.T, s, want string) {
	t.Helper()
	assert.Contains(t, s, want)
}

func AssertNotContains(t *testing.T, s, unwanted string) {
	t.Helper()
	assert.NotContains(t, s, unwanted)
}

// AssertValidMarkdown fails on an unterminated ```sql fence or a heading
// with no text.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	open := false
	for n, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "```") {
			open = !open
			continue
		}
		if open {
			continue
		}
		if title, ok := strings.CutPrefix(line, "#"); ok && strings.Trim(title, "# ") == "" {
			t.Errorf("line %d: heading without text", n+1)
		}
	}
	if open {
		t.Error("markdown ends inside a code fence")
	}
}
