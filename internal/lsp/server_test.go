package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlround/internal/testutil"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURI = "file:///work/query.sql"

// session collects client messages and replays them through a server.
type session struct {
	t   *testing.T
	in  bytes.Buffer
	ids int
}

func (c *session) send(method string, params any, request bool) int {
	c.t.Helper()
	msg := map[string]any{"jsonrpc": "2.0", "method": method}
	if params != nil {
		msg["params"] = params
	}
	id := 0
	if request {
		c.ids++
		id = c.ids
		msg["id"] = id
	}
	body, err := json.Marshal(msg)
	require.NoError(c.t, err)
	fmt.Fprintf(&c.in, "Content-Length: %d\r\n\r\n%s", len(body), body)
	return id
}

func (c *session) request(method string, params any) int { return c.send(method, params, true) }
func (c *session) notify(method string, params any)      { c.send(method, params, false) }

func (c *session) open(text string) {
	c.notify("textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{"uri": testURI, "languageId": "sql", "version": 1, "text": text},
	})
}

// run feeds every message to a server for dialectID and returns what it
// wrote.
func (c *session) run(id dialect.ID) []JSONRPCMessage {
	c.t.Helper()
	p, err := engine.New(id, engine.Options{})
	require.NoError(c.t, err)

	var out bytes.Buffer
	srv := NewServer(&c.in, &out, Config{Pipeline: p, Version: "test", Logger: testutil.NewTestLogger(c.t)})
	require.NoError(c.t, srv.Run())
	return readAll(c.t, &out)
}

func readAll(t *testing.T, r io.Reader) []JSONRPCMessage {
	t.Helper()
	br := bufio.NewReader(r)
	var msgs []JSONRPCMessage
	for {
		line, err := br.ReadString('\n')
		if err == io.EOF {
			return msgs
		}
		require.NoError(t, err)
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Content-Length: ")))
		require.NoError(t, err)
		_, err = br.ReadString('\n') // blank line
		require.NoError(t, err)
		body := make([]byte, n)
		_, err = io.ReadFull(br, body)
		require.NoError(t, err)
		var msg JSONRPCMessage
		require.NoError(t, json.Unmarshal(body, &msg))
		msgs = append(msgs, msg)
	}
}

func response(t *testing.T, msgs []JSONRPCMessage, id int, v any) *JSONRPCError {
	t.Helper()
	for _, m := range msgs {
		if m.ID == nil || string(*m.ID) != strconv.Itoa(id) {
			continue
		}
		if m.Error != nil {
			return m.Error
		}
		if v != nil {
			require.NoError(t, json.Unmarshal(m.Result, v))
		}
		return nil
	}
	t.Fatalf("no response for request %d", id)
	return nil
}

func diagnostics(t *testing.T, msgs []JSONRPCMessage) []PublishDiagnosticsParams {
	t.Helper()
	var out []PublishDiagnosticsParams
	for _, m := range msgs {
		if m.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var p PublishDiagnosticsParams
		require.NoError(t, json.Unmarshal(m.Params, &p))
		out = append(out, p)
	}
	return out
}

func TestServer_Initialize(t *testing.T) {
	c := &session{t: t}
	id := c.request("initialize", map[string]any{"processId": 1, "rootUri": "file:///work", "clientInfo": map[string]any{"name": "test"}})
	c.notify("initialized", map[string]any{})

	var result InitializeResult
	require.Nil(t, response(t, c.run(dialect.Generic), id, &result))

	caps := result.Capabilities
	assert.True(t, caps.DocumentFormattingProvider)
	assert.True(t, caps.HoverProvider)
	require.NotNil(t, caps.TextDocumentSync)
	assert.Equal(t, TextDocumentSyncKindFull, caps.TextDocumentSync.Change)
	assert.Equal(t, "sqlround", result.ServerInfo.Name)
}

func TestServer_Diagnostics(t *testing.T) {
	c := &session{t: t}
	c.open("SELECT a\nFROM")
	c.notify("textDocument/didChange", map[string]any{
		"textDocument":   map[string]any{"uri": testURI, "version": 2},
		"contentChanges": []map[string]any{{"text": "SELECT a FROM t"}},
	})
	c.notify("textDocument/didClose", map[string]any{"textDocument": map[string]any{"uri": testURI}})

	published := diagnostics(t, c.run(dialect.Generic))
	require.Len(t, published, 3)

	require.Len(t, published[0].Diagnostics, 1)
	d := published[0].Diagnostics[0]
	assert.Equal(t, DiagnosticSeverityError, d.Severity)
	assert.Equal(t, codeParseError, d.Code)
	assert.Equal(t, diagnosticSource, d.Source)
	assert.Equal(t, Position{Line: 1, Character: 4}, d.Range.Start)

	assert.Empty(t, published[1].Diagnostics, "fixed document clears diagnostics")
	assert.Empty(t, published[2].Diagnostics, "closing clears diagnostics")
}

func TestServer_LexDiagnostic(t *testing.T) {
	c := &session{t: t}
	c.open("SELECT 'open")

	published := diagnostics(t, c.run(dialect.Generic))
	require.Len(t, published, 1)
	require.Len(t, published[0].Diagnostics, 1)
	d := published[0].Diagnostics[0]
	assert.Equal(t, codeLexError, d.Code)
	assert.Equal(t, Position{Line: 0, Character: 7}, d.Range.Start)
}

func TestServer_Formatting(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		options map[string]any
		want    []TextEdit
	}{
		{
			name:    "reformats whole document",
			text:    "select a, b from t",
			options: map[string]any{"tabSize": 2, "insertSpaces": true},
			want: []TextEdit{{
				Range:   Range{End: Position{Line: 0, Character: 18}},
				NewText: "SELECT\n  a,\n  b\nFROM t\n",
			}},
		},
		{
			name:    "editor indent",
			text:    "select a from t",
			options: map[string]any{"tabSize": 4, "insertSpaces": true},
			want: []TextEdit{{
				Range:   Range{End: Position{Line: 0, Character: 15}},
				NewText: "SELECT\n    a\nFROM t\n",
			}},
		},
		{
			name:    "tabs keep configured indent",
			text:    "select a from t",
			options: map[string]any{"tabSize": 4, "insertSpaces": false},
			want: []TextEdit{{
				Range:   Range{End: Position{Line: 0, Character: 15}},
				NewText: "SELECT\n  a\nFROM t\n",
			}},
		},
		{
			name:    "already formatted",
			text:    "SELECT\n  a\nFROM t\n",
			options: map[string]any{"tabSize": 2, "insertSpaces": true},
			want:    []TextEdit{},
		},
		{
			name:    "parse error",
			text:    "SELECT FROM",
			options: map[string]any{"tabSize": 2, "insertSpaces": true},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &session{t: t}
			c.open(tt.text)
			id := c.request("textDocument/formatting", map[string]any{
				"textDocument": map[string]any{"uri": testURI},
				"options":      tt.options,
			})

			var edits []TextEdit
			require.Nil(t, response(t, c.run(dialect.Generic), id, &edits))
			assert.Equal(t, tt.want, edits)
		})
	}
}

func TestServer_Completion(t *testing.T) {
	c := &session{t: t}
	c.open("SELECT a FROM t ORD")
	upper := c.request("textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     map[string]any{"line": 0, "character": 19},
	})

	msgs := c.run(dialect.Generic)
	var list CompletionList
	require.Nil(t, response(t, msgs, upper, &list))

	labels := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		labels = append(labels, item.Label)
		assert.Equal(t, CompletionItemKindKeyword, item.Kind)
		assert.Empty(t, item.InsertText)
	}
	assert.Contains(t, labels, "ORDER")
}

func TestServer_CompletionLowercase(t *testing.T) {
	c := &session{t: t}
	c.open("sel")
	id := c.request("textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     map[string]any{"line": 0, "character": 3},
	})

	var list CompletionList
	require.Nil(t, response(t, c.run(dialect.Generic), id, &list))
	require.NotEmpty(t, list.Items)
	assert.Equal(t, "SELECT", list.Items[0].Label)
	assert.Equal(t, "select", list.Items[0].InsertText)
}

func TestServer_CompletionInString(t *testing.T) {
	c := &session{t: t}
	c.open("SELECT 'sel")
	id := c.request("textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     map[string]any{"line": 0, "character": 11},
	})

	var list CompletionList
	require.Nil(t, response(t, c.run(dialect.Generic), id, &list))
	assert.Empty(t, list.Items)
}

func TestServer_Hover(t *testing.T) {
	c := &session{t: t}
	c.open("select name from t")
	keyword := c.request("textDocument/hover", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     map[string]any{"line": 0, "character": 2},
	})
	ident := c.request("textDocument/hover", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     map[string]any{"line": 0, "character": 17},
	})

	msgs := c.run(dialect.MsSqlServer)

	var hover Hover
	require.Nil(t, response(t, msgs, keyword, &hover))
	assert.Equal(t, MarkupKindMarkdown, hover.Contents.Kind)
	assert.Contains(t, hover.Contents.Value, "**SELECT** is a reserved keyword in SQL Server")
	require.NotNil(t, hover.Range)
	assert.Equal(t, Position{Line: 0, Character: 6}, hover.Range.End)

	var none *Hover
	require.Nil(t, response(t, msgs, ident, &none))
	assert.Nil(t, none)
}

func TestServer_ShutdownAndUnknownMethod(t *testing.T) {
	c := &session{t: t}
	unknown := c.request("workspace/symbol", map[string]any{})
	shutdown := c.request("shutdown", nil)
	after := c.request("textDocument/hover", map[string]any{})
	c.notify("exit", nil)
	// Ignored: the server stopped reading after exit.
	c.request("initialize", map[string]any{})

	msgs := c.run(dialect.Generic)

	rpcErr := response(t, msgs, unknown, nil)
	require.NotNil(t, rpcErr)
	assert.Equal(t, codeMethodNotFound, rpcErr.Code)

	assert.Nil(t, response(t, msgs, shutdown, nil))

	rpcErr = response(t, msgs, after, nil)
	require.NotNil(t, rpcErr)
	assert.Equal(t, codeInvalidRequest, rpcErr.Code)

	assert.Len(t, msgs, 3)
}

func TestServer_InvalidParams(t *testing.T) {
	c := &session{t: t}
	id := c.request("textDocument/formatting", "not an object")

	rpcErr := response(t, c.run(dialect.Generic), id, nil)
	require.NotNil(t, rpcErr)
	assert.Equal(t, codeInvalidParams, rpcErr.Code)
}

func TestRun_NoPipeline(t *testing.T) {
	srv := NewServer(strings.NewReader(""), io.Discard, Config{})
	require.Error(t, srv.Run())
}
