// Package lsp implements a Language Server Protocol server that reports
// parse errors and formats SQL documents.
package lsp

import "encoding/json"

// The subset of LSP 3.17 the server speaks. Field names follow the
// protocol; see
// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/

// JSONRPCMessage is a request, response or notification. Notifications
// carry no ID.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *JSONRPCError) Error() string { return e.Message }

// Position is zero-based. Character counts UTF-16 code units.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is half-open.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type (
	TextDocumentIdentifier struct {
		URI string `json:"uri"`
	}

	VersionedTextDocumentIdentifier struct {
		TextDocumentIdentifier
		Version int `json:"version"`
	}

	TextDocumentItem struct {
		URI        string `json:"uri"`
		LanguageID string `json:"languageId"`
		Version    int    `json:"version"`
		Text       string `json:"text"`
	}

	TextDocumentPositionParams struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
		Position     Position               `json:"position"`
	}

	// TextDocumentContentChangeEvent always carries the whole text; the
	// server only offers full sync.
	TextDocumentContentChangeEvent struct {
		Text string `json:"text"`
	}

	DidOpenTextDocumentParams struct {
		TextDocument TextDocumentItem `json:"textDocument"`
	}

	DidChangeTextDocumentParams struct {
		TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
		ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
	}

	DidCloseTextDocumentParams struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
)

// Lifecycle.
type (
	InitializeParams struct {
		ProcessID  int         `json:"processId"`
		RootURI    string      `json:"rootUri"`
		ClientInfo *ClientInfo `json:"clientInfo,omitempty"`
	}

	ClientInfo struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	}

	InitializeResult struct {
		Capabilities ServerCapabilities `json:"capabilities"`
		ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
	}

	ServerInfo struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	}

	ServerCapabilities struct {
		TextDocumentSync           *TextDocumentSyncOptions `json:"textDocumentSync,omitempty"`
		CompletionProvider         *CompletionOptions       `json:"completionProvider,omitempty"`
		HoverProvider              bool                     `json:"hoverProvider,omitempty"`
		DocumentFormattingProvider bool                     `json:"documentFormattingProvider,omitempty"`
	}

	TextDocumentSyncOptions struct {
		OpenClose bool                 `json:"openClose,omitempty"`
		Change    TextDocumentSyncKind `json:"change,omitempty"`
	}

	CompletionOptions struct {
		TriggerCharacters []string `json:"triggerCharacters,omitempty"`
	}
)

type TextDocumentSyncKind int

const TextDocumentSyncKindFull TextDocumentSyncKind = 1

// Diagnostics.
type (
	DiagnosticSeverity int

	Diagnostic struct {
		Range    Range              `json:"range"`
		Severity DiagnosticSeverity `json:"severity,omitempty"`
		Code     string             `json:"code,omitempty"`
		Source   string             `json:"source,omitempty"`
		Message  string             `json:"message"`
	}

	PublishDiagnosticsParams struct {
		URI         string       `json:"uri"`
		Diagnostics []Diagnostic `json:"diagnostics"`
	}
)

// Parse and lex errors are the only diagnostics, so only Error is used.
const DiagnosticSeverityError DiagnosticSeverity = 1

// Completion and hover.
type (
	CompletionParams struct {
		TextDocumentPositionParams
	}

	CompletionItemKind int

	CompletionItem struct {
		Label      string             `json:"label"`
		Kind       CompletionItemKind `json:"kind,omitempty"`
		Detail     string             `json:"detail,omitempty"`
		SortText   string             `json:"sortText,omitempty"`
		InsertText string             `json:"insertText,omitempty"`
	}

	CompletionList struct {
		IsIncomplete bool             `json:"isIncomplete"`
		Items        []CompletionItem `json:"items"`
	}

	HoverParams struct {
		TextDocumentPositionParams
	}

	MarkupKind string

	MarkupContent struct {
		Kind  MarkupKind `json:"kind"`
		Value string     `json:"value"`
	}

	Hover struct {
		Contents MarkupContent `json:"contents"`
		Range    *Range        `json:"range,omitempty"`
	}
)

const (
	CompletionItemKindKeyword CompletionItemKind = 14
	MarkupKindMarkdown        MarkupKind         = "markdown"
)

// Formatting.
type (
	// FormattingOptions are the editor's whitespace preferences.
	FormattingOptions struct {
		TabSize      int  `json:"tabSize"`
		InsertSpaces bool `json:"insertSpaces"`
	}

	DocumentFormattingParams struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
		Options      FormattingOptions      `json:"options"`
	}

	TextEdit struct {
		Range   Range  `json:"range"`
		NewText string `json:"newText"`
	}
)
