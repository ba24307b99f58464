package lsp

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/leapstack-labs/sqlround/pkg/engine"
)

// JSON-RPC error codes.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeInvalidRequest = -32600
)

type Config struct {
	// Pipeline parses and formats documents. Required.
	Pipeline *engine.Pipeline
	// Version is reported to the client in serverInfo.
	Version string
	Logger  *slog.Logger
}

// Server answers LSP requests for SQL documents in one dialect. It handles
// one message at a time.
type Server struct {
	conn      *conn
	documents *DocumentStore
	pipeline  *engine.Pipeline
	version   string
	logger    *slog.Logger

	shuttingDown bool
	exited       bool
}

func NewServer(r io.Reader, w io.Writer, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		conn:      newConn(r, w),
		documents: NewDocumentStore(),
		pipeline:  cfg.Pipeline,
		version:   cfg.Version,
		logger:    logger,
	}
}

type (
	requestFunc      func(s *Server, params json.RawMessage) (any, error)
	notificationFunc func(s *Server, params json.RawMessage) error
)

var requests = map[string]requestFunc{
	"initialize":              (*Server).initialize,
	"shutdown":                (*Server).shutdown,
	"textDocument/completion": withParams((*Server).getCompletionList),
	"textDocument/hover":      withParams((*Server).getHover),
	"textDocument/formatting": withParams((*Server).formatDocument),
}

var notifications = map[string]notificationFunc{
	"initialized":            func(*Server, json.RawMessage) error { return nil },
	"exit":                   (*Server).exit,
	"textDocument/didOpen":   (*Server).didOpen,
	"textDocument/didChange": (*Server).didChange,
	"textDocument/didClose":  (*Server).didClose,
}

// Run serves messages until the client sends exit or closes the stream.
func (s *Server) Run() error {
	if s.pipeline == nil {
		return errors.New("lsp: no pipeline configured")
	}
	s.logger.Info("LSP server starting", "dialect", s.pipeline.Dialect().ID.String())

	for !s.exited {
		msg, err := s.conn.read()
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			s.logger.Info("client disconnected")
			return nil
		case err != nil:
			s.logger.Error("unreadable message", "error", err)
			continue
		}
		s.dispatch(msg)
	}
	return nil
}

func (s *Server) dispatch(msg *JSONRPCMessage) {
	s.logger.Debug("received", "method", msg.Method)

	if msg.ID == nil {
		if s.shuttingDown && msg.Method != "exit" {
			return
		}
		if fn, ok := notifications[msg.Method]; ok {
			if err := fn(s, msg.Params); err != nil {
				s.logger.Error("notification failed", "method", msg.Method, "error", err)
			}
		}
		return
	}

	var (
		result any
		err    error
	)
	fn, ok := requests[msg.Method]
	switch {
	case s.shuttingDown:
		err = &JSONRPCError{Code: codeInvalidRequest, Message: "server is shutting down"}
	case !ok:
		err = &JSONRPCError{Code: codeMethodNotFound, Message: "method not found: " + msg.Method}
	default:
		result, err = fn(s, msg.Params)
	}
	s.reply(msg.ID, result, err)
}

func (s *Server) reply(id *json.RawMessage, result any, err error) {
	resp := &JSONRPCMessage{ID: id}
	if err != nil {
		var rpcErr *JSONRPCError
		if !errors.As(err, &rpcErr) {
			rpcErr = &JSONRPCError{Code: codeInvalidRequest, Message: err.Error()}
		}
		resp.Error = rpcErr
	} else {
		raw, mErr := json.Marshal(result)
		if mErr != nil {
			s.logger.Error("encoding result", "error", mErr)
			raw = []byte("null")
		}
		resp.Result = raw
	}
	s.send(resp)
}

func (s *Server) notify(method string, params any) {
	raw, err := json.Marshal(params)
	if err != nil {
		s.logger.Error("encoding notification", "method", method, "error", err)
		return
	}
	s.send(&JSONRPCMessage{Method: method, Params: raw})
}

func (s *Server) send(msg *JSONRPCMessage) {
	if err := s.conn.write(msg); err != nil {
		s.logger.Error("write failed", "error", err)
	}
}

// decode unmarshals params, reporting failure as invalid params.
func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()}
	}
	return v, nil
}

// withParams adapts a typed feature handler to a requestFunc.
func withParams[P, R any](fn func(*Server, P) R) requestFunc {
	return func(s *Server, raw json.RawMessage) (any, error) {
		p, err := decode[P](raw)
		if err != nil {
			return nil, err
		}
		return fn(s, p), nil
	}
}

func (s *Server) initialize(raw json.RawMessage) (any, error) {
	params, err := decode[InitializeParams](raw)
	if err != nil {
		return nil, err
	}
	if params.ClientInfo != nil {
		s.logger.Info("client connected", "client", params.ClientInfo.Name, "root", params.RootURI)
	}

	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:           &TextDocumentSyncOptions{OpenClose: true, Change: TextDocumentSyncKindFull},
			CompletionProvider:         &CompletionOptions{TriggerCharacters: []string{" "}},
			HoverProvider:              true,
			DocumentFormattingProvider: true,
		},
		ServerInfo: &ServerInfo{Name: "sqlround", Version: s.version},
	}, nil
}

func (s *Server) shutdown(json.RawMessage) (any, error) {
	s.shuttingDown = true
	s.logger.Info("server shutdown")
	return nil, nil
}

func (s *Server) exit(json.RawMessage) error {
	s.exited = true
	s.logger.Info("server exit")
	return nil
}

func (s *Server) didOpen(raw json.RawMessage) error {
	params, err := decode[DidOpenTextDocumentParams](raw)
	if err != nil {
		return err
	}
	item := params.TextDocument
	s.documents.Open(item.URI, item.Text, item.Version)
	s.publishDiagnostics(item.URI)
	return nil
}

// didChange takes the last change; with full sync it holds the whole text.
func (s *Server) didChange(raw json.RawMessage) error {
	params, err := decode[DidChangeTextDocumentParams](raw)
	if err != nil {
		return err
	}
	if n := len(params.ContentChanges); n > 0 {
		s.documents.Update(params.TextDocument.URI, params.ContentChanges[n-1].Text, params.TextDocument.Version)
	}
	s.publishDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) didClose(raw json.RawMessage) error {
	params, err := decode[DidCloseTextDocumentParams](raw)
	if err != nil {
		return err
	}
	uri := params.TextDocument.URI
	s.documents.Close(uri)
	s.notify("textDocument/publishDiagnostics", &PublishDiagnosticsParams{URI: uri, Diagnostics: []Diagnostic{}})
	return nil
}
