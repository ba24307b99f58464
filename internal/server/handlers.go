package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/leapstack-labs/sqlround/internal/astdump"
	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/leapstack-labs/sqlround/pkg/format"
	"github.com/leapstack-labs/sqlround/pkg/parser"
)

// Request is the body of the parse, reconstruct and format endpoints.
type Request struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect,omitempty"`
	// Format overrides the server's formatter options for this request.
	Format *FormatOptions `json:"format,omitempty"`
}

// FormatOptions are per-request formatter settings.
type FormatOptions struct {
	Indent      int    `json:"indent,omitempty"`
	KeywordCase string `json:"keyword_case,omitempty"`
}

// SQLResponse carries rendered SQL.
type SQLResponse struct {
	SQL string `json:"sql"`
}

// ASTResponse carries the syntax tree: one object for a single statement,
// an array for a script.
type ASTResponse struct {
	AST any `json:"ast"`
}

// ErrorResponse describes a failed request. Position fields are set for
// lex and parse errors.
type ErrorResponse struct {
	Error  string `json:"error"`
	Offset *int   `json:"offset,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, err: fmt.Errorf(format, args...)}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDialects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, engine.Describe())
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, p, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	stmts, err := p.Parse(req.SQL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var tree any
	if len(stmts) == 1 {
		tree, err = astdump.Value(stmts[0])
	} else {
		tree, err = astdump.Value(stmts)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ASTResponse{AST: tree})
}

func (s *Server) handleRender(mode engine.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, p, err := s.decode(w, r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		out, err := p.Run(req.SQL, mode)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SQLResponse{SQL: out})
	}
}

// decode reads the request body and resolves its pipeline.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (Request, *engine.Pipeline, error) {
	var req Request
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, nil, &requestError{status: http.StatusRequestEntityTooLarge, err: err}
		}
		return req, nil, badRequest("invalid request body: %v", err)
	}
	if req.SQL == "" {
		return req, nil, badRequest("sql is required")
	}

	id := s.cfg.Dialect
	if req.Dialect != "" {
		parsed, err := dialect.ParseID(req.Dialect)
		if err != nil {
			return req, nil, badRequest("%v", err)
		}
		id = parsed
	}
	p, err := s.pipeline(id)
	if err != nil {
		return req, nil, err
	}

	if req.Format != nil {
		// Unset fields keep the server's options.
		opts := p.Formatter().Options()
		if n := req.Format.Indent; n != 0 {
			if n < format.MinIndent || n > format.MaxIndent {
				return req, nil, badRequest("format.indent: %d is outside %d..%d", n, format.MinIndent, format.MaxIndent)
			}
			opts.IndentWidth = n
		}
		if req.Format.KeywordCase != "" {
			kc, err := format.ParseKeywordCase(req.Format.KeywordCase)
			if err != nil {
				return req, nil, badRequest("format.keyword_case: %v", err)
			}
			opts.KeywordCase = kc
		}
		p = p.WithFormat(opts)
	}
	return req, p, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: parser.ErrorMessage(err)}
	status := http.StatusInternalServerError

	var reqErr *requestError
	var cfgErr *dialect.ConfigurationError
	switch {
	case errors.As(err, &reqErr):
		status = reqErr.status
		resp.Error = reqErr.Error()
	case errors.As(err, &cfgErr):
		status = http.StatusUnprocessableEntity
		resp.Error = cfgErr.Error()
	default:
		if pos, ok := parser.ErrorPosition(err); ok {
			status = http.StatusBadRequest
			off := pos.Offset
			resp.Offset = &off
			resp.Line = pos.Line
			resp.Column = pos.Column
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
