package lsp

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConn_Read(t *testing.T) {
	body := `{"jsonrpc":"2.0","method":"initialized"}`
	input := "content-length: 40\r\nContent-Type: application/vscode-jsonrpc; charset=utf-8\r\n\r\n" + body
	require.Len(t, body, 40)

	c := newConn(strings.NewReader(input), io.Discard)
	msg, err := c.read()
	require.NoError(t, err)
	assert.Equal(t, "initialized", msg.Method)
	assert.Nil(t, msg.ID)

	_, err = c.read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestConn_ReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing length", "Content-Type: x\r\n\r\n{}"},
		{"short body", "Content-Length: 10\r\n\r\n{}"},
		{"bad json", "Content-Length: 2\r\n\r\n{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newConn(strings.NewReader(tt.input), io.Discard).read()
			assert.Error(t, err)
		})
	}
}

func TestConn_Write(t *testing.T) {
	var out bytes.Buffer
	c := newConn(strings.NewReader(""), &out)
	require.NoError(t, c.write(&JSONRPCMessage{Method: "exit"}))
	assert.Equal(t, "Content-Length: 33\r\n\r\n"+`{"jsonrpc":"2.0","method":"exit"}`, out.String())
}
