package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"sync"
)

// conn reads and writes JSON-RPC messages framed by a Content-Length
// header block, as on an LSP stdio connection.
type conn struct {
	in *textproto.Reader

	mu  sync.Mutex
	out io.Writer
}

func newConn(r io.Reader, w io.Writer) *conn {
	return &conn{in: textproto.NewReader(bufio.NewReader(r)), out: w}
}

// read returns the next message. io.EOF means the client closed the
// stream between messages.
func (c *conn) read() (*JSONRPCMessage, error) {
	header, err := c.in.ReadMIMEHeader()
	if err != nil {
		if errors.Is(err, io.EOF) && len(header) > 0 {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	length, err := strconv.Atoi(header.Get("Content-Length"))
	if err != nil || length <= 0 {
		return nil, fmt.Errorf("bad Content-Length %q", header.Get("Content-Length"))
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(c.in.R, body); err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	msg := new(JSONRPCMessage)
	if err := json.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("decoding message: %w", err)
	}
	return msg, nil
}

// write frames msg and writes it in a single call.
func (c *conn) write(msg *JSONRPCMessage) error {
	msg.JSONRPC = "2.0"
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Content-Length: %d\r\n\r\n", len(body))
	buf.Write(body)

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err = c.out.Write(buf.Bytes())
	return err
}
