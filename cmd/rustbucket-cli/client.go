package main

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rahulkeshervani/rustbucket/internal/resp"
)

// Client is a blocking RESP client over one TCP connection.
type Client struct {
	conn   net.Conn
	parser *resp.Parser
	buf    []byte
}

// dial connects and optionally authenticates.
func dial(addr, password string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}

	c := &Client{
		conn:   conn,
		parser: resp.NewParser(),
		buf:    make([]byte, 16*1024),
	}

	if password != "" {
		reply, err := c.Do("AUTH", password)
		if err != nil {
			conn.Close()
			return nil, err
		}
		if reply.Kind == resp.KindError {
			conn.Close()
			return nil, fmt.Errorf("auth: %s", reply.Str)
		}
	}
	return c, nil
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.conn.RemoteAddr().String()
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Do sends one command and waits for its reply.
func (c *Client) Do(args ...string) (resp.Frame, error) {
	raw := make([][]byte, len(args))
	for i, a := range args {
		raw[i] = []byte(a)
	}
	if _, err := c.conn.Write(resp.AppendCommand(nil, raw...)); err != nil {
		return resp.Frame{}, fmt.Errorf("write: %w", err)
	}

	for {
		f, err := c.parser.Next()
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, resp.ErrIncomplete) {
			return resp.Frame{}, fmt.Errorf("bad reply: %w", err)
		}

		n, err := c.conn.Read(c.buf)
		if err != nil {
			return resp.Frame{}, fmt.Errorf("read: %w", err)
		}
		c.parser.Feed(c.buf[:n])
	}
}

// renderReply formats a reply frame the way redis-cli does.
func renderReply(f resp.Frame, depth int) string {
	switch f.Kind {
	case resp.KindSimple:
		return string(f.Str)
	case resp.KindError:
		return "(error) " + string(f.Str)
	case resp.KindInteger:
		return "(integer) " + strconv.FormatInt(f.Int, 10)
	case resp.KindBulk:
		if f.Null {
			return "(nil)"
		}
		return strconv.Quote(string(f.Bulk))
	case resp.KindArray:
		if f.Null {
			return "(nil)"
		}
		if len(f.Array) == 0 {
			return "(empty array)"
		}
		var b strings.Builder
		for i, elem := range f.Array {
			if i > 0 {
				b.WriteString("\n")
				b.WriteString(strings.Repeat("  ", depth))
			}
			fmt.Fprintf(&b, "%d) %s", i+1, renderReply(elem, depth+1))
		}
		return b.String()
	}
	return "(unknown)"
}
