package redisserver

import (
	"net"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/telemetry/metric"
)

// Conn is one client connection. All fields are owned by the connection's
// goroutine; nothing here needs locking.
type Conn struct {
	netConn net.Conn
	parser  *resp.Parser
	out     *resp.Writer

	id            string
	authenticated bool
	dbIndex       int
	limiter       *rate.Limiter
	closing       bool

	closed atomic.Bool
}

func newConn(c net.Conn, id string, limiter *rate.Limiter) *Conn {
	return &Conn{
		netConn: c,
		parser:  resp.NewParser(),
		out:     resp.NewWriter(),
		id:      id,
		limiter: limiter,
	}
}

// Close closes the underlying socket once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// flush writes the accumulated replies in a single operation and resets
// the buffer. A batch of pipelined commands leaves here as one write.
func (c *Conn) flush(m *metric.Registry) error {
	if c.out.Len() == 0 {
		return nil
	}
	_, err := c.netConn.Write(c.out.Bytes())
	c.out.Reset()
	if m != nil {
		m.FlushesTotal.Inc()
	}
	return err
}
