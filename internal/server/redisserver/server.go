package redisserver

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
	"github.com/rahulkeshervani/rustbucket/internal/telemetry/metric"
)

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// RequirePass, when non-empty, makes AUTH mandatory before other
	// commands are accepted.
	RequirePass string
	// ReadBufferSize is the socket read chunk size in bytes.
	ReadBufferSize int
	// RateLimit is the maximum commands per second per connection
	// (0 disables).
	RateLimit int
	// IdleTimeout closes connections idle longer than this (0 disables).
	IdleTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:           "127.0.0.1:6379",
		ReadBufferSize: 16 * 1024,
	}
}

// Server accepts RESP connections and serves commands against a store.
type Server struct {
	cfg     *Config
	handler *Handler
	logger  *slog.Logger
	metrics *metric.Registry

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup

	entropy   *ulid.MonotonicEntropy
	entropyMu sync.Mutex
}

// New creates a RESP server over db. metrics may be nil.
func New(cfg *Config, db *store.Store, metrics *metric.Registry, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = 16 * 1024
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	s.handler = NewHandler(cfg, db, s.newULID(), logger)
	return s
}

// newULID generates a ULID for run and connection identifiers.
func (s *Server) newULID() string {
	s.entropyMu.Lock()
	defer s.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Addr returns the bound listen address, valid after Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Start binds the listener and begins accepting connections in the
// background. It returns once the socket is bound so callers can report
// bind failures as startup errors.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)
	s.handler.setPort(ln.Addr())

	s.logger.Info("resp server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil && s.running.Load() {
			s.logger.Error("accept loop error", "error", err)
		}
	}()
	return nil
}

// Shutdown closes the listener and waits for active connections to finish
// or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			firstErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		if s.metrics != nil {
			s.metrics.ConnectionsTotal.Inc()
			s.metrics.ConnectionsActive.Inc()
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				if s.metrics != nil {
					s.metrics.ConnectionsActive.Dec()
				}
			}()
			s.serveConn(newConn(c, s.newULID(), s.connLimiter()))
		}()
	}
}

// connLimiter builds the per-connection command limiter, or nil when rate
// limiting is disabled.
func (s *Server) connLimiter() *rate.Limiter {
	if s.cfg.RateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.RateLimit)
}

// serveConn runs the connection pipeline until the peer closes, a protocol
// error occurs, or the client sends QUIT.
func (s *Server) serveConn(c *Conn) {
	defer c.Close()

	log := s.logger.With("conn_id", c.id, "remote", c.RemoteAddr().String())
	log.Debug("connection opened")
	defer log.Debug("connection closed")

	buf := make([]byte, s.cfg.ReadBufferSize)
	for {
		if s.cfg.IdleTimeout > 0 {
			if err := c.netConn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
				return
			}
		}

		n, err := c.netConn.Read(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection idle timeout")
			}
			return
		}
		c.parser.Feed(buf[:n])

		// Drain every complete frame before touching the socket again;
		// replies pile up in the output buffer.
		for {
			frame, err := c.parser.Next()
			if errors.Is(err, resp.ErrIncomplete) {
				break
			}
			if err != nil {
				// Malformed input closes the connection after a
				// best-effort error reply.
				log.Warn("protocol error", "error", err)
				c.out.WriteError("ERR Protocol error: " + err.Error())
				_ = c.flush(s.metrics)
				return
			}

			args, ok := commandArgs(frame)
			if !ok {
				log.Warn("non-command frame from client")
				c.out.WriteError("ERR Protocol error: expected array of bulk strings")
				_ = c.flush(s.metrics)
				return
			}
			if len(args) == 0 {
				// Blank inline line; nothing to do.
				continue
			}

			s.dispatch(c, log, args)
			if c.closing {
				_ = c.flush(s.metrics)
				return
			}
		}

		if err := c.flush(s.metrics); err != nil {
			return
		}
	}
}

// dispatch runs one command, appending its reply to the output buffer and
// recording metrics.
func (s *Server) dispatch(c *Conn, log *slog.Logger, args [][]byte) {
	name := normalizeCommandName(args[0])
	start := time.Now()

	reply := s.handler.Handle(c, name, args[1:])
	c.out.WriteFrame(reply)

	if s.metrics != nil {
		status := "ok"
		if reply.Kind == resp.KindError {
			status = "error"
		}
		s.metrics.CommandsTotal.WithLabelValues(name, status).Inc()
		s.metrics.CommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}

	if reply.Kind == resp.KindError {
		log.Debug("command error", "command", name, "reply", string(reply.Str))
	}
}

// commandArgs extracts the argument vector from a client frame. Commands
// arrive as arrays of bulk (or simple) strings.
func commandArgs(frame resp.Frame) ([][]byte, bool) {
	if frame.Kind != resp.KindArray {
		return nil, false
	}
	if frame.Null {
		// A null array carries no command; treat it like a blank line.
		return nil, true
	}
	args := make([][]byte, 0, len(frame.Array))
	for _, elem := range frame.Array {
		switch elem.Kind {
		case resp.KindBulk:
			if elem.Null {
				return nil, false
			}
			args = append(args, elem.Bulk)
		case resp.KindSimple:
			args = append(args, elem.Str)
		default:
			return nil, false
		}
	}
	return args, true
}
