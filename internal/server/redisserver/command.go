package redisserver

import (
	"bytes"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
)

// Canonical Redis error replies.
const (
	wrongTypeErr  = "WRONGTYPE Operation against a key holding the wrong kind of value"
	notIntegerErr = "ERR value is not an integer or out of range"
	notFloatErr   = "ERR value is not a valid float"
	noAuthErr     = "NOAUTH Authentication required"
)

// ExecFunc executes one command. args excludes the command name; the
// returned frame is the reply.
type ExecFunc func(h *Handler, c *Conn, args [][]byte) resp.Frame

type command struct {
	exec ExecFunc
	// arity is the legal argument count including the command name;
	// negative arity means len >= -arity, e.g. GET is 2, LPUSH is -3.
	arity int
	// noAuth marks commands allowed before authentication.
	noAuth bool
}

var cmdTable = make(map[string]*command)

// register adds a command to the dispatch table. Called from init
// functions in the per-type command files.
func register(name string, exec ExecFunc, arity int) *command {
	cmd := &command{exec: exec, arity: arity}
	cmdTable[name] = cmd
	return cmd
}

// allowUnauthenticated marks the command usable before AUTH.
func (c *command) allowUnauthenticated() *command {
	c.noAuth = true
	return c
}

// Handler executes commands against the store.
type Handler struct {
	cfg    *Config
	db     *store.Store
	logger *slog.Logger

	runID     string
	startTime time.Time
	tcpPort   string
}

// NewHandler creates a command handler.
func NewHandler(cfg *Config, db *store.Store, runID string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		runID:     runID,
		startTime: time.Now(),
		tcpPort:   "6379",
	}
}

// setPort records the bound port for INFO.
func (h *Handler) setPort(addr net.Addr) {
	if _, port, err := net.SplitHostPort(addr.String()); err == nil {
		h.tcpPort = port
	}
}

// Handle validates and executes one command, returning the reply frame.
// name must already be uppercased.
func (h *Handler) Handle(c *Conn, name string, args [][]byte) resp.Frame {
	cmd, ok := cmdTable[name]
	if !ok {
		return resp.Error("ERR unknown command '" + name + "'")
	}

	if h.cfg.RequirePass != "" && !c.authenticated && !cmd.noAuth {
		return resp.Error(noAuthErr)
	}

	if c.limiter != nil && !c.limiter.Allow() {
		return resp.Error("ERR rate limit exceeded")
	}

	n := len(args) + 1
	if cmd.arity >= 0 {
		if n != cmd.arity {
			return errWrongArity(name)
		}
	} else if n < -cmd.arity {
		return errWrongArity(name)
	}

	return cmd.exec(h, c, args)
}

func errWrongArity(name string) resp.Frame {
	return resp.Error("ERR wrong number of arguments for '" + strings.ToLower(name) + "' command")
}

// normalizeCommandName uppercases ASCII, skipping the ToUpper pass for
// tokens that are already uppercase.
func normalizeCommandName(b []byte) string {
	if bytes.ContainsAny(b, "abcdefghijklmnopqrstuvwxyz") {
		return strings.ToUpper(string(b))
	}
	return string(b)
}

// clone copies an argument out of the parse buffer. Anything stored past
// the dispatch call must be cloned: parsed frames alias the connection's
// read buffer, which the next Feed reuses.
func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// parseInt parses a decimal integer argument.
func parseInt(b []byte) (int64, bool) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	return n, err == nil
}

// parseFloat parses a float argument.
func parseFloat(b []byte) (float64, bool) {
	f, err := strconv.ParseFloat(string(b), 64)
	return f, err == nil
}

// formatScore renders a score the way Redis does: the shortest decimal
// form that round-trips, so integral scores print without a fraction.
func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
