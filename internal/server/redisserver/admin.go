package redisserver

import (
	"crypto/subtle"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rahulkeshervani/rustbucket/internal/infra/buildinfo"
	"github.com/rahulkeshervani/rustbucket/internal/resp"
)

func init() {
	register("PING", execPing, -1).allowUnauthenticated()
	register("AUTH", execAuth, -2).allowUnauthenticated()
	register("QUIT", execQuit, 1).allowUnauthenticated()
	register("SELECT", execSelect, 2)
	register("INFO", execInfo, -1)
	register("DBSIZE", execDBSize, 1)
	register("FLUSHDB", execFlushDB, -1)
}

func execPing(h *Handler, c *Conn, args [][]byte) resp.Frame {
	if len(args) > 0 {
		return resp.Bulk(clone(args[0]))
	}
	return resp.Simple("PONG")
}

// execAuth accepts `AUTH password` and `AUTH username password` (the
// username is ignored; there are no ACLs). Without a configured
// requirepass any credentials are accepted, which keeps clients that
// insist on authenticating happy.
func execAuth(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var password []byte
	switch len(args) {
	case 1:
		password = args[0]
	case 2:
		password = args[1]
	default:
		return errWrongArity("AUTH")
	}

	if h.cfg.RequirePass == "" {
		c.authenticated = true
		return resp.Simple("OK")
	}

	if subtle.ConstantTimeCompare(password, []byte(h.cfg.RequirePass)) != 1 {
		h.logger.Warn("failed auth attempt", "conn_id", c.id)
		return resp.Error("ERR invalid password")
	}
	c.authenticated = true
	return resp.Simple("OK")
}

func execQuit(h *Handler, c *Conn, args [][]byte) resp.Frame {
	c.closing = true
	return resp.Simple("OK")
}

// execSelect accepts only database 0; there is a single keyspace.
func execSelect(h *Handler, c *Conn, args [][]byte) resp.Frame {
	idx, ok := parseInt(args[0])
	if !ok {
		return resp.Error(notIntegerErr)
	}
	if idx != 0 {
		return resp.Error("ERR DB index is out of range")
	}
	c.dbIndex = 0
	return resp.Simple("OK")
}

func execDBSize(h *Handler, c *Conn, args [][]byte) resp.Frame {
	return resp.Integer(int64(h.db.Count()))
}

func execFlushDB(h *Handler, c *Conn, args [][]byte) resp.Frame {
	h.db.FlushAll()
	return resp.Simple("OK")
}

// infoVersion is the protocol-compatible version reported to clients that
// parse redis_version for feature detection.
const infoVersion = "7.2.0"

func execInfo(h *Handler, c *Conn, args [][]byte) resp.Frame {
	section := ""
	if len(args) > 0 {
		section = strings.ToLower(string(args[0]))
	}

	var b strings.Builder
	if section == "" || section == "server" {
		fmt.Fprintf(&b, "# Server\r\n")
		fmt.Fprintf(&b, "redis_version:%s\r\n", infoVersion)
		fmt.Fprintf(&b, "rustbucket_version:%s\r\n", buildinfo.Version)
		fmt.Fprintf(&b, "redis_mode:standalone\r\n")
		fmt.Fprintf(&b, "os:%s\r\n", runtime.GOOS)
		fmt.Fprintf(&b, "arch_bits:64\r\n")
		fmt.Fprintf(&b, "process_id:%d\r\n", os.Getpid())
		fmt.Fprintf(&b, "run_id:%s\r\n", h.runID)
		fmt.Fprintf(&b, "tcp_port:%s\r\n", h.tcpPort)
		fmt.Fprintf(&b, "uptime_in_seconds:%d\r\n", int64(time.Since(h.startTime).Seconds()))
		fmt.Fprintf(&b, "\r\n")
	}
	if section == "" || section == "clients" {
		fmt.Fprintf(&b, "# Clients\r\n")
		fmt.Fprintf(&b, "connected_clients:1\r\n")
		fmt.Fprintf(&b, "\r\n")
	}
	if section == "" || section == "memory" {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		fmt.Fprintf(&b, "# Memory\r\n")
		fmt.Fprintf(&b, "used_memory:%d\r\n", ms.HeapAlloc)
		fmt.Fprintf(&b, "\r\n")
	}
	if section == "" || section == "keyspace" {
		fmt.Fprintf(&b, "# Keyspace\r\n")
		fmt.Fprintf(&b, "db0:keys=%d,expires=0,avg_ttl=0\r\n", h.db.Count())
	}

	return resp.BulkString(b.String())
}
