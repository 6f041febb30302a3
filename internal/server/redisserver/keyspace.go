package redisserver

import (
	"strings"

	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
)

func init() {
	register("DEL", execDel, -2)
	register("EXISTS", execExists, -2)
	register("TYPE", execType, 2)
	register("KEYS", execKeys, 2)
	register("SCAN", execScan, -2)
	register("TTL", execTTL, 2)
	register("PTTL", execTTL, 2)
	register("EXPIRE", execExpire, 3)
}

func execDel(h *Handler, c *Conn, args [][]byte) resp.Frame {
	removed := int64(0)
	for _, key := range args {
		if h.db.Delete(string(key)) {
			removed++
		}
	}
	return resp.Integer(removed)
}

func execExists(h *Handler, c *Conn, args [][]byte) resp.Frame {
	count := int64(0)
	for _, key := range args {
		if h.db.Exists(string(key)) {
			count++
		}
	}
	return resp.Integer(count)
}

func execType(h *Handler, c *Conn, args [][]byte) resp.Frame {
	return resp.Simple(h.db.TypeOf(string(args[0])).String())
}

func execKeys(h *Handler, c *Conn, args [][]byte) resp.Frame {
	pattern := string(args[0])
	elems := []resp.Frame{}
	h.db.Keys(pattern, func(key string) {
		elems = append(elems, resp.BulkString(key))
	})
	return resp.Array(elems...)
}

// execScan implements the single-shot cursor: every call returns the full
// matching key set with next cursor 0. Clients that loop until the cursor
// comes back to 0 terminate after one round trip.
func execScan(h *Handler, c *Conn, args [][]byte) resp.Frame {
	cursor, ok := parseInt(args[0])
	if !ok || cursor < 0 {
		return resp.Error("ERR invalid cursor")
	}
	pattern, _, errReply := parseScanOptions(args[1:])
	if errReply != nil {
		return *errReply
	}

	elems := []resp.Frame{}
	h.db.Keys(pattern, func(key string) {
		elems = append(elems, resp.BulkString(key))
	})
	return resp.Array(resp.BulkString("0"), resp.Array(elems...))
}

// parseScanOptions consumes MATCH and COUNT tokens shared by SCAN and
// HSCAN. COUNT is advisory and validated but otherwise ignored.
func parseScanOptions(args [][]byte) (pattern string, count int64, errReply *resp.Frame) {
	pattern = "*"
	count = 10

	i := 0
	for i < len(args) {
		switch strings.ToUpper(string(args[i])) {
		case "MATCH":
			if i+1 >= len(args) {
				e := resp.Error("ERR syntax error")
				return "", 0, &e
			}
			pattern = string(args[i+1])
			i += 2
		case "COUNT":
			if i+1 >= len(args) {
				e := resp.Error("ERR syntax error")
				return "", 0, &e
			}
			n, ok := parseInt(args[i+1])
			if !ok || n <= 0 {
				e := resp.Error(notIntegerErr)
				return "", 0, &e
			}
			count = n
			i += 2
		default:
			e := resp.Error("ERR syntax error")
			return "", 0, &e
		}
	}
	return pattern, count, nil
}

// execTTL serves both TTL and PTTL: no key carries an expiry, so the reply
// is -1 for present keys and -2 for missing ones.
func execTTL(h *Handler, c *Conn, args [][]byte) resp.Frame {
	if h.db.Exists(string(args[0])) {
		return resp.Integer(-1)
	}
	return resp.Integer(-2)
}

// execExpire validates its arguments and reports whether the key exists.
// No timer is armed; expiry is not enforced.
func execExpire(h *Handler, c *Conn, args [][]byte) resp.Frame {
	if _, ok := parseInt(args[1]); !ok {
		return resp.Error(notIntegerErr)
	}
	if h.db.Exists(string(args[0])) {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

// wrongType is the canonical WRONGTYPE reply frame.
func wrongType() resp.Frame {
	return resp.Error(wrongTypeErr)
}

// kindMismatch reports whether an existing object blocks a command that
// needs the given kind.
func kindMismatch(obj *store.Object, kind store.Kind) bool {
	return obj != nil && obj.Kind() != kind
}
