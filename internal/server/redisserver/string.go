package redisserver

import (
	"strings"

	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
)

func init() {
	register("GET", execGet, 2)
	register("SET", execSet, -3)
}

func execGet(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.NullBulk()
		case store.KindString:
			// Copy under the lock: the stored bytes may be replaced by a
			// concurrent writer once the lock drops.
			reply = resp.Bulk(clone(obj.Str()))
		default:
			reply = wrongType()
		}
	})
	return reply
}

// setPolicy captures the NX/XX presence options.
type setPolicy int

const (
	setAlways setPolicy = iota
	setIfAbsent
	setIfPresent
)

// execSet replaces the value wholesale, whatever variant the key held.
// EX/PX are parsed and validated but not enforced; NX/XX gate the write on
// key presence.
func execSet(h *Handler, c *Conn, args [][]byte) resp.Frame {
	key := string(args[0])
	value := clone(args[1])

	policy := setAlways
	for i := 2; i < len(args); i++ {
		switch strings.ToUpper(string(args[i])) {
		case "NX":
			if policy == setIfPresent {
				return resp.Error("ERR syntax error")
			}
			policy = setIfAbsent
		case "XX":
			if policy == setIfAbsent {
				return resp.Error("ERR syntax error")
			}
			policy = setIfPresent
		case "EX", "PX":
			if i+1 >= len(args) {
				return resp.Error("ERR syntax error")
			}
			if n, ok := parseInt(args[i+1]); !ok || n <= 0 {
				return resp.Error(notIntegerErr)
			}
			i++
		default:
			return resp.Error("ERR syntax error")
		}
	}

	written := false
	h.db.WithWrite(key, func(obj *store.Object) (*store.Object, bool) {
		if policy == setIfAbsent && obj != nil {
			return nil, false
		}
		if policy == setIfPresent && obj == nil {
			return nil, false
		}
		written = true
		return store.NewString(value), true
	})

	if !written {
		return resp.NullBulk()
	}
	return resp.Simple("OK")
}
