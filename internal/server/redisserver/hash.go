package redisserver

import (
	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
)

func init() {
	register("HSET", execHSet, -4)
	register("HGET", execHGet, 3)
	register("HDEL", execHDel, -3)
	register("HEXISTS", execHExists, 3)
	register("HGETALL", execHGetAll, 2)
	register("HKEYS", execHKeys, 2)
	register("HVALS", execHVals, 2)
	register("HLEN", execHLen, 2)
	register("HSCAN", execHScan, -3)
}

// execHSet sets field/value pairs and replies with the number of fields
// that did not previously exist.
func execHSet(h *Handler, c *Conn, args [][]byte) resp.Frame {
	if (len(args)-1)%2 != 0 {
		return errWrongArity("HSET")
	}

	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		if kindMismatch(obj, store.KindHash) {
			reply = wrongType()
			return nil, false
		}
		if obj == nil {
			obj = store.NewHash()
		}

		hash := obj.Hash()
		created := int64(0)
		for i := 1; i < len(args); i += 2 {
			field := string(args[i])
			if _, ok := hash[field]; !ok {
				created++
			}
			hash[field] = clone(args[i+1])
		}
		reply = resp.Integer(created)
		return obj, true
	})
	return reply
}

func execHGet(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.NullBulk()
		case store.KindHash:
			if v, ok := obj.Hash()[string(args[1])]; ok {
				reply = resp.Bulk(clone(v))
			} else {
				reply = resp.NullBulk()
			}
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execHDel(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		switch {
		case obj == nil:
			reply = resp.Integer(0)
			return nil, false
		case obj.Kind() != store.KindHash:
			reply = wrongType()
			return nil, false
		}

		hash := obj.Hash()
		removed := int64(0)
		for _, f := range args[1:] {
			field := string(f)
			if _, ok := hash[field]; ok {
				delete(hash, field)
				removed++
			}
		}
		reply = resp.Integer(removed)
		if obj.Empty() {
			return nil, true
		}
		return obj, true
	})
	return reply
}

func execHExists(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Integer(0)
		case store.KindHash:
			if _, ok := obj.Hash()[string(args[1])]; ok {
				reply = resp.Integer(1)
			} else {
				reply = resp.Integer(0)
			}
		default:
			reply = wrongType()
		}
	})
	return reply
}

// execHGetAll replies with a flat field, value, field, value array. Pair
// order is unspecified but each value follows its field.
func execHGetAll(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Array()
		case store.KindHash:
			hash := obj.Hash()
			elems := make([]resp.Frame, 0, len(hash)*2)
			for f, v := range hash {
				elems = append(elems, resp.BulkString(f), resp.Bulk(clone(v)))
			}
			reply = resp.Array(elems...)
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execHKeys(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Array()
		case store.KindHash:
			hash := obj.Hash()
			elems := make([]resp.Frame, 0, len(hash))
			for f := range hash {
				elems = append(elems, resp.BulkString(f))
			}
			reply = resp.Array(elems...)
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execHVals(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Array()
		case store.KindHash:
			hash := obj.Hash()
			elems := make([]resp.Frame, 0, len(hash))
			for _, v := range hash {
				elems = append(elems, resp.Bulk(clone(v)))
			}
			reply = resp.Array(elems...)
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execHLen(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Integer(0)
		case store.KindHash:
			reply = resp.Integer(int64(len(obj.Hash())))
		default:
			reply = wrongType()
		}
	})
	return reply
}

// execHScan mirrors SCAN's single-shot cursor over one hash: the full set
// of matching fields comes back in one step with next cursor 0.
func execHScan(h *Handler, c *Conn, args [][]byte) resp.Frame {
	cursor, ok := parseInt(args[1])
	if !ok || cursor < 0 {
		return resp.Error("ERR invalid cursor")
	}
	pattern, _, errReply := parseScanOptions(args[2:])
	if errReply != nil {
		return *errReply
	}

	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Array(resp.BulkString("0"), resp.Array())
		case store.KindHash:
			all := pattern == "*"
			elems := []resp.Frame{}
			for f, v := range obj.Hash() {
				if all || store.MatchGlob(pattern, f) {
					elems = append(elems, resp.BulkString(f), resp.Bulk(clone(v)))
				}
			}
			reply = resp.Array(resp.BulkString("0"), resp.Array(elems...))
		default:
			reply = wrongType()
		}
	})
	return reply
}
