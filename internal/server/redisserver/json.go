package redisserver

import (
	"encoding/json"

	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
)

func init() {
	register("JSON.SET", execJSONSet, 4)
	register("JSON.GET", execJSONGet, -2)
	register("JSON.DEL", execJSONDel, 2)
}

// isRootPath accepts the two spellings of the document root.
func isRootPath(p []byte) bool {
	return len(p) == 1 && (p[0] == '$' || p[0] == '.')
}

// execJSONSet parses and stores a whole document. Only root paths are
// supported; the document is replaced wholesale.
func execJSONSet(h *Handler, c *Conn, args [][]byte) resp.Frame {
	if !isRootPath(args[1]) {
		return resp.Error("ERR unsupported path '" + string(args[1]) + "'")
	}

	var doc any
	if err := json.Unmarshal(args[2], &doc); err != nil {
		return resp.Error("ERR invalid json")
	}

	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		if kindMismatch(obj, store.KindJSON) {
			reply = wrongType()
			return nil, false
		}
		reply = resp.Simple("OK")
		return store.NewJSON(doc), true
	})
	return reply
}

func execJSONGet(h *Handler, c *Conn, args [][]byte) resp.Frame {
	if len(args) > 2 {
		return errWrongArity("JSON.GET")
	}
	if len(args) == 2 && !isRootPath(args[1]) {
		return resp.Error("ERR unsupported path '" + string(args[1]) + "'")
	}

	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.NullBulk()
		case store.KindJSON:
			out, err := json.Marshal(obj.JSON())
			if err != nil {
				reply = resp.Error("ERR could not serialize document")
				return
			}
			reply = resp.Bulk(out)
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execJSONDel(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		switch {
		case obj == nil:
			reply = resp.Integer(0)
			return nil, false
		case obj.Kind() != store.KindJSON:
			reply = wrongType()
			return nil, false
		}
		reply = resp.Integer(1)
		return nil, true
	})
	return reply
}
