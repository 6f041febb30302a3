package redisserver

import (
	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
)

func init() {
	register("SADD", execSAdd, -3)
	register("SREM", execSRem, -3)
	register("SMEMBERS", execSMembers, 2)
	register("SCARD", execSCard, 2)
	register("SISMEMBER", execSIsMember, 3)
}

func execSAdd(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		if kindMismatch(obj, store.KindSet) {
			reply = wrongType()
			return nil, false
		}
		if obj == nil {
			obj = store.NewSet()
		}

		set := obj.Set()
		added := int64(0)
		for _, m := range args[1:] {
			member := string(m)
			if _, ok := set[member]; !ok {
				set[member] = struct{}{}
				added++
			}
		}
		reply = resp.Integer(added)
		return obj, true
	})
	return reply
}

func execSRem(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		switch {
		case obj == nil:
			reply = resp.Integer(0)
			return nil, false
		case obj.Kind() != store.KindSet:
			reply = wrongType()
			return nil, false
		}

		set := obj.Set()
		removed := int64(0)
		for _, m := range args[1:] {
			member := string(m)
			if _, ok := set[member]; ok {
				delete(set, member)
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

// execSMembers replies with the unique members in unspecified order.
func execSMembers(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Array()
		case store.KindSet:
			set := obj.Set()
			elems := make([]resp.Frame, 0, len(set))
			for m := range set {
				elems = append(elems, resp.BulkString(m))
			}
			reply = resp.Array(elems...)
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execSCard(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Integer(0)
		case store.KindSet:
			reply = resp.Integer(int64(len(obj.Set())))
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execSIsMember(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Integer(0)
		case store.KindSet:
			if _, ok := obj.Set()[string(args[1])]; ok {
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
