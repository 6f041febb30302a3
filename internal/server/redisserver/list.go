package redisserver

import (
	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
)

func init() {
	register("LPUSH", execLPush, -3)
	register("RPUSH", execRPush, -3)
	register("LPOP", execLPop, 2)
	register("RPOP", execRPop, 2)
	register("LRANGE", execLRange, 4)
	register("LLEN", execLLen, 2)
}

func execLPush(h *Handler, c *Conn, args [][]byte) resp.Frame {
	return listPush(h, args, func(d *store.Deque, v []byte) { d.PushFront(v) })
}

func execRPush(h *Handler, c *Conn, args [][]byte) resp.Frame {
	return listPush(h, args, func(d *store.Deque, v []byte) { d.PushBack(v) })
}

func listPush(h *Handler, args [][]byte, push func(*store.Deque, []byte)) resp.Frame {
	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		if kindMismatch(obj, store.KindList) {
			reply = wrongType()
			return nil, false
		}
		if obj == nil {
			obj = store.NewList()
		}
		for _, v := range args[1:] {
			push(obj.List(), clone(v))
		}
		reply = resp.Integer(int64(obj.List().Len()))
		return obj, true
	})
	return reply
}

func execLPop(h *Handler, c *Conn, args [][]byte) resp.Frame {
	return listPop(h, args, func(d *store.Deque) ([]byte, bool) { return d.PopFront() })
}

func execRPop(h *Handler, c *Conn, args [][]byte) resp.Frame {
	return listPop(h, args, func(d *store.Deque) ([]byte, bool) { return d.PopBack() })
}

func listPop(h *Handler, args [][]byte, pop func(*store.Deque) ([]byte, bool)) resp.Frame {
	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		switch {
		case obj == nil:
			reply = resp.NullBulk()
			return nil, false
		case obj.Kind() != store.KindList:
			reply = wrongType()
			return nil, false
		}

		v, ok := pop(obj.List())
		if !ok {
			reply = resp.NullBulk()
			return nil, false
		}
		reply = resp.Bulk(v)
		if obj.Empty() {
			// Last element gone; the key goes with it.
			return nil, true
		}
		return obj, true
	})
	return reply
}

func execLRange(h *Handler, c *Conn, args [][]byte) resp.Frame {
	start, ok := parseInt(args[1])
	if !ok {
		return resp.Error(notIntegerErr)
	}
	stop, ok := parseInt(args[2])
	if !ok {
		return resp.Error(notIntegerErr)
	}

	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Array()
		case store.KindList:
			window := obj.List().Range(start, stop)
			elems := make([]resp.Frame, 0, len(window))
			for _, v := range window {
				elems = append(elems, resp.Bulk(clone(v)))
			}
			reply = resp.Array(elems...)
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execLLen(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Integer(0)
		case store.KindList:
			reply = resp.Integer(int64(obj.List().Len()))
		default:
			reply = wrongType()
		}
	})
	return reply
}
