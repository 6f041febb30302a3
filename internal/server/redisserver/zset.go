package redisserver

import (
	"strings"

	"github.com/rahulkeshervani/rustbucket/internal/resp"
	"github.com/rahulkeshervani/rustbucket/internal/store"
)

func init() {
	register("ZADD", execZAdd, -4)
	register("ZRANGE", execZRange, -4)
	register("ZSCORE", execZScore, 3)
	register("ZCARD", execZCard, 2)
}

// execZAdd inserts or updates score/member pairs. The reply counts only
// newly inserted members; a score update contributes 0.
func execZAdd(h *Handler, c *Conn, args [][]byte) resp.Frame {
	if (len(args)-1)%2 != 0 {
		return errWrongArity("ZADD")
	}

	// Validate every score before taking the lock so a bad pair cannot
	// leave a partial update behind.
	scores := make([]float64, 0, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		f, ok := parseFloat(args[i])
		if !ok {
			return resp.Error(notFloatErr)
		}
		scores = append(scores, f)
	}

	var reply resp.Frame
	h.db.WithWrite(string(args[0]), func(obj *store.Object) (*store.Object, bool) {
		if kindMismatch(obj, store.KindZSet) {
			reply = wrongType()
			return nil, false
		}
		if obj == nil {
			obj = store.NewZSet()
		}

		zset := obj.ZSet()
		added := int64(0)
		for i, score := range scores {
			member := string(args[2+i*2])
			if _, ok := zset[member]; !ok {
				added++
			}
			zset[member] = score
		}
		reply = resp.Integer(added)
		return obj, true
	})
	return reply
}

// execZRange returns members ordered by (score asc, member lex asc) with
// LRANGE-style index normalization. WITHSCORES interleaves each member
// with its score.
func execZRange(h *Handler, c *Conn, args [][]byte) resp.Frame {
	start, ok := parseInt(args[1])
	if !ok {
		return resp.Error(notIntegerErr)
	}
	stop, ok := parseInt(args[2])
	if !ok {
		return resp.Error(notIntegerErr)
	}

	withScores := false
	if len(args) == 4 {
		if !strings.EqualFold(string(args[3]), "WITHSCORES") {
			return resp.Error("ERR syntax error")
		}
		withScores = true
	} else if len(args) > 4 {
		return resp.Error("ERR syntax error")
	}

	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Array()
		case store.KindZSet:
			window := store.RangeByRank(store.SortedMembers(obj.ZSet()), start, stop)
			elems := make([]resp.Frame, 0, len(window)*2)
			for _, ms := range window {
				elems = append(elems, resp.BulkString(ms.Member))
				if withScores {
					elems = append(elems, resp.BulkString(formatScore(ms.Score)))
				}
			}
			reply = resp.Array(elems...)
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execZScore(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.NullBulk()
		case store.KindZSet:
			if score, ok := obj.ZSet()[string(args[1])]; ok {
				reply = resp.BulkString(formatScore(score))
			} else {
				reply = resp.NullBulk()
			}
		default:
			reply = wrongType()
		}
	})
	return reply
}

func execZCard(h *Handler, c *Conn, args [][]byte) resp.Frame {
	var reply resp.Frame
	h.db.WithRead(string(args[0]), func(obj *store.Object) {
		switch obj.Kind() {
		case store.KindNone:
			reply = resp.Integer(0)
		case store.KindZSet:
			reply = resp.Integer(int64(len(obj.ZSet())))
		default:
			reply = wrongType()
		}
	})
	return reply
}
