package store

import "sort"

// MemberScore pairs a sorted-set member with its score.
type MemberScore struct {
	Member string
	Score  float64
}

// SortedMembers returns the sorted-set entries ordered by (score ascending,
// member lexicographic ascending). Sorting happens at read time; the
// backing map stays unordered, which keeps ZADD O(1).
func SortedMembers(zset map[string]float64) []MemberScore {
	out := make([]MemberScore, 0, len(zset))
	for member, score := range zset {
		out = append(out, MemberScore{Member: member, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Member < out[j].Member
	})
	return out
}

// RangeByRank applies Redis index normalization to a sorted slice of
// entries: negative indices count from the tail, the window is clamped,
// and an inverted window yields an empty slice.
func RangeByRank(members []MemberScore, start, stop int64) []MemberScore {
	n := int64(len(members))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return []MemberScore{}
	}
	return members[start : stop+1]
}
