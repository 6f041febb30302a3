package store

import (
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestStore_WithWriteInsertAndRead(t *testing.T) {
	s := New()

	s.WithWrite("k", func(obj *Object) (*Object, bool) {
		if obj != nil {
			t.Error("fresh key passed non-nil object")
		}
		return NewString([]byte("hello")), true
	})

	var got []byte
	s.WithRead("k", func(obj *Object) {
		if obj.Kind() != KindString {
			t.Fatalf("Kind() = %v, want KindString", obj.Kind())
		}
		got = obj.Str()
	})
	if string(got) != "hello" {
		t.Errorf("stored value = %q, want %q", got, "hello")
	}
}

func TestStore_WithWriteDelete(t *testing.T) {
	s := New()
	s.WithWrite("k", func(*Object) (*Object, bool) {
		return NewString([]byte("v")), true
	})

	s.WithWrite("k", func(obj *Object) (*Object, bool) {
		return nil, true
	})
	if s.Exists("k") {
		t.Error("key still exists after delete via WithWrite")
	}
}

func TestStore_WithWriteNoApply(t *testing.T) {
	s := New()
	s.WithWrite("k", func(*Object) (*Object, bool) {
		return NewString([]byte("v")), true
	})

	s.WithWrite("k", func(obj *Object) (*Object, bool) {
		return nil, false
	})
	if !s.Exists("k") {
		t.Error("no-apply write removed the key")
	}
}

func TestStore_WithReadMissing(t *testing.T) {
	s := New()
	called := false
	s.WithRead("missing", func(obj *Object) {
		called = true
		if obj != nil {
			t.Error("missing key passed non-nil object")
		}
	})
	if !called {
		t.Error("WithRead callback not invoked for missing key")
	}
}

func TestStore_TypeOf(t *testing.T) {
	s := New()
	s.WithWrite("str", func(*Object) (*Object, bool) { return NewString(nil), true })
	s.WithWrite("list", func(*Object) (*Object, bool) { return NewList(), true })
	s.WithWrite("hash", func(*Object) (*Object, bool) { return NewHash(), true })
	s.WithWrite("set", func(*Object) (*Object, bool) { return NewSet(), true })
	s.WithWrite("zset", func(*Object) (*Object, bool) { return NewZSet(), true })
	s.WithWrite("json", func(*Object) (*Object, bool) { return NewJSON(map[string]any{}), true })

	tests := []struct {
		key  string
		want string
	}{
		{"str", "string"},
		{"list", "list"},
		{"hash", "hash"},
		{"set", "set"},
		{"zset", "zset"},
		{"json", "ReJSON-RL"},
		{"missing", "none"},
	}
	for _, tt := range tests {
		if got := s.TypeOf(tt.key).String(); got != tt.want {
			t.Errorf("TypeOf(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestStore_SetReplacesVariant(t *testing.T) {
	s := New()
	s.WithWrite("k", func(*Object) (*Object, bool) { return NewList(), true })
	s.WithWrite("k", func(*Object) (*Object, bool) { return NewString([]byte("v")), true })

	if got := s.TypeOf("k"); got != KindString {
		t.Errorf("TypeOf after replace = %v, want KindString", got)
	}
}

func TestStore_CountAndFlush(t *testing.T) {
	s := New()
	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("key-%d", i)
		s.WithWrite(key, func(*Object) (*Object, bool) {
			return NewString([]byte("v")), true
		})
	}

	if got := s.Count(); got != 200 {
		t.Errorf("Count() = %d, want 200", got)
	}

	s.FlushAll()
	if got := s.Count(); got != 0 {
		t.Errorf("Count() after FlushAll = %d, want 0", got)
	}
}

func TestStore_KeysPattern(t *testing.T) {
	s := New()
	for _, k := range []string{"user:1", "user:2", "session:1"} {
		s.WithWrite(k, func(*Object) (*Object, bool) {
			return NewString(nil), true
		})
	}

	var got []string
	s.Keys("user:*", func(key string) { got = append(got, key) })
	sort.Strings(got)

	want := []string{"user:1", "user:2"}
	if len(got) != len(want) {
		t.Fatalf("Keys(user:*) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys(user:*) = %v, want %v", got, want)
		}
	}
}

func TestStore_ConcurrentShardWrites(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("g%d:k%d", g, i)
				s.WithWrite(key, func(obj *Object) (*Object, bool) {
					return NewString([]byte(key)), true
				})
			}
		}(g)
	}
	wg.Wait()

	if got := s.Count(); got != 800 {
		t.Errorf("Count() = %d, want 800", got)
	}
}

func TestObject_Empty(t *testing.T) {
	list := NewList()
	if !list.Empty() {
		t.Error("fresh list not Empty()")
	}
	list.List().PushBack([]byte("v"))
	if list.Empty() {
		t.Error("non-empty list reported Empty()")
	}

	str := NewString([]byte(""))
	if str.Empty() {
		t.Error("empty string object reported Empty(); strings are never empty")
	}
}

func TestSortedMembers(t *testing.T) {
	zset := map[string]float64{
		"b": 2,
		"a": 1,
		"c": 1, // ties with a; lex order breaks the tie
	}

	got := SortedMembers(zset)
	want := []MemberScore{{"a", 1}, {"c", 1}, {"b", 2}}
	if len(got) != len(want) {
		t.Fatalf("SortedMembers returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRangeByRank(t *testing.T) {
	members := []MemberScore{{"a", 1}, {"b", 2}, {"c", 3}}

	if got := RangeByRank(members, 0, -1); len(got) != 3 {
		t.Errorf("full range returned %d entries, want 3", len(got))
	}
	if got := RangeByRank(members, -1, -1); len(got) != 1 || got[0].Member != "c" {
		t.Errorf("tail range = %v, want [c]", got)
	}
	if got := RangeByRank(members, 2, 0); len(got) != 0 {
		t.Errorf("inverted range returned %d entries, want 0", len(got))
	}
	if got := RangeByRank(members, 5, 9); len(got) != 0 {
		t.Errorf("out-of-range window returned %d entries, want 0", len(got))
	}
}
