package store

import "testing"

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"*", "anything", true},
		{"*", "", true},
		{"hello", "hello", true},
		{"hello", "world", false},
		{"h*llo", "hello", true},
		{"h*llo", "heeeello", true},
		{"h*llo", "hllo", true},
		{"h?llo", "hello", true},
		{"h?llo", "hllo", false},
		{"h[ae]llo", "hello", true},
		{"h[ae]llo", "hallo", true},
		{"h[ae]llo", "hillo", false},
		{"h[^e]llo", "hallo", true},
		{"h[^e]llo", "hello", false},
		{"h[a-c]llo", "hbllo", true},
		{"h[a-c]llo", "hdllo", false},
		{"user:*", "user:1001", true},
		{"user:*", "session:1001", false},
		{"*:1001", "user:1001", true},
		{"u*r:??01", "user:1001", true},
		{"a\\*b", "a*b", true},
		{"a\\*b", "axb", false},
		{"**", "ab", true},
		{"", "", true},
		{"", "x", false},
		{"[abc", "a", false}, // unterminated class
	}

	for _, tt := range tests {
		if got := MatchGlob(tt.pattern, tt.s); got != tt.want {
			t.Errorf("MatchGlob(%q, %q) = %v, want %v", tt.pattern, tt.s, got, tt.want)
		}
	}
}
