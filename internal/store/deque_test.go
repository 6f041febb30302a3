package store

import (
	"bytes"
	"fmt"
	"testing"
)

func TestDeque_PushPop(t *testing.T) {
	d := NewDeque()

	d.PushBack([]byte("b"))
	d.PushFront([]byte("a"))
	d.PushBack([]byte("c"))

	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}

	if v, ok := d.PopFront(); !ok || string(v) != "a" {
		t.Errorf("PopFront() = %q, %v; want a, true", v, ok)
	}
	if v, ok := d.PopBack(); !ok || string(v) != "c" {
		t.Errorf("PopBack() = %q, %v; want c, true", v, ok)
	}
	if v, ok := d.PopFront(); !ok || string(v) != "b" {
		t.Errorf("PopFront() = %q, %v; want b, true", v, ok)
	}

	if _, ok := d.PopFront(); ok {
		t.Error("PopFront() on empty deque reported ok")
	}
	if _, ok := d.PopBack(); ok {
		t.Error("PopBack() on empty deque reported ok")
	}
}

func TestDeque_LPushOrder(t *testing.T) {
	// N front pushes read back in reverse push order.
	d := NewDeque()
	for i := 1; i <= 5; i++ {
		d.PushFront([]byte(fmt.Sprintf("v%d", i)))
	}

	got := d.Range(0, -1)
	want := []string{"v5", "v4", "v3", "v2", "v1"}
	if len(got) != len(want) {
		t.Fatalf("Range returned %d elements, want %d", len(got), len(want))
	}
	for i, w := range want {
		if string(got[i]) != w {
			t.Errorf("element %d = %q, want %q", i, got[i], w)
		}
	}
}

func TestDeque_GrowAcrossWrap(t *testing.T) {
	// Force the head to wrap before growth so reindexing is exercised.
	d := NewDeque()
	for i := 0; i < 6; i++ {
		d.PushBack([]byte{byte('0' + i)})
	}
	for i := 0; i < 4; i++ {
		d.PopFront()
	}
	for i := 6; i < 20; i++ {
		d.PushBack([]byte{byte('0' + i%10)})
	}

	if d.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", d.Len())
	}
	for i := 0; i < 16; i++ {
		want := byte('0' + (i+4)%10)
		if got := d.At(i); !bytes.Equal(got, []byte{want}) {
			t.Errorf("At(%d) = %q, want %q", i, got, []byte{want})
		}
	}
}

func TestDeque_Range(t *testing.T) {
	d := NewDeque()
	for i := 0; i < 5; i++ {
		d.PushBack([]byte{byte('a' + i)})
	}

	tests := []struct {
		name        string
		start, stop int64
		want        []string
	}{
		{"full range", 0, -1, []string{"a", "b", "c", "d", "e"}},
		{"middle", 1, 3, []string{"b", "c", "d"}},
		{"negative start", -2, -1, []string{"d", "e"}},
		{"stop past end clamps", 2, 100, []string{"c", "d", "e"}},
		{"start past end", 10, 20, []string{}},
		{"inverted window", 3, 1, []string{}},
		{"very negative start clamps", -100, 0, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Range(tt.start, tt.stop)
			if len(got) != len(tt.want) {
				t.Fatalf("Range(%d, %d) returned %d elements, want %d",
					tt.start, tt.stop, len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if string(got[i]) != w {
					t.Errorf("element %d = %q, want %q", i, got[i], w)
				}
			}
		})
	}
}

func BenchmarkDeque_PushFront(b *testing.B) {
	d := NewDeque()
	v := []byte("value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.PushFront(v)
	}
}
