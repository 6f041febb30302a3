package store

// minDequeCap is the smallest ring allocation; must be a power of 2 so the
// head index can wrap with a mask.
const minDequeCap = 8

// Deque is a double-ended queue of byte strings backed by a ring buffer.
// Push and pop at either end are amortized O(1); indexed access is O(1).
type Deque struct {
	buf  [][]byte
	head int
	size int
}

// NewDeque returns an empty deque.
func NewDeque() *Deque {
	return &Deque{}
}

// Len returns the number of elements.
func (d *Deque) Len() int {
	return d.size
}

// PushFront prepends v.
func (d *Deque) PushFront(v []byte) {
	d.grow()
	d.head = (d.head - 1) & (len(d.buf) - 1)
	d.buf[d.head] = v
	d.size++
}

// PushBack appends v.
func (d *Deque) PushBack(v []byte) {
	d.grow()
	d.buf[(d.head+d.size)&(len(d.buf)-1)] = v
	d.size++
}

// PopFront removes and returns the first element.
func (d *Deque) PopFront() ([]byte, bool) {
	if d.size == 0 {
		return nil, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = nil
	d.head = (d.head + 1) & (len(d.buf) - 1)
	d.size--
	return v, true
}

// PopBack removes and returns the last element.
func (d *Deque) PopBack() ([]byte, bool) {
	if d.size == 0 {
		return nil, false
	}
	i := (d.head + d.size - 1) & (len(d.buf) - 1)
	v := d.buf[i]
	d.buf[i] = nil
	d.size--
	return v, true
}

// At returns the element at index i. i must be in [0, Len).
func (d *Deque) At(i int) []byte {
	return d.buf[(d.head+i)&(len(d.buf)-1)]
}

// Range returns the elements between start and stop inclusive, after Redis
// index normalization: negative indices count from the tail, start is
// clamped to 0, stop to Len-1, and an inverted or out-of-range window
// yields an empty slice.
func (d *Deque) Range(start, stop int64) [][]byte {
	n := int64(d.size)
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
		return [][]byte{}
	}

	out := make([][]byte, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, d.At(int(i)))
	}
	return out
}

// grow doubles the ring when full.
func (d *Deque) grow() {
	if d.size < len(d.buf) {
		return
	}
	capacity := len(d.buf) * 2
	if capacity == 0 {
		capacity = minDequeCap
	}
	buf := make([][]byte, capacity)
	for i := 0; i < d.size; i++ {
		buf[i] = d.At(i)
	}
	d.buf = buf
	d.head = 0
}
