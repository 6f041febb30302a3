package resp

import "strconv"

// Writer accumulates serialized frames in an output buffer.
//
// Nothing is flushed by the Writer itself; the connection loop writes the
// whole buffer to the socket in one operation after draining its read
// buffer, which is what batches a pipeline of N commands into one write.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of buffered bytes.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the buffered output. The slice is invalidated by further
// writes or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reset discards buffered output, retaining capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WriteFrame appends a serialized frame.
func (w *Writer) WriteFrame(f Frame) {
	w.buf = f.Append(w.buf)
}

// WriteSimple appends a simple string reply.
func (w *Writer) WriteSimple(s string) {
	w.buf = append(w.buf, '+')
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, '\r', '\n')
}

// WriteError appends an error reply.
func (w *Writer) WriteError(s string) {
	w.buf = append(w.buf, '-')
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, '\r', '\n')
}

// WriteInteger appends an integer reply.
func (w *Writer) WriteInteger(n int64) {
	w.buf = append(w.buf, ':')
	w.buf = strconv.AppendInt(w.buf, n, 10)
	w.buf = append(w.buf, '\r', '\n')
}

// WriteBulk appends a bulk string reply; nil writes the null bulk.
func (w *Writer) WriteBulk(b []byte) {
	if b == nil {
		w.WriteNullBulk()
		return
	}
	w.buf = append(w.buf, '$')
	w.buf = strconv.AppendInt(w.buf, int64(len(b)), 10)
	w.buf = append(w.buf, '\r', '\n')
	w.buf = append(w.buf, b...)
	w.buf = append(w.buf, '\r', '\n')
}

// WriteBulkString appends a bulk string reply from a string.
func (w *Writer) WriteBulkString(s string) {
	w.buf = append(w.buf, '$')
	w.buf = strconv.AppendInt(w.buf, int64(len(s)), 10)
	w.buf = append(w.buf, '\r', '\n')
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, '\r', '\n')
}

// WriteNullBulk appends the null bulk string.
func (w *Writer) WriteNullBulk() {
	w.buf = append(w.buf, "$-1\r\n"...)
}

// WriteArrayHeader appends an array header for n following elements.
func (w *Writer) WriteArrayHeader(n int) {
	w.buf = append(w.buf, '*')
	w.buf = strconv.AppendInt(w.buf, int64(n), 10)
	w.buf = append(w.buf, '\r', '\n')
}

// AppendCommand serializes a client command (array of bulk strings) onto
// dst. Used by the CLI and by tests to speak to a server.
func AppendCommand(dst []byte, args ...[]byte) []byte {
	dst = append(dst, '*')
	dst = strconv.AppendInt(dst, int64(len(args)), 10)
	dst = append(dst, '\r', '\n')
	for _, arg := range args {
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(arg)), 10)
		dst = append(dst, '\r', '\n')
		dst = append(dst, arg...)
		dst = append(dst, '\r', '\n')
	}
	return dst
}
