/*

Writer: bit-level output over an io.Writer.

*/

package bitstream

import (
	"bufio"
	"io"
)

// An io.Writer and io.ByteWriter at the same time.
type writerAndByteWriter interface {
	io.Writer
	io.ByteWriter
}

// Writer writes bits and universal codes to an io.Writer.
//
// It accumulates bits in a 32-bit buffer and emits every completed byte
// before an exported call returns, so between calls fewer than 8 bits are
// pending. Only Sync (or Close) writes a partial byte, padded with zeros.
// A Writer must not be used from more than one goroutine, and it owns its
// sink for the duration of every call.
type Writer struct {
	out       writerAndByteWriter
	dst       io.Writer     // original sink, released by Close
	wrapperbw *bufio.Writer // wrapper if the sink is not an io.ByteWriter
	lsb       bool          // lowest-bits-first packing

	// buf holds exactly n valid bits in its low n positions, oriented the
	// same way as Reader.buf.
	buf     uint32
	n       uint8
	emitted uint64 // bytes written to out
	closed  bool

	// TryError holds the first error encountered by the Try methods.
	// While it is non-nil, all Try methods are no-ops.
	TryError error
}

// NewWriter returns a new Writer using the specified io.Writer as the
// output, packing bits in highest-bits-first order.
func NewWriter(out io.Writer) *Writer {
	return newWriter(out, false)
}

// NewWriterLSB is like NewWriter but packs bits in lowest-bits-first order.
// It must be paired with a Reader created by NewReaderLSB.
func NewWriterLSB(out io.Writer) *Writer {
	return newWriter(out, true)
}

func newWriter(out io.Writer, lsb bool) *Writer {
	w := &Writer{dst: out, lsb: lsb}
	var ok bool
	w.out, ok = out.(writerAndByteWriter)
	if !ok {
		w.wrapperbw = bufio.NewWriter(out)
		w.out = w.wrapperbw
	}
	return w
}

// drain emits buffered bits to the sink one whole byte at a time.
func (w *Writer) drain() error {
	for w.n >= 8 {
		var b byte
		if w.lsb {
			b = byte(w.buf)
		} else {
			b = byte(w.buf >> (w.n - 8))
		}
		if err := w.out.WriteByte(b); err != nil {
			return err
		}
		w.n -= 8
		if w.lsb {
			w.buf >>= 8
		} else {
			w.buf &= 1<<w.n - 1
		}
		w.emitted++
	}
	return nil
}

// WriteBool writes one bit: 1 if the parameter is true, 0 otherwise.
func (w *Writer) WriteBool(b bool) error {
	var bit uint32
	if b {
		bit = 1
	}
	if w.lsb {
		w.buf |= bit << w.n
	} else {
		w.buf = w.buf<<1 | bit
	}
	w.n++
	return w.drain()
}

// WriteBits writes the lowest n bits of v, 0 <= n <= 64. Higher bits of v
// are ignored. Values wider than the internal buffer are split into
// sub-writes: most significant part first in the default order, least
// significant first in LSB order.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if n > 64 {
		return ErrWidthRange
	}
	if n < 64 {
		v &= 1<<n - 1
	}
	for n > 0 {
		c := 32 - w.n
		if c > 31 {
			c = 31
		}
		if c > n {
			c = n
		}
		if w.lsb {
			w.buf |= uint32(v&(1<<c-1)) << w.n
			v >>= c
		} else {
			rest := n - c
			w.buf = w.buf<<c | uint32(v>>rest)
			v &= 1<<rest - 1
		}
		w.n += c
		n -= c
		if err := w.drain(); err != nil {
			return err
		}
	}
	return nil
}

// WriteZeros writes n zero bits.
func (w *Writer) WriteZeros(n int) error {
	if n < 0 {
		return ErrWidthRange
	}
	return w.writeZeros(uint64(n))
}

func (w *Writer) writeZeros(n uint64) error {
	for n > 0 {
		c := uint64(32 - w.n)
		if c > n {
			c = n
		}
		if !w.lsb {
			w.buf <<= c // c is 32 only when the buffer is empty
		}
		w.n += uint8(c)
		n -= c
		if err := w.drain(); err != nil {
			return err
		}
	}
	return nil
}

// WriteByte implements io.ByteWriter. On a byte boundary the write is
// delegated to the underlying writer.
func (w *Writer) WriteByte(b byte) error {
	if w.n == 0 {
		if err := w.out.WriteByte(b); err != nil {
			return err
		}
		w.emitted++
		return nil
	}
	return w.WriteBits(uint64(b), 8)
}

// Write implements io.Writer. On a byte boundary it delegates to the
// underlying writer, otherwise each byte is spread over two output bytes.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.n == 0 {
		n, err = w.out.Write(p)
		w.emitted += uint64(n)
		return n, err
	}
	for i, b := range p {
		if err = w.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Sync pads the pending bits with zeros up to the next byte boundary and
// writes that byte out, then flushes the bufio wrapper if one was needed at
// construction. The reader side must Sync at the matching position to skip
// the padding. Sync on a byte boundary writes nothing.
func (w *Writer) Sync() error {
	if w.n > 0 {
		var b byte
		if w.lsb {
			b = byte(w.buf)
		} else {
			b = byte(w.buf << (8 - w.n))
		}
		if err := w.out.WriteByte(b); err != nil {
			return err
		}
		w.buf, w.n = 0, 0
		w.emitted++
	}
	if w.wrapperbw != nil {
		return w.wrapperbw.Flush()
	}
	return nil
}

// BitPosition returns the number of bits accepted so far, counting the
// padding bits added by Sync.
func (w *Writer) BitPosition() uint64 {
	return w.emitted*8 + uint64(w.n)
}

// Close syncs and then releases the underlying writer if it is an io.Closer.
// Only the first call has an effect; the sink is released exactly once even
// when the final sync fails.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.Sync()
	if c, ok := w.dst.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// TryWriteBool is like WriteBool, but records the error in TryError instead
// of returning it, so a whole encode sequence can be checked once at the end.
func (w *Writer) TryWriteBool(b bool) {
	if w.TryError == nil {
		w.TryError = w.WriteBool(b)
	}
}

// TryWriteBits is like WriteBits, but records the error in TryError.
func (w *Writer) TryWriteBits(v uint64, n uint8) {
	if w.TryError == nil {
		w.TryError = w.WriteBits(v, n)
	}
}

// TryWriteZeros is like WriteZeros, but records the error in TryError.
func (w *Writer) TryWriteZeros(n int) {
	if w.TryError == nil {
		w.TryError = w.WriteZeros(n)
	}
}

// TryWriteByte is like WriteByte, but records the error in TryError.
func (w *Writer) TryWriteByte(b byte) {
	if w.TryError == nil {
		w.TryError = w.WriteByte(b)
	}
}

// TryWrite is like Write, but records the error in TryError.
func (w *Writer) TryWrite(p []byte) (n int) {
	if w.TryError == nil {
		n, w.TryError = w.Write(p)
	}
	return
}

// TrySync is like Sync, but records the error in TryError.
func (w *Writer) TrySync() {
	if w.TryError == nil {
		w.TryError = w.Sync()
	}
}
