/*

Reader: bit-level input over an io.Reader.

*/

package bitstream

import (
	"bufio"
	"io"
)

// An io.Reader and io.ByteReader at the same time.
type readerAndByteReader interface {
	io.Reader
	io.ByteReader
}

// Reader reads bits and universal codes from an io.Reader.
//
// It buffers at most 32 bits; between exported calls fewer than 8 bits remain
// buffered, so Sync never spans more than the padding of the current byte.
// A Reader must not be used from more than one goroutine, and it owns its
// source for the duration of every call.
type Reader struct {
	in  readerAndByteReader
	src io.Reader // original source, released by Close
	lsb bool      // lowest-bits-first packing

	// buf holds exactly n valid bits in its low n positions. In the
	// default order the oldest bit is the most significant of the n,
	// in LSB order it is bit 0.
	buf     uint32
	n       uint8
	fetched uint64 // bytes pulled from in
	closed  bool

	// TryError holds the first error encountered by the Try methods.
	// While it is non-nil, all Try methods are no-ops.
	TryError error
}

// NewReader returns a new Reader using the specified io.Reader as the input
// (source), packing bits in highest-bits-first order.
func NewReader(in io.Reader) *Reader {
	return newReader(in, false)
}

// NewReaderLSB is like NewReader but packs bits in lowest-bits-first order.
// It must be paired with a Writer created by NewWriterLSB.
func NewReaderLSB(in io.Reader) *Reader {
	return newReader(in, true)
}

func newReader(in io.Reader, lsb bool) *Reader {
	bin, ok := in.(readerAndByteReader)
	if !ok {
		bin = bufio.NewReader(in)
	}
	return &Reader{in: bin, src: in, lsb: lsb}
}

// reserve pulls input bytes until at least want bits are buffered.
// want must be at most 25 so that the byte-fill loop cannot overflow the
// 32-bit buffer.
func (r *Reader) reserve(want uint8) error {
	for r.n < want {
		b, err := r.in.ReadByte()
		if err != nil {
			return err
		}
		if r.lsb {
			r.buf |= uint32(b) << r.n
		} else {
			r.buf = r.buf<<8 | uint32(b)
		}
		r.n += 8
		r.fetched++
	}
	return nil
}

// take removes c buffered bits, 1 <= c <= buffered count.
func (r *Reader) take(c uint8) uint32 {
	var v uint32
	if r.lsb {
		v = r.buf & (1<<c - 1)
		r.buf >>= c
		r.n -= c
	} else {
		v = r.buf >> (r.n - c)
		r.n -= c
		r.buf &= 1<<r.n - 1
	}
	return v
}

// ReadBool reads a single bit and returns true if it is 1.
func (r *Reader) ReadBool() (bool, error) {
	if err := r.reserve(1); err != nil {
		return false, err
	}
	return r.take(1) != 0, nil
}

// ReadBits reads n bits, 0 <= n <= 64, and returns them as the lowest n bits
// of u. Requests wider than the internal buffer are split into sub-reads:
// most significant part first in the default order, least significant first
// in LSB order.
func (r *Reader) ReadBits(n uint8) (u uint64, err error) {
	if n > 64 {
		return 0, ErrWidthRange
	}
	var shift uint8
	for n > 0 {
		c := n
		if c > 25 {
			c = 25
		}
		if err = r.reserve(c); err != nil {
			return 0, err
		}
		chunk := uint64(r.take(c))
		if r.lsb {
			u |= chunk << shift
			shift += c
		} else {
			u = u<<c | chunk
		}
		n -= c
	}
	return u, nil
}

// ReadByte implements io.ByteReader. On a byte boundary the read is
// delegated to the underlying reader.
func (r *Reader) ReadByte() (byte, error) {
	if r.n == 0 {
		b, err := r.in.ReadByte()
		if err != nil {
			return 0, err
		}
		r.fetched++
		return b, nil
	}
	u, err := r.ReadBits(8)
	return byte(u), err
}

// Read implements io.Reader. On a byte boundary it delegates to the
// underlying reader, otherwise each output byte is assembled from two
// adjacent input bytes.
func (r *Reader) Read(p []byte) (n int, err error) {
	if r.n == 0 {
		n, err = r.in.Read(p)
		r.fetched += uint64(n)
		return n, err
	}
	for ; n < len(p); n++ {
		if p[n], err = r.ReadByte(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Sync discards the buffered padding bits so that reading resumes on the
// next byte boundary, mirroring Writer.Sync. The buffered bits must all be
// zero; anything else means the reader is not positioned at a padding point,
// and ErrNonZeroPadding is returned with the buffer left untouched.
// Sync on a byte boundary is a no-op.
func (r *Reader) Sync() error {
	if r.buf != 0 {
		return ErrNonZeroPadding
	}
	r.n = 0
	return nil
}

// BitPosition returns the number of bits consumed from the stream so far,
// counting the padding bits discarded by Sync.
func (r *Reader) BitPosition() uint64 {
	return r.fetched*8 - uint64(r.n)
}

// Close releases the underlying reader if it is an io.Closer. Only the
// first call has an effect.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// TryReadBool is like ReadBool, but records the error in TryError instead of
// returning it, so a whole decode sequence can be checked once at the end.
func (r *Reader) TryReadBool() (b bool) {
	if r.TryError == nil {
		b, r.TryError = r.ReadBool()
	}
	return
}

// TryReadBits is like ReadBits, but records the error in TryError.
func (r *Reader) TryReadBits(n uint8) (u uint64) {
	if r.TryError == nil {
		u, r.TryError = r.ReadBits(n)
	}
	return
}

// TryReadByte is like ReadByte, but records the error in TryError.
func (r *Reader) TryReadByte() (b byte) {
	if r.TryError == nil {
		b, r.TryError = r.ReadByte()
	}
	return
}

// TryRead is like Read, but records the error in TryError.
func (r *Reader) TryRead(p []byte) (n int) {
	if r.TryError == nil {
		n, r.TryError = r.Read(p)
	}
	return
}

// TrySync is like Sync, but records the error in TryError.
func (r *Reader) TrySync() {
	if r.TryError == nil {
		r.TryError = r.Sync()
	}
}
