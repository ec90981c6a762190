package bitstream

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/icza/mighty"
)

// codeBoundaries are the magnitudes where the codes change shape: powers of
// two straddling the chunk sizes of the engine and the 32/64-bit decode
// limits.
var codeBoundaries = []uint64{
	1, 2, 3, 4, 5, 7, 8,
	1<<8 - 1, 1 << 8, 1<<8 + 1,
	1000, 3000, 100000, 300000000,
	1<<25 - 1, 1 << 25, 1<<25 + 1,
	1<<31 - 1, 1 << 31, 1<<31 + 1,
	1<<32 - 1, 1 << 32, 1<<32 + 1,
	3000000000000,
	1<<62 - 1, 1 << 62, 1<<62 + 1,
	1<<63 - 1, 1 << 63, 1<<63 + 1,
	math.MaxInt32, math.MaxInt32 - 1000,
	math.MaxInt64, math.MaxInt64 - 1000,
	math.MaxUint64 - 1, math.MaxUint64,
}

func TestUnary(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	b := &bytes.Buffer{}
	w := NewWriter(b)
	eq(nil, w.WriteUnary(0))
	eq(nil, w.WriteUnary(5))
	eq(nil, w.Close())
	eq(true, bytes.Equal(b.Bytes(), []byte{0x82}))

	r := NewReader(bytes.NewBuffer(b.Bytes()))
	expEq(uint64(0))(r.ReadUnary())
	expEq(uint64(5))(r.ReadUnary())

	// The same sequence in LSB order packs from bit 0 upward.
	b.Reset()
	w = NewWriterLSB(b)
	eq(nil, w.WriteUnary(0))
	eq(nil, w.WriteUnary(5))
	eq(nil, w.Close())
	eq(true, bytes.Equal(b.Bytes(), []byte{0x41}))

	r = NewReaderLSB(bytes.NewBuffer(b.Bytes()))
	expEq(uint64(0))(r.ReadUnary())
	expEq(uint64(5))(r.ReadUnary())

	for _, n := range []uint64{0, 1, 2, 7, 8, 63, 64, 100, 1000} {
		b.Reset()
		w = NewWriter(b)
		eq(nil, w.WriteUnary(n))
		eq(nil, w.Close())
		r = NewReader(b)
		expEq(n)(r.ReadUnary())
	}
}

func TestEliasGamma(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	b := &bytes.Buffer{}
	w := NewWriter(b)
	eq(nil, w.WriteEliasGamma(1))
	eq(nil, w.WriteEliasGamma(5))
	eq(nil, w.Close())
	eq(true, bytes.Equal(b.Bytes(), []byte{0x94}))

	r := NewReader(bytes.NewBuffer(b.Bytes()))
	expEq(uint64(1))(r.ReadEliasGamma())
	expEq(uint64(5))(r.ReadEliasGamma())

	eq(ErrNonPositive, NewWriter(&bytes.Buffer{}).WriteEliasGamma(0))

	for _, n := range codeBoundaries {
		b.Reset()
		w = NewWriter(b)
		eq(nil, w.WriteEliasGamma(n))
		eq(nil, w.Close())
		r = NewReader(b)
		expEq(n)(r.ReadEliasGamma())
	}
}

func TestEliasGamma32(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	for _, n := range codeBoundaries {
		if n > math.MaxUint32 {
			continue
		}
		b := &bytes.Buffer{}
		w := NewWriter(b)
		eq(nil, w.WriteEliasGamma(n))
		eq(nil, w.Close())
		r := NewReader(b)
		expEq(uint32(n))(r.ReadEliasGamma32())
	}

	// A value one past the 32-bit decoder's reach.
	b := &bytes.Buffer{}
	w := NewWriter(b)
	eq(nil, w.WriteEliasGamma(1<<32))
	eq(nil, w.Close())
	r := NewReader(b)
	_, err := r.ReadEliasGamma32()
	eq(ErrOverflow, err)
}

func TestEliasGammaOverrun(t *testing.T) {
	eq := mighty.Eq(t)

	// A zero run of 64 cannot start any valid code.
	b := &bytes.Buffer{}
	w := NewWriter(b)
	eq(nil, w.WriteZeros(64))
	eq(nil, w.WriteBool(true))
	eq(nil, w.Close())
	r := NewReader(b)
	_, err := r.ReadEliasGamma()
	eq(ErrOverflow, err)
}

func TestExpGolomb(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	// Order 0 of value 0 is Elias-Gamma of 1: the single bit 1.
	b := &bytes.Buffer{}
	w := NewWriter(b)
	eq(nil, w.WriteExpGolomb(0))
	eq(nil, w.Close())
	eq(true, bytes.Equal(b.Bytes(), []byte{0x80}))

	for _, n := range append([]uint64{0}, codeBoundaries...) {
		if n == math.MaxUint64 {
			continue // outside the order-0 domain
		}
		b.Reset()
		w = NewWriter(b)
		eq(nil, w.WriteExpGolomb(n))
		eq(nil, w.Close())
		r := NewReader(b)
		expEq(n)(r.ReadExpGolomb())
	}

	eq(ErrOverflow, NewWriter(&bytes.Buffer{}).WriteExpGolomb(math.MaxUint64))
}

func TestExpGolomb32(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	for _, n := range []uint64{0, 1, 3, 3000, math.MaxInt32, math.MaxUint32 - 1} {
		b := &bytes.Buffer{}
		w := NewWriter(b)
		eq(nil, w.WriteExpGolomb(n))
		eq(nil, w.Close())
		r := NewReader(b)
		expEq(uint32(n))(r.ReadExpGolomb32())
	}
}

func TestExpGolombK(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	for _, k := range []uint8{0, 1, 2, 7, 8, 16, 25, 30, 31} {
		for _, n := range append([]uint64{0}, codeBoundaries...) {
			if k == 0 && n == math.MaxUint64 {
				continue
			}
			b := &bytes.Buffer{}
			w := NewWriter(b)
			eq(nil, w.WriteExpGolombK(n, k))
			eq(nil, w.Close())
			r := NewReader(b)
			expEq(n)(r.ReadExpGolombK(k))
		}
	}

	eq(ErrKRange, NewWriter(&bytes.Buffer{}).WriteExpGolombK(1, 32))
	_, err := NewReader(&bytes.Buffer{}).ReadExpGolombK(32)
	eq(ErrKRange, err)
}

func TestCodesTruncated(t *testing.T) {
	eq := mighty.Eq(t)

	// All zero bits: a 1-byte stream ends inside every code.
	trunc := func() *Reader { return NewReader(bytes.NewBuffer([]byte{0x00})) }

	_, err := trunc().ReadUnary()
	eq(io.EOF, err)
	_, err = trunc().ReadEliasGamma()
	eq(io.EOF, err)
	_, err = trunc().ReadExpGolombK(4)
	eq(io.EOF, err)
	_, err = trunc().ReadFibonacci()
	eq(io.EOF, err)

	// Complete zero run, missing value bits.
	b := &bytes.Buffer{}
	w := NewWriter(b)
	eq(nil, w.WriteZeros(10))
	eq(nil, w.WriteBool(true))
	eq(nil, w.Close())
	_, err = NewReader(b).ReadEliasGamma()
	eq(io.EOF, err)
}

// TestPackedFields pins the layout of a stream holding single bits followed
// by a fixed-width field: bits 1,0,0,0 then 100 in 7 bits pack into
// 0x8C 0x80 with 5 padding bits.
func TestPackedFields(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	b := &bytes.Buffer{}
	w := NewWriter(b)
	eq(nil, w.WriteBool(true))
	eq(nil, w.WriteZeros(2))
	eq(nil, w.WriteBool(false))
	eq(nil, w.WriteBits(100, 7))
	eq(uint64(11), w.BitPosition())
	eq(nil, w.Sync())
	eq(uint64(16), w.BitPosition())
	eq(nil, w.Close())
	eq(true, bytes.Equal(b.Bytes(), []byte{0x8c, 0x80}))

	r := NewReader(b)
	expEq(true)(r.ReadBool())
	expEq(uint64(0))(r.ReadBits(2))
	expEq(false)(r.ReadBool())
	expEq(uint64(100))(r.ReadBits(7))
	eq(nil, r.Sync())
	eq(uint64(16), r.BitPosition())
}

// TestMixedSequence drives every code through one stream with the Try API,
// in both bit orders, and checks that the decoded sequence matches.
func TestMixedSequence(t *testing.T) {
	type step struct {
		code string
		n    uint64
		k    uint8 // fixed width or Exp-Golomb order
	}
	steps := []step{
		{"bool", 1, 0},
		{"zeros", 2, 0},
		{"bool", 0, 0},
		{"zeros", 11, 0},
		{"unary", 0, 0},
		{"unary", 5, 0},
		{"bits", 100, 7},
		{"bits", 100000, 17},
		{"bits", 100000, 20},
		{"gamma", 1, 0},
		{"gamma", 1000, 0},
		{"gamma", math.MaxInt32, 0},
		{"gamma", math.MaxInt32 - 1000, 0},
		{"gamma", math.MaxInt64, 0},
		{"gamma", math.MaxInt64 - 1000, 0},
		{"eg", 3, 0},
		{"eg", 3000, 0},
		{"egk", 3000, 5},
		{"fib", 3, 0},
		{"fib", 3000, 0},
		{"fib", 300000000, 0},
		{"fib", 3000000000000, 0},
		{"fib", math.MaxInt32, 0},
		{"fib", math.MaxInt64, 0},
		{"fib", math.MaxInt64 - 1000, 0},
	}

	run := func(t *testing.T, newW func(io.Writer) *Writer, newR func(io.Reader) *Reader) {
		eq := mighty.Eq(t)

		b := &bytes.Buffer{}
		w := newW(b)
		for _, s := range steps {
			switch s.code {
			case "bool":
				w.TryWriteBool(s.n != 0)
			case "zeros":
				w.TryWriteZeros(int(s.n))
			case "unary":
				w.TryWriteUnary(s.n)
			case "bits":
				w.TryWriteBits(s.n, s.k)
			case "gamma":
				w.TryWriteEliasGamma(s.n)
			case "eg":
				w.TryWriteExpGolomb(s.n)
			case "egk":
				w.TryWriteExpGolombK(s.n, s.k)
			case "fib":
				w.TryWriteFibonacci(s.n)
			}
		}
		eq(nil, w.TryError)
		eq(nil, w.Close())

		r := newR(b)
		var got []uint64
		for _, s := range steps {
			switch s.code {
			case "bool":
				v := r.TryReadBool()
				if v {
					got = append(got, 1)
				} else {
					got = append(got, 0)
				}
			case "zeros":
				got = append(got, r.TryReadBits(uint8(s.n)))
			case "unary":
				got = append(got, r.TryReadUnary())
			case "bits":
				got = append(got, r.TryReadBits(s.k))
			case "gamma":
				got = append(got, r.TryReadEliasGamma())
			case "eg":
				got = append(got, r.TryReadExpGolomb())
			case "egk":
				got = append(got, r.TryReadExpGolombK(s.k))
			case "fib":
				got = append(got, r.TryReadFibonacci())
			}
		}
		eq(nil, r.TryError)

		var want []uint64
		for _, s := range steps {
			if s.code == "zeros" {
				want = append(want, 0)
			} else {
				want = append(want, s.n)
			}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("decoded sequence mismatch (-want +got):\n%s", diff)
		}
	}

	t.Run("msb", func(t *testing.T) { run(t, NewWriter, NewReader) })
	t.Run("lsb", func(t *testing.T) { run(t, NewWriterLSB, NewReaderLSB) })
}

// Codes and raw bytes can alternate on the same stream as long as the byte
// spans are aligned with Sync.
func TestCodesBytePassthrough(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	raw := []byte("header")

	b := &bytes.Buffer{}
	w := NewWriter(b)
	eq(nil, w.WriteEliasGamma(1000))
	eq(nil, w.Sync())
	expEq(len(raw))(w.Write(raw))
	eq(nil, w.WriteFibonacci(77))
	eq(nil, w.Close())

	r := NewReader(b)
	expEq(uint64(1000))(r.ReadEliasGamma())
	eq(nil, r.Sync())
	got := make([]byte, len(raw))
	expEq(len(raw))(r.Read(got))
	eq(true, bytes.Equal(got, raw))
	expEq(uint64(77))(r.ReadFibonacci())
}
