/*

Universal codes: Unary, Elias-Gamma and Exponential-Golomb.
The Fibonacci code lives in fibonacci.go.

*/

package bitstream

import "math/bits"

// WriteUnary writes n, n >= 0, in 0-based unary code: n zero bits followed
// by a terminating 1 bit.
//
//	1       => 0
//	01      => 1
//	001     => 2
//	0001    => 3
func (w *Writer) WriteUnary(n uint64) error {
	if err := w.writeZeros(n); err != nil {
		return err
	}
	return w.WriteBool(true)
}

// ReadUnary reads a 0-based unary code. The length of the run is bounded
// only by the input; a caller that needs a cap must impose its own.
func (r *Reader) ReadUnary() (uint64, error) {
	var n uint64
	for {
		b, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		if b {
			return n, nil
		}
		n++
	}
}

// zeroRun counts and consumes zero bits up to and including the terminating
// 1 bit, failing with ErrOverflow once the run exceeds max.
func (r *Reader) zeroRun(max uint8) (uint8, error) {
	var run uint8
	for {
		b, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		if b {
			return run, nil
		}
		if run == max {
			return 0, ErrOverflow
		}
		run++
	}
}

// WriteEliasGamma writes n, n >= 1, in Elias-Gamma code: for a value of
// bit-length b, a run of b-1 zero bits, the leading 1 bit of the value, and
// then its b-1 remaining bits. The code for 1 is the single bit 1; a 64-bit
// value takes 127 bits.
func (w *Writer) WriteEliasGamma(n uint64) error {
	if n == 0 {
		return ErrNonPositive
	}
	blen := uint8(bits.Len64(n))
	if err := w.writeZeros(uint64(blen) - 1); err != nil {
		return err
	}
	if err := w.WriteBool(true); err != nil {
		return err
	}
	return w.WriteBits(n, blen-1)
}

// ReadEliasGamma reads an Elias-Gamma code, 1 <= n <= 1<<64 - 1.
// A code whose zero run exceeds 63 bits fails with ErrOverflow.
func (r *Reader) ReadEliasGamma() (uint64, error) {
	run, err := r.zeroRun(63)
	if err != nil {
		return 0, err
	}
	if run == 0 {
		return 1, nil
	}
	v, err := r.ReadBits(run)
	if err != nil {
		return 0, err
	}
	return v | 1<<run, nil
}

// ReadEliasGamma32 reads an Elias-Gamma code that fits in 32 bits.
// A code whose zero run exceeds 31 bits fails with ErrOverflow; use
// ReadEliasGamma when larger magnitudes are expected.
func (r *Reader) ReadEliasGamma32() (uint32, error) {
	run, err := r.zeroRun(31)
	if err != nil {
		return 0, err
	}
	if run == 0 {
		return 1, nil
	}
	v, err := r.ReadBits(run)
	if err != nil {
		return 0, err
	}
	return uint32(v) | 1<<run, nil
}

// WriteExpGolomb writes n, 0 <= n <= 1<<64 - 2, in Exp-Golomb code of
// order 0, which is Elias-Gamma of n+1. This is the variant to use for
// values that may be zero.
func (w *Writer) WriteExpGolomb(n uint64) error {
	return w.WriteExpGolombK(n, 0)
}

// WriteExpGolombK writes n in Exp-Golomb code of order k, 0 <= k <= 31:
// Elias-Gamma of (n>>k)+1 followed by the k low bits of n.
func (w *Writer) WriteExpGolombK(n uint64, k uint8) error {
	if k > 31 {
		return ErrKRange
	}
	q := n>>k + 1
	if q == 0 {
		// n>>k was 1<<64 - 1, one past the top of the domain.
		return ErrOverflow
	}
	if err := w.WriteEliasGamma(q); err != nil {
		return err
	}
	if k == 0 {
		return nil
	}
	return w.WriteBits(n, k)
}

// ReadExpGolomb reads an Exp-Golomb code of order 0.
func (r *Reader) ReadExpGolomb() (uint64, error) {
	return r.ReadExpGolombK(0)
}

// ReadExpGolomb32 reads an Exp-Golomb code of order 0 that fits in 32 bits.
func (r *Reader) ReadExpGolomb32() (uint32, error) {
	g, err := r.ReadEliasGamma32()
	if err != nil {
		return 0, err
	}
	return g - 1, nil
}

// ReadExpGolombK reads an Exp-Golomb code of order k, 0 <= k <= 31.
func (r *Reader) ReadExpGolombK(k uint8) (uint64, error) {
	if k > 31 {
		return 0, ErrKRange
	}
	g, err := r.ReadEliasGamma()
	if err != nil {
		return 0, err
	}
	n := g - 1
	if k == 0 {
		return n, nil
	}
	low, err := r.ReadBits(k)
	if err != nil {
		return 0, err
	}
	return n<<k | low, nil
}

// TryWriteUnary is like WriteUnary, but records the error in TryError.
func (w *Writer) TryWriteUnary(n uint64) {
	if w.TryError == nil {
		w.TryError = w.WriteUnary(n)
	}
}

// TryWriteEliasGamma is like WriteEliasGamma, but records the error in
// TryError.
func (w *Writer) TryWriteEliasGamma(n uint64) {
	if w.TryError == nil {
		w.TryError = w.WriteEliasGamma(n)
	}
}

// TryWriteExpGolomb is like WriteExpGolomb, but records the error in
// TryError.
func (w *Writer) TryWriteExpGolomb(n uint64) {
	if w.TryError == nil {
		w.TryError = w.WriteExpGolomb(n)
	}
}

// TryWriteExpGolombK is like WriteExpGolombK, but records the error in
// TryError.
func (w *Writer) TryWriteExpGolombK(n uint64, k uint8) {
	if w.TryError == nil {
		w.TryError = w.WriteExpGolombK(n, k)
	}
}

// TryReadUnary is like ReadUnary, but records the error in TryError.
func (r *Reader) TryReadUnary() (n uint64) {
	if r.TryError == nil {
		n, r.TryError = r.ReadUnary()
	}
	return
}

// TryReadEliasGamma is like ReadEliasGamma, but records the error in
// TryError.
func (r *Reader) TryReadEliasGamma() (n uint64) {
	if r.TryError == nil {
		n, r.TryError = r.ReadEliasGamma()
	}
	return
}

// TryReadEliasGamma32 is like ReadEliasGamma32, but records the error in
// TryError.
func (r *Reader) TryReadEliasGamma32() (n uint32) {
	if r.TryError == nil {
		n, r.TryError = r.ReadEliasGamma32()
	}
	return
}

// TryReadExpGolomb is like ReadExpGolomb, but records the error in TryError.
func (r *Reader) TryReadExpGolomb() (n uint64) {
	if r.TryError == nil {
		n, r.TryError = r.ReadExpGolomb()
	}
	return
}

// TryReadExpGolombK is like ReadExpGolombK, but records the error in
// TryError.
func (r *Reader) TryReadExpGolombK(k uint8) (n uint64) {
	if r.TryError == nil {
		n, r.TryError = r.ReadExpGolombK(k)
	}
	return
}
