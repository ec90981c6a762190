/*

Fibonacci (Zeckendorf) code.

*/

package bitstream

import "math"

// fibTable is the ascending Fibonacci sequence used by the Zeckendorf
// decomposition, starting 1, 2, 3, 5. It is computed once and holds every
// Fibonacci number representable in an uint64 (92 entries), so the code
// covers the full unsigned 64-bit range. Read-only after init, safe to
// share between stream instances.
var fibTable = makeFibTable()

func makeFibTable() []uint64 {
	t := make([]uint64, 2, 92)
	t[0], t[1] = 1, 2
	for {
		next := t[len(t)-1] + t[len(t)-2]
		if next < t[len(t)-1] { // uint64 overflow
			return t
		}
		t = append(t, next)
	}
}

// WriteFibonacci writes n, n >= 1, in Fibonacci code: the bitmap of its
// Zeckendorf decomposition, lowest Fibonacci index first, terminated by an
// extra 1 bit. The decomposition never uses two consecutive Fibonacci
// numbers, so two 1 bits in a row appear only at the terminator.
func (w *Writer) WriteFibonacci(n uint64) error {
	if n == 0 {
		return ErrNonPositive
	}

	// Largest index with fibTable[top] <= n.
	low, high := 0, len(fibTable)-1
	for low < high {
		mid := (low + high + 1) / 2
		if n < fibTable[mid] {
			high = mid - 1
		} else {
			low = mid
		}
	}
	top := low

	var used [93]bool
	for i := top; i >= 0; i-- {
		if fibTable[i] <= n {
			n -= fibTable[i]
			used[i] = true
		}
	}

	for i := 0; i <= top; i++ {
		if err := w.WriteBool(used[i]); err != nil {
			return err
		}
	}
	return w.WriteBool(true)
}

// ReadFibonacci reads a Fibonacci code, 1 <= n <= 1<<64 - 1. Decoding stops
// at the first pair of consecutive 1 bits; the second 1 is the terminator
// and contributes nothing. A bitmap running past the end of the Fibonacci
// table fails with ErrOverflow.
func (r *Reader) ReadFibonacci() (uint64, error) {
	var n uint64
	prev := false
	for i := 0; ; i++ {
		b, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		if b && prev {
			return n, nil
		}
		if b {
			if i >= len(fibTable) {
				return 0, ErrOverflow
			}
			n += fibTable[i]
		}
		prev = b
	}
}

// ReadFibonacci32 reads a Fibonacci code that fits in 32 bits, failing with
// ErrOverflow otherwise; use ReadFibonacci when larger magnitudes are
// expected.
func (r *Reader) ReadFibonacci32() (uint32, error) {
	n, err := r.ReadFibonacci()
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint32 {
		return 0, ErrOverflow
	}
	return uint32(n), nil
}

// TryWriteFibonacci is like WriteFibonacci, but records the error in
// TryError.
func (w *Writer) TryWriteFibonacci(n uint64) {
	if w.TryError == nil {
		w.TryError = w.WriteFibonacci(n)
	}
}

// TryReadFibonacci is like ReadFibonacci, but records the error in TryError.
func (r *Reader) TryReadFibonacci() (n uint64) {
	if r.TryError == nil {
		n, r.TryError = r.ReadFibonacci()
	}
	return
}
