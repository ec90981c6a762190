/*

Package bitstream provides a bit-level Reader and Writer with a set of
self-delimiting universal integer codes built on top of them.

You can use Reader.ReadBits() to read an arbitrary number of bits from an
io.Reader and return it as an uint64, and Writer.WriteBits() to write an
arbitrary number of bits of an uint64 value to an io.Writer. On top of these
primitives both types implement Unary, Elias-Gamma, Exponential-Golomb and
Fibonacci (Zeckendorf) coding, so variable-magnitude integers can be stored
without a length prefix.

Reader and Writer give a bit-level view of the underlying io.Reader and
io.Writer, but they also provide a byte-level view (io.Reader and io.Writer)
at the same time. Byte-level calls made on a byte boundary are delegated to
the underlying stream directly; unaligned calls are shifted through the bit
buffer. You can force a byte boundary by calling Sync(): the Writer pads the
pending partial byte with zero bits, and the Reader verifies the pending bits
are exactly that zero padding before discarding them. A Reader decoding the
byte sequence produced by a Writer sees every value back exactly, provided it
issues the matching sequence of calls; the stream carries no type tags.

Bit order

By default the more general highest-bits-first order is used. So for example
if the input provides the bytes 0x8f and 0x55:

    HEXA    8    f     5    5
    BINARY  1000 1111  0101 0101
            aaaa bbbc  ccdd dddd

Then ReadBits will return the following values:

    r := NewReader(bytes.NewBuffer([]byte{0x8f, 0x55}))
    a, err := r.ReadBits(4) //   1000 = 0x08
    b, err := r.ReadBits(3) //    111 = 0x07
    c, err := r.ReadBits(3) //    101 = 0x05
    d, err := r.ReadBits(6) // 010101 = 0x15

Writing the above values with a Writer results in the same two bytes.

NewReaderLSB and NewWriterLSB select lowest-bits-first order instead: each new
bit is packed into the least significant free position of the current byte,
and fixed-width fields are packed starting with their least significant bit,
the layout used by formats such as DEFLATE. The two orders produce different
wire bytes for identical calls, so a reader and a writer must agree on the
order out of band. The logical content of the universal codes does not change
with the order, only the packing does.

Integer convention

All fixed-width fields are unsigned: WriteBits stores the low n bits of the
value and ReadBits returns them zero-extended in an uint64, for any width up
to 64. Negative numbers must be mapped by the caller (for example zig-zag)
before encoding.

There is no mark/reset facility; a caller holding a seekable source can
create a new Reader at a remembered byte offset, which is equivalent to the
state right after a Sync().

*/
package bitstream
