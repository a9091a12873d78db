/*
Package bine encodes Go values into deterministic binary forms and back,
and can size those forms without doing either.

Every supported type is handled by a Codec, a bundle of three staged
operations: Encode appends a value's bytes to a caller-owned buffer, Decode
reads a value at an offset and returns the offset just past it, and Size
answers "how many bytes" two independent ways. From a value it yields the
exact encoded length without encoding; from an encoded buffer it yields the
end offset without decoding, which is what lets callers skip, crop or
bound-check values inside a larger buffer they never materialize.

Primitives cover booleans, fixed-width integers in big-endian two's
complement, IEEE-754 doubles, timestamps and an LEB128-style varint.
Containers are built by composition: strings and byte slices, optional
values, homogeneous lists and fixed-arity tuples all take their element
codecs as arguments and derive encode, decode and size from them. Codec
values are immutable and freely shared between goroutines.

Variable-length containers take a Len, the strategy for the count in front
of the content:

	bine.String(bine.LenVarint)          // varint byte count, then bytes
	bine.String(bine.LenInt8)            // one-byte count
	bine.String(bine.LenFixed(16))       // no count, always 16 bytes
	bine.String(bine.LenRemain)          // no count, rest of the buffer
	bine.List(bine.LenVarint, bine.Int64)

LenRemain is the unboxed form of a string or byte slice: with nothing in
front of the content it must be the last value in its buffer, its end cannot
be found from the encoding alone, and a decode that starts at offset 0 gets
a zero-copy view of the buffer instead of a copy.

The sibling package registry keeps values of unrelated types in one
immutable map behind globally unique typed keys, and package store persists
codec-encoded pairs in pebble, ordered by decoded value rather than by raw
bytes.
*/
package bine
