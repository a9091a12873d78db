package bine

import "github.com/binelab/bine/size"

// Canonical one-byte discriminants shared by Bool and Option.
const (
	falseByte = 0x00
	trueByte  = 0xFF
)

// Unit is the zero-byte codec. Encoding writes nothing and decoding reads
// nothing; it holds the spot of a field with exactly one possible value.
var Unit = Codec[struct{}]{
	enc: func(dst []byte, _ struct{}) []byte { return dst },
	dec: func(b []byte, off int) (struct{}, int, error) {
		if off < 0 || off > len(b) {
			return struct{}{}, 0, outOfRange(off, 0, len(b))
		}
		return struct{}{}, off, nil
	},
	siz: size.Static[struct{}](0),
}

// Bool encodes true as 0xFF and false as 0x00. Decoding is permissive: any
// non-zero byte reads back as true.
var Bool = Codec[bool]{
	enc: func(dst []byte, v bool) []byte {
		if v {
			return append(dst, trueByte)
		}
		return append(dst, falseByte)
	},
	dec: func(b []byte, off int) (bool, int, error) {
		x, end, err := read1(b, off)
		if err != nil {
			return false, 0, err
		}
		return x != falseByte, end, nil
	},
	siz: size.Static[bool](1),
}
