package bine_test

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/binelab/bine"
	"github.com/stretchr/testify/require"
)

func TestUvarint(t *testing.T) {
	tests := []struct {
		input uint64
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{math.MaxUint64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%d", test.input), func(t *testing.T) {
			got := bine.Uvarint.Encode(nil, test.input)
			require.Equal(t, test.want, got)
			require.Equal(t, len(got), bine.Uvarint.Size().Of(test.input))

			x, end, err := bine.Uvarint.Decode(got, 0)
			require.NoError(t, err)
			require.Equal(t, test.input, x)
			require.Equal(t, len(got), end)
		})
	}
}

func TestUvarintMinimal(t *testing.T) {
	// every power of two encodes to exactly ceil(bits/7) groups
	for k := 0; k < 64; k++ {
		v := uint64(1) << k
		want := k/7 + 1

		got := bine.Uvarint.Encode(nil, v)
		require.Len(t, got, want, "1<<%d", k)
		require.Equal(t, want, bine.Uvarint.Size().Of(v))

		// last byte terminates, all others continue
		for i, c := range got {
			require.Equal(t, i == len(got)-1, c < 0x80)
		}
	}
}

func TestUvarintAtOffset(t *testing.T) {
	buf := []byte{0xEE, 0xEE, 0xEE}
	buf = bine.Uvarint.Encode(buf, 300)
	buf = append(buf, 0x7A)

	x, end, err := bine.Uvarint.Decode(buf, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(300), x)
	require.Equal(t, 5, end)

	end, err = bine.Uvarint.Size().End(buf, 3)
	require.NoError(t, err)
	require.Equal(t, 5, end)
}

func TestUvarintFaults(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		_, _, err := bine.Uvarint.Decode([]byte{0x80}, 0)
		require.ErrorIs(t, err, bine.ErrOutOfRange)

		_, _, err = bine.Uvarint.Decode(nil, 0)
		require.ErrorIs(t, err, bine.ErrOutOfRange)

		_, err = bine.Uvarint.Size().End([]byte{0xFF, 0x80}, 1)
		require.ErrorIs(t, err, bine.ErrOutOfRange)
	})

	t.Run("unterminated", func(t *testing.T) {
		buf := bytes.Repeat([]byte{0x80}, 11)
		_, _, err := bine.Uvarint.Decode(buf, 0)
		require.ErrorIs(t, err, bine.ErrInvalidEncoding)

		_, err = bine.Uvarint.Size().End(buf, 0)
		require.ErrorIs(t, err, bine.ErrInvalidEncoding)
	})

	t.Run("overflow", func(t *testing.T) {
		buf := append(bytes.Repeat([]byte{0xFF}, 9), 0x7F)
		_, _, err := bine.Uvarint.Decode(buf, 0)
		require.ErrorIs(t, err, bine.ErrInvalidEncoding)
	})

	t.Run("non-minimal input is readable", func(t *testing.T) {
		x, end, err := bine.Uvarint.Decode([]byte{0x80, 0x00}, 0)
		require.NoError(t, err)
		require.Equal(t, uint64(0), x)
		require.Equal(t, 2, end)
	})
}
