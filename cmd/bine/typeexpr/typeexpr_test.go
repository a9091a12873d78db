package typeexpr_test

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/golang-module/carbon/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/binelab/bine"
	"github.com/binelab/bine/cmd/bine/typeexpr"
	"github.com/binelab/bine/size"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestCompileAtoms(t *testing.T) {
	tests := []struct {
		expr string
		hex  string
		want any
	}{
		{"bool", "ff", true},
		{"i8", "fb", int8(-5)},
		{"i16", "0102", int16(258)},
		{"i32", "00000102", int32(258)},
		{"i64", "fffffffffffffffb", int64(-5)},
		{"u8", "07", uint8(7)},
		{"u16", "ffff", uint16(65535)},
		{"u32", "000000ff", uint32(255)},
		{"u64", "0000000000000100", uint64(256)},
		{"uvarint", "ac02", uint64(300)},
		{"f64", "4004000000000000", 2.5},
		{"unit", "", struct{}{}},
	}

	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			c, err := typeexpr.Compile(test.expr)
			require.NoError(t, err)

			got, err := bine.Unmarshal(c, fromHex(t, test.hex))
			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

func TestCompileTime(t *testing.T) {
	c, err := typeexpr.Compile("time")
	require.NoError(t, err)

	in := carbon.Parse("2021-03-09 10:05:59.123456", "UTC").ToStdTime()
	got, err := bine.Unmarshal(c, bine.Marshal(bine.Time, in))
	require.NoError(t, err)
	require.True(t, got.(time.Time).Equal(in))
}

func TestCompileComposite(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		c, err := typeexpr.Compile("string[i8]")
		require.NoError(t, err)

		got, err := bine.Unmarshal(c, fromHex(t, "026869"))
		require.NoError(t, err)
		require.Equal(t, "hi", got)
	})

	t.Run("bytes", func(t *testing.T) {
		c, err := typeexpr.Compile("bytes[varint]")
		require.NoError(t, err)

		got, err := bine.Unmarshal(c, fromHex(t, "02dead"))
		require.NoError(t, err)
		require.Equal(t, []byte{0xDE, 0xAD}, got)
	})

	t.Run("list", func(t *testing.T) {
		c, err := typeexpr.Compile("list[i8](u8)")
		require.NoError(t, err)

		got, err := bine.Unmarshal(c, fromHex(t, "03010203"))
		require.NoError(t, err)
		require.Equal(t, []any{uint8(1), uint8(2), uint8(3)}, got)
	})

	t.Run("pair", func(t *testing.T) {
		c, err := typeexpr.Compile("pair(string[varint], bool)")
		require.NoError(t, err)

		got, err := bine.Unmarshal(c, fromHex(t, "02686900"))
		require.NoError(t, err)
		require.Equal(t, bine.Pair[any, any]{First: "hi", Second: false}, got)
	})

	t.Run("triple", func(t *testing.T) {
		c, err := typeexpr.Compile("triple(u8, u8, u8)")
		require.NoError(t, err)

		got, err := bine.Unmarshal(c, fromHex(t, "010203"))
		require.NoError(t, err)
		require.Equal(t, bine.Triple[any, any, any]{First: uint8(1), Second: uint8(2), Third: uint8(3)}, got)
	})

	t.Run("option some", func(t *testing.T) {
		c, err := typeexpr.Compile("option(i8)")
		require.NoError(t, err)

		got, err := bine.Unmarshal(c, fromHex(t, "ff05"))
		require.NoError(t, err)
		p, ok := got.(*any)
		require.True(t, ok)
		require.NotNil(t, p)
		require.Equal(t, int8(5), *p)
	})

	t.Run("option none", func(t *testing.T) {
		c, err := typeexpr.Compile("option(i8)")
		require.NoError(t, err)

		got, err := bine.Unmarshal(c, fromHex(t, "00"))
		require.NoError(t, err)
		p, ok := got.(*any)
		require.True(t, ok)
		require.Nil(t, p)
	})

	t.Run("nested", func(t *testing.T) {
		c, err := typeexpr.Compile("list[varint](option(u8))")
		require.NoError(t, err)

		got, err := bine.Unmarshal(c, fromHex(t, "03ff0100ff03"))
		require.NoError(t, err)
		l := got.([]any)
		require.Len(t, l, 3)
		require.Equal(t, uint8(1), *l[0].(*any))
		require.Nil(t, l[1].(*any))
		require.Equal(t, uint8(3), *l[2].(*any))
	})
}

func TestCompileDefaultHeader(t *testing.T) {
	a, err := typeexpr.Compile("string")
	require.NoError(t, err)
	b, err := typeexpr.Compile("string[varint]")
	require.NoError(t, err)

	require.Equal(t, []byte{0x02, 'h', 'i'}, a.Encode(nil, "hi"))
	require.Equal(t, a.Encode(nil, "hi"), b.Encode(nil, "hi"))
}

func TestCompileSizes(t *testing.T) {
	t.Run("static pair", func(t *testing.T) {
		c, err := typeexpr.Compile("pair(i8, bool)")
		require.NoError(t, err)

		n, ok := c.Size().Const()
		require.True(t, ok)
		require.Equal(t, 2, n)
	})

	t.Run("fixed list", func(t *testing.T) {
		c, err := typeexpr.Compile("list[fixed:4](u16)")
		require.NoError(t, err)

		n, ok := c.Size().Const()
		require.True(t, ok)
		require.Equal(t, 8, n)
	})

	t.Run("dynamic end", func(t *testing.T) {
		c, err := typeexpr.Compile("string[varint]")
		require.NoError(t, err)

		_, ok := c.Size().Const()
		require.False(t, ok)

		end, err := c.Size().End([]byte{0x02, 'h', 'i', 0xAA, 0xBB}, 0)
		require.NoError(t, err)
		require.Equal(t, 3, end)
	})

	t.Run("unresolvable end", func(t *testing.T) {
		c, err := typeexpr.Compile("string[remain]")
		require.NoError(t, err)
		require.False(t, c.Size().HasEnd())

		_, err = c.Size().End([]byte("hi"), 0)
		require.ErrorIs(t, err, size.ErrUnavailable)
	})
}

func TestRoundTrip(t *testing.T) {
	c, err := typeexpr.Compile("pair(bool, list[i8](string[varint]))")
	require.NoError(t, err)

	in := bine.Pair[any, any]{
		First:  true,
		Second: []any{"ab", ""},
	}

	out, err := bine.Unmarshal(c, bine.Marshal(c, in))
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestRoundTripOption(t *testing.T) {
	c, err := typeexpr.Compile("option(u8)")
	require.NoError(t, err)

	val := any(uint8(7))
	require.Equal(t, []byte{0xFF, 0x07}, c.Encode(nil, &val))
	require.Equal(t, []byte{0x00}, c.Encode(nil, (*any)(nil)))
}

func TestCompileWhitespace(t *testing.T) {
	c, err := typeexpr.Compile("pair( u8 , string[i8] )")
	require.NoError(t, err)

	got, err := bine.Unmarshal(c, fromHex(t, "070161"))
	require.NoError(t, err)
	require.Equal(t, bine.Pair[any, any]{First: uint8(7), Second: "a"}, got)
}

func TestCompileErrors(t *testing.T) {
	tests := []string{
		"",
		"wat",
		"string[wat]",
		"string[",
		"string[fixed]",
		"string[fixed:]",
		"list(u8",
		"list[remain](u8)",
		"pair(u8)",
		"pair(u8,)",
		"option()",
		"u8 extra",
	}

	for _, expr := range tests {
		t.Run(fmt.Sprintf("%q", expr), func(t *testing.T) {
			_, err := typeexpr.Compile(expr)
			require.Error(t, err)
			require.ErrorContains(t, err, "(offset ")
		})
	}

	t.Run("errors point at the failure", func(t *testing.T) {
		_, err := typeexpr.Compile("string[wat]")
		require.EqualError(t, err, `parsing "string[wat]": unknown header "wat" (offset 10)`)
	})
}

func TestCompileConcurrent(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				c, err := typeexpr.Compile("list[varint](pair(u8, string[i8]))")
				if err != nil {
					return err
				}
				if _, err := bine.Unmarshal(c, []byte{0x01, 0x07, 0x01, 0x61}); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
