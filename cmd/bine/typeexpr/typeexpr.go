// Package typeexpr compiles textual type expressions into codecs working on
// values of type any. The grammar:
//
//	unit bool i8 i16 i32 i64 u8 u16 u32 u64 f64 uvarint time
//	string[h]  bytes[h]  option(t)  list[h](t)  pair(a, b)  triple(a, b, c)
//
// where h is a count header: varint, i8, i16, i32, i64, fixed:<n> or remain.
// Omitting [h] selects varint, so "string" and "string[varint]" compile to
// the same codec.
//
// Decoded values carry the natural Go type of the expression: atoms decode
// to their own type, string and bytes to string and []byte, list to []any,
// pair and triple to bine.Pair[any, any] and bine.Triple[any, any, any],
// and option to *any, nil when the value is absent. Encoding through a
// compiled codec takes those same shapes; an absent option is a typed
// (*any)(nil), not a bare nil.
package typeexpr

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/binelab/bine"
)

var atoms = map[string]bine.Codec[any]{
	"unit":    erased(bine.Unit),
	"bool":    erased(bine.Bool),
	"i8":      erased(bine.Int8),
	"i16":     erased(bine.Int16),
	"i32":     erased(bine.Int32),
	"i64":     erased(bine.Int64),
	"u8":      erased(bine.Uint8),
	"u16":     erased(bine.Uint16),
	"u32":     erased(bine.Uint32),
	"u64":     erased(bine.Uint64),
	"f64":     erased(bine.Float64),
	"uvarint": erased(bine.Uvarint),
	"time":    erased(bine.Time),
}

var cache = xsync.NewMap[string, bine.Codec[any]]()

// Compile parses a type expression and stages its codec. Expressions are
// compiled once; later calls with the same text return the cached codec.
func Compile(expr string) (bine.Codec[any], error) {
	if c, ok := cache.Load(expr); ok {
		return c, nil
	}

	p := parser{in: expr}
	c, err := p.expr()
	if err != nil {
		return bine.Codec[any]{}, err
	}
	p.skipSpace()
	if p.pos != len(p.in) {
		return bine.Codec[any]{}, p.errf("trailing characters")
	}

	cache.Store(expr, c)
	return c, nil
}

type parser struct {
	in  string
	pos int
}

func (p *parser) errf(format string, args ...any) error {
	return errors.Errorf("parsing %q: %s (offset %d)", p.in, fmt.Sprintf(format, args...), p.pos)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.in) && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t') {
		p.pos++
	}
}

// peek returns the next byte without consuming it, or 0 at the end.
func (p *parser) peek() byte {
	if p.pos >= len(p.in) {
		return 0
	}
	return p.in[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		if p.pos >= len(p.in) {
			return p.errf("expected %q, got end of expression", c)
		}
		return p.errf("expected %q, got %q", c, p.in[p.pos])
	}
	p.pos++
	return nil
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			break
		}
		p.pos++
	}
	return p.in[start:p.pos]
}

func (p *parser) number() (int, error) {
	start := p.pos
	n := 0
	for p.pos < len(p.in) && p.in[p.pos] >= '0' && p.in[p.pos] <= '9' {
		n = n*10 + int(p.in[p.pos]-'0')
		if n > math.MaxInt32 {
			return 0, p.errf("number too large")
		}
		p.pos++
	}
	if p.pos == start {
		return 0, p.errf("expected a number")
	}
	return n, nil
}

func (p *parser) expr() (bine.Codec[any], error) {
	var zero bine.Codec[any]

	p.skipSpace()
	name := p.ident()
	if name == "" {
		return zero, p.errf("expected a type name")
	}

	if c, ok := atoms[name]; ok {
		return c, nil
	}

	switch name {
	case "string":
		h, err := p.header()
		if err != nil {
			return zero, err
		}
		return erased(bine.String(h)), nil

	case "bytes":
		h, err := p.header()
		if err != nil {
			return zero, err
		}
		return erased(bine.Bytes(h)), nil

	case "option":
		args, err := p.args(1)
		if err != nil {
			return zero, err
		}
		return erased(bine.Option(args[0])), nil

	case "list":
		h, err := p.header()
		if err != nil {
			return zero, err
		}
		if h == bine.LenRemain {
			return zero, p.errf("list cannot use the remain header")
		}
		args, err := p.args(1)
		if err != nil {
			return zero, err
		}
		return erased(bine.List(h, args[0])), nil

	case "pair":
		args, err := p.args(2)
		if err != nil {
			return zero, err
		}
		return erased(bine.PairOf(args[0], args[1])), nil

	case "triple":
		args, err := p.args(3)
		if err != nil {
			return zero, err
		}
		return erased(bine.TripleOf(args[0], args[1], args[2])), nil
	}

	return zero, p.errf("unknown type %q", name)
}

// header parses an optional [h] clause. Without one it returns LenVarint.
func (p *parser) header() (bine.Len, error) {
	p.skipSpace()
	if p.peek() != '[' {
		return bine.LenVarint, nil
	}
	p.pos++
	p.skipSpace()

	var h bine.Len
	switch name := p.ident(); name {
	case "varint":
		h = bine.LenVarint
	case "i8":
		h = bine.LenInt8
	case "i16":
		h = bine.LenInt16
	case "i32":
		h = bine.LenInt32
	case "i64":
		h = bine.LenInt64
	case "remain":
		h = bine.LenRemain
	case "fixed":
		if err := p.expect(':'); err != nil {
			return h, err
		}
		n, err := p.number()
		if err != nil {
			return h, err
		}
		h = bine.LenFixed(n)
	default:
		return h, p.errf("unknown header %q", name)
	}

	p.skipSpace()
	if err := p.expect(']'); err != nil {
		return h, err
	}
	return h, nil
}

// args parses a parenthesized, comma-separated list of exactly n
// sub-expressions.
func (p *parser) args(n int) ([]bine.Codec[any], error) {
	p.skipSpace()
	if err := p.expect('('); err != nil {
		return nil, err
	}

	out := make([]bine.Codec[any], 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			p.skipSpace()
			if err := p.expect(','); err != nil {
				return nil, err
			}
		}
		c, err := p.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	p.skipSpace()
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return out, nil
}
