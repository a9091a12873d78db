package size

// Join2 combines two field descriptors into one for a composite encoded as
// field a then field b. ga and gb project the fields out of the composite.
// The combination is static only if both fields are static; End chains the
// fields' End functions and is available only if both are.
func Join2[T, A, B any](a S[A], ga func(T) A, b S[B], gb func(T) B) S[T] {
	an, as := a.Const()
	bn, bs := b.Const()
	if as && bs {
		return Static[T](an + bn)
	}

	of := func(v T) int {
		return a.Of(ga(v)) + b.Of(gb(v))
	}
	if !a.HasEnd() || !b.HasEnd() {
		return Dynamic(of, nil)
	}
	return Dynamic(of, func(buf []byte, off int) (int, error) {
		mid, err := a.End(buf, off)
		if err != nil {
			return 0, err
		}
		return b.End(buf, mid)
	})
}

// Join3 is Join2 for three fields.
func Join3[T, A, B, C any](a S[A], ga func(T) A, b S[B], gb func(T) B, c S[C], gc func(T) C) S[T] {
	an, as := a.Const()
	bn, bs := b.Const()
	cn, cs := c.Const()
	if as && bs && cs {
		return Static[T](an + bn + cn)
	}

	of := func(v T) int {
		return a.Of(ga(v)) + b.Of(gb(v)) + c.Of(gc(v))
	}
	if !a.HasEnd() || !b.HasEnd() || !c.HasEnd() {
		return Dynamic(of, nil)
	}
	return Dynamic(of, func(buf []byte, off int) (int, error) {
		end, err := a.End(buf, off)
		if err != nil {
			return 0, err
		}
		end, err = b.End(buf, end)
		if err != nil {
			return 0, err
		}
		return c.End(buf, end)
	})
}
