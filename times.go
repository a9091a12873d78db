package bine

import (
	"time"

	"github.com/binelab/bine/size"
)

// Time encodes an instant as eight big-endian bytes of microseconds since
// the Unix epoch. Sub-microsecond precision and the location are not kept;
// decoded values are in UTC.
var Time = Codec[time.Time]{
	enc: func(dst []byte, t time.Time) []byte {
		return write8(dst, uint64(t.UnixMicro()))
	},
	dec: func(b []byte, off int) (time.Time, int, error) {
		x, end, err := read8(b, off)
		if err != nil {
			return time.Time{}, 0, err
		}
		return time.UnixMicro(int64(x)).UTC(), end, nil
	},
	siz: size.Static[time.Time](8),
}
