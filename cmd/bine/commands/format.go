package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/binelab/bine"
)

// formatValue renders a decoded value the way the dump command prints it.
// The shapes handled are the ones typeexpr.Compile decodes to.
func formatValue(v any) string {
	switch x := v.(type) {
	case *any:
		if x == nil {
			return "none"
		}
		return "some " + formatValue(*x)
	case bine.Pair[any, any]:
		return "(" + formatValue(x.First) + ", " + formatValue(x.Second) + ")"
	case bine.Triple[any, any, any]:
		return "(" + formatValue(x.First) + ", " + formatValue(x.Second) + ", " + formatValue(x.Third) + ")"
	case []any:
		elems := make([]string, len(x))
		for i := range x {
			elems[i] = formatValue(x[i])
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case string:
		return strconv.Quote(x)
	case struct{}:
		return "()"
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
