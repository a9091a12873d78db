package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/binelab/bine/cmd/bine/typeexpr"
	"github.com/binelab/bine/size"
)

// NewSpanCommand returns a cli.Command for "bine span".
func NewSpanCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "span",
		Usage:     "Locate the end of a value without decoding it.",
		UsageText: `bine span -t type [-o offset] [-x hex | file]`,
		Description: `The span command reads just enough of an encoding to report where the value
starting at the given offset ends. The value itself is never decoded.

$ bine span -t 'string[varint]' -x 02686900ff
[0, 3)

Bytes after the value are ignored, which makes span the tool for carving
one value out of a larger buffer. Types whose encodings do not carry their
own end are reported as such:

$ bine span -t 'string[remain]' -x 6869
error: size of string[remain] is not inferable from the encoding`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "type expression of the encoded value.",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "hex",
				Aliases: []string{"x"},
				Usage:   "encoding given as a hex string instead of a file.",
			},
			&cli.IntFlag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "offset at which the value starts.",
			},
		},
	}

	cmd.Action = func(c *cli.Context) error {
		tc, err := typeexpr.Compile(c.String("type"))
		if err != nil {
			return err
		}

		b, err := readInput(c)
		if err != nil {
			return err
		}

		off := c.Int("offset")
		end, err := tc.Size().End(b, off)
		if err != nil {
			if errors.Is(err, size.ErrUnavailable) {
				return errors.Errorf("size of %s is not inferable from the encoding", c.String("type"))
			}
			return err
		}

		fmt.Printf("[%d, %d)\n", off, end)
		return nil
	}

	return &cmd
}
