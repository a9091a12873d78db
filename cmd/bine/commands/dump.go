package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/binelab/bine"
	"github.com/binelab/bine/cmd/bine/typeexpr"
)

// NewDumpCommand returns a cli.Command for "bine dump".
func NewDumpCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "dump",
		Usage:     "Decode a value and print it.",
		UsageText: `bine dump -t type [-x hex | file]`,
		Description: `The dump command decodes a value and prints it in a readable form.

The encoding is read from a file, or from the command line with -x:

$ bine dump -t 'list[i8](string)' -x 0202686902796f
["hi", "yo"]

Absent options print as none, present ones with a some prefix:

$ bine dump -t 'option(i64)' -x 00
none

The whole input must belong to the value; trailing bytes are an error.`,
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

		v, err := bine.Unmarshal(tc, b)
		if err != nil {
			return err
		}

		fmt.Println(formatValue(v))
		return nil
	}

	return &cmd
}
