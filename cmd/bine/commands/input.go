package commands

import (
	"encoding/hex"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// readInput returns the encoded bytes a command operates on, from the -x
// flag when given, otherwise from the file named by the first argument.
func readInput(c *cli.Context) ([]byte, error) {
	if x := c.String("hex"); x != "" {
		b, err := hex.DecodeString(x)
		if err != nil {
			return nil, errors.Wrap(err, "invalid hex input")
		}
		return b, nil
	}

	path := c.Args().First()
	if path == "" {
		return nil, errors.New(c.Command.UsageText)
	}
	return os.ReadFile(path)
}
