package commands

import (
	"github.com/urfave/cli/v2"
)

// NewApp creates the bine CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bine"
	app.Usage = "Inspect bine-encoded values"
	app.EnableBashCompletion = true

	app.Commands = []*cli.Command{
		NewDumpCommand(),
		NewSpanCommand(),
		NewVersionCommand(),
	}

	return app
}
