package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

const minimizedArg = "minimized"

// CLI has no flags. Tunables come from HITMARKER_* environment variables.
type CLI struct {
	Mode string `arg:"" optional:"" help:"Pass \"minimized\" to start hidden in the tray. Any other value is rejected."`
}

// Validate is called by kong after parsing.
func (c CLI) Validate() error {
	if c.Mode != "" && c.Mode != minimizedArg {
		return fmt.Errorf("unknown argument %q, the only accepted argument is %q", c.Mode, minimizedArg)
	}
	return nil
}

func (c CLI) Minimized() bool {
	return c.Mode == minimizedArg
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("hitmarker"),
		kong.Description("Shows a hitmarker and plays a sound on every left click."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	app, err := NewApplication(cli)
	if err != nil {
		fail(err)
	}
	if err := app.Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	_, _ = os.Stderr.WriteString("hitmarker: " + err.Error() + "\n")
	os.Exit(1)
}
