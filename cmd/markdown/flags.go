package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the command-line flags.
type cliFlags struct {
	help    bool
	version bool
	unsafe  bool
	verbose bool
}

// parseFlags parses the command-line flags. Positional arguments are
// rejected; the converter reads standard input only.
func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("markdown", flag.ContinueOnError)
	f := &cliFlags{}

	fs.BoolVar(&f.help, "help", false, "show usage and exit")
	fs.BoolVar(&f.version, "version", false, "show version and exit")
	fs.BoolVar(&f.unsafe, "unsafe", false, "pass raw HTML through unchanged (the default)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log runtime configuration")

	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if len(fs.Args()) > 0 {
		return nil, errUnexpectedArgs
	}
	return f, nil
}
