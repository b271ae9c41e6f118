package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: markdown [flags] < input.md > output.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert CommonMark from standard input to HTML on standard output.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --help       Show this message and exit")
	fmt.Fprintln(w, "      --version    Show version and exit")
	fmt.Fprintln(w, "      --unsafe     Pass raw HTML through unchanged (the default;")
	fmt.Fprintln(w, "                   accepted for compatibility)")
	fmt.Fprintln(w, "  -v, --verbose    Log runtime configuration to stderr")
}
