package main

import (
	"errors"
	"fmt"
	"io"

	commonmark "github.com/alnah/go-commonmark"
)

// Sentinel errors for CLI operations.
var (
	ErrReadInput      = errors.New("failed to read input")
	ErrWriteOutput    = errors.New("failed to write output")
	errUnexpectedArgs = errors.New("unexpected arguments; input is read from stdin")
)

// run reads a UTF-8 Markdown document from in until EOF and writes the
// rendered HTML to out.
func run(in io.Reader, out io.Writer) error {
	input, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	doc := commonmark.Parse(input)
	html, err := commonmark.Render(doc)
	if err != nil {
		return err
	}

	if _, err := out.Write(html); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
