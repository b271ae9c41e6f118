package main

import "errors"

// Exit codes for the markdown CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or arguments
	ExitIO      = 3 // Cannot read stdin or write stdout
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrReadInput), errors.Is(err, ErrWriteOutput):
		return ExitIO
	case errors.Is(err, errUnexpectedArgs):
		return ExitUsage
	}
	return ExitGeneral
}
