package cli

import (
	"errors"

	"github.com/yaklabco/wordfreq/internal/configloader"
	"github.com/yaklabco/wordfreq/pkg/tally"
)

// Exit codes for wordfreq.
const (
	// ExitSuccess indicates the run completed, including runs where
	// individual entries or paths failed.
	ExitSuccess = 0

	// ExitFailure indicates any other failure (cancellation, output errors).
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage, including a
	// token pattern that does not compile.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file or environment errors.
	ExitConfigError = 65
)

// ErrInvalidUsage marks errors caused by bad flags or arguments.
var ErrInvalidUsage = errors.New("invalid usage")

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, configloader.ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, tally.ErrInvalidPattern):
		return ExitInvalidUsage
	default:
		return ExitFailure
	}
}
