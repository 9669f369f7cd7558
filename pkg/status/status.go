package status

import (
	"errors"
	"fmt"
)

// Process exit codes. These are part of the command contract and are
// relied upon by scripts driving mpkg.
const (
	CodeOK               = 0
	CodeFatal            = 1
	CodeUsage            = 2
	CodeNoPackages       = 3
	CodeNotFound         = 4
	CodeInvalidInput     = 5
	CodePartialFailure   = 6
	CodeIndexUnavailable = 8
)

var (
	// ErrNotFound indicates an identifier or query resolved to nothing.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous indicates multiple candidates and no valid selection.
	ErrAmbiguous = errors.New("ambiguous selection")

	// ErrStoreFailure indicates an underlying store call failed.
	ErrStoreFailure = errors.New("store failure")

	// ErrInvalidInput indicates malformed user input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPartialFailure indicates a batch where some units failed.
	ErrPartialFailure = errors.New("partial failure")

	// ErrNoPackages indicates the installed set is empty.
	ErrNoPackages = errors.New("no packages installed")

	// ErrIndexUnavailable indicates the index could not be loaded.
	ErrIndexUnavailable = errors.New("index unavailable")
)

// Errorf wraps a sentinel kind with additional context. The kind remains
// matchable with errors.Is.
func Errorf(kind error, format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, kind)...)
}

// ExitCode maps an error to its process exit code. A nil error maps to
// CodeOK; anything unrecognized is fatal.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrNoPackages):
		return CodeNoPackages
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAmbiguous), errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrPartialFailure):
		return CodePartialFailure
	case errors.Is(err, ErrIndexUnavailable):
		return CodeIndexUnavailable
	default:
		return CodeFatal
	}
}
