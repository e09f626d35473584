package failure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIO         = errors.New("io error")
	ErrDecode     = errors.New("decode error")
	ErrSubprocess = errors.New("external tool error")
	ErrConfig     = errors.New("configuration error")
	ErrValidation = errors.New("validation error")
	ErrPersist    = errors.New("persistence error")
)

// Exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitPersist = 2
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above; both the marker and err remain reachable through
// errors.Is.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Persist tags err as a failure to durably record queue state. A nil err
// stays nil.
func Persist(err error) error {
	if err == nil || errors.Is(err, ErrPersist) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersist, err)
}

// ExitCode maps an error returned from a command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrPersist):
		return ExitPersist
	default:
		return ExitFailure
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
