package history

import (
	"errors"
	"fmt"
	"strings"
)

// SourceKind names a HistorySource implementation.
type SourceKind string

const (
	// SourceKindCLI selects CLIHistorySource.
	SourceKindCLI SourceKind = "cli"
	// SourceKindNative selects NativeHistorySource.
	SourceKindNative SourceKind = "native"

	unknownSourceKindTemplate = "%q (expected %s or %s)"
)

// ErrUnknownSourceKind indicates an unsupported history source name.
var ErrUnknownSourceKind = errors.New("unknown history source")

// ParseSourceKind normalizes a configured source name; blank selects the CLI source.
func ParseSourceKind(rawKind string) (SourceKind, error) {
	normalizedKind := SourceKind(strings.ToLower(strings.TrimSpace(rawKind)))
	switch normalizedKind {
	case "":
		return SourceKindCLI, nil
	case SourceKindCLI, SourceKindNative:
		return normalizedKind, nil
	default:
		return "", fmt.Errorf("%w: "+unknownSourceKindTemplate, ErrUnknownSourceKind, rawKind, SourceKindCLI, SourceKindNative)
	}
}
