package printing

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every failure kind the pipeline can produce. Handlers
// and the batch engine match on these with errors.Is; the wrapped text keeps
// the underlying diagnostic for the caller.
var (
	ErrNoRouteConfigured = errors.New("no printer configured for document type")
	ErrAutoPrintDisabled = errors.New("auto-print is disabled for document type")
	ErrUnsupportedFormat = errors.New("unsupported payload format")
	ErrConversionFailed  = errors.New("conversion failed")
	ErrPrinterNotFound   = errors.New("printer not found")
	ErrPrinterOffline    = errors.New("printer offline")
	ErrPrintFailed       = errors.New("print failed")
)

// classifySubmitError maps raw spooler output onto the printer error taxonomy.
// Matching is heuristic, by message pattern; anything unrecognized falls
// through to ErrPrintFailed with the original message preserved.
func classifySubmitError(printer string, err error, output string) error {
	msg := strings.ToLower(err.Error() + " " + output)

	switch {
	case strings.Contains(msg, "does not exist"),
		strings.Contains(msg, "unknown printer"),
		strings.Contains(msg, "no such printer"),
		strings.Contains(msg, "cannot find printer"),
		strings.Contains(msg, "not found"):
		return fmt.Errorf("%w: %q: %v", ErrPrinterNotFound, printer, firstNonEmpty(output, err.Error()))
	case strings.Contains(msg, "not accepting jobs"),
		strings.Contains(msg, "offline"),
		strings.Contains(msg, "unreachable"),
		strings.Contains(msg, "not responding"),
		strings.Contains(msg, "is not ready"):
		return fmt.Errorf("%w: %q: %v", ErrPrinterOffline, printer, firstNonEmpty(output, err.Error()))
	default:
		return fmt.Errorf("%w: %q: %v", ErrPrintFailed, printer, firstNonEmpty(output, err.Error()))
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
