//go:build darwin || linux

package printing

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"warehouse-print-agent/internal/models"
)

// submitToSpooler prints via CUPS lp. Scaling follows the route: thermal 4x6
// stock prints at actual size on its native media, everything else shrinks
// to fit the page. Orientation is left to the document.
func submitToSpooler(ctx context.Context, path string, route models.PrinterRoute) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()

	args := []string{"-d", route.PrinterName}
	if route.Is4x6 {
		args = append(args, "-o", "media=Custom.4x6in", "-o", "print-scaling=none")
	} else {
		args = append(args, "-o", "fit-to-page")
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, "lp", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %q: submission timed out", ErrPrintFailed, route.PrinterName)
		}
		return "", classifySubmitError(route.PrinterName, err, string(output))
	}

	// "request id is Zebra_ZD420-42 (1 file(s))"
	outStr := string(output)
	if strings.Contains(outStr, "request id is") {
		parts := strings.Split(outStr, "is")
		if len(parts) > 1 {
			fields := strings.Fields(strings.TrimSpace(parts[1]))
			if len(fields) > 0 {
				return fields[0], nil
			}
		}
	}
	return "", nil
}

// listInstalledPrinters reports CUPS destinations with their spooler status.
func listInstalledPrinters() ([]rawPrinter, error) {
	cmd := exec.Command("lpstat", "-p")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("lpstat failed: %w", err)
	}

	var printers []rawPrinter
	for _, line := range strings.Split(string(output), "\n") {
		// "printer Zebra_ZD420 is idle.  enabled since ..."
		if !strings.HasPrefix(line, "printer ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		status := "unknown"
		if len(fields) >= 4 && fields[2] == "is" {
			status = strings.TrimSuffix(fields[3], ".")
		}
		printers = append(printers, rawPrinter{Name: fields[1], Status: status})
	}
	return printers, nil
}
