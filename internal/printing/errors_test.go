package printing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySubmitError(t *testing.T) {
	base := errors.New("exit status 1")

	tests := []struct {
		name   string
		output string
		want   error
	}{
		{"cups missing printer", "lp: The printer or class does not exist.", ErrPrinterNotFound},
		{"windows missing printer", "Cannot find printer with name Zebra", ErrPrinterNotFound},
		{"unknown printer", "unknown printer: Zebra_ZD420", ErrPrinterNotFound},
		{"rejecting destination", "lp: Destination \"zebra\" is not accepting jobs.", ErrPrinterOffline},
		{"offline device", "The printer is offline.", ErrPrinterOffline},
		{"unreachable device", "printer unreachable over network", ErrPrinterOffline},
		{"anything else", "filter failed", ErrPrintFailed},
		{"empty output", "", ErrPrintFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifySubmitError("Zebra_ZD420", base, tt.output)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "Zebra_ZD420")
		})
	}
}

func TestClassifySubmitError_PreservesOriginalMessage(t *testing.T) {
	err := classifySubmitError("P", errors.New("exit status 1"), "filter crashed: segfault in rastertolabel")
	assert.ErrorIs(t, err, ErrPrintFailed)
	assert.Contains(t, err.Error(), "segfault in rastertolabel")
}
