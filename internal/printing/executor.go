package printing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
)

// submitFunc hands a staged file to the OS print subsystem. The default is
// the platform implementation; tests swap in a double.
type submitFunc func(ctx context.Context, path string, route models.PrinterRoute) (string, error)

// Executor stages one artifact to disk, submits it to the spooler once, and
// cleans up. No retry: a failed submission is reported, not repeated.
type Executor struct {
	log    *zap.Logger
	tmpDir string
	submit submitFunc
}

func NewExecutor(log *zap.Logger) *Executor {
	return &Executor{
		log:    log,
		tmpDir: os.TempDir(),
		submit: submitToSpooler,
	}
}

// Execute materializes the artifact under a collision-free name, submits it
// to the printer named by the route, and removes the file on every exit
// path. Returns the printer name on success.
func (e *Executor) Execute(ctx context.Context, jobID string, artifact *Artifact, route models.PrinterRoute) (string, error) {
	name := fmt.Sprintf("print-%s-%d.%s", sanitizeID(jobID), time.Now().UnixNano(), artifact.Ext)
	path := filepath.Join(e.tmpDir, name)

	if err := os.WriteFile(path, artifact.Data, 0o600); err != nil {
		return "", fmt.Errorf("%w: staging artifact: %v", ErrPrintFailed, err)
	}
	defer os.Remove(path)

	osJobID, err := e.submit(ctx, path, route)
	if err != nil {
		return "", err
	}

	e.log.Info("job submitted to spooler",
		zap.String("jobId", jobID),
		zap.String("printer", route.PrinterName),
		zap.String("osJobId", osJobID),
		zap.Bool("is4x6", route.Is4x6))
	return route.PrinterName, nil
}

// sanitizeID keeps temp file names safe regardless of what the caller put in
// the job id.
func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "job"
	}
	return b.String()
}
