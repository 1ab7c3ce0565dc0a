package update

import (
	"fmt"
	"net/http"

	"github.com/minio/selfupdate"
	"go.uber.org/zap"
)

// Result describes the outcome of a self-update.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// Updater downloads an agent binary and swaps it in place. The running
// process keeps serving until restarted.
type Updater struct {
	log *zap.Logger
}

func NewUpdater(log *zap.Logger) *Updater {
	return &Updater{log: log}
}

// Apply downloads the binary at url and replaces the current executable.
func (u *Updater) Apply(url, version string) (*Result, error) {
	u.log.Info("applying update", zap.String("version", version), zap.String("url", url))

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	if err := selfupdate.Apply(resp.Body, selfupdate.Options{}); err != nil {
		return nil, fmt.Errorf("failed to apply update: %w", err)
	}

	return &Result{
		Success: true,
		Message: "Update applied successfully. Please restart the agent.",
		Version: version,
	}, nil
}
