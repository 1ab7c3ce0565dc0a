package printing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
)

func newTestExecutor(t *testing.T, submit submitFunc) *Executor {
	t.Helper()
	e := NewExecutor(zap.NewNop())
	e.tmpDir = t.TempDir()
	e.submit = submit
	return e
}

func tempEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestExecute_StagesArtifactForSubmission(t *testing.T) {
	artifact := &Artifact{Data: []byte("%PDF-1.4 label"), Ext: "pdf"}
	route := models.PrinterRoute{PrinterName: "Zebra_ZD420", Is4x6: true}

	var staged []byte
	e := newTestExecutor(t, func(ctx context.Context, path string, r models.PrinterRoute) (string, error) {
		assert.Equal(t, route, r)
		assert.Equal(t, ".pdf", filepath.Ext(path))

		var err error
		staged, err = os.ReadFile(path)
		require.NoError(t, err)
		return "Zebra_ZD420-17", nil
	})

	printer, err := e.Execute(context.Background(), "job-1", artifact, route)
	require.NoError(t, err)
	assert.Equal(t, "Zebra_ZD420", printer)
	assert.Equal(t, artifact.Data, staged)
}

func TestExecute_RemovesTempFileOnSuccess(t *testing.T) {
	e := newTestExecutor(t, func(ctx context.Context, path string, r models.PrinterRoute) (string, error) {
		return "", nil
	})

	_, err := e.Execute(context.Background(), "job-1", &Artifact{Data: []byte("x"), Ext: "pdf"},
		models.PrinterRoute{PrinterName: "P"})
	require.NoError(t, err)
	assert.Empty(t, tempEntries(t, e.tmpDir))
}

func TestExecute_RemovesTempFileOnSubmitFailure(t *testing.T) {
	submitErr := errors.New("lp: The printer or class does not exist.")
	e := newTestExecutor(t, func(ctx context.Context, path string, r models.PrinterRoute) (string, error) {
		return "", classifySubmitError(r.PrinterName, submitErr, "")
	})

	_, err := e.Execute(context.Background(), "job-1", &Artifact{Data: []byte("x"), Ext: "pdf"},
		models.PrinterRoute{PrinterName: "Ghost"})
	assert.ErrorIs(t, err, ErrPrinterNotFound)
	assert.Empty(t, tempEntries(t, e.tmpDir))
}

func TestExecute_UniqueTempNamesPerJob(t *testing.T) {
	var paths []string
	e := newTestExecutor(t, func(ctx context.Context, path string, r models.PrinterRoute) (string, error) {
		paths = append(paths, path)
		return "", nil
	})

	artifact := &Artifact{Data: []byte("x"), Ext: "pdf"}
	route := models.PrinterRoute{PrinterName: "P"}
	for i := 0; i < 3; i++ {
		_, err := e.Execute(context.Background(), "same-job", artifact, route)
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p], "temp path %s reused", p)
		seen[p] = true
	}
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "job-42_a", sanitizeID("job-42_a"))
	assert.Equal(t, "ab", sanitizeID("a/../b"))
	assert.Equal(t, "job", sanitizeID("///"))
	assert.Equal(t, "job", sanitizeID(""))
}
