package printing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse-print-agent/internal/models"
)

func TestHistory_AddAndUpdate(t *testing.T) {
	h := NewHistory(10)

	h.Add(models.JobRecord{ID: "a", Status: models.StatusPrinting, CreatedAt: time.Now()})
	h.Add(models.JobRecord{ID: "b", Status: models.StatusPrinting, CreatedAt: time.Now()})
	h.Update("a", models.StatusCompleted, "", "Zebra_ZD420")

	records := h.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID, "newest first")
	assert.Equal(t, models.StatusCompleted, records[1].Status)
	assert.Equal(t, "Zebra_ZD420", records[1].Printer)
}

func TestHistory_CapsSize(t *testing.T) {
	h := NewHistory(3)
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		h.Add(models.JobRecord{ID: id})
	}

	records := h.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "5", records[0].ID)
	assert.Equal(t, "3", records[2].ID)
}

func TestHistory_NotifiesOnChange(t *testing.T) {
	h := NewHistory(10)
	var snapshots [][]models.JobRecord
	h.SetOnUpdate(func(records []models.JobRecord) {
		snapshots = append(snapshots, records)
	})

	h.Add(models.JobRecord{ID: "a"})
	h.Update("a", models.StatusFailed, "printer offline", "")
	h.Clear()

	require.Len(t, snapshots, 3)
	assert.Len(t, snapshots[0], 1)
	assert.Equal(t, "printer offline", snapshots[1][0].Error)
	assert.Empty(t, snapshots[2])
}

func TestHistory_SnapshotIsACopy(t *testing.T) {
	h := NewHistory(10)
	h.Add(models.JobRecord{ID: "a", Status: models.StatusPrinting})

	records := h.Records()
	records[0].Status = "mutated"

	assert.Equal(t, models.StatusPrinting, h.Records()[0].Status)
}
