package printing

import (
	"sync"

	"warehouse-print-agent/internal/models"
)

const defaultHistorySize = 100

// History keeps the most recent job records in memory for the local console.
// It is not a queue: records are informational, never replayed, and gone on
// restart.
type History struct {
	mu       sync.RWMutex
	records  []models.JobRecord
	max      int
	onUpdate func([]models.JobRecord)
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = defaultHistorySize
	}
	return &History{max: max}
}

// SetOnUpdate registers the callback invoked with a snapshot after every
// change. Set once during wiring, before any job runs.
func (h *History) SetOnUpdate(cb func([]models.JobRecord)) {
	h.onUpdate = cb
}

// Add prepends a record, trimming to capacity.
func (h *History) Add(rec models.JobRecord) {
	h.mu.Lock()
	h.records = append([]models.JobRecord{rec}, h.records...)
	if len(h.records) > h.max {
		h.records = h.records[:h.max]
	}
	current := h.copyLocked()
	h.mu.Unlock()

	h.notify(current)
}

// Update rewrites the status of an existing record. Unknown ids are ignored.
func (h *History) Update(id, status, errStr, printer string) {
	h.mu.Lock()
	for i := range h.records {
		if h.records[i].ID == id {
			h.records[i].Status = status
			h.records[i].Error = errStr
			if printer != "" {
				h.records[i].Printer = printer
			}
			break
		}
	}
	current := h.copyLocked()
	h.mu.Unlock()

	h.notify(current)
}

// Records returns a snapshot, newest first.
func (h *History) Records() []models.JobRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.copyLocked()
}

// Clear drops all records.
func (h *History) Clear() {
	h.mu.Lock()
	h.records = nil
	h.mu.Unlock()

	h.notify([]models.JobRecord{})
}

func (h *History) copyLocked() []models.JobRecord {
	cp := make([]models.JobRecord, len(h.records))
	copy(cp, h.records)
	return cp
}

// notify runs outside the lock so a slow consumer cannot stall the pipeline.
func (h *History) notify(records []models.JobRecord) {
	if h.onUpdate != nil {
		h.onUpdate(records)
	}
}
