package telemetry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
)

// jobEvent is the wire form of the per-job notification sent to the remote
// log sink.
type jobEvent struct {
	StationID    string            `json:"stationId"`
	JobID        string            `json:"jobId"`
	JobType      string            `json:"jobType"`
	DocumentID   string            `json:"documentId,omitempty"`
	Status       string            `json:"status"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	DurationMs   int64             `json:"durationMs,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Reporter ships one best-effort notification per job. Delivery failures are
// logged at debug and otherwise swallowed: the sink must never influence a
// job's outcome.
type Reporter struct {
	client *http.Client
	log    *zap.Logger
}

func NewReporter(log *zap.Logger) *Reporter {
	return &Reporter{
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

// ReportJob fires the notification in the background and returns immediately.
func (r *Reporter) ReportJob(profile models.StationProfile, job models.PrintJob, result models.PrintResult) {
	if profile.APIURL == "" {
		return
	}

	event := jobEvent{
		StationID:    profile.StationID,
		JobID:        result.JobID,
		JobType:      string(job.DocumentType),
		DocumentID:   job.Metadata["documentId"],
		Status:       result.Status,
		ErrorMessage: result.Error,
		DurationMs:   result.DurationMs,
		Metadata:     job.Metadata,
	}

	go r.post(profile.APIURL, event)
}

func (r *Reporter) post(url string, event jobEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		r.log.Debug("telemetry encode failed", zap.Error(err))
		return
	}

	resp, err := r.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		r.log.Debug("telemetry delivery failed", zap.String("url", url), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		r.log.Debug("telemetry sink rejected event",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
	}
}
