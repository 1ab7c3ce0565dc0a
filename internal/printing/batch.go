package printing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
)

// PayloadConverter normalizes a job payload into a printable artifact.
type PayloadConverter interface {
	Convert(ctx context.Context, format models.Format, payload string) (*Artifact, error)
}

// JobExecutor submits one artifact to the resolved printer.
type JobExecutor interface {
	Execute(ctx context.Context, jobID string, artifact *Artifact, route models.PrinterRoute) (string, error)
}

// ProfileSource hands out the current station profile. Reads are cheap; the
// engine reads once per job so settings saves take effect between jobs.
type ProfileSource interface {
	Profile() models.StationProfile
}

// JobReporter delivers the best-effort per-job notification to the remote
// log sink. Implementations must never block the pipeline.
type JobReporter interface {
	ReportJob(profile models.StationProfile, job models.PrintJob, result models.PrintResult)
}

// Engine runs the resolve -> convert -> execute pipeline for single jobs and
// batches. A single physical device cannot take interleaved submissions, so
// the execute stage is guarded by a mutex: one job prints at a time no matter
// how many requests the gateway accepts concurrently.
type Engine struct {
	converter PayloadConverter
	executor  JobExecutor
	profiles  ProfileSource
	reporter  JobReporter
	history   *History
	log       *zap.Logger

	execMu sync.Mutex
}

func NewEngine(converter PayloadConverter, executor JobExecutor, profiles ProfileSource, reporter JobReporter, history *History, log *zap.Logger) *Engine {
	return &Engine{
		converter: converter,
		executor:  executor,
		profiles:  profiles,
		reporter:  reporter,
		history:   history,
		log:       log,
	}
}

// PrintDocument runs the full pipeline for one job and reports the result.
// Every failure is caught here and returned as a structured result; nothing
// escapes as a bare error.
func (e *Engine) PrintDocument(ctx context.Context, job models.PrintJob) models.PrintResult {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	start := time.Now()
	e.trackStart(job)

	printer, err := e.run(ctx, job)

	result := models.PrintResult{
		JobID:      job.ID,
		Printer:    printer,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.Status = models.StatusFailed
		result.Error = err.Error()
		e.log.Warn("print job failed",
			zap.String("jobId", job.ID),
			zap.String("documentType", string(job.DocumentType)),
			zap.Error(err))
	} else {
		result.Success = true
		result.Status = models.StatusCompleted
	}

	e.trackFinish(job, result)
	e.report(job, result)
	return result
}

// RunBatch processes jobs strictly sequentially, in input order, one job
// completing end to end before the next begins. A failing job is recorded
// and the batch proceeds; it never aborts early.
func (e *Engine) RunBatch(ctx context.Context, jobs []models.PrintJob) models.BatchOutcome {
	// An accepted batch runs to completion. A client disconnect or gateway
	// timeout must not strand half the sequence on the device.
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	outcome := models.BatchOutcome{Total: len(jobs)}

	seen := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		if job.ID != "" && seen[job.ID] {
			outcome.Failed++
			outcome.Errors = append(outcome.Errors, models.BatchError{
				JobID: job.ID,
				Error: fmt.Sprintf("duplicate jobId %q in batch", job.ID),
			})
			continue
		}

		result := e.PrintDocument(ctx, job)
		seen[result.JobID] = true

		if result.Success {
			outcome.Successful++
		} else {
			outcome.Failed++
			outcome.Errors = append(outcome.Errors, models.BatchError{
				JobID: result.JobID,
				Error: result.Error,
			})
		}
	}

	outcome.DurationMs = time.Since(start).Milliseconds()
	e.log.Info("batch finished",
		zap.Int("total", outcome.Total),
		zap.Int("successful", outcome.Successful),
		zap.Int("failed", outcome.Failed),
		zap.Int64("durationMs", outcome.DurationMs))
	return outcome
}

// run is the three-stage pipeline. Resolution and conversion happen outside
// the execution lock; only device submission is serialized.
func (e *Engine) run(ctx context.Context, job models.PrintJob) (string, error) {
	profile := e.profiles.Profile()

	route, err := Resolve(job.DocumentType, profile)
	if err != nil {
		return "", err
	}

	artifact, err := e.converter.Convert(ctx, job.Format, job.Payload)
	if err != nil {
		return "", err
	}

	e.execMu.Lock()
	defer e.execMu.Unlock()
	// Once submission starts it is not cancellable; the platform executors
	// apply their own bounded timeouts.
	return e.executor.Execute(context.WithoutCancel(ctx), job.ID, artifact, route)
}

func (e *Engine) trackStart(job models.PrintJob) {
	if e.history == nil {
		return
	}
	e.history.Add(models.JobRecord{
		ID:           job.ID,
		DocumentType: job.DocumentType,
		Status:       models.StatusPrinting,
		CreatedAt:    time.Now(),
	})
}

func (e *Engine) trackFinish(job models.PrintJob, result models.PrintResult) {
	if e.history == nil {
		return
	}
	e.history.Update(job.ID, result.Status, result.Error, result.Printer)
}

func (e *Engine) report(job models.PrintJob, result models.PrintResult) {
	if e.reporter == nil {
		return
	}
	e.reporter.ReportJob(e.profiles.Profile(), job, result)
}
