package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

// Worker runs one query job at a time.
type Worker struct {
	agg *Aggregator
	log *slog.Logger
}

func NewWorker(agg *Aggregator, log *slog.Logger) *Worker {
	return &Worker{agg: agg, log: log}
}

// Process runs the job's query and records progress as documents finish.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	q, ids := job.Query()

	job.SetStatus(StatusRunning, "matching")
	log.Info("query started", "documents", len(ids))

	agg := *w.agg
	agg.Logger = log
	agg.OnDocument = func(r DocumentResult) {
		job.RecordDocument(r.Failure != nil, len(r.Matches))
		if r.Failure != nil {
			job.AddError(fmt.Sprintf("%s: %s", r.ID, r.Failure.Message))
		}
	}

	res, err := agg.Run(ctx, ids, q)
	if err != nil {
		log.Error("query failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "matching")
		return
	}
	job.Finish(res)
}
