package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/velvet-labs/velvet/internal/service"
)

// NoShowWorker periodically sweeps completed events and applies no-show
// penalties. The sweep is idempotent, so overlapping runs or restarts never
// double-penalize anyone.
type NoShowWorker struct {
	noShowService service.NoShowService
	interval      time.Duration
}

func NewNoShowWorker(noShowService service.NoShowService, interval time.Duration) *NoShowWorker {
	return &NoShowWorker{
		noShowService: noShowService,
		interval:      interval,
	}
}

func (w *NoShowWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("no-show worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("no-show worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *NoShowWorker) sweep(ctx context.Context) {
	events, err := w.noShowService.ListCompletedEvents(ctx)
	if err != nil {
		logrus.Errorf("no-show sweep: failed to list completed events: %v", err)
		return
	}
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		select {
		case <-ctx.Done():
			logrus.Info("no-show sweep interrupted")
			return
		default:
		}

		report, err := w.noShowService.ProcessEvent(ctx, event.ID)
		if err != nil {
			logrus.Errorf("no-show sweep: event %s failed: %v", event.ID, err)
			continue
		}
		if report.Penalized > 0 || report.Failed > 0 {
			logrus.Infof("no-show sweep: event %s penalized=%d skipped=%d failed=%d",
				event.ID, report.Penalized, report.Skipped, report.Failed)
		}
	}
}
