package jobs

import (
	"context"
	"log/slog"
	"time"

	"distribution/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// How many outbox rows one tick drains at most. A tick that hits the cap
// leaves the rest for the next tick rather than holding the loop.
const dispatchBatchSize = 50

// OutboxDispatchJob drains the outbox: every few seconds it fetches
// undispatched events, publishes them to the broker, and marks them
// dispatched. Publish failures are recorded as attempts and retried on a
// later tick; they never propagate anywhere near request handling.
type OutboxDispatchJob struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
	now       func() time.Time
}

// NewOutboxDispatchJob creates the dispatch job. The repository must run on
// the pooled connection, not inside a unit of work: each event's dispatch
// bookkeeping commits independently.
func NewOutboxDispatchJob(
	outboxRepo ports.OutboxRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		outbox:    outboxRepo,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_dispatch_job"),
		now:       time.Now,
	}
}

// Start begins draining the outbox every five seconds.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		if err := j.dispatchOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox drain failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every 5 seconds)")
	return nil
}

// Stop stops the dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}

// dispatchOnce drains one batch. A publish failure marks that event failed
// and moves on, so one bad event cannot wedge the queue behind it.
func (j *OutboxDispatchJob) dispatchOnce(ctx context.Context) error {
	events, err := j.outbox.GetUndispatched(ctx, dispatchBatchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if pubErr := j.publisher.Publish(ctx, event); pubErr != nil {
			j.logger.ErrorContext(ctx, "Event publish failed",
				"event_id", event.ID().String(),
				"kind", event.Kind().String(),
				"attempts", event.Attempts()+1,
				"error", pubErr)
			event.MarkFailed()
		} else {
			event.MarkDispatched(j.now().UTC())
		}

		if updErr := j.outbox.Update(ctx, event); updErr != nil {
			return updErr
		}
	}

	return nil
}
