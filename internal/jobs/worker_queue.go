package jobs

import (
	"context"

	"github.com/vytor/studyflash/internal/worker"
)

// ReminderSender delivers a due-cards reminder to one learner.
type ReminderSender interface {
	SendReminder(ctx context.Context, userID int64) error
}

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool     *worker.Pool
	recorder worker.SnapshotRecorder
	reminder ReminderSender
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, recorder worker.SnapshotRecorder, reminder ReminderSender) JobQueue {
	return &WorkerQueue{
		pool:     pool,
		recorder: recorder,
		reminder: reminder,
	}
}

func (q *WorkerQueue) snapshotJob(userID int64) worker.Job {
	return &worker.SnapshotJob{
		Recorder: q.recorder,
		UserID:   userID,
	}
}

func (q *WorkerQueue) EnqueueSnapshot(userID int64) error {
	return q.pool.Submit(q.snapshotJob(userID))
}

func (q *WorkerQueue) EnqueueSnapshotWait(ctx context.Context, userID int64) error {
	return q.pool.SubmitWait(ctx, q.snapshotJob(userID))
}

func (q *WorkerQueue) EnqueueReminder(ctx context.Context, userID int64) error {
	return q.pool.SubmitWait(ctx, &worker.FuncJob{
		JobName: "study_reminder",
		Fn: func(ctx context.Context) error {
			return q.reminder.SendReminder(ctx, userID)
		},
	})
}
