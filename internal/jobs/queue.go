package jobs

import "context"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueSnapshot queues a snapshot without blocking; a full queue is an error.
	EnqueueSnapshot(userID int64) error
	// EnqueueSnapshotWait waits for a free slot until ctx is done.
	EnqueueSnapshotWait(ctx context.Context, userID int64) error
	// EnqueueReminder waits for a free slot until ctx is done.
	EnqueueReminder(ctx context.Context, userID int64) error
}
