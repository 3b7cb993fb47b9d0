package worker

import (
	"context"

	"github.com/vytor/studyflash/internal/logger"
)

// SnapshotRecorder stores a learner's current overall progress for today.
type SnapshotRecorder interface {
	RecordSnapshot(ctx context.Context, userID int64) error
}

// SnapshotJob records one learner's progress snapshot.
type SnapshotJob struct {
	Recorder SnapshotRecorder
	UserID   int64
}

func (j *SnapshotJob) Name() string { return "progress_snapshot" }

func (j *SnapshotJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)
	log.Debug("recording progress snapshot")
	return j.Recorder.RecordSnapshot(ctx, j.UserID)
}

// FuncJob adapts a plain function to the Job interface.
type FuncJob struct {
	JobName string
	Fn      func(context.Context) error
}

func (j *FuncJob) Name() string { return j.JobName }

func (j *FuncJob) Run(ctx context.Context) error { return j.Fn(ctx) }
