// Package scheduler runs the recurring background work: the daily progress
// snapshot for every learner and periodic study reminders.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler        *gocron.Scheduler
	users            repository.UserRepository
	queue            jobs.JobQueue
	snapshotAt       string
	reminderInterval time.Duration
	ctx              context.Context
	cancel           context.CancelFunc
	log              *logger.Logger
}

// New creates a scheduler. snapshotAt is a daily "HH:MM" time in UTC; a
// reminderInterval of zero disables reminders.
func New(users repository.UserRepository, queue jobs.JobQueue, snapshotAt string, reminderInterval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler:        gocron.NewScheduler(time.UTC),
		users:            users,
		queue:            queue,
		snapshotAt:       snapshotAt,
		reminderInterval: reminderInterval,
		ctx:              ctx,
		cancel:           cancel,
		log:              logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the jobs and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.snapshotAt).Do(s.SnapshotAll); err != nil {
		return fmt.Errorf("schedule snapshots at %q: %w", s.snapshotAt, err)
	}
	if s.reminderInterval > 0 {
		if _, err := s.scheduler.Every(s.reminderInterval).WaitForSchedule().Do(s.RemindAll); err != nil {
			return fmt.Errorf("schedule reminders: %w", err)
		}
	}
	s.log.Info("starting scheduler: snapshots daily at %s UTC, reminders every %v", s.snapshotAt, s.reminderInterval)
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks. A run still waiting for queue slots gives up.
func (s *Scheduler) Stop() {
	s.cancel()
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// JobCount is the number of registered jobs.
func (s *Scheduler) JobCount() int {
	return len(s.scheduler.Jobs())
}

// SnapshotAll enqueues a progress snapshot for every learner, waiting for queue
// slots so that no learner is skipped.
func (s *Scheduler) SnapshotAll() {
	s.forEachUser("snapshot", func(models.User) bool { return true }, s.queue.EnqueueSnapshotWait)
}

// RemindAll enqueues a study reminder for every learner with a linked chat.
func (s *Scheduler) RemindAll() {
	s.forEachUser("reminder", func(u models.User) bool { return u.TelegramChatID != nil }, s.queue.EnqueueReminder)
}

func (s *Scheduler) forEachUser(kind string, include func(models.User) bool, enqueue func(context.Context, int64) error) {
	ctx := logger.NewContext(s.ctx, s.log)
	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Error("failed to list users for %s: %v", kind, err)
		return
	}

	var queued int
	for _, u := range users {
		if !include(u) {
			continue
		}
		if err := enqueue(ctx, u.ID); err != nil {
			if ctx.Err() != nil {
				s.log.Warn("%s run interrupted after %d jobs: %v", kind, queued, err)
				return
			}
			s.log.Warn("failed to enqueue %s for user %d: %v", kind, u.ID, err)
			continue
		}
		queued++
	}
	s.log.Info("enqueued %d %s jobs", queued, kind)
}
