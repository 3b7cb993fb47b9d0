package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/studyflash/internal/cache"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/logger"
)

// Clock returns the current instant. Services read it once per call.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}

// progressTracker invalidates cached progress views and schedules a fresh snapshot
// whenever a learner's activity changes.
type progressTracker struct {
	cache cache.Cache
	queue jobs.JobQueue
}

func (t progressTracker) changed(ctx context.Context, userID int64, cardsChanged bool) {
	log := logger.FromContext(ctx)

	if t.cache != nil {
		if err := t.cache.DeletePrefix(ctx, cache.OverviewPrefix(userID)); err != nil {
			log.Warn("failed to invalidate overview cache: %v", err)
		}
		if cardsChanged {
			if err := t.cache.DeletePrefix(ctx, cache.BatchPrefix(userID)); err != nil {
				log.Warn("failed to invalidate batch cache: %v", err)
			}
		}
	}
	if t.queue != nil {
		if err := t.queue.EnqueueSnapshot(userID); err != nil {
			log.Warn("failed to enqueue progress snapshot: %v", err)
		}
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
