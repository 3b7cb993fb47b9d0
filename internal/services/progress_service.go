package services

import (
	"context"
	stderrors "errors"
	"sort"
	"time"

	"github.com/vytor/studyflash/internal/cache"
	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/progress"
	"github.com/vytor/studyflash/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ProgressService reports a learner's overall progress, subject mastery, learning
// velocity and study consistency
type ProgressService interface {
	Overview(ctx context.Context, userID int64) (*progress.Overview, error)
	Subjects(ctx context.Context, userID int64) (*progress.SubjectReport, error)
	Velocity(ctx context.Context, userID int64) (*progress.Velocity, error)
	Consistency(ctx context.Context, userID int64) (*progress.Consistency, error)
	RecordSnapshot(ctx context.Context, userID int64) error
}

type progressService struct {
	statsRepo   repository.StatsRepository
	cache       cache.Cache
	overviewTTL time.Duration
	clock       Clock
}

// NewProgressService creates a new ProgressService
func NewProgressService(statsRepo repository.StatsRepository, c cache.Cache, overviewTTL time.Duration, clock Clock) ProgressService {
	if c == nil {
		c = cache.Noop{}
	}
	return &progressService{
		statsRepo:   statsRepo,
		cache:       c,
		overviewTTL: overviewTTL,
		clock:       clock,
	}
}

func (s *progressService) Overview(ctx context.Context, userID int64) (*progress.Overview, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting progress overview: user_id=%d", userID)

	now := s.clock.now()
	key := cache.OverviewKey(userID, now)
	if cached, ok, err := cache.GetJSON[progress.Overview](ctx, s.cache, key); err != nil {
		log.Warn("overview cache read failed: %v", err)
	} else if ok {
		return &cached, nil
	}

	overview, err := s.computeOverview(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.cache, key, overview, s.overviewTTL); err != nil {
		log.Warn("overview cache write failed: %v", err)
	}
	return overview, nil
}

// computeOverview loads the counters and the activity dates concurrently; the study
// streak is derived from the activity dates.
func (s *progressService) computeOverview(ctx context.Context, userID int64, now time.Time) (*progress.Overview, error) {
	log := logger.FromContext(ctx)

	var (
		stats    *models.UserStats
		activity []time.Time
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.statsRepo.UserStats(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = s.statsRepo.ActivityTimes(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load progress inputs: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats == nil {
		stats = &models.UserStats{}
	}

	stats.StudyStreak = progress.AnalyzeConsistency(studyDays(activity), now).CurrentStreak
	overview := progress.Aggregate(*stats)
	return &overview, nil
}

func (s *progressService) Subjects(ctx context.Context, userID int64) (*progress.SubjectReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("evaluating subjects: user_id=%d", userID)

	subjects, err := s.statsRepo.SubjectStats(ctx, userID)
	if err != nil {
		log.Error("failed to load subject stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	report, err := progress.EvaluateSubjects(subjects)
	if err != nil {
		return nil, shapeError(err)
	}
	return &report, nil
}

func (s *progressService) Velocity(ctx context.Context, userID int64) (*progress.Velocity, error) {
	log := logger.FromContext(ctx)
	log.Debug("estimating learning velocity: user_id=%d", userID)

	history, err := s.statsRepo.ProgressHistory(ctx, userID)
	if err != nil {
		log.Error("failed to load progress history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	velocity, err := progress.EstimateVelocity(history)
	if err != nil {
		return nil, shapeError(err)
	}
	return &velocity, nil
}

func (s *progressService) Consistency(ctx context.Context, userID int64) (*progress.Consistency, error) {
	log := logger.FromContext(ctx)
	log.Debug("analyzing study consistency: user_id=%d", userID)

	activity, err := s.statsRepo.ActivityTimes(ctx, userID)
	if err != nil {
		log.Error("failed to load activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	consistency := progress.AnalyzeConsistency(studyDays(activity), s.clock.now())
	return &consistency, nil
}

// RecordSnapshot stores today's overall progress in the learner's history. It always
// recomputes rather than reading the cached overview, and leaves the cache to Overview.
func (s *progressService) RecordSnapshot(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)
	now := s.clock.now()

	overview, err := s.computeOverview(ctx, userID, now)
	if err != nil {
		return err
	}
	snapshot := models.ProgressSnapshot{Date: now, Progress: float64(overview.OverallProgress)}
	if err := s.statsRepo.UpsertSnapshot(ctx, userID, snapshot); err != nil {
		log.Error("failed to store progress snapshot: %v", err)
		return errors.NewInternalError(err)
	}
	log.Debug("progress snapshot recorded: user_id=%d, progress=%d", userID, overview.OverallProgress)
	return nil
}

// studyDays collapses activity timestamps into distinct calendar days, in order.
func studyDays(times []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(times))
	days := make([]time.Time, 0, len(times))
	for _, t := range times {
		d := calendar.Day(t)
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func shapeError(err error) error {
	if stderrors.Is(err, progress.ErrInvalidShape) {
		return errors.NewInvalidShapeError(err)
	}
	return errors.NewInternalError(err)
}
