package sqlstore

import (
	"context"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type statsRepository struct {
	db *db.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(store *db.DB) repository.StatsRepository {
	return &statsRepository{db: store}
}

const userStatsQuery = `
SELECT
    (SELECT COUNT(*) FROM materials WHERE user_id = ?) AS total_materials,
    (SELECT COUNT(*) FROM materials WHERE user_id = ? AND status = 'completed') AS completed_materials,
    (SELECT COALESCE(AVG(score), 0) FROM quiz_attempts WHERE user_id = ?) AS avg_quiz_score,
    (SELECT COUNT(*) FROM quiz_attempts WHERE user_id = ?) AS total_quiz_attempts,
    (SELECT COUNT(*) FROM flashcards WHERE user_id = ?) AS total_flashcards,
    (SELECT COUNT(*) FROM flashcards WHERE user_id = ? AND repetition_count > 0) AS reviewed_flashcards,
    (SELECT COALESCE(SUM(minutes), 0) FROM study_sessions WHERE user_id = ?) AS total_study_minutes
`

// UserStats returns the raw counters. StudyStreak is left at zero; it is derived from
// activity dates by the caller.
func (r *statsRepository) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing user stats: user_id=%d", userID)

	args := make([]any, 7)
	for i := range args {
		args[i] = userID
	}

	var stats models.UserStats
	if err := r.db.GetContext(ctx, &stats, r.db.Rebind(userStatsQuery), args...); err != nil {
		log.Error("failed to compute user stats: %v", err)
		return nil, err
	}
	return &stats, nil
}

type quizBySubject struct {
	Subject       string  `db:"subject"`
	AvgScore      float64 `db:"avg_score"`
	TotalAttempts int     `db:"total_attempts"`
}

type cardsBySubject struct {
	Subject         string `db:"subject"`
	TotalFlashcards int    `db:"total_flashcards"`
	Mastered        int    `db:"flashcards_mastered"`
}

type minutesBySubject struct {
	Subject string `db:"subject"`
	Minutes int    `db:"study_minutes"`
}

// SubjectStats merges quiz, flashcard and study-time totals per subject. Flashcards
// are grouped by topic. Subjects are sorted by name.
func (r *statsRepository) SubjectStats(ctx context.Context, userID int64) ([]models.SubjectStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing subject stats: user_id=%d", userID)

	quiz, err := selectAll[quizBySubject](ctx, r.db, log, r.db.Builder().
		Select("subject", "AVG(score) AS avg_score", "COUNT(*) AS total_attempts").
		From("quiz_attempts").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"subject": ""}).
		GroupBy("subject"))
	if err != nil {
		return nil, err
	}

	cards, err := selectAll[cardsBySubject](ctx, r.db, log, r.db.Builder().
		Select("topic AS subject", "COUNT(*) AS total_flashcards").
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN interval_days >= ? THEN 1 ELSE 0 END), 0) AS flashcards_mastered", flashcard.MatureIntervalDays)).
		From("flashcards").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"topic": ""}).
		GroupBy("topic"))
	if err != nil {
		return nil, err
	}

	minutes, err := selectAll[minutesBySubject](ctx, r.db, log, r.db.Builder().
		Select("subject", "COALESCE(SUM(minutes), 0) AS study_minutes").
		From("study_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"subject": ""}).
		GroupBy("subject"))
	if err != nil {
		return nil, err
	}

	bySubject := make(map[string]*models.SubjectStats)
	get := func(name string) *models.SubjectStats {
		s, ok := bySubject[name]
		if !ok {
			s = &models.SubjectStats{Subject: name}
			bySubject[name] = s
		}
		return s
	}
	for _, q := range quiz {
		s := get(q.Subject)
		s.AvgScore = q.AvgScore
		s.TotalAttempts = q.TotalAttempts
	}
	for _, c := range cards {
		s := get(c.Subject)
		s.TotalFlashcards = c.TotalFlashcards
		s.FlashcardsMastered = c.Mastered
	}
	for _, m := range minutes {
		get(m.Subject).StudyMinutes = m.Minutes
	}

	out := make([]models.SubjectStats, 0, len(bySubject))
	for _, s := range bySubject {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })

	log.Debug("found %d subjects", len(out))
	return out, nil
}

// ActivityTimes returns the timestamps of every review, quiz attempt and study session.
func (r *statsRepository) ActivityTimes(ctx context.Context, userID int64) ([]time.Time, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("collecting activity times: user_id=%d", userID)

	sources := []struct{ table, column string }{
		{"review_history", "reviewed_at"},
		{"quiz_attempts", "attempted_at"},
		{"study_sessions", "started_at"},
	}

	var out []time.Time
	for _, src := range sources {
		times, err := selectAll[time.Time](ctx, r.db, log, r.db.Builder().
			Select(src.column).
			From(src.table).
			Where(squirrel.Eq{"user_id": userID}))
		if err != nil {
			return nil, err
		}
		out = append(out, times...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (r *statsRepository) ProgressHistory(ctx context.Context, userID int64) ([]models.ProgressSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching progress history: user_id=%d", userID)

	return selectAll[models.ProgressSnapshot](ctx, r.db, log, r.db.Builder().
		Select("snapshot_date", "progress").
		From("progress_snapshots").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("snapshot_date ASC"))
}

// UpsertSnapshot stores the progress for the snapshot's calendar day, replacing any
// earlier value for that day.
func (r *statsRepository) UpsertSnapshot(ctx context.Context, userID int64, snapshot models.ProgressSnapshot) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	day := calendar.Day(snapshot.Date)
	log.Debug("upserting progress snapshot: user_id=%d, date=%s, progress=%.1f", userID, calendar.Key(day), snapshot.Progress)

	stmt, args, err := r.db.Builder().
		Insert("progress_snapshots").
		Columns("user_id", "snapshot_date", "progress").
		Values(userID, day, snapshot.Progress).
		Suffix("ON CONFLICT (user_id, snapshot_date) DO UPDATE SET progress = excluded.progress").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		log.Error("failed to upsert progress snapshot: %v", err)
		return err
	}
	return nil
}
