package repository

import (
	"context"
	"time"

	"github.com/vytor/studyflash/internal/models"
)

// StatsRepository handles aggregated statistics and progress history
type StatsRepository interface {
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
	SubjectStats(ctx context.Context, userID int64) ([]models.SubjectStats, error)
	ActivityTimes(ctx context.Context, userID int64) ([]time.Time, error)
	ProgressHistory(ctx context.Context, userID int64) ([]models.ProgressSnapshot, error)
	UpsertSnapshot(ctx context.Context, userID int64, snapshot models.ProgressSnapshot) error
}
