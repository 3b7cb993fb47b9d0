package repository

import (
	"context"

	"github.com/vytor/studyflash/internal/models"
)

// UserRepository handles learner account data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Upsert(ctx context.Context, username string) (*models.User, error)
	SetTelegramChat(ctx context.Context, id int64, chatID *int64) error
}
