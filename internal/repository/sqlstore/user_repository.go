package sqlstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

type userRepository struct {
	db *db.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(store *db.DB) repository.UserRepository {
	return &userRepository{db: store}
}

func (r *userRepository) Upsert(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user for username: %s", username)

	var u models.User
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO users (username)
VALUES (?)
ON CONFLICT (username) DO UPDATE SET username = excluded.username
RETURNING id, username, telegram_chat_id, created_at
`), username).StructScan(&u)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	log.Debug("user upserted: id=%d", u.ID)
	return &u, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("fetching user: id=%d", id)

	stmt, args, err := r.users().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var u models.User
	err = r.db.GetContext(ctx, &u, stmt, args...)
	if noRows(err) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("listing users")

	users, err := selectAll[models.User](ctx, r.db, log, r.users().OrderBy("id ASC"))
	if err != nil {
		return nil, err
	}
	log.Debug("found %d users", len(users))
	return users, nil
}

func (r *userRepository) SetTelegramChat(ctx context.Context, id int64, chatID *int64) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating telegram chat: user_id=%d", id)

	stmt, args, err := r.db.Builder().
		Update("users").
		Set("telegram_chat_id", chatID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		log.Error("failed to update telegram chat: %v", err)
		return err
	}
	return nil
}

func (r *userRepository) users() squirrel.SelectBuilder {
	return r.db.Builder().
		Select("id", "username", "telegram_chat_id", "created_at").
		From("users")
}
