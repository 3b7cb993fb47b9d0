package services

import (
	"context"
	"strings"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
)

const maxUsernameLength = 64

// UserService handles learner accounts
type UserService interface {
	Register(ctx context.Context, username string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	LinkTelegram(ctx context.Context, id int64, chatID *int64) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx)
	username = strings.TrimSpace(username)
	log.Debug("registering user: username=%s", username)

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if len(username) > maxUsernameLength {
		return nil, errors.NewValidationError("username", "must be at most 64 characters")
	}

	user, err := s.userRepo.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to register user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%d", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing users")

	users, err := s.userRepo.List(ctx)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

func (s *userService) LinkTelegram(ctx context.Context, id int64, chatID *int64) error {
	log := logger.FromContext(ctx)
	log.Debug("linking telegram chat: user_id=%d", id)

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.SetTelegramChat(ctx, id, chatID); err != nil {
		log.Error("failed to link telegram chat: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
