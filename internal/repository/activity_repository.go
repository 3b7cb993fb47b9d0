package repository

import (
	"context"

	"github.com/vytor/studyflash/internal/models"
)

// ActivityRepository records the study activity that feeds progress tracking
type ActivityRepository interface {
	InsertMaterial(ctx context.Context, m models.Material) (int64, error)
	SetMaterialStatus(ctx context.Context, userID, id int64, status string) (bool, error)
	ListMaterials(ctx context.Context, userID int64) ([]models.Material, error)
	InsertQuizAttempt(ctx context.Context, a models.QuizAttempt) (int64, error)
	InsertStudySession(ctx context.Context, s models.StudySession) (int64, error)
}
