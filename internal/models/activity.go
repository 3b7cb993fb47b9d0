package models

import "time"

const (
	MaterialPending    = "pending"
	MaterialProcessing = "processing"
	MaterialCompleted  = "completed"
	MaterialFailed     = "failed"
)

// ValidMaterialStatus reports whether s is one of the known processing states.
func ValidMaterialStatus(s string) bool {
	switch s {
	case MaterialPending, MaterialProcessing, MaterialCompleted, MaterialFailed:
		return true
	}
	return false
}

type Material struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Subject   string    `json:"subject" db:"subject"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type QuizAttempt struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Subject     string    `json:"subject" db:"subject"`
	Score       float64   `json:"score" db:"score"`
	AttemptedAt time.Time `json:"attempted_at" db:"attempted_at"`
}

type StudySession struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Subject   string    `json:"subject" db:"subject"`
	Minutes   int       `json:"minutes" db:"minutes"`
	StartedAt time.Time `json:"started_at" db:"started_at"`
}
