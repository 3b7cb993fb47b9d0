package models

import "time"

// UserStats is the statistics bundle the progress overview is computed from.
// Missing counters are zero.
type UserStats struct {
	TotalMaterials     int     `json:"total_materials" db:"total_materials"`
	CompletedMaterials int     `json:"completed_materials" db:"completed_materials"`
	AvgQuizScore       float64 `json:"avg_quiz_score" db:"avg_quiz_score"`
	TotalQuizAttempts  int     `json:"total_quiz_attempts" db:"total_quiz_attempts"`
	TotalFlashcards    int     `json:"total_flashcards" db:"total_flashcards"`
	ReviewedFlashcards int     `json:"reviewed_flashcards" db:"reviewed_flashcards"`
	StudyStreak        int     `json:"study_streak" db:"study_streak"`
	TotalStudyMinutes  int     `json:"total_study_minutes" db:"total_study_minutes"`
}

type SubjectStats struct {
	Subject            string  `json:"subject" db:"subject"`
	AvgScore           float64 `json:"avg_score" db:"avg_score"`
	TotalAttempts      int     `json:"total_attempts" db:"total_attempts"`
	FlashcardsMastered int     `json:"flashcards_mastered" db:"flashcards_mastered"`
	TotalFlashcards    int     `json:"total_flashcards" db:"total_flashcards"`
	StudyMinutes       int     `json:"study_minutes" db:"study_minutes"`
}

type ProgressSnapshot struct {
	Date     time.Time `json:"date" db:"snapshot_date"`
	Progress float64   `json:"progress" db:"progress"`
}
