// Package progress turns a learner's activity counters and history into progress,
// mastery, velocity and consistency reports. All functions are pure.
package progress

import (
	"math"

	"github.com/vytor/studyflash/internal/models"
)

const (
	LevelExpert       = "Expert"
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelBeginner     = "Beginner"
	LevelStarting     = "Starting"

	maxRecommendations = 3

	quizAttemptGoal  = 20
	studyMinutesGoal = 1200
	streakGoal       = 30
)

var milestones = []int{25, 50, 75, 90, 95}

type Components struct {
	MaterialProgress  int `json:"material_progress"`
	QuizProgress      int `json:"quiz_progress"`
	FlashcardProgress int `json:"flashcard_progress"`
	EngagementScore   int `json:"engagement_score"`
}

type Overview struct {
	OverallProgress int        `json:"overall_progress"`
	Components      Components `json:"components"`
	Level           string     `json:"level"`
	NextMilestone   int        `json:"next_milestone"`
	Recommendations []string   `json:"recommendations"`
}

// Aggregate combines the weighted progress components of a learner.
func Aggregate(stats models.UserStats) Overview {
	stats = sanitize(stats)

	material := percent(stats.CompletedMaterials, stats.TotalMaterials)
	quiz := math.Min(stats.AvgQuizScore, 100)
	cards := percent(stats.ReviewedFlashcards, stats.TotalFlashcards)
	engagement := EngagementScore(stats.TotalQuizAttempts, stats.TotalStudyMinutes, stats.StudyStreak)

	overall := material*0.25 + quiz*0.35 + cards*0.25 + engagement*0.15

	return Overview{
		OverallProgress: roundInt(overall),
		Components: Components{
			MaterialProgress:  roundInt(material),
			QuizProgress:      roundInt(quiz),
			FlashcardProgress: roundInt(cards),
			EngagementScore:   roundInt(engagement),
		},
		Level:           Level(overall),
		NextMilestone:   NextMilestone(overall),
		Recommendations: Recommendations(stats),
	}
}

// EngagementScore rates activity volume on a 0..100 scale.
func EngagementScore(quizAttempts, studyMinutes, streak int) float64 {
	attempts := math.Min(float64(quizAttempts)/quizAttemptGoal, 1) * 100
	minutes := math.Min(float64(studyMinutes)/studyMinutesGoal, 1) * 100
	days := math.Min(float64(streak)/streakGoal, 1) * 100
	return attempts*0.4 + minutes*0.3 + days*0.3
}

func Level(overall float64) string {
	switch {
	case overall >= 90:
		return LevelExpert
	case overall >= 75:
		return LevelAdvanced
	case overall >= 50:
		return LevelIntermediate
	case overall >= 25:
		return LevelBeginner
	default:
		return LevelStarting
	}
}

// NextMilestone is the first milestone strictly above overall, or 100.
func NextMilestone(overall float64) int {
	for _, m := range milestones {
		if float64(m) > overall {
			return m
		}
	}
	return 100
}

// Recommendations lists up to three suggestions in priority order.
func Recommendations(stats models.UserStats) []string {
	recs := make([]string, 0, maxRecommendations)
	if stats.AvgQuizScore < 70 {
		recs = append(recs, "Focus on reviewing material before taking quizzes")
	}
	if stats.StudyStreak < 3 {
		recs = append(recs, "Try to study consistently for better retention")
	}
	if stats.TotalFlashcards == 0 {
		recs = append(recs, "Create flashcards to improve memory retention")
	}
	if stats.TotalMaterials > 0 && float64(stats.CompletedMaterials)/float64(stats.TotalMaterials) < 0.5 {
		recs = append(recs, "Complete processing more of your uploaded materials")
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func sanitize(s models.UserStats) models.UserStats {
	nonNeg := func(v *int) {
		if *v < 0 {
			*v = 0
		}
	}
	nonNeg(&s.TotalMaterials)
	nonNeg(&s.CompletedMaterials)
	nonNeg(&s.TotalQuizAttempts)
	nonNeg(&s.TotalFlashcards)
	nonNeg(&s.ReviewedFlashcards)
	nonNeg(&s.StudyStreak)
	nonNeg(&s.TotalStudyMinutes)
	if s.AvgQuizScore < 0 || math.IsNaN(s.AvgQuizScore) {
		s.AvgQuizScore = 0
	}
	return s
}

// percent is part/whole*100 capped to [0, 100]; zero when whole is zero.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Min(float64(part)/float64(whole)*100, 100)
}
