package progress

import (
	"fmt"
	"math"
	"sort"

	"github.com/vytor/studyflash/internal/models"
)

const (
	TierMastered   = "Mastered"
	TierProficient = "Proficient"
	TierDeveloping = "Developing"
	TierLearning   = "Learning"
	TierBeginning  = "Beginning"

	maxSubjectRecommendations = 2
)

type SubjectComponents struct {
	Performance    int `json:"performance"`
	Practice       int `json:"practice"`
	Retention      int `json:"retention"`
	TimeInvestment int `json:"time_investment"`
}

type SubjectMastery struct {
	Subject         string            `json:"subject"`
	MasteryScore    int               `json:"mastery_score"`
	Level           string            `json:"level"`
	Components      SubjectComponents `json:"components"`
	Recommendations []string          `json:"recommendations"`
}

type SubjectReport struct {
	Subjects         []SubjectMastery `json:"subjects"`
	StrongestSubject *SubjectMastery  `json:"strongest_subject"`
	WeakestSubject   *SubjectMastery  `json:"weakest_subject"`
}

// EvaluateSubjects scores each subject and ranks them from strongest to weakest.
// A subject without a name fails with ErrInvalidShape.
func EvaluateSubjects(subjects []models.SubjectStats) (SubjectReport, error) {
	report := SubjectReport{Subjects: make([]SubjectMastery, 0, len(subjects))}
	for i, s := range subjects {
		if s.Subject == "" {
			return SubjectReport{}, fmt.Errorf("%w: subject %d has no name", ErrInvalidShape, i)
		}
		report.Subjects = append(report.Subjects, evaluateSubject(s))
	}

	// Ties keep the first encountered subject.
	var strongest, weakest *SubjectMastery
	for i := range report.Subjects {
		m := report.Subjects[i]
		if strongest == nil || m.MasteryScore > strongest.MasteryScore {
			strongest = &m
		}
		if weakest == nil || m.MasteryScore < weakest.MasteryScore {
			weakest = &m
		}
	}
	report.StrongestSubject = strongest
	report.WeakestSubject = weakest

	sort.SliceStable(report.Subjects, func(i, j int) bool {
		return report.Subjects[i].MasteryScore > report.Subjects[j].MasteryScore
	})
	return report, nil
}

func evaluateSubject(s models.SubjectStats) SubjectMastery {
	performance := math.Max(s.AvgScore, 0)
	practice := math.Min(float64(max(s.TotalAttempts, 0))/10, 1) * 100
	retention := percent(s.FlashcardsMastered, s.TotalFlashcards)
	timeInvestment := math.Min(float64(max(s.StudyMinutes, 0))/300, 1) * 100

	score := performance*0.4 + practice*0.2 + retention*0.3 + timeInvestment*0.1

	return SubjectMastery{
		Subject:      s.Subject,
		MasteryScore: roundInt(score),
		Level:        Tier(score),
		Components: SubjectComponents{
			Performance:    roundInt(performance),
			Practice:       roundInt(practice),
			Retention:      roundInt(retention),
			TimeInvestment: roundInt(timeInvestment),
		},
		Recommendations: subjectRecommendations(s, score),
	}
}

func Tier(score float64) string {
	switch {
	case score >= 85:
		return TierMastered
	case score >= 70:
		return TierProficient
	case score >= 50:
		return TierDeveloping
	case score >= 30:
		return TierLearning
	default:
		return TierBeginning
	}
}

func subjectRecommendations(s models.SubjectStats, score float64) []string {
	recs := make([]string, 0, maxSubjectRecommendations)
	if score < 50 {
		recs = append(recs,
			"Dedicate more time to this subject",
			"Create additional flashcards for key concepts",
		)
	}
	if s.TotalAttempts < 5 {
		recs = append(recs, "Practice more quizzes to improve understanding")
	}
	if s.AvgScore < 70 {
		recs = append(recs, "Review fundamentals before attempting advanced topics")
	}
	if len(recs) > maxSubjectRecommendations {
		recs = recs[:maxSubjectRecommendations]
	}
	return recs
}
