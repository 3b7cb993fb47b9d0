package progress_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/progress"
)

func subjectFixtures() []models.SubjectStats {
	return []models.SubjectStats{
		{Subject: "history", AvgScore: 40, TotalAttempts: 2},
		{Subject: "math", AvgScore: 90, TotalAttempts: 10, FlashcardsMastered: 8, TotalFlashcards: 10, StudyMinutes: 300},
		{Subject: "art", AvgScore: 60, TotalAttempts: 5, FlashcardsMastered: 5, TotalFlashcards: 10, StudyMinutes: 150},
	}
}

func subjectNames(ms []progress.SubjectMastery) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Subject)
	}
	return out
}

func TestEvaluateSubjects_RanksAndScores(t *testing.T) {
	report, err := progress.EvaluateSubjects(subjectFixtures())
	require.NoError(t, err)

	assert.Equal(t, []string{"math", "art", "history"}, subjectNames(report.Subjects))

	math := report.Subjects[0]
	assert.Equal(t, 90, math.MasteryScore)
	assert.Equal(t, progress.TierMastered, math.Level)
	assert.Equal(t, progress.SubjectComponents{Performance: 90, Practice: 100, Retention: 80, TimeInvestment: 100}, math.Components)
	assert.Empty(t, math.Recommendations)

	art := report.Subjects[1]
	assert.Equal(t, 54, art.MasteryScore)
	assert.Equal(t, progress.TierDeveloping, art.Level)
	assert.Equal(t, []string{"Review fundamentals before attempting advanced topics"}, art.Recommendations)

	history := report.Subjects[2]
	assert.Equal(t, 20, history.MasteryScore)
	assert.Equal(t, progress.TierBeginning, history.Level)
	assert.Equal(t, []string{
		"Dedicate more time to this subject",
		"Create additional flashcards for key concepts",
	}, history.Recommendations)

	require.NotNil(t, report.StrongestSubject)
	require.NotNil(t, report.WeakestSubject)
	assert.Equal(t, "math", report.StrongestSubject.Subject)
	assert.Equal(t, "history", report.WeakestSubject.Subject)
}

func TestEvaluateSubjects_TiesKeepFirstEncountered(t *testing.T) {
	subjects := []models.SubjectStats{
		{Subject: "chemistry", AvgScore: 50},
		{Subject: "physics", AvgScore: 50},
	}

	report, err := progress.EvaluateSubjects(subjects)
	require.NoError(t, err)

	assert.Equal(t, "chemistry", report.StrongestSubject.Subject)
	assert.Equal(t, "chemistry", report.WeakestSubject.Subject)
	assert.Equal(t, []string{"chemistry", "physics"}, subjectNames(report.Subjects))
}

func TestEvaluateSubjects_Empty(t *testing.T) {
	report, err := progress.EvaluateSubjects(nil)

	require.NoError(t, err)
	assert.Empty(t, report.Subjects)
	assert.Nil(t, report.StrongestSubject)
	assert.Nil(t, report.WeakestSubject)
}

func TestEvaluateSubjects_MissingName(t *testing.T) {
	subjects := subjectFixtures()
	subjects[2].Subject = ""

	_, err := progress.EvaluateSubjects(subjects)

	require.Error(t, err)
	assert.True(t, errors.Is(err, progress.ErrInvalidShape))
}

func TestEvaluateSubjects_DoesNotMutateInput(t *testing.T) {
	subjects := subjectFixtures()

	_, err := progress.EvaluateSubjects(subjects)
	require.NoError(t, err)

	assert.Equal(t, "history", subjects[0].Subject)
}

func TestTier(t *testing.T) {
	assert.Equal(t, progress.TierMastered, progress.Tier(85))
	assert.Equal(t, progress.TierProficient, progress.Tier(70))
	assert.Equal(t, progress.TierDeveloping, progress.Tier(50))
	assert.Equal(t, progress.TierLearning, progress.Tier(30))
	assert.Equal(t, progress.TierBeginning, progress.Tier(29.9))
}
