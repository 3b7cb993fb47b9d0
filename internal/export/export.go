// Package export renders a learner's deck and review history as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/vytor/studyflash/internal/calendar"
	"github.com/vytor/studyflash/internal/flashcard"
	"github.com/vytor/studyflash/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet    = "Summary"
	FlashcardsSheet = "Flashcards"
	ReviewsSheet    = "Reviews"
)

var (
	flashcardHeader = []any{"ID", "Topic", "Front", "Back", "Ease Factor", "Interval (days)", "Repetitions", "Next Review", "Difficulty"}
	reviewHeader    = []any{"ID", "Flashcard ID", "Quality", "Reviewed At"}
)

// Workbook writes the summary, flashcard and review sheets to w.
func Workbook(w io.Writer, cards []models.Flashcard, reviews []models.ReviewEvent, today time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, flashcard.Summarize(cards, today), today); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	if _, err := f.NewSheet(FlashcardsSheet); err != nil {
		return err
	}
	rows := make([][]any, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []any{
			c.ID, c.Topic, c.Front, c.Back, c.EaseFactor, c.IntervalDays, c.RepetitionCount,
			calendar.Key(c.NextReview), flashcard.DifficultyLevel(c.EaseFactor),
		})
	}
	if err := writeTable(f, FlashcardsSheet, flashcardHeader, rows); err != nil {
		return fmt.Errorf("flashcards sheet: %w", err)
	}

	if _, err := f.NewSheet(ReviewsSheet); err != nil {
		return err
	}
	rows = make([][]any, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, []any{r.ID, r.FlashcardID, r.Quality, r.ReviewedAt.UTC().Format(time.RFC3339)})
	}
	if err := writeTable(f, ReviewsSheet, reviewHeader, rows); err != nil {
		return fmt.Errorf("reviews sheet: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

func writeSummary(f *excelize.File, stats flashcard.DeckStats, today time.Time) error {
	rows := [][]any{
		{"Exported", calendar.Key(today)},
		{"Total flashcards", stats.TotalFlashcards},
		{"Due flashcards", stats.DueFlashcards},
		{"New flashcards", stats.NewFlashcards},
		{"Average ease factor", stats.AverageEaseFactor},
		{"Study progress (%)", stats.StudyProgress},
	}
	if err := writeRows(f, SummarySheet, 1, rows); err != nil {
		return err
	}

	start := len(rows) + 2
	topics := make([][]any, 0, len(stats.Topics)+1)
	topics = append(topics, []any{"Topic", "Cards", "Due", "Average Ease", "Mastery"})
	for _, t := range stats.Topics {
		topics = append(topics, []any{t.Topic, t.TotalCards, t.DueCards, t.AverageEase, t.MasteryLevel})
	}
	return writeRows(f, SummarySheet, start, topics)
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := writeRows(f, sheet, 1, [][]any{header}); err != nil {
		return err
	}
	if err := writeRows(f, sheet, 2, rows); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRows(f *excelize.File, sheet string, firstRow int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, firstRow+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
