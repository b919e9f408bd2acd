package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/learnsphere/assessment-engine/internal/scoring"
)

// ResultsExporter renders a finished session's review as an Excel workbook so
// learners can keep their results outside the app.
type ResultsExporter struct{}

func NewResultsExporter() *ResultsExporter {
	return &ResultsExporter{}
}

// ExportReview writes one row per scored item plus a summary row.
func (e *ResultsExporter) ExportReview(title string, review *scoring.Review) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"Question ID", "Your Answer", "Correct Answer", "Result", "Explanation"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, row := range review.Rows {
		verdict := "Incorrect"
		if row.IsCorrect {
			verdict = "Correct"
		}
		values := []interface{}{row.QuestionID, row.UserAnswerDisplay, row.CorrectAnswerDisplay, verdict, row.Explanation}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	summaryRow := len(review.Rows) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), title)
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow),
		fmt.Sprintf("%d/%d (%d%%)", review.Score, review.TotalScoreable, review.Percentage))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), review.Feedback)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFlashcardReview writes the known/unknown tally of a flashcard session.
func (e *ResultsExporter) ExportFlashcardReview(title string, review *scoring.FlashcardReview) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Flashcards"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	rows := [][]interface{}{
		{"Set", title},
		{"Known", review.Known},
		{"Unknown", review.Unknown},
		{"Total", review.Total},
		{"Feedback", review.Feedback},
	}
	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+1)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
