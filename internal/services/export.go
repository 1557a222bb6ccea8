package services

import (
	"fmt"

	"github.com/friendr/quiz-session/internal/models"
	"github.com/xuri/excelize/v2"
)

const answersSheet = "Answers"

var exportRows = []struct {
	label      string
	importance models.AnswerField
	behavior   models.AnswerField
}{
	{"Dogs", models.FieldDogsImportance, models.FieldDogIntroduction},
	{"Cats", models.FieldCatsImportance, models.FieldCatBehavior},
	{"Kids", models.FieldKidsImportance, models.FieldKidsBehavior},
	{"Strangers", models.FieldStrangersImportance, models.FieldStrangersBehavior},
}

// ExportAnswersToExcel renders the answers as a one-sheet workbook.
// Unanswered questions are left blank.
func ExportAnswersToExcel(answers models.AnswerSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", answersSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"Question", "Importance", "Answer"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(answersSheet, cell, header)
	}

	for rowIndex, row := range exportRows {
		importance, _ := answers.Importance(row.importance)
		values := []interface{}{row.label, importance, answers.Behavior(row.behavior)}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(answersSheet, cell, value)
		}
	}

	progress := models.NewProgress(answers.AnsweredCount())
	f.SetCellValue(answersSheet, fmt.Sprintf("A%d", len(exportRows)+3), "Progress")
	f.SetCellValue(answersSheet, fmt.Sprintf("B%d", len(exportRows)+3), progress.String())

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}
