package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fsp-trainer/backend/internal/domain/card"
)

const exportSheet = "Karten"

var exportHeader = []any{"id", "category", "question", "answer", "options", "explanation"}

// ExportExcel writes cards as a workbook FromExcel can read back.
func ExportExcel(w io.Writer, cards []card.Card) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, c := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{c.ID, c.Category, c.Question, c.Answer, strings.Join(c.Options, " | "), c.Explanation}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write card %s: %w", c.ID, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}
