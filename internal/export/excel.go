// Package export renders document listings to spreadsheet files for
// offline record keeping.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bizmate/internal/domain"
)

const sheetName = "Documents"

var headers = []string{"No", "Title", "Type", "Status", "Drafter", "Department", "Created", "Completed"}

// WriteDocumentsXLSX writes the given documents as a spreadsheet.
func WriteDocumentsXLSX(w io.Writer, docs []domain.Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, doc := range docs {
		completed := ""
		if doc.CompletedAt != nil {
			completed = doc.CompletedAt.Format("2006-01-02 15:04")
		}
		row := []interface{}{
			i + 1,
			doc.Title,
			string(doc.DocType),
			doc.DisplayStatus(),
			doc.CreatorName,
			doc.CreatorDeptName,
			doc.CreatedAt.Format("2006-01-02 15:04"),
			completed,
		}
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
