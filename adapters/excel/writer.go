package excel

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal/errors"
	"github.com/Mazzol/MVA/ports"
)

// WorkbookReport writes a result table to an .xlsx workbook: a header row
// naming the columns for the method, then one row per parameter.
type WorkbookReport struct {
	path string
}

// NewWorkbookReport creates an Excel report sink for the given path.
func NewWorkbookReport(path string) *WorkbookReport {
	return &WorkbookReport{path: path}
}

var _ ports.ReportSink = (*WorkbookReport)(nil)

// Write serializes the table to Sheet1 of a new workbook.
func (w *WorkbookReport) Write(ctx context.Context, table sensitivity.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var headers []string
	var rows [][]interface{}
	switch t := table.(type) {
	case *sensitivity.SobolTable:
		headers = []string{"parameter", "Si", "STi"}
		for _, rec := range t.Records {
			rows = append(rows, []interface{}{rec.Parameter, rec.FirstOrder, rec.TotalOrder})
		}
	case *sensitivity.PawnTable:
		headers = []string{"parameter", "PAWN", "influential"}
		for _, rec := range t.Records {
			rows = append(rows, []interface{}{rec.Parameter, rec.Index, rec.Influential})
		}
	default:
		return &sensitivity.UnsupportedMethodError{Tag: table.Method().Name()}
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return errors.Wrap(err, "create worksheet")
		}
		f.SetActiveSheet(idx)
	}

	for c, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return errors.Wrap(err, "write header cell")
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.Wrap(err, "write data cell")
			}
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return errors.Wrapf(err, "save workbook %s", w.path)
	}
	return nil
}
