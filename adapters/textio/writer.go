package textio

import (
	"bufio"
	"context"
	"os"
	"strconv"

	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal/errors"
	"github.com/Mazzol/MVA/ports"
)

// FileReport writes a result table as delimited plain text: one header line
// naming the columns for the method, then one line per parameter with two
// space-separated fields and a trailing space, matching the layout of the
// original output files.
type FileReport struct {
	path string
}

// NewFileReport creates a report sink for the given path.
func NewFileReport(path string) *FileReport {
	return &FileReport{path: path}
}

var _ ports.ReportSink = (*FileReport)(nil)

// Write serializes the table. The file is created or truncated.
func (w *FileReport) Write(ctx context.Context, table sensitivity.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(w.path)
	if err != nil {
		return errors.Wrapf(err, "create report file %s", w.path)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	switch t := table.(type) {
	case *sensitivity.SobolTable:
		buf.WriteString("# Si    STi \n")
		for _, rec := range t.Records {
			buf.WriteString(formatFloat(rec.FirstOrder) + " " + formatFloat(rec.TotalOrder) + " \n")
		}
	case *sensitivity.PawnTable:
		buf.WriteString("# PAWN    Influential \n")
		for _, rec := range t.Records {
			buf.WriteString(formatFloat(rec.Index) + " " + strconv.FormatBool(rec.Influential) + " \n")
		}
	default:
		return &sensitivity.UnsupportedMethodError{Tag: table.Method().Name()}
	}
	if err := buf.Flush(); err != nil {
		return errors.Wrapf(err, "write report file %s", w.path)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
