// Package export renders refinement batches as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"refinery/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row (11 columns).
var columns = []string{
	"ID",
	"Input Type",
	"Primary Intent",
	"Functional Expectations",
	"Technical Constraints",
	"Expected Outputs",
	"Ambiguities",
	"Missing Information",
	"Confidence Score",
	"Original Input",
	"Created At",
}

// Writer wraps csv.Writer for exporting refinements as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRefinements converts a batch of refinements to CSV rows and writes them.
func (w *Writer) WriteRefinements(recs []domain.Refinement) error {
	for i := range recs {
		if err := w.csv.Write(refinementToRow(&recs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// refinementToRow converts a single refinement to an 11-element string
// slice. If the stored output does not unmarshal, the breakdown columns are
// left empty and metadata columns are still filled.
func refinementToRow(rec *domain.Refinement) []string {
	row := make([]string, len(columns))

	row[0] = rec.ID.String()
	row[1] = string(rec.InputType)
	row[8] = strconv.FormatFloat(rec.ConfidenceScore, 'f', 2, 64)
	row[9] = rec.OriginalInput
	row[10] = rec.CreatedAt.Format(time.RFC3339)

	var out domain.RefinedOutput
	if err := json.Unmarshal(rec.RefinedOutput, &out); err != nil {
		return row
	}

	row[2] = out.PrimaryIntent
	row[3] = joinList(out.FunctionalExpectations)
	row[4] = joinList(out.TechnicalConstraints)
	row[5] = joinList(out.ExpectedOutputs)
	row[6] = joinList(out.Ambiguities)
	row[7] = joinList(out.MissingInformation)

	return row
}

func joinList(items []string) string {
	return strings.Join(items, "; ")
}

// WriteXLSX renders a batch of refinements as a single-sheet XLSX workbook.
func WriteXLSX(w io.Writer, recs []domain.Refinement) error {
	const sheet = "Refinements"

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range recs {
		strRow := refinementToRow(&recs[i])
		row := make([]interface{}, len(strRow))
		for j, v := range strRow {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
