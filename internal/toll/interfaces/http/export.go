package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"congestion-cloud/internal/observability/metrics"
	"congestion-cloud/internal/toll/application"
)

const (
	formatPDF  = "pdf"
	formatXLSX = "xlsx"
)

// handleStatement renders the statement for the request in the asked format.
// Nothing is stored; the document is built from the computed statement and
// streamed back.
func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatPDF
	}
	if format != formatPDF && format != formatXLSX {
		http.Error(w, "format must be pdf or xlsx", http.StatusBadRequest)
		return
	}

	request, err := decodeRequest(r)
	if err != nil {
		metrics.ObserveStatementExport(format, "error", time.Since(start))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	statement := h.service.Statement(r.Context(), request)

	var payload []byte
	switch format {
	case formatPDF:
		payload, err = BuildStatementPDF(statement)
	case formatXLSX:
		payload, err = BuildStatementXLSX(statement)
	}
	if err != nil {
		metrics.ObserveStatementExport(format, "error", time.Since(start))
		http.Error(w, "statement rendering failed", http.StatusInternalServerError)
		return
	}

	switch format {
	case formatPDF:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="congestion-tax.pdf"`)
	case formatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="congestion-tax.xlsx"`)
	}
	metrics.ObserveStatementExport(format, "", time.Since(start))
	_, _ = w.Write(payload)
}

func vehicleLabel(vehicle *string) string {
	if vehicle == nil {
		return "(not specified)"
	}
	return *vehicle
}

// BuildStatementPDF renders a minimal PDF for a tax statement.
func BuildStatementPDF(statement application.TaxStatement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Congestion Tax Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Vehicle: %s", vehicleLabel(statement.Vehicle)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %d", statement.Total))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", statement.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Entries", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, day := range statement.Days {
		pdf.CellFormat(50, 6, day.Day, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", day.Entries), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", day.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementXLSX renders a minimal XLSX for a tax statement.
func BuildStatementXLSX(statement application.TaxStatement) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	daysSheet := "days"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(daysSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Congestion Tax Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Vehicle")
	_ = f.SetCellValue(summarySheet, "B3", vehicleLabel(statement.Vehicle))
	_ = f.SetCellValue(summarySheet, "A4", "Total")
	_ = f.SetCellValue(summarySheet, "B4", statement.Total)
	_ = f.SetCellValue(summarySheet, "A5", "Generated")
	_ = f.SetCellValue(summarySheet, "B5", statement.GeneratedAt.Format(time.RFC3339))

	_ = f.SetCellValue(daysSheet, "A1", "Day")
	_ = f.SetCellValue(daysSheet, "B1", "Entries")
	_ = f.SetCellValue(daysSheet, "C1", "Amount")
	for i, day := range statement.Days {
		row := i + 2
		_ = f.SetCellValue(daysSheet, fmt.Sprintf("A%d", row), day.Day)
		_ = f.SetCellValue(daysSheet, fmt.Sprintf("B%d", row), day.Entries)
		_ = f.SetCellValue(daysSheet, fmt.Sprintf("C%d", row), day.Amount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
