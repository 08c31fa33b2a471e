// Package xlsxreport renders a run report as an Excel workbook, one row
// per check with a trailing summary block.
package xlsxreport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/acuetara/humo/internal/domain"
	"github.com/acuetara/humo/internal/ports"
)

const (
	sheetName     = "Smoke Report"
	failBgColor   = "FF5900"
	passBgColor   = "C6EFCE"
	defaultColWid = 28
)

var headerRow = []string{
	"Check", "Method", "URL", "Status", "Latency (ms)", "Result", "Failures",
}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

var _ ports.ReportWriter = (*Writer)(nil)

func (w *Writer) WriteReport(path string, report domain.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{
			Op:   "xlsxreport.mkdir",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return wrapErr(path, err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for col := 0; col < len(headerRow); col++ {
		name, _ := excelize.ColumnNumberToName(col + 1)
		_ = f.SetColWidth(sheetName, name, name, defaultColWid)
	}
	for i, h := range headerRow {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	failStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{failBgColor}},
	})
	if err != nil {
		return wrapErr(path, err)
	}
	passStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{passBgColor}},
	})
	if err != nil {
		return wrapErr(path, err)
	}

	for i, res := range report.Results {
		row := i + 2
		writeResultRow(f, row, res, passStyle, failStyle)
	}

	writeSummary(f, len(report.Results)+3, report)

	if err := f.SaveAs(path); err != nil {
		return wrapErr(path, err)
	}
	return nil
}

func writeResultRow(f *excelize.File, row int, res domain.CheckResult, passStyle, failStyle int) {
	verdict := "PASS"
	style := passStyle
	if res.Failed() {
		verdict = "FAIL"
		style = failStyle
	}

	cells := []any{
		res.Name,
		string(res.Method),
		res.URL,
		res.StatusCode,
		res.LatencyMS,
		verdict,
		failureSummary(res),
	}
	for i, v := range cells {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheetName, cell, v)
	}

	verdictCell, _ := excelize.CoordinatesToCellName(6, row)
	_ = f.SetCellStyle(sheetName, verdictCell, verdictCell, style)
}

func failureSummary(res domain.CheckResult) string {
	if res.Error != nil {
		return res.Error.Message
	}
	var msgs []string
	for _, a := range res.Assertions {
		if !a.Passed {
			msgs = append(msgs, a.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

func writeSummary(f *excelize.File, row int, report domain.Report) {
	lines := [][2]any{
		{"Suite", report.SuiteName},
		{"Target", fmt.Sprintf("%s (%s)", report.TargetName, report.BaseURL)},
		{"Total", report.Total},
		{"Passed", report.Passed},
		{"Failed", report.Failed},
		{"Duration", report.EndedAt.Sub(report.StartedAt).String()},
	}
	for i, line := range lines {
		kCell, _ := excelize.CoordinatesToCellName(1, row+i)
		vCell, _ := excelize.CoordinatesToCellName(2, row+i)
		_ = f.SetCellValue(sheetName, kCell, line[0])
		_ = f.SetCellValue(sheetName, vCell, line[1])
	}
}

func wrapErr(path string, err error) error {
	return &domain.OpError{
		Op:   "xlsxreport.write",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}
