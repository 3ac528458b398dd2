// Package export writes registration listings as CSV or XLSX spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/careerredefine/admissions-service/internal/domain"
)

// Format is a supported export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet XLSX exports are written to.
const SheetName = "Registrations"

// Columns is the header row shared by every format.
var Columns = []string{
	"id",
	"created_at",
	"full_name",
	"email",
	"phone",
	"education",
	"status",
	"interview_link",
	"interview_date",
	"notes",
}

// ParseFormat resolves a query value. Empty defaults to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type of files in this format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Write streams regs to w in format f.
func Write(w io.Writer, f Format, regs iter.Seq[domain.Registration]) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, regs)
	case FormatXLSX:
		return WriteXLSX(w, regs)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// WriteCSV writes a header row followed by one row per registration.
func WriteCSV(w io.Writer, regs iter.Seq[domain.Registration]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for reg := range regs {
		if err := cw.Write(csvSafe(row(reg))); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with the same rows as WriteCSV.
func WriteXLSX(w io.Writer, regs iter.Seq[domain.Registration]) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	rowNum := 1
	if err := setRow(sw, rowNum, Columns); err != nil {
		return err
	}
	for reg := range regs {
		rowNum++
		if err := setRow(sw, rowNum, row(reg)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

func setRow(sw *excelize.StreamWriter, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return sw.SetRow(cell, cells)
}

func row(reg domain.Registration) []string {
	return []string{
		reg.ID,
		reg.CreatedAt.UTC().Format(time.RFC3339),
		reg.FullName,
		reg.Email,
		reg.Phone,
		reg.Education,
		string(reg.Status),
		deref(reg.InterviewLink),
		formatTime(reg.InterviewDate),
		deref(reg.Notes),
	}
}

// csvSafe prefixes cells that spreadsheets would evaluate as formulas with a quote.
func csvSafe(cells []string) []string {
	for i, c := range cells {
		if c != "" && strings.ContainsRune("=+-@\t\r", rune(c[0])) {
			cells[i] = "'" + c
		}
	}
	return cells
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
