// Package workbook renders an in-memory rating book to an xlsx file.
package workbook

import (
	"fmt"
	"time"

	"github.com/huangsam/mediascore/core/sheet"
	"github.com/xuri/excelize/v2"
)

// DateFormat is the number format of the generation date on the Rating sheet.
const DateFormat = "yyyy/mm/dd"

// defaultSheet is the sheet excelize creates with a new file.
const defaultSheet = "Sheet1"

// styles holds the style ids registered on a file.
type styles struct {
	bold int
	date int
}

// Render writes book as an xlsx workbook with the Rating and Raw sheets, in
// that order, and stamps generated into A1 of the Rating sheet.
// Formulas stay live: they are written as spreadsheet formulas, not values.
func Render(book *sheet.Book, generated time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	for i, s := range book.Sheets() {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.Name()); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", s.Name(), err)
			}
		} else if _, err := f.NewSheet(s.Name()); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", s.Name(), err)
		}
		if err := writeSheet(f, s, st); err != nil {
			return nil, fmt.Errorf("failed to write sheet %q: %w", s.Name(), err)
		}
	}
	f.SetActiveSheet(0)

	if err := writeDate(f, book.Rating.Name(), generated, st); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialise workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (styles, error) {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create bold style: %w", err)
	}
	format := DateFormat
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create date style: %w", err)
	}
	return styles{bold: bold, date: date}, nil
}

// writeSheet copies every set cell of s onto the sheet of the same name.
func writeSheet(f *excelize.File, s *sheet.Sheet, st styles) error {
	name := s.Name()
	for _, c := range s.Cells() {
		cell, err := cellName(c.Row, c.Col, false)
		if err != nil {
			return err
		}

		switch c.Kind {
		case sheet.TextCell:
			err = f.SetCellStr(name, cell, c.Text)
		case sheet.NumberCell:
			err = f.SetCellFloat(name, cell, c.Number, -1, 64)
		case sheet.FormulaCell:
			var formula string
			if formula, err = Formula(name, c.Formula); err == nil {
				err = f.SetCellFormula(name, cell, formula)
			}
		}
		if err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}

		switch c.Style {
		case sheet.BoldStyle:
			err = f.SetCellStyle(name, cell, cell, st.bold)
		case sheet.DateStyle:
			err = f.SetCellStyle(name, cell, cell, st.date)
		}
		if err != nil {
			return fmt.Errorf("cell %s style: %w", cell, err)
		}
	}
	return nil
}

// writeDate stamps the generation date into A1.
func writeDate(f *excelize.File, name string, generated time.Time, st styles) error {
	if err := f.SetCellValue(name, "A1", generated); err != nil {
		return fmt.Errorf("failed to write generation date: %w", err)
	}
	if err := f.SetCellStyle(name, "A1", "A1", st.date); err != nil {
		return fmt.Errorf("failed to style generation date: %w", err)
	}
	return nil
}
