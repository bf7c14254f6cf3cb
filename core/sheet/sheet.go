// Package sheet has the in-memory workbook model: sheets of cells, formula
// expressions over cell references, and the score registry used while a
// rating build lays out its rows.
package sheet

import (
	"fmt"
	"sort"
)

// Sheet names of a rating workbook.
const (
	RatingSheet = "Rating"
	RawSheet    = "Raw"
)

// Raw sheet layout. Rows and columns are zero-based.
const (
	HeaderRow     = 1 // outlet names
	TitleCol      = 0 // section titles
	LabelCol      = 1 // score labels
	ScoreColStart = 3 // first outlet column
	FirstScoreRow = 4
	SectionGap    = 2
)

// CellKind tells what a cell holds.
type CellKind int

// Cell kinds.
const (
	TextCell CellKind = iota
	NumberCell
	FormulaCell
)

// Style is the display style of a cell.
type Style int

// Styles understood by the workbook emitter.
const (
	PlainStyle Style = iota
	BoldStyle
	DateStyle
)

// Cell is a single value or formula on a sheet.
type Cell struct {
	Kind    CellKind
	Text    string
	Number  float64
	Formula Expr
	Style   Style
}

// PlacedCell is a cell with its position.
type PlacedCell struct {
	Row, Col int
	Cell
}

type position struct {
	row, col int
}

// Sheet is a sparse grid of cells.
type Sheet struct {
	name  string
	cells map[position]Cell
}

// NewSheet creates an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{name: name, cells: make(map[position]Cell)}
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	return s.name
}

// SetText writes a text cell.
func (s *Sheet) SetText(row, col int, text string, style Style) {
	s.cells[position{row, col}] = Cell{Kind: TextCell, Text: text, Style: style}
}

// SetNumber writes a numeric cell.
func (s *Sheet) SetNumber(row, col int, n float64, style Style) {
	s.cells[position{row, col}] = Cell{Kind: NumberCell, Number: n, Style: style}
}

// SetFormula writes a formula cell.
func (s *Sheet) SetFormula(row, col int, e Expr) {
	s.cells[position{row, col}] = Cell{Kind: FormulaCell, Formula: e}
}

// Cell returns the cell at (row, col) and whether it is set.
func (s *Sheet) Cell(row, col int) (Cell, bool) {
	c, ok := s.cells[position{row, col}]
	return c, ok
}

// Len returns the number of set cells.
func (s *Sheet) Len() int {
	return len(s.cells)
}

// Cells returns every set cell ordered by row, then column.
func (s *Sheet) Cells() []PlacedCell {
	out := make([]PlacedCell, 0, len(s.cells))
	for p, c := range s.cells {
		out = append(out, PlacedCell{Row: p.row, Col: p.col, Cell: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Book is the two-sheet rating workbook before it is rendered.
type Book struct {
	Rating *Sheet
	Raw    *Sheet
}

// NewBook creates a book with empty Rating and Raw sheets.
func NewBook() *Book {
	return &Book{
		Rating: NewSheet(RatingSheet),
		Raw:    NewSheet(RawSheet),
	}
}

// Sheets returns the sheets in workbook order.
func (b *Book) Sheets() []*Sheet {
	return []*Sheet{b.Rating, b.Raw}
}

// Sheet looks a sheet up by name.
func (b *Book) Sheet(name string) (*Sheet, error) {
	for _, s := range b.Sheets() {
		if s.name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown sheet %q", name)
}

// Value evaluates a single cell of the book.
func (b *Book) Value(ref CellRef) (float64, error) {
	return NewEvaluator(b).Value(ref)
}
