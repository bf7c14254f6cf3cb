package rating

import (
	"fmt"

	"github.com/huangsam/mediascore/core/sheet"
	"github.com/huangsam/mediascore/schema"
)

// Rating sheet layout. Rows and columns are zero-based.
const (
	HeaderRow = 1
	FirstRow  = 3
)

// ValueColStart returns the first outlet column of the Rating sheet for a
// tree of the given depth. It is always right of the deepest label.
func ValueColStart(depth int) int {
	return max((depth-1)*2, depth+1)
}

// evaluator carries the state of one tree layout.
type evaluator struct {
	scores   *sheet.Builder
	out      *sheet.Sheet
	valueCol int
	rows     []schema.RatedRow
	sheetRow []int
}

// Evaluate lays roots out on the book's Rating sheet in pre-order and
// returns one evaluated row per node. Leaves reference their Named Score
// on the Raw sheet; internal nodes are the weighted sum of their children.
//
// A leaf naming a score that was never written fails the whole evaluation.
func Evaluate(roots []schema.RatingNode, scores *sheet.Builder, book *sheet.Book) ([]schema.RatedRow, error) {
	e := &evaluator{
		scores:   scores,
		out:      book.Rating,
		valueCol: ValueColStart(Depth(roots)),
	}

	for i, name := range scores.Outlets() {
		e.out.SetText(HeaderRow, e.valueCol+i, name, sheet.BoldStyle)
	}

	if _, _, err := e.layout(roots, FirstRow, 1); err != nil {
		return nil, err
	}

	ev := sheet.NewEvaluator(book)
	for i := range e.rows {
		values := make([]float64, len(scores.Outlets()))
		for j := range values {
			v, err := ev.Value(sheet.CellRef{Sheet: sheet.RatingSheet, Row: e.sheetRow[i], Col: e.valueCol + j})
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate %q: %w", e.rows[i].Label, err)
			}
			values[j] = v
		}
		e.rows[i].Values = values
	}
	return e.rows, nil
}

// layout writes nodes starting at row, returns the rows the nodes were
// written on and the next free row.
func (e *evaluator) layout(nodes []schema.RatingNode, row, depth int) ([]int, int, error) {
	weightCol, labelCol := depth-1, depth
	written := make([]int, 0, len(nodes))

	for _, n := range nodes {
		written = append(written, row)
		e.out.SetNumber(row, weightCol, n.Weight, sheet.PlainStyle)
		e.out.SetText(row, labelCol, n.Label, sheet.PlainStyle)
		e.rows = append(e.rows, schema.RatedRow{Depth: depth, Weight: n.Weight, Label: n.Label, Leaf: n.IsLeaf()})
		e.sheetRow = append(e.sheetRow, row)

		if n.IsLeaf() {
			if err := e.leaf(n.Label, row); err != nil {
				return nil, row, err
			}
			row++
			continue
		}

		children, next, err := e.layout(n.Children, row+1, depth+1)
		if err != nil {
			return nil, row, err
		}
		e.weightedSum(children, labelCol, row)
		row = next
	}
	return written, row, nil
}

func (e *evaluator) leaf(label string, row int) error {
	for i := range e.scores.Outlets() {
		ref, err := e.scores.Ref(label, i)
		if err != nil {
			return fmt.Errorf("rating leaf: %w", err)
		}
		e.out.SetFormula(row, e.valueCol+i, sheet.Ref{CellRef: ref})
	}
	return nil
}

// weightedSum writes Σ weight × value over the child rows. The children's
// weights sit in column childWeightCol.
func (e *evaluator) weightedSum(children []int, childWeightCol, row int) {
	for i := range e.scores.Outlets() {
		col := e.valueCol + i
		terms := make([]sheet.Expr, 0, len(children))
		for _, r := range children {
			terms = append(terms, sheet.Mul(
				sheet.Ref{CellRef: sheet.CellRef{Sheet: sheet.RatingSheet, Row: r, Col: childWeightCol}},
				sheet.Ref{CellRef: sheet.CellRef{Sheet: sheet.RatingSheet, Row: r, Col: col}},
			))
		}
		e.out.SetFormula(row, col, sheet.Add(terms...))
	}
}
