package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle is returned when a formula depends on itself.
	ErrCycle = errors.New("circular cell reference")

	// ErrDivideByZero is returned for an unguarded division by zero.
	ErrDivideByZero = errors.New("division by zero")
)

type cellKey struct {
	sheet    string
	row, col int
}

// Evaluator computes cell values of a book. Results are memoized, so an
// evaluator must not outlive changes to the book.
type Evaluator struct {
	book   *Book
	memo   map[cellKey]float64
	active map[cellKey]bool
}

// NewEvaluator creates an evaluator over b.
func NewEvaluator(b *Book) *Evaluator {
	return &Evaluator{
		book:   b,
		memo:   make(map[cellKey]float64),
		active: make(map[cellKey]bool),
	}
}

// Value returns the numeric value of a cell. Empty and text cells count as 0.
func (e *Evaluator) Value(ref CellRef) (float64, error) {
	key := cellKey{ref.Sheet, ref.Row, ref.Col}
	if v, ok := e.memo[key]; ok {
		return v, nil
	}
	if e.active[key] {
		return 0, fmt.Errorf("%w at %s!R%dC%d", ErrCycle, ref.Sheet, ref.Row, ref.Col)
	}

	s, err := e.book.Sheet(ref.Sheet)
	if err != nil {
		return 0, err
	}
	c, ok := s.Cell(ref.Row, ref.Col)
	if !ok {
		return 0, nil
	}

	var v float64
	switch c.Kind {
	case NumberCell:
		v = c.Number
	case FormulaCell:
		e.active[key] = true
		v, err = e.eval(ref.Sheet, c.Formula)
		delete(e.active, key)
		if err != nil {
			return 0, err
		}
	}
	e.memo[key] = v
	return v, nil
}

func (e *Evaluator) eval(sheet string, ex Expr) (float64, error) {
	switch x := ex.(type) {
	case Num:
		return float64(x), nil
	case Ref:
		return e.Value(resolve(sheet, x.CellRef))
	case Sum:
		return e.sum(sheet, x)
	case Binary:
		return e.binary(sheet, x)
	case IfGreater:
		l, err := e.eval(sheet, x.Left)
		if err != nil {
			return 0, err
		}
		r, err := e.eval(sheet, x.Right)
		if err != nil {
			return 0, err
		}
		if l > r {
			return e.eval(sheet, x.Then)
		}
		return e.eval(sheet, x.Else)
	default:
		return 0, fmt.Errorf("unsupported expression %T", ex)
	}
}

func (e *Evaluator) sum(sheet string, x Sum) (float64, error) {
	from, to := resolve(sheet, x.From), resolve(sheet, x.To)
	var total float64
	for row := min(from.Row, to.Row); row <= max(from.Row, to.Row); row++ {
		for col := min(from.Col, to.Col); col <= max(from.Col, to.Col); col++ {
			v, err := e.Value(CellRef{Sheet: from.Sheet, Row: row, Col: col})
			if err != nil {
				return 0, err
			}
			total += v
		}
	}
	return total, nil
}

func (e *Evaluator) binary(sheet string, x Binary) (float64, error) {
	l, err := e.eval(sheet, x.Left)
	if err != nil {
		return 0, err
	}
	r, err := e.eval(sheet, x.Right)
	if err != nil {
		return 0, err
	}
	switch x.Op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, ErrDivideByZero
		}
		return l / r, nil
	default:
		return 0, fmt.Errorf("unsupported operator %q", x.Op)
	}
}

// resolve fills in the formula's own sheet for unqualified refs.
func resolve(sheet string, ref CellRef) CellRef {
	if ref.Sheet == "" {
		ref.Sheet = sheet
	}
	return ref
}
