package sheet

// CellRef points at a cell. Absolute refs render with '$' anchors.
type CellRef struct {
	Sheet    string
	Row      int
	Col      int
	Absolute bool
}

// Expr is a formula expression. It is evaluated by Evaluator and rendered
// to spreadsheet syntax by the workbook emitter.
type Expr interface {
	expr()
}

// Op is a binary arithmetic operator.
type Op byte

// Arithmetic operators.
const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

// Num is a numeric literal.
type Num float64

// Ref is a single cell reference.
type Ref struct {
	CellRef
}

// Sum is SUM over a rectangular range.
type Sum struct {
	From, To CellRef
}

// Binary applies Op to two operands.
type Binary struct {
	Op          Op
	Left, Right Expr
}

// IfGreater is IF(Left>Right, Then, Else).
type IfGreater struct {
	Left, Right Expr
	Then, Else  Expr
}

func (Num) expr()       {}
func (Ref) expr()       {}
func (Sum) expr()       {}
func (Binary) expr()    {}
func (IfGreater) expr() {}

// Add folds terms into a left-associated sum. No terms yield 0.
func Add(terms ...Expr) Expr {
	if len(terms) == 0 {
		return Num(0)
	}
	e := terms[0]
	for _, t := range terms[1:] {
		e = Binary{Op: OpAdd, Left: e, Right: t}
	}
	return e
}

// Mul returns a*b.
func Mul(a, b Expr) Expr {
	return Binary{Op: OpMul, Left: a, Right: b}
}

// Div returns a/b.
func Div(a, b Expr) Expr {
	return Binary{Op: OpDiv, Left: a, Right: b}
}

// Sub returns a-b.
func Sub(a, b Expr) Expr {
	return Binary{Op: OpSub, Left: a, Right: b}
}

// Template produces the formula for one outlet column.
type Template func(col int) Expr

// at references a raw cell in the given column.
func at(row, col int) Expr {
	return Ref{CellRef{Sheet: RawSheet, Row: row, Col: col}}
}

// Ratio is IF(den>0, num/den, 0).
func Ratio(numRow, denRow int) Template {
	return func(col int) Expr {
		return IfGreater{
			Left:  at(denRow, col),
			Right: Num(0),
			Then:  Div(at(numRow, col), at(denRow, col)),
			Else:  Num(0),
		}
	}
}

// InverseRatio folds a ratio into [0,1]: IF(r>1, 1/r, r).
func InverseRatio(row int) Template {
	return func(col int) Expr {
		return IfGreater{
			Left:  at(row, col),
			Right: Num(1),
			Then:  Div(Num(1), at(row, col)),
			Else:  at(row, col),
		}
	}
}

// Complement is 1-x.
func Complement(row int) Template {
	return func(col int) Expr {
		return Sub(Num(1), at(row, col))
	}
}

// SumRows is SUM over rows [from, to] of a column. An empty range yields 0.
func SumRows(from, to int) Template {
	return func(col int) Expr {
		if to < from {
			return Num(0)
		}
		return Sum{
			From: CellRef{Sheet: RawSheet, Row: from, Col: col},
			To:   CellRef{Sheet: RawSheet, Row: to, Col: col},
		}
	}
}
