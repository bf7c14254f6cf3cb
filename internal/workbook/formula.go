package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/mediascore/core/sheet"
	"github.com/xuri/excelize/v2"
)

// Formula renders e in spreadsheet syntax, without the leading '='.
// References to sheets other than current carry a "Sheet!" prefix.
func Formula(current string, e sheet.Expr) (string, error) {
	var b strings.Builder
	if err := render(&b, current, e); err != nil {
		return "", err
	}
	return b.String(), nil
}

func render(b *strings.Builder, current string, e sheet.Expr) error {
	switch x := e.(type) {
	case sheet.Num:
		b.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 64))
	case sheet.Ref:
		ref, err := reference(current, x.CellRef)
		if err != nil {
			return err
		}
		b.WriteString(ref)
	case sheet.Sum:
		from, err := reference(current, x.From)
		if err != nil {
			return err
		}
		to, err := cellName(x.To.Row, x.To.Col, x.To.Absolute)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "SUM(%s:%s)", from, to)
	case sheet.Binary:
		if err := operand(b, current, x.Left, precedence(x.Op), false); err != nil {
			return err
		}
		b.WriteByte(byte(x.Op))
		return operand(b, current, x.Right, precedence(x.Op), true)
	case sheet.IfGreater:
		b.WriteString("IF(")
		for i, part := range []sheet.Expr{x.Left, x.Right, x.Then, x.Else} {
			switch i {
			case 1:
				b.WriteByte('>')
			case 2, 3:
				b.WriteByte(',')
			}
			if err := render(b, current, part); err != nil {
				return err
			}
		}
		b.WriteByte(')')
	default:
		return fmt.Errorf("unsupported expression %T", e)
	}
	return nil
}

// operand renders one side of a binary expression, in parentheses when
// the child binds looser than its parent. A right operand also gets
// parentheses at equal precedence so "-" and "/" keep their grouping.
func operand(b *strings.Builder, current string, e sheet.Expr, parent int, right bool) error {
	child, ok := e.(sheet.Binary)
	wrap := ok && (precedence(child.Op) < parent || (right && precedence(child.Op) == parent))
	if wrap {
		b.WriteByte('(')
	}
	if err := render(b, current, e); err != nil {
		return err
	}
	if wrap {
		b.WriteByte(')')
	}
	return nil
}

func precedence(op sheet.Op) int {
	if op == sheet.OpMul || op == sheet.OpDiv {
		return 2
	}
	return 1
}

// reference renders a cell reference, qualified when it points at another sheet.
func reference(current string, ref sheet.CellRef) (string, error) {
	cell, err := cellName(ref.Row, ref.Col, ref.Absolute)
	if err != nil {
		return "", err
	}
	if ref.Sheet == "" || ref.Sheet == current {
		return cell, nil
	}
	return ref.Sheet + "!" + cell, nil
}

// cellName converts zero-based coordinates to an A1 cell name.
func cellName(row, col int, absolute bool) (string, error) {
	name, err := excelize.CoordinatesToCellName(col+1, row+1, absolute)
	if err != nil {
		return "", fmt.Errorf("invalid cell R%dC%d: %w", row, col, err)
	}
	return name, nil
}
