package sheet

import (
	"testing"

	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(outlets ...string) (*Book, *Builder) {
	book := NewBook()
	b := NewBuilder(book.Raw, outlets)
	b.WriteHeader()
	return book, b
}

func valueOf(t *testing.T, book *Book, b *Builder, label string, outlet int) float64 {
	t.Helper()
	ref, err := b.Ref(label, outlet)
	require.NoError(t, err)
	v, err := book.Value(ref)
	require.NoError(t, err)
	return v
}

func TestRegistry(t *testing.T) {
	t.Run("duplicate label is rejected", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("Total articles", 4))
		err := r.Register("Total articles", 9)
		assert.ErrorIs(t, err, ErrDuplicateScore)
		assert.Contains(t, err.Error(), "Total articles")

		row, err := r.Row("Total articles")
		require.NoError(t, err)
		assert.Equal(t, 4, row)
	})

	t.Run("unknown label fails", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Row("Percent Self Help")
		assert.ErrorIs(t, err, ErrUnknownScore)
		assert.Contains(t, err.Error(), "Percent Self Help")
	})

	t.Run("labels keep write order", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("b", 5))
		require.NoError(t, r.Register("a", 6))
		assert.Equal(t, []string{"b", "a"}, r.Labels())
		assert.Equal(t, 2, r.Len())
	})
}

func TestWriteScoreTableCompleteness(t *testing.T) {
	book, b := newTestBuilder("Outlet A", "Outlet B")
	rows := []schema.CountRow{{Outlet: "Outlet A", Category: "Male", Count: 5}}

	next, err := b.WriteScoreTable([]string{"Female", "Male"}, rows, FirstScoreRow)
	require.NoError(t, err)
	assert.Equal(t, FirstScoreRow+2, next)

	femaleRow, err := b.Row("Female")
	require.NoError(t, err)
	assert.Equal(t, FirstScoreRow, femaleRow)

	assert.Equal(t, 0.0, valueOf(t, book, b, "Female", 0))
	assert.Equal(t, 5.0, valueOf(t, book, b, "Male", 0))
	assert.Equal(t, 0.0, valueOf(t, book, b, "Male", 1))

	c, ok := book.Raw.Cell(femaleRow, LabelCol)
	require.True(t, ok)
	assert.Equal(t, "Female", c.Text)

	h, ok := book.Raw.Cell(HeaderRow, ScoreColStart+1)
	require.True(t, ok)
	assert.Equal(t, "Outlet B", h.Text)
	assert.Equal(t, BoldStyle, h.Style)
}

func TestWriteScoreTableDuplicateLabel(t *testing.T) {
	_, b := newTestBuilder("X")
	_, err := b.WriteScoreTable([]string{"Male", "Male"}, nil, FirstScoreRow)
	assert.ErrorIs(t, err, ErrDuplicateScore)
}

func TestPercentFormulas(t *testing.T) {
	book, b := newTestBuilder("Busy", "Empty")
	require.NoError(t, b.WriteValueRow("Total articles", map[string]float64{"Busy": 8}, 4))
	next, err := b.WriteScoreTable([]string{"Self Help", "Causes"}, []schema.CountRow{
		{Outlet: "Busy", Category: "Self Help", Count: 2},
		{Outlet: "Busy", Category: "Causes", Count: 6},
	}, 6)
	require.NoError(t, err)

	next, err = b.WritePercentTable([]string{"Self Help", "Causes"}, 4, 6, next+1)
	require.NoError(t, err)
	assert.Equal(t, 11, next)

	assert.InDelta(t, 0.25, valueOf(t, book, b, "Percent Self Help", 0), 1e-12)
	assert.InDelta(t, 0.75, valueOf(t, book, b, "Percent Causes", 0), 1e-12)
	assert.Equal(t, 0.0, valueOf(t, book, b, "Percent Causes", 1), "zero denominator yields 0")
}

func TestPercentRowKeepsLabel(t *testing.T) {
	book, b := newTestBuilder("Busy", "Empty")
	require.NoError(t, b.WriteValueRow("Total sources", map[string]float64{"Busy": 4}, 4))
	require.NoError(t, b.WriteValueRow("Rights respected", map[string]float64{"Busy": 3}, 5))

	require.NoError(t, b.WritePercentRow(PercentLabel("Rights respected"), 4, 5, 6))

	row, err := b.Row("Percent Rights respected")
	require.NoError(t, err)
	assert.Equal(t, 6, row)
	_, err = b.Row("Percent Percent Rights respected")
	assert.ErrorIs(t, err, ErrUnknownScore)

	assert.InDelta(t, 0.75, valueOf(t, book, b, "Percent Rights respected", 0), 1e-12)
	assert.Equal(t, 0.0, valueOf(t, book, b, "Percent Rights respected", 1))
}

func TestFormulaTemplates(t *testing.T) {
	book, b := newTestBuilder("X", "Y")
	require.NoError(t, b.WriteValueRow("Male", map[string]float64{"X": 4, "Y": 2}, 4))
	require.NoError(t, b.WriteValueRow("Female", map[string]float64{"X": 2, "Y": 6}, 5))
	require.NoError(t, b.WriteFormulaRow("Boys to girls", Ratio(5, 4), 6))
	require.NoError(t, b.WriteFormulaRow("Gender Ratio", InverseRatio(6), 7))
	require.NoError(t, b.WriteFormulaRow("Total", SumRows(4, 5), 8))
	require.NoError(t, b.WriteFormulaRow("Inverse", Complement(7), 9))
	require.NoError(t, b.WriteFormulaRow("Empty sum", SumRows(5, 4), 10))

	tests := []struct {
		label    string
		outlet   int
		expected float64
	}{
		{"Boys to girls", 0, 0.5},
		{"Boys to girls", 1, 3},
		{"Gender Ratio", 0, 0.5},
		{"Gender Ratio", 1, 1.0 / 3},
		{"Total", 0, 6},
		{"Total", 1, 8},
		{"Inverse", 0, 0.5},
		{"Empty sum", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.InDelta(t, tt.expected, valueOf(t, book, b, tt.label, tt.outlet), 1e-12)
		})
	}
}

func TestEvaluator(t *testing.T) {
	t.Run("cycle is detected", func(t *testing.T) {
		book := NewBook()
		book.Raw.SetFormula(0, 0, Ref{CellRef{Sheet: RawSheet, Row: 1, Col: 0}})
		book.Raw.SetFormula(1, 0, Add(Num(1), Ref{CellRef{Row: 0, Col: 0}}))
		_, err := book.Value(CellRef{Sheet: RawSheet, Row: 0, Col: 0})
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("cross sheet weighted sum", func(t *testing.T) {
		book := NewBook()
		book.Raw.SetNumber(4, 3, 0.5, PlainStyle)
		book.Raw.SetNumber(5, 3, 0.8, PlainStyle)
		book.Rating.SetNumber(4, 1, 0.4, PlainStyle)
		book.Rating.SetNumber(5, 1, 0.6, PlainStyle)
		book.Rating.SetFormula(4, 3, Ref{CellRef{Sheet: RawSheet, Row: 4, Col: 3, Absolute: true}})
		book.Rating.SetFormula(5, 3, Ref{CellRef{Sheet: RawSheet, Row: 5, Col: 3, Absolute: true}})
		book.Rating.SetFormula(3, 3, Add(
			Mul(Ref{CellRef{Sheet: RatingSheet, Row: 4, Col: 1}}, Ref{CellRef{Sheet: RatingSheet, Row: 4, Col: 3}}),
			Mul(Ref{CellRef{Sheet: RatingSheet, Row: 5, Col: 1}}, Ref{CellRef{Sheet: RatingSheet, Row: 5, Col: 3}}),
		))
		v, err := book.Value(CellRef{Sheet: RatingSheet, Row: 3, Col: 3})
		require.NoError(t, err)
		assert.InDelta(t, 0.68, v, 1e-12)
	})

	t.Run("unguarded division by zero", func(t *testing.T) {
		book := NewBook()
		book.Raw.SetFormula(0, 0, Div(Num(1), Num(0)))
		_, err := book.Value(CellRef{Sheet: RawSheet, Row: 0, Col: 0})
		assert.ErrorIs(t, err, ErrDivideByZero)
	})

	t.Run("empty and text cells are zero", func(t *testing.T) {
		book := NewBook()
		book.Raw.SetText(0, 0, "label", PlainStyle)
		v, err := book.Value(CellRef{Sheet: RawSheet, Row: 0, Col: 0})
		require.NoError(t, err)
		assert.Equal(t, 0.0, v)
		v, err = book.Value(CellRef{Sheet: RawSheet, Row: 7, Col: 7})
		require.NoError(t, err)
		assert.Equal(t, 0.0, v)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		_, err := NewBook().Value(CellRef{Sheet: "Nope"})
		assert.Error(t, err)
	})
}

func TestCellsOrdered(t *testing.T) {
	s := NewSheet(RawSheet)
	s.SetNumber(2, 1, 1, PlainStyle)
	s.SetNumber(0, 5, 2, PlainStyle)
	s.SetNumber(2, 0, 3, PlainStyle)

	cells := s.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, []float64{2, 3, 1}, []float64{cells[0].Number, cells[1].Number, cells[2].Number})
}
