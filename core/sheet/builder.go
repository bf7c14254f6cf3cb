package sheet

import (
	"github.com/huangsam/mediascore/schema"
)

// Builder lays out Named Scores on the Raw sheet, one outlet per column,
// and records each score's row in its registry.
type Builder struct {
	sheet    *Sheet
	outlets  []string
	registry *Registry
}

// NewBuilder creates a builder writing to s. The outlet order is fixed for the build.
func NewBuilder(s *Sheet, outlets []string) *Builder {
	return &Builder{
		sheet:    s,
		outlets:  outlets,
		registry: NewRegistry(),
	}
}

// Outlets returns the outlet column order.
func (b *Builder) Outlets() []string {
	return b.outlets
}

// Registry returns the label to row registry.
func (b *Builder) Registry() *Registry {
	return b.registry
}

// Col returns the Raw column of the i-th outlet.
func (b *Builder) Col(i int) int {
	return ScoreColStart + i
}

// WriteHeader writes the outlet names on the header row.
func (b *Builder) WriteHeader() {
	for i, name := range b.outlets {
		b.sheet.SetText(HeaderRow, b.Col(i), name, BoldStyle)
	}
}

// WriteTitle writes a section title.
func (b *Builder) WriteTitle(title string, row int) {
	b.sheet.SetText(row, TitleCol, title, BoldStyle)
}

// WriteValueRow writes one score row from a map of outlet name to value.
// Outlets missing from values get 0.
func (b *Builder) WriteValueRow(label string, values map[string]float64, row int) error {
	if err := b.register(label, row); err != nil {
		return err
	}
	for i, outlet := range b.outlets {
		b.sheet.SetNumber(row, b.Col(i), values[outlet], PlainStyle)
	}
	return nil
}

// WriteScoreTable writes one row per label from (outlet, category, count)
// rows. Every label gets a row, even when no input row mentions it.
// It returns the next free row.
func (b *Builder) WriteScoreTable(labels []string, rows []schema.CountRow, row int) (int, error) {
	data := make(map[string]map[string]float64)
	for _, r := range rows {
		if data[r.Category] == nil {
			data[r.Category] = make(map[string]float64)
		}
		data[r.Category][r.Outlet] += r.Count
	}

	for _, label := range labels {
		if err := b.WriteValueRow(label, data[label], row); err != nil {
			return row, err
		}
		row++
	}
	return row, nil
}

// WriteFormulaRow writes a score row whose cells are built by tmpl, one per outlet column.
func (b *Builder) WriteFormulaRow(label string, tmpl Template, row int) error {
	if err := b.register(label, row); err != nil {
		return err
	}
	for i := range b.outlets {
		b.sheet.SetFormula(row, b.Col(i), tmpl(b.Col(i)))
	}
	return nil
}

// WriteFormulaTable writes consecutive formula rows. tmpl receives the
// offset of the row within the table. It returns the next free row.
func (b *Builder) WriteFormulaTable(labels []string, tmpl func(offset int) Template, row int) (int, error) {
	for i, label := range labels {
		if err := b.WriteFormulaRow(label, tmpl(i), row); err != nil {
			return row, err
		}
		row++
	}
	return row, nil
}

// WritePercentTable writes a "Percent X" row for each label X. The i-th
// row divides row numStart+i by denomRow, and yields 0 when the
// denominator is not positive. It returns the next free row.
func (b *Builder) WritePercentTable(labels []string, denomRow, numStart, row int) (int, error) {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = PercentLabel(l)
	}
	return b.WriteFormulaTable(names, func(offset int) Template {
		return Ratio(numStart+offset, denomRow)
	}, row)
}

// WritePercentRow writes numRow/denomRow under label as given. Callers name
// the row, usually with PercentLabel.
func (b *Builder) WritePercentRow(label string, denomRow, numRow, row int) error {
	return b.WriteFormulaRow(label, Ratio(numRow, denomRow), row)
}

// Row returns the Raw row of a registered score.
func (b *Builder) Row(label string) (int, error) {
	return b.registry.Row(label)
}

// Ref returns an absolute reference to a score's cell for the i-th outlet.
func (b *Builder) Ref(label string, outlet int) (CellRef, error) {
	row, err := b.registry.Row(label)
	if err != nil {
		return CellRef{}, err
	}
	return CellRef{Sheet: RawSheet, Row: row, Col: b.Col(outlet), Absolute: true}, nil
}

func (b *Builder) register(label string, row int) error {
	if err := b.registry.Register(label, row); err != nil {
		return err
	}
	b.sheet.SetText(row, LabelCol, label, PlainStyle)
	return nil
}

// PercentLabel names the percentage row derived from label.
func PercentLabel(label string) string {
	return "Percent " + label
}
