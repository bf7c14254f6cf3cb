package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownScore is returned when a score label was never written.
	ErrUnknownScore = errors.New("unknown score")

	// ErrDuplicateScore is returned when a score label is written twice.
	ErrDuplicateScore = errors.New("duplicate score")
)

// Registry maps score labels to the Raw row they were written on.
// Labels are write-once for the lifetime of a build.
type Registry struct {
	rows   map[string]int
	labels []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rows: make(map[string]int)}
}

// Register records label at row. A label that is already registered is rejected.
func (r *Registry) Register(label string, row int) error {
	if prev, ok := r.rows[label]; ok {
		return fmt.Errorf("%w: %q already on row %d", ErrDuplicateScore, label, prev)
	}
	r.rows[label] = row
	r.labels = append(r.labels, label)
	return nil
}

// Row returns the row of label.
func (r *Registry) Row(label string) (int, error) {
	row, ok := r.rows[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownScore, label)
	}
	return row, nil
}

// Labels returns the registered labels in write order.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// Len returns the number of registered labels.
func (r *Registry) Len() int {
	return len(r.labels)
}
