package schema

import "time"

// RatingNode is one node of a declarative weighted rating tree.
// A node without children is a leaf and names a Named Score.
type RatingNode struct {
	Weight   float64      `json:"weight" yaml:"weight"`
	Label    string       `json:"label" yaml:"label"`
	Children []RatingNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n RatingNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// RatedRow is one evaluated row of the rating sheet.
type RatedRow struct {
	Depth  int       `json:"depth"`
	Weight float64   `json:"weight"`
	Label  string    `json:"label"`
	Leaf   bool      `json:"leaf"`
	Values []float64 `json:"values,omitempty"` // one per outlet, in outlet order
}

// NamedScoreValue is the evaluated value of a Named Score for one outlet.
type NamedScoreValue struct {
	Label  string  `json:"label"`
	Outlet string  `json:"outlet"`
	Value  float64 `json:"value"`
}

// RatingResult is the outcome of a rating build.
type RatingResult struct {
	Tree        TreeKind          `json:"tree"`
	Generated   time.Time         `json:"generated"`
	Documents   int               `json:"documents"`
	Outlets     []string          `json:"outlets"`
	Ratings     []RatedRow        `json:"ratings"`
	NamedScores []NamedScoreValue `json:"named_scores,omitempty"`
	Workbook    []byte            `json:"-"`
}

// FinalRatings returns the root rating per outlet, or nil for an empty result.
func (r RatingResult) FinalRatings() map[string]float64 {
	if len(r.Ratings) == 0 {
		return nil
	}
	out := make(map[string]float64, len(r.Outlets))
	for i, name := range r.Outlets {
		out[name] = r.Ratings[0].Values[i]
	}
	return out
}

// TreeDefinition describes a rating tree for display.
type TreeDefinition struct {
	Name   string     `json:"name"`
	Depth  int        `json:"depth"`
	Leaves []string   `json:"leaves"`
	Nodes  []RatedRow `json:"nodes"`
}
