package schema_test

import (
	"testing"

	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		rating   float64
		expected string
	}{
		{"Above One", 1.2, "Strong"},
		{"Strong Lower", 0.75, "Strong"},
		{"Fair Upper", 0.749, "Fair"},
		{"Fair Lower", 0.5, "Fair"},
		{"Weak Upper", 0.499, "Weak"},
		{"Weak Lower", 0.25, "Weak"},
		{"Poor", 0.1, "Poor"},
		{"Zero", 0.0, "Poor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.rating))
		})
	}
}

func TestRankOutlets(t *testing.T) {
	result := schema.RatingResult{
		Outlets: []string{"Beeld", "Mail & Guardian", "Sowetan"},
		Ratings: []schema.RatedRow{
			{Depth: 1, Weight: 1, Label: "Final rating", Values: []float64{0.4, 0.8, 0.4}},
		},
	}

	ranked := schema.RankOutlets(result)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Mail & Guardian", ranked[0].Outlet)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Strong", ranked[0].Label)

	// Ties are broken by outlet name.
	assert.Equal(t, "Beeld", ranked[1].Outlet)
	assert.Equal(t, "Sowetan", ranked[2].Outlet)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRankOutlets_Empty(t *testing.T) {
	assert.Empty(t, schema.RankOutlets(schema.RatingResult{}))
}

func TestRatingNode_IsLeaf(t *testing.T) {
	leaf := schema.RatingNode{Weight: 0.5, Label: "A"}
	parent := schema.RatingNode{Weight: 1, Label: "Root", Children: []schema.RatingNode{leaf}}

	assert.True(t, leaf.IsLeaf())
	assert.False(t, parent.IsLeaf())
}
