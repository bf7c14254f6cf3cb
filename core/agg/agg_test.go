package agg

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/huangsam/mediascore/core/rating"
	"github.com/huangsam/mediascore/core/sheet"
	"github.com/huangsam/mediascore/internal/docstore"
	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var januaryIDs = []int64{1, 2, 3, 4, 5}

// runCatalogue seeds the sample corpus and writes the catalogue of kind.
func runCatalogue(t *testing.T, kind schema.TreeKind, bucketLimit int) (*sheet.Builder, *sheet.Book) {
	t.Helper()
	ctx := context.Background()
	store, err := docstore.NewDocumentStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "documents.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Seed(ctx, docstore.SampleCorpus()))

	book := sheet.NewBook()
	scores := sheet.NewBuilder(book.Raw, []string{"City Press", "Daily Sun"})
	require.NoError(t, New(store, januaryIDs, scores, bucketLimit).Run(ctx, kind))
	return scores, book
}

// values evaluates a score for both outlets.
func values(t *testing.T, scores *sheet.Builder, book *sheet.Book, label string) [2]float64 {
	t.Helper()
	var out [2]float64
	for i := range out {
		ref, err := scores.Ref(label, i)
		require.NoError(t, err, label)
		out[i], err = book.Value(ref)
		require.NoError(t, err, label)
	}
	return out
}

func TestChildrenCatalogue(t *testing.T) {
	scores, book := runCatalogue(t, schema.ChildrenTree, 4)

	tests := []struct {
		label    string
		expected [2]float64
	}{
		{"Total articles", [2]float64{2, 3}},
		{"Total sources", [2]float64{5, 6}},
		{"Percent Self Help", [2]float64{0.5, 0}},
		{"Percent 1 Child Sources", [2]float64{0.5, 2.0 / 3}},
		{"Percent 2 Sources", [2]float64{0.5, 1.0 / 3}},
		{"Percent >4 Sources", [2]float64{0, 0}},
		{"Percent Child sources", [2]float64{3.0 / 5, 2.0 / 6}},
		{"Percent Quoted child sources", [2]float64{2.0 / 5, 1.0 / 6}},
		{"Percent Abused sources", [2]float64{1.0 / 3, 0}},
		{"Percent Non-abused sources", [2]float64{2.0 / 3, 1}},
		{"Percent Positive Roles", [2]float64{2.0 / 3, 0}},
		{"Percent Negative Roles", [2]float64{1.0 / 3, 1}},
		{"Percent S. Child's best interest", [2]float64{0.5, 0}},
		{"Percent Rights respected", [2]float64{0.5, 0}},
		{"Inv. Percent Principles violated", [2]float64{0.5, 2.0 / 3}},
		{"Boys to girls", [2]float64{0.5, 0}},
		{"Gender Ratio", [2]float64{0.5, 0}},
		{"Diversity of Gender", [2]float64{0.9182958340544896, 0}},
		{"Percent Focus origins", [2]float64{0.5, 1}},
		{"Percent Child Abuse", [2]float64{0.5, 1.0 / 3}},
		{"Percent Focus types", [2]float64{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := values(t, scores, book, tt.label)
			assert.InDelta(t, tt.expected[0], got[0], 1e-9)
			assert.InDelta(t, tt.expected[1], got[1], 1e-9)
		})
	}
}

func TestCatalogue_CoversTreeLeaves(t *testing.T) {
	for _, kind := range schema.AllTreeKinds {
		t.Run(string(kind), func(t *testing.T) {
			scores, _ := runCatalogue(t, kind, 4)
			tree, err := rating.Tree(kind)
			require.NoError(t, err)
			for _, leaf := range rating.Leaves(tree) {
				_, err := scores.Row(leaf)
				assert.NoError(t, err, leaf)
			}
		})
	}
}

func TestChildrenCatalogue_CategoryCompleteness(t *testing.T) {
	scores, book := runCatalogue(t, schema.ChildrenTree, 4)

	// Vocabulary rows exist even when no document mentions them
	assert.Equal(t, [2]float64{0, 0}, values(t, scores, book, "Focus: Mpumalanga"))
	assert.Equal(t, [2]float64{1, 0}, values(t, scores, book, "Positive Roles: Student"))
	assert.Equal(t, [2]float64{0, 0}, values(t, scores, book, "Female Positive Roles: Activist"))
}

func TestMediaDiversityCatalogue(t *testing.T) {
	scores, book := runCatalogue(t, schema.MediaDiversityTree, 4)

	assert.InDelta(t, 2.5, values(t, scores, book, "Avg sources")[0], 1e-9)
	assert.InDelta(t, 2.0, values(t, scores, book, "Avg sources")[1], 1e-9)
	assert.Equal(t, [2]float64{0, 0.5}, values(t, scores, book, "Percent Marginalised Voices"))

	ratio := values(t, scores, book, "Gender Ratio")
	assert.InDelta(t, 2.0/3, ratio[0], 1e-9)
	assert.InDelta(t, 0.5, ratio[1], 1e-9)

	for _, v := range values(t, scores, book, "Diversity of Regions") {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestBucketLimit(t *testing.T) {
	scores, book := runCatalogue(t, schema.ChildrenTree, 1)

	_, err := scores.Row("Percent 2 Sources")
	assert.ErrorIs(t, err, sheet.ErrUnknownScore)
	got := values(t, scores, book, "Percent >1 Sources")
	assert.InDelta(t, 1.0, got[0], 1e-9)
	assert.InDelta(t, 2.0/3, got[1], 1e-9)
}

func TestRun_StoreErrorPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	store := &docstore.MockDocumentStore{}
	store.On("CountDocuments", ctx, januaryIDs, schema.DocumentQuery{}).Return(nil, boom)

	book := sheet.NewBook()
	scores := sheet.NewBuilder(book.Raw, []string{"City Press"})
	err := New(store, januaryIDs, scores, 0).Run(ctx, schema.ChildrenTree)
	assert.ErrorIs(t, err, boom)
	store.AssertExpectations(t)
}

func TestRun_LaterSectionError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("timeout")

	store := &docstore.MockDocumentStore{}
	store.On("CountDocuments", mock.Anything, mock.Anything, mock.Anything).Return([]schema.CountRow{{Outlet: "City Press", Count: 1}}, nil)
	store.On("CountSources", mock.Anything, mock.Anything, mock.Anything).Return([]schema.CountRow{}, nil)
	store.On("SourcesPerDocument", mock.Anything, mock.Anything, false).Return(nil, boom)

	book := sheet.NewBook()
	scores := sheet.NewBuilder(book.Raw, []string{"City Press"})
	err := New(store, []int64{1}, scores, 4).Run(ctx, schema.ChildrenTree)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sources per document")
}

func TestHelpers(t *testing.T) {
	rows := []schema.CountRow{
		{Outlet: "A", Category: "", Count: 1},
		{Outlet: "A", Category: "x", Count: 2},
		{Outlet: "B", Category: "x", Count: 3},
	}
	normalized := normalize(rows)
	assert.Equal(t, schema.UnknownCategory, normalized[0].Category)
	assert.Empty(t, rows[0].Category)

	assert.Equal(t, []string{"Unknown", "x"}, categories(normalized))
	assert.Equal(t, []string{"Female", "Male", "x"}, withCategories([]string{"x"}, "Male", "Female"))
	assert.Equal(t, map[string]float64{"A": 3, "B": 3}, byOutlet(rows))
	assert.Len(t, only(rows, "x"), 2)
	assert.Equal(t, "Race: x", prefixed("Race: ", rows)[1].Category)

	e := entropy(normalized)
	assert.InDelta(t, 0.9182958340544896, e["A"], 1e-9)
	assert.Equal(t, 0.0, e["B"])
}
