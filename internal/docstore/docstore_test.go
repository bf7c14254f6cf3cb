package docstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var january = schema.DocumentFilter{
	Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
}

// newSeededStore opens a SQLite store in a temp dir and loads the sample corpus.
func newSeededStore(t *testing.T) *DocumentStoreImpl {
	t.Helper()
	store, err := NewDocumentStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "documents.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Seed(context.Background(), SampleCorpus()))
	return store
}

func TestMigrate_NoneBackend(t *testing.T) {
	err := Migrate(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrate_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Latest, then a no-op, then an explicit version
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	assert.FileExists(t, dbPath)
	assert.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	assert.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 1))

	// Roll back and forward again
	assert.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 1))
}

func TestNewDocumentStore_NoneBackend(t *testing.T) {
	_, err := NewDocumentStore(schema.NoneBackend, "")
	assert.Error(t, err)
}

func TestDocumentIDs(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filter   schema.DocumentFilter
		expected []int64
	}{
		{"everything", schema.DocumentFilter{}, []int64{1, 2, 3, 4, 5, 6}},
		{"january", january, []int64{1, 2, 3, 4, 5}},
		{"media", schema.DocumentFilter{Media: []string{"Daily Sun"}}, []int64{3, 4, 5}},
		{"country", schema.DocumentFilter{Country: "na"}, []int64{6}},
		{"nature", schema.DocumentFilter{Nature: "elections"}, nil},
		{"person", schema.DocumentFilter{PersonID: 1}, []int64{1, 3}},
		{"query is case insensitive", schema.DocumentFilter{Query: "ABUSE"}, []int64{1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := store.DocumentIDs(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestOutlets(t *testing.T) {
	store := newSeededStore(t)
	outlets, err := store.Outlets(context.Background(), []int64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Len(t, outlets, 2)
	assert.Equal(t, "City Press", outlets[0].Name)
	assert.Equal(t, "Daily Sun", outlets[1].Name)

	none, err := store.Outlets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCountDocuments(t *testing.T) {
	store := newSeededStore(t)
	ids := []int64{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		query    schema.DocumentQuery
		expected []schema.CountRow
	}{
		{
			name:  "per outlet",
			query: schema.DocumentQuery{},
			expected: []schema.CountRow{
				{Outlet: "City Press", Count: 2},
				{Outlet: "Daily Sun", Count: 3},
			},
		},
		{
			name:  "restricted topic group",
			query: schema.DocumentQuery{GroupBy: schema.DocTopicGroup, In: []string{schema.ChildAbuseTopicGroup}},
			expected: []schema.CountRow{
				{Outlet: "City Press", Category: "2. Child Abuse", Count: 1},
				{Outlet: "Daily Sun", Category: "2. Child Abuse", Count: 1},
			},
		},
		{
			name:     "quality flag",
			query:    schema.DocumentQuery{Quality: schema.QualitySelfHelp},
			expected: []schema.CountRow{{Outlet: "City Press", Count: 1}},
		},
		{
			name:     "abused child source",
			query:    schema.DocumentQuery{AbusedChild: true},
			expected: []schema.CountRow{{Outlet: "City Press", Count: 1}},
		},
		{
			name:  "taxonomy join",
			query: schema.DocumentQuery{GroupBy: schema.DocTaxonomy},
			expected: []schema.CountRow{
				{Outlet: "City Press", Category: "Education", Count: 2},
				{Outlet: "City Press", Category: "Health", Count: 1},
				{Outlet: "Daily Sun", Category: "Health", Count: 2},
				{Outlet: "Daily Sun", Category: "Sport", Count: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := store.CountDocuments(context.Background(), ids, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rows)
		})
	}
}

func TestCountDocuments_Errors(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	_, err := store.CountDocuments(ctx, []int64{1}, schema.DocumentQuery{GroupBy: "colour"})
	assert.Error(t, err)

	_, err = store.CountDocuments(ctx, []int64{1}, schema.DocumentQuery{Quality: "humour"})
	assert.Error(t, err)

	_, err = store.CountDocuments(ctx, []int64{1}, schema.DocumentQuery{In: []string{"x"}})
	assert.Error(t, err)
}

func TestCountSources(t *testing.T) {
	store := newSeededStore(t)
	ids := []int64{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		query    schema.SourceQuery
		expected []schema.CountRow
	}{
		{
			name:  "child genders",
			query: schema.SourceQuery{GroupBy: schema.SourceGender, SourceType: schema.ChildSource},
			expected: []schema.CountRow{
				{Outlet: "City Press", Category: "Female", Count: 1},
				{Outlet: "City Press", Category: "Male", Count: 2},
				{Outlet: "Daily Sun", Category: "Female", Count: 2},
			},
		},
		{
			name:  "positive roles",
			query: schema.SourceQuery{GroupBy: schema.SourceRole, SourceType: schema.ChildSource, Indication: schema.PositiveRole},
			expected: []schema.CountRow{
				{Outlet: "City Press", Category: "Activist", Count: 1},
				{Outlet: "City Press", Category: "Student", Count: 1},
			},
		},
		{
			name: "quoted origins as documents",
			query: schema.SourceQuery{
				GroupBy: schema.SourceOrigin, SourceType: schema.ChildSource,
				QuotedOnly: true, DistinctDocuments: true,
			},
			expected: []schema.CountRow{
				{Outlet: "City Press", Category: "Gauteng", Count: 1},
				{Outlet: "City Press", Category: "Limpopo", Count: 1},
				{Outlet: "Daily Sun", Category: "Limpopo", Count: 1},
			},
		},
		{
			name:  "inherited person attributes",
			query: schema.SourceQuery{GroupBy: schema.SourceAffiliation, SourceType: schema.PersonSource, In: []string{"Citizens"}},
			expected: []schema.CountRow{
				{Outlet: "Daily Sun", Category: "Citizens", Count: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := store.CountSources(context.Background(), ids, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rows)
		})
	}
}

func TestCounts_ChunkedMatchesSingleQuery(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()
	ids := []int64{1, 2, 3, 4, 5}
	query := schema.SourceQuery{GroupBy: schema.SourceGender}

	whole, err := store.CountSources(ctx, ids, query)
	require.NoError(t, err)

	store.chunkSize = 2
	chunked, err := store.CountSources(ctx, ids, query)
	require.NoError(t, err)
	assert.Equal(t, whole, chunked)
}

func TestChunkIDs(t *testing.T) {
	assert.Nil(t, chunkIDs(nil, 3))
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}, {5}}, chunkIDs([]int64{1, 2, 3, 4, 5}, 2))
	assert.Len(t, chunkIDs(make([]int64, 1001), 0), 3)
}

func TestSourcesPerDocument(t *testing.T) {
	store := newSeededStore(t)
	rows, err := store.SourcesPerDocument(context.Background(), []int64{1, 2, 3, 4, 5}, true)
	require.NoError(t, err)
	assert.Equal(t, []schema.OutletDocCount{
		{Outlet: "City Press", DocumentID: 1, Sources: 2},
		{Outlet: "City Press", DocumentID: 2, Sources: 1},
		{Outlet: "Daily Sun", DocumentID: 3, Sources: 1},
		{Outlet: "Daily Sun", DocumentID: 4, Sources: 1},
	}, rows)
}

func TestVocabularies(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	positive, err := store.RoleNames(ctx, schema.PositiveRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"Activist", "Student"}, positive)

	principles, err := store.PrincipleNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Child's best interest", "Privacy"}, principles)
}

func TestSourcePeopleAndUtterances(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()
	ids := []int64{1, 2, 3, 4, 5}

	people, err := store.SourcePeople(ctx, ids)
	require.NoError(t, err)
	require.Len(t, people, 4)
	assert.Equal(t, "Ayanda Dlamini", people[0].Name)
	assert.Empty(t, people[2].Race)

	mentions, err := store.SourceMentions(ctx, ids, []int64{1})
	require.NoError(t, err)
	days := make([]int, 0, len(mentions))
	for _, m := range mentions {
		days = append(days, m.PublishedAt.Day())
	}
	assert.ElementsMatch(t, []int{2, 3}, days)

	counts, err := store.UtteranceCounts(ctx, ids, []int64{1, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 3, 2: 1, 4: 1}, counts)

	utterances, err := store.Utterances(ctx, ids, []int64{1})
	require.NoError(t, err)
	require.Len(t, utterances, 3)
	assert.Less(t, utterances[0].ID, utterances[1].ID)
	assert.Equal(t, "City Press", utterances[0].Outlet)

	problems, err := store.ProblemPeople(ctx, ids, 20)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, int64(2), problems[0].ID)
	assert.Equal(t, int64(3), problems[1].ID)
	assert.Equal(t, 1, problems[0].Sources)
}

func TestSeed_Rejects(t *testing.T) {
	store, err := NewDocumentStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "documents.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	tests := []struct {
		name   string
		corpus schema.Corpus
	}{
		{"missing medium", schema.Corpus{Documents: []schema.CorpusDocument{{ID: 1, Title: "t"}}}},
		{"unknown speaker", schema.Corpus{Documents: []schema.CorpusDocument{{
			ID: 1, Medium: "M", Title: "t", Utterances: []schema.CorpusUtterance{{PersonID: 9, Quote: "q"}},
		}}}},
		{"unknown quality", schema.Corpus{Documents: []schema.CorpusDocument{{
			ID: 1, Medium: "M", Title: "t", Quality: []schema.QualityKey{"humour"},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.Seed(ctx, tt.corpus))
		})
	}

	// Failed seeds leave nothing behind
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.TableSizes["documents"])
}

func TestGetStatus(t *testing.T) {
	store := newSeededStore(t)
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, uint(1), status.Version)
	assert.Equal(t, int64(6), status.TableSizes["documents"])
	assert.Equal(t, int64(2), status.TableSizes["media"])
}

func TestSampleCorpus(t *testing.T) {
	corpus := SampleCorpus()
	assert.Len(t, corpus.Documents, 6)
	assert.Equal(t, time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC), corpus.Documents[0].PublishedAt.UTC())

	_, err := ParseCorpus([]byte("documents: {"))
	assert.Error(t, err)

	_, err = LoadCorpus(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
