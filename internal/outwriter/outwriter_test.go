package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRating() schema.RatingResult {
	return schema.RatingResult{
		Tree:      schema.ChildrenTree,
		Generated: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Documents: 5,
		Outlets:   []string{"City Press", "Daily Sun"},
		Ratings: []schema.RatedRow{
			{Depth: 1, Weight: 1, Label: "Root", Values: []float64{0.4, 0.8}},
			{Depth: 2, Weight: 0.5, Label: "Total articles", Leaf: true, Values: []float64{0.2, 0.6}},
			{Depth: 2, Weight: 0.5, Label: "Quality", Leaf: true, Values: []float64{0.6, 1}},
		},
		NamedScores: []schema.NamedScoreValue{
			{Label: "Total articles", Outlet: "City Press", Value: 2},
			{Label: "Total articles", Outlet: "Daily Sun", Value: 3},
		},
		Workbook: []byte("xlsx"),
	}
}

func sampleConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Precision:       2,
		Output:          output,
		Width:           120,
		DocumentBackend: schema.SQLiteBackend,
		HistoryBackend:  schema.NoneBackend,
	}
}

func TestWriteRatingJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRatingJSON(&buf, sampleRating()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "children", decoded["tree"])
	assert.Equal(t, float64(5), decoded["documents"])
	assert.NotContains(t, decoded, "Workbook")

	ranking, ok := decoded["ranking"].([]any)
	require.True(t, ok)
	require.Len(t, ranking, 2)
	first := ranking[0].(map[string]any)
	assert.Equal(t, "Daily Sun", first["outlet"])
	assert.Equal(t, "Strong", first["label"])
}

func TestWriteRatingCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	var buf bytes.Buffer
	require.NoError(t, writeRatingCSV(&buf, sampleRating(), fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"position", "depth", "label", "weight", "leaf", "City Press", "Daily Sun"}, records[0])
	assert.Equal(t, []string{"0", "1", "Root", "1", "false", "0.40", "0.80"}, records[1])
	assert.Equal(t, []string{"2", "2", "Quality", "0.5", "true", "0.60", "1.00"}, records[3])
}

func TestWriteRatingTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	var buf bytes.Buffer
	cfg := sampleConfig(schema.TextOut)
	require.NoError(t, writeRatingTable(&buf, sampleRating(), cfg, fmtFloat, time.Second))

	out := buf.String()
	assert.Contains(t, out, "City Press")
	assert.Contains(t, out, "Total articles")
	assert.Contains(t, out, "Strong")
	assert.Contains(t, out, "Rated 2 outlets over 5 documents (tree: children)")
	assert.Contains(t, out, "History backend: none")
}

func TestWriteRatingResults_File(t *testing.T) {
	tests := []struct {
		name   string
		output schema.OutputMode
		want   string
	}{
		{"json", schema.JSONOut, `"ranking"`},
		{"csv", schema.CSVOut, "position,depth,label"},
		{"text", schema.TextOut, "Rated 2 outlets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig(tt.output)
			cfg.OutputFile = filepath.Join(t.TempDir(), "rating.out")
			require.NoError(t, WriteRatingResults(sampleRating(), cfg, time.Second))

			data, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func sampleTrends() schema.TrendReport {
	alice := schema.Person{ID: 1, Name: "Alice", Gender: "Female", Race: "Black", Affiliation: "NGO"}
	bob := schema.Person{ID: 2, Name: "Bob"}
	return schema.TrendReport{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Days:  10,
		TopPeople: []schema.AnalysedSource{
			{Person: alice, UtteranceCount: 3, Total: 6, Trend: 1.5, Normalised: 1},
			{Person: bob, UtteranceCount: 0, Total: 2, Trend: -0.5, Normalised: 0.33},
		},
		TrendingUp:   []schema.AnalysedSource{{Person: alice, Total: 6, Trend: 1.5, Normalised: 1}},
		TrendingDown: []schema.AnalysedSource{{Person: bob, Total: 2, Trend: -0.5, Normalised: 0.33}},
		Utterances: map[int64][]schema.AnalysedUtterance{
			1: {{Quote: "Schools must reopen", Count: 2, Sample: schema.Utterance{ID: 7, Outlet: "City Press"}}},
		},
		ProblemPeople: []schema.PersonSourceCount{{Person: bob, Sources: 2}},
	}
}

func TestWriteTrendCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	var buf bytes.Buffer
	require.NoError(t, writeTrendCSV(&buf, sampleTrends(), fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// header + 2 top + 1 up + 1 down + 1 problem
	require.Len(t, records, 6)
	assert.Equal(t, []string{"top", "1", "1", "Alice", "6", "3", "1.50", "1.00"}, records[1])
	assert.Equal(t, "trending_down", records[4][0])
	assert.Equal(t, []string{"problem", "1", "2", "Bob", "2", "", "", ""}, records[5])
}

func TestWriteTrendTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	var buf bytes.Buffer
	require.NoError(t, writeTrendTable(&buf, sampleTrends(), sampleConfig(schema.TextOut), fmtFloat, time.Second))

	out := buf.String()
	for _, want := range []string{"Top sources", "Trending up", "Trending down", "Schools must reopen", "Sources missing details", "gender, race, affiliation", "Analysed 10 days from 2025-01-01 to 2025-01-10"} {
		assert.Contains(t, out, want)
	}
}

func TestMissingDetails(t *testing.T) {
	tests := []struct {
		name   string
		person schema.Person
		want   string
	}{
		{"complete", schema.Person{Gender: "Male", Race: "White", Affiliation: "Government"}, ""},
		{"no race", schema.Person{Gender: "Male", Affiliation: "Government"}, "race"},
		{"nothing", schema.Person{}, "gender, race, affiliation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, missingDetails(tt.person))
		})
	}
}

func TestWriteTreeDefinitions(t *testing.T) {
	defs := []schema.TreeDefinition{{
		Name:   "children",
		Depth:  2,
		Leaves: []string{"Total articles"},
		Nodes: []schema.RatedRow{
			{Depth: 1, Weight: 1, Label: "Root"},
			{Depth: 2, Weight: 1, Label: "Total articles", Leaf: true},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeTreesCSV(&buf, defs))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "children,1,2,Total articles,1,true", lines[2])

	buf.Reset()
	require.NoError(t, writeTreesTable(&buf, defs, sampleConfig(schema.TextOut)))
	assert.Contains(t, buf.String(), "children (depth 2, 1 leaves)")
	assert.Contains(t, buf.String(), "Total articles")
}

func TestWriteStatus(t *testing.T) {
	var buf bytes.Buffer
	WriteHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"})
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	WriteHistoryStatus(&buf, schema.HistoryStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalBuilds:   2,
		LastBuildID:   2,
		LastBuildTime: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		OldestBuild:   time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
		TableSizes:    map[string]int64{"b": 2, "a": 1},
	})
	out := buf.String()
	assert.Contains(t, out, "Last Build: 2025-03-01 12:00:00")
	assert.Less(t, strings.Index(out, "  a: 1 rows"), strings.Index(out, "  b: 2 rows"))

	buf.Reset()
	WriteDocumentStatus(&buf, schema.DocumentStoreStatus{Backend: "sqlite", Connected: true, Version: 1, TableSizes: map[string]int64{"docs": 3}})
	assert.Contains(t, buf.String(), "Migration Version: 1")
	assert.Contains(t, buf.String(), "docs: 3 rows")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rating.xlsx")
	require.NoError(t, WriteWorkbook(path, []byte("data")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	assert.Error(t, WriteWorkbook(path, nil))
	assert.Error(t, WriteWorkbook(filepath.Join(t.TempDir(), "missing", "x.xlsx"), []byte("data")))
}

func TestIndentLabel(t *testing.T) {
	assert.Equal(t, "Root", indentLabel("Root", 1, 40))
	assert.Equal(t, "    Leaf", indentLabel("Leaf", 3, 40))
	assert.Equal(t, "  Long l...", indentLabel("Long label here", 2, 11))
}
