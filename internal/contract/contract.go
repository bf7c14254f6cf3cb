// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/mediascore/schema"
)

// ErrNoDocuments is returned when a filter selects no documents.
var ErrNoDocuments = errors.New("no documents match the filter")

// DocumentStore answers grouped-count questions about an existing corpus of
// analysed documents. Every query is scoped to an explicit document-id set.
// This allows the rating engine to be tested without a real database.
type DocumentStore interface {
	// --- Selection ---

	// DocumentIDs returns the ids of documents matching the filter, ascending.
	DocumentIDs(ctx context.Context, filter schema.DocumentFilter) ([]int64, error)

	// Outlets returns the outlets that published any of the documents, ordered by name.
	Outlets(ctx context.Context, ids []int64) ([]schema.Outlet, error)

	// --- Grouped counts ---

	// CountDocuments counts documents per outlet, and per category when q.GroupBy is set.
	CountDocuments(ctx context.Context, ids []int64, q schema.DocumentQuery) ([]schema.CountRow, error)

	// CountSources counts document sources per outlet, and per category when q.GroupBy is set.
	CountSources(ctx context.Context, ids []int64, q schema.SourceQuery) ([]schema.CountRow, error)

	// SourcesPerDocument returns the number of sources of every document with at least one source.
	SourcesPerDocument(ctx context.Context, ids []int64, childOnly bool) ([]schema.OutletDocCount, error)

	// --- Vocabularies ---

	// RoleNames returns the names of source roles with the given indication, sorted.
	RoleNames(ctx context.Context, indication schema.RoleIndication) ([]string, error)

	// PrincipleNames returns all principle names, sorted.
	PrincipleNames(ctx context.Context) ([]string, error)

	// --- Source people ---

	// SourcePeople returns every person used as a source in the documents.
	SourcePeople(ctx context.Context, ids []int64) ([]schema.Person, error)

	// SourceMentions returns one entry per source appearance of the given people.
	SourceMentions(ctx context.Context, ids []int64, personIDs []int64) ([]schema.SourceMention, error)

	// UtteranceCounts returns the number of utterances per person.
	UtteranceCounts(ctx context.Context, ids []int64, personIDs []int64) (map[int64]int, error)

	// Utterances returns the utterances of the given people, ordered by id.
	Utterances(ctx context.Context, ids []int64, personIDs []int64) ([]schema.Utterance, error)

	// ProblemPeople returns source people lacking race, gender or affiliation,
	// most used first.
	ProblemPeople(ctx context.Context, ids []int64, limit int) ([]schema.PersonSourceCount, error)

	// --- Maintenance ---

	// Seed loads a corpus fixture into the store.
	Seed(ctx context.Context, corpus schema.Corpus) error

	// GetStatus returns status information about the document store.
	GetStatus() (schema.DocumentStoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// HistoryStore defines the interface for tracking rating builds and their values.
type HistoryStore interface {
	// BeginBuild creates a new build record and returns its unique ID
	BeginBuild(tree string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndBuild updates the build record with completion data
	EndBuild(buildID int64, endTime time.Time, totalDocuments, totalOutlets int) error

	// RecordRatings stores the evaluated rating tree values
	RecordRatings(buildID int64, values []schema.RatingValueRecord) error

	// RecordNamedScores stores the Named Score values of a build
	RecordNamedScores(buildID int64, values []schema.NamedScoreRecord) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllBuilds retrieves all build records from the store
	GetAllBuilds() ([]schema.BuildRecord, error)

	// GetAllRatingValues retrieves all recorded rating values from the store
	GetAllRatingValues() ([]schema.RatingValueRecord, error)

	// GetAllNamedScores retrieves all recorded Named Score values from the store
	GetAllNamedScores() ([]schema.NamedScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// StoreManager provides access to the stores opened for a command.
type StoreManager interface {
	GetDocumentStore() DocumentStore
	GetHistoryStore() HistoryStore
}
