package docstore

import (
	"context"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/mock"
)

// MockDocumentStore is a mock implementation of DocumentStore for testing.
type MockDocumentStore struct {
	mock.Mock
}

var _ contract.DocumentStore = &MockDocumentStore{} // Compile-time check

// DocumentIDs implements the DocumentStore interface.
func (m *MockDocumentStore) DocumentIDs(ctx context.Context, filter schema.DocumentFilter) ([]int64, error) {
	args := m.Called(ctx, filter)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

// Outlets implements the DocumentStore interface.
func (m *MockDocumentStore) Outlets(ctx context.Context, ids []int64) ([]schema.Outlet, error) {
	args := m.Called(ctx, ids)
	outlets, _ := args.Get(0).([]schema.Outlet)
	return outlets, args.Error(1)
}

// CountDocuments implements the DocumentStore interface.
func (m *MockDocumentStore) CountDocuments(ctx context.Context, ids []int64, q schema.DocumentQuery) ([]schema.CountRow, error) {
	args := m.Called(ctx, ids, q)
	rows, _ := args.Get(0).([]schema.CountRow)
	return rows, args.Error(1)
}

// CountSources implements the DocumentStore interface.
func (m *MockDocumentStore) CountSources(ctx context.Context, ids []int64, q schema.SourceQuery) ([]schema.CountRow, error) {
	args := m.Called(ctx, ids, q)
	rows, _ := args.Get(0).([]schema.CountRow)
	return rows, args.Error(1)
}

// SourcesPerDocument implements the DocumentStore interface.
func (m *MockDocumentStore) SourcesPerDocument(ctx context.Context, ids []int64, childOnly bool) ([]schema.OutletDocCount, error) {
	args := m.Called(ctx, ids, childOnly)
	rows, _ := args.Get(0).([]schema.OutletDocCount)
	return rows, args.Error(1)
}

// RoleNames implements the DocumentStore interface.
func (m *MockDocumentStore) RoleNames(ctx context.Context, indication schema.RoleIndication) ([]string, error) {
	args := m.Called(ctx, indication)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// PrincipleNames implements the DocumentStore interface.
func (m *MockDocumentStore) PrincipleNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// SourcePeople implements the DocumentStore interface.
func (m *MockDocumentStore) SourcePeople(ctx context.Context, ids []int64) ([]schema.Person, error) {
	args := m.Called(ctx, ids)
	people, _ := args.Get(0).([]schema.Person)
	return people, args.Error(1)
}

// SourceMentions implements the DocumentStore interface.
func (m *MockDocumentStore) SourceMentions(ctx context.Context, ids []int64, personIDs []int64) ([]schema.SourceMention, error) {
	args := m.Called(ctx, ids, personIDs)
	mentions, _ := args.Get(0).([]schema.SourceMention)
	return mentions, args.Error(1)
}

// UtteranceCounts implements the DocumentStore interface.
func (m *MockDocumentStore) UtteranceCounts(ctx context.Context, ids []int64, personIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, ids, personIDs)
	counts, _ := args.Get(0).(map[int64]int)
	return counts, args.Error(1)
}

// Utterances implements the DocumentStore interface.
func (m *MockDocumentStore) Utterances(ctx context.Context, ids []int64, personIDs []int64) ([]schema.Utterance, error) {
	args := m.Called(ctx, ids, personIDs)
	utterances, _ := args.Get(0).([]schema.Utterance)
	return utterances, args.Error(1)
}

// ProblemPeople implements the DocumentStore interface.
func (m *MockDocumentStore) ProblemPeople(ctx context.Context, ids []int64, limit int) ([]schema.PersonSourceCount, error) {
	args := m.Called(ctx, ids, limit)
	people, _ := args.Get(0).([]schema.PersonSourceCount)
	return people, args.Error(1)
}

// Seed implements the DocumentStore interface.
func (m *MockDocumentStore) Seed(ctx context.Context, corpus schema.Corpus) error {
	args := m.Called(ctx, corpus)
	return args.Error(0)
}

// GetStatus implements the DocumentStore interface.
func (m *MockDocumentStore) GetStatus() (schema.DocumentStoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.DocumentStoreStatus)
	return status, args.Error(1)
}

// Close implements the DocumentStore interface.
func (m *MockDocumentStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
