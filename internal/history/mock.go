package history

import (
	"time"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginBuild implements the HistoryStore interface.
func (m *MockHistoryStore) BeginBuild(tree string, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(tree, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndBuild implements the HistoryStore interface.
func (m *MockHistoryStore) EndBuild(buildID int64, endTime time.Time, totalDocuments, totalOutlets int) error {
	args := m.Called(buildID, endTime, totalDocuments, totalOutlets)
	return args.Error(0)
}

// RecordRatings implements the HistoryStore interface.
func (m *MockHistoryStore) RecordRatings(buildID int64, values []schema.RatingValueRecord) error {
	args := m.Called(buildID, values)
	return args.Error(0)
}

// RecordNamedScores implements the HistoryStore interface.
func (m *MockHistoryStore) RecordNamedScores(buildID int64, values []schema.NamedScoreRecord) error {
	args := m.Called(buildID, values)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllBuilds implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllBuilds() ([]schema.BuildRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.BuildRecord)
	return records, args.Error(1)
}

// GetAllRatingValues implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRatingValues() ([]schema.RatingValueRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RatingValueRecord)
	return records, args.Error(1)
}

// GetAllNamedScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllNamedScores() ([]schema.NamedScoreRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.NamedScoreRecord)
	return records, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
