package stores

import (
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetDocumentStore implements the StoreManager interface.
func (m *MockStoreManager) GetDocumentStore() contract.DocumentStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.DocumentStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}
