// Package stores owns the document and history stores opened for a command.
package stores

import (
	"sync"

	"github.com/huangsam/mediascore/internal/contract"
)

// StoreManager manages the store instances of a process.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	documents    contract.DocumentStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// NewStoreManager wraps already opened stores.
func NewStoreManager(documents contract.DocumentStore, history contract.HistoryStore) *StoreManager {
	return &StoreManager{documents: documents, history: history}
}

// GetDocumentStore returns the DocumentStore.
func (mgr *StoreManager) GetDocumentStore() contract.DocumentStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.documents
}

// GetHistoryStore returns the HistoryStore.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
