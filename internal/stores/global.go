package stores

import (
	"fmt"
	"sync"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/docstore"
	"github.com/huangsam/mediascore/internal/history"
	"github.com/huangsam/mediascore/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager with the document and history stores.
// A document backend of none leaves the document store unset, which suits the
// history maintenance commands. A history backend of none yields a history
// store that records nothing.
func InitStores(docBackend schema.DatabaseBackend, docConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var documents contract.DocumentStore
		if docBackend != schema.NoneBackend {
			store, err := docstore.NewDocumentStore(docBackend, docConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize document store: %w", err)
				return
			}
			documents = store
		}

		if historyBackend == "" {
			historyBackend = schema.NoneBackend
		}
		historyStore, err := history.NewHistoryStore(historyBackend, historyConnStr)
		if err != nil {
			closeAll(documents, nil)
			initErr = fmt.Errorf("failed to initialize history store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.documents = documents
		Manager.history = historyStore
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		closeAll(Manager.documents, Manager.history)
	})
}

func closeAll(documents contract.DocumentStore, hist contract.HistoryStore) {
	if documents != nil {
		_ = documents.Close()
	}
	if hist != nil {
		_ = hist.Close()
	}
}
