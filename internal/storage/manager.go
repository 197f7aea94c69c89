package storage

import (
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
)

// Manager implements interfaces.StorageManager over a FileStore.
type Manager struct {
	store  *FileStore
	logger *common.Logger
}

// NewFileManager creates a file-backed storage manager rooted at path.
func NewFileManager(logger *common.Logger, path string) (*Manager, error) {
	store, err := NewFileStore(logger, path)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("path", path).Msg("File storage manager initialized")
	return &Manager{store: store, logger: logger}, nil
}

func (m *Manager) HoldingsProvider() interfaces.HoldingsProvider {
	return m.store
}

func (m *Manager) TransactionLedger() interfaces.TransactionLedger {
	return m.store
}

func (m *Manager) BenchmarkIndexProvider() interfaces.BenchmarkIndexProvider {
	return m.store
}

// Close is a no-op; files are not held open between reads.
func (m *Manager) Close() error {
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
