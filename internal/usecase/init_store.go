package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/goalpost/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct {
	DataDir string // Path to the goalpost data directory
}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	DataDir            string // Path to the data directory
	ConfigPath         string // Path to the sample config file ("" if it already existed)
	AlreadyInitialized bool   // True if the store already existed
}

// InitStore prepares the data directory and creates an empty store.
type InitStore struct {
	storeInit domain.StoreInitializer
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(storeInit domain.StoreInitializer) *InitStore {
	return &InitStore{storeInit: storeInit}
}

// Execute creates the data directory, a commented sample config, and the
// empty store. Running it on an initialized store is a no-op.
func (uc *InitStore) Execute(_ context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	alreadyInitialized := uc.storeInit.IsInitialized()

	if err := os.MkdirAll(in.DataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	logsDir := filepath.Join(in.DataDir, "logs")
	if err := os.MkdirAll(logsDir, 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	// Write a commented sample config on first init, never overwriting
	configPath := domain.ConfigPath(in.DataDir)
	if _, err := os.Stat(configPath); err == nil {
		configPath = ""
	} else {
		if err := os.WriteFile(configPath, []byte(domain.DefaultConfigTemplate), 0o600); err != nil {
			return nil, fmt.Errorf("create sample config: %w", err)
		}
	}

	if err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	return &InitStoreOutput{
		DataDir:            in.DataDir,
		ConfigPath:         configPath,
		AlreadyInitialized: alreadyInitialized,
	}, nil
}
