package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/google/renameio/v2"
)

// Store implements ports.ComputationStore using the local filesystem.
// It stores one JSON file per computation in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".nfa/computations".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".nfa", "computations")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("computation id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid computation id %q", id)
	}
	return filepath.Join(s.BasePath, id+".json"), nil
}

// Save persists the computation to a JSON file atomically.
// The file is written to a pending temp file, fsynced and renamed over the destination.
func (s *Store) Save(ctx context.Context, c *domain.Computation) error {
	destPath, err := s.path(c.ID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure computation directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal computation: %w", err)
	}

	pending, err := renameio.NewPendingFile(destPath, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("failed to write computation: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace computation file: %w", err)
	}
	return nil
}

// Load retrieves the computation from its JSON file.
func (s *Store) Load(ctx context.Context, id string) (*domain.Computation, error) {
	filePath, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrComputationNotFound
		}
		return nil, fmt.Errorf("failed to read computation file: %w", err)
	}

	var c domain.Computation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal computation: %w", err)
	}
	return &c, nil
}

// Delete removes the computation file.
func (s *Store) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete computation file: %w", err)
	}
	return nil
}

// List returns all stored computation IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list computations: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		// renameio leaves dot-prefixed temp files while a write is in flight
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}
