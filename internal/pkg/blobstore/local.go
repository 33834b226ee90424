package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps each blob as a JSON file under a base directory.
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (*LocalStore, error) {
	// Create base directory if not exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{basePath: basePath}, nil
}

func (s *LocalStore) filePath(key string) (string, error) {
	cleanKey := filepath.Clean(key)
	fullPath := filepath.Join(s.basePath, cleanKey+".json")

	// Ensure file is within basePath
	if !strings.HasPrefix(fullPath, s.basePath) {
		return "", fmt.Errorf("invalid blob key: %s", key)
	}

	return fullPath, nil
}

func (s *LocalStore) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := s.filePath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}

	return data, nil
}

func (s *LocalStore) Save(ctx context.Context, key string, data []byte) error {
	path, err := s.filePath(key)
	if err != nil {
		return err
	}

	// Write to a temp file first so a crash mid-save never leaves a
	// truncated snapshot behind.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace blob: %w", err)
	}

	return nil
}

func (s *LocalStore) Close() error {
	return nil
}
