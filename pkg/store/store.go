// Package store persists flat JSON documents in a local data directory.
//
// Documents are whole-file read/write only: there is no locking and no
// partial update. Callers that need read-modify-write semantics load a
// document, mutate it, and write it back within one logical operation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const defaultDataDirName = ".sectionbot"

// DocumentStore reads and writes named JSON documents under one directory.
type DocumentStore struct {
	dir string
}

// Open resolves the data directory (creating it when missing) and returns
// a store rooted there. An empty path falls back to ~/.sectionbot.
func Open(dataDir string) (*DocumentStore, error) {
	resolved, err := resolveDir(dataDir)
	if err != nil {
		return nil, err
	}

	return &DocumentStore{dir: resolved}, nil
}

// Dir returns the absolute data directory path.
func (s *DocumentStore) Dir() string {
	if s == nil {
		return ""
	}

	return s.dir
}

// Read unmarshals the named document into out. A missing document leaves
// out untouched and returns nil: absent state is empty state, not an error.
func (s *DocumentStore) Read(id string, out any) error {
	content, err := os.ReadFile(s.documentPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read document %q: %w", id, err)
	}

	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("parse document %q: %w", id, err)
	}

	return nil
}

// Write overwrites the named document with an indented, human-readable
// serialization of doc.
func (s *DocumentStore) Write(id string, doc any) error {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document %q: %w", id, err)
	}

	if err := os.WriteFile(s.documentPath(id), append(content, '\n'), 0o600); err != nil {
		return fmt.Errorf("write document %q: %w", id, err)
	}

	return nil
}

func (s *DocumentStore) documentPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// resolveDir normalizes the data directory input and creates it when missing.
func resolveDir(dataDir string) (string, error) {
	trimmed := strings.TrimSpace(dataDir)
	if trimmed == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(homeDir, defaultDataDirName)
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve absolute data directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	if err := os.MkdirAll(cleanPath, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	return cleanPath, nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return home, nil
	}

	prefix := "~" + string(filepath.Separator)
	if strings.HasPrefix(path, prefix) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, prefix)), nil
	}

	return path, nil
}
