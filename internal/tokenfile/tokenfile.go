package tokenfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quizdesk/quizdesk/internal/models"
)

// Store keeps the token pair in a JSON file so the session survives
// process restarts, same as the browser keeps it in local storage.
// Writes go through a temp file and rename, so a concurrent reader
// never observes a half written pair.
type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("token file path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("error while creating token file directory. Err: %w", err)
	}

	return &Store{path: path}, nil
}

// Tokens reads the stored pair. Missing file means logged out, not an error.
func (s *Store) Tokens() (models.TokenPair, error) {
	var pair models.TokenPair

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return pair, nil
	case err != nil:
		return pair, fmt.Errorf("error while reading token file. Err: %w", err)
	}

	if err := json.Unmarshal(data, &pair); err != nil {
		return pair, fmt.Errorf("error while decoding token file. Err: %w", err)
	}

	return pair, nil
}

// SetTokens overwrites both stored values at once
func (s *Store) SetTokens(pair models.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("error while encoding token pair. Err: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("error while writing token file. Err: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error while replacing token file. Err: %w", err)
	}

	return nil
}

// Clear removes both stored values. Clearing an empty store is fine.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error while removing token file. Err: %w", err)
	}
	return nil
}
