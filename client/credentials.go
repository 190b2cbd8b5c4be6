package client

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// CredentialStore persists the current bearer token. It is the single
// source of truth for whether a session is active: a stored token means
// "possibly signed in", an empty store means "signed out". No expiry is
// tracked here; the server alone decides whether a token is still valid.
type CredentialStore interface {
	// Set overwrites any existing token. The token must be readable by
	// Get as soon as Set returns.
	Set(token string) error
	// Get returns the current token, or "" when none is stored.
	Get() (string, error)
	// Clear removes the token. Clearing an empty store is not an error.
	Clear() error
}

// MemoryStore keeps the token in process memory. Suitable for tests and
// short-lived tools.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileStore persists the token to a single file with 0600 permissions,
// so a session survives process restarts.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
