// Package credentials persists the access/refresh token pair on the client.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/princeprakhar/partnerhub/internal/types"
)

// Fixed storage keys, shared by every store implementation.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// Store holds the token pair. Load must not block on the network; the HTTP
// client calls it right before every request.
type Store interface {
	Load() (types.TokenPair, error)
	Save(pair types.TokenPair) error
	Clear() error
}

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Load() (types.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.TokenPair{
		AccessToken:  s.data[KeyAccessToken],
		RefreshToken: s.data[KeyRefreshToken],
	}, nil
}

func (s *MemoryStore) Save(pair types.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[KeyAccessToken] = pair.AccessToken
	s.data[KeyRefreshToken] = pair.RefreshToken
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.data)
	return nil
}

// FileStore keeps tokens in a JSON file keyed by KeyAccessToken and
// KeyRefreshToken. A missing file means no credentials.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (types.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.TokenPair{}, nil
		}
		return types.TokenPair{}, fmt.Errorf("failed to read credentials %s: %w", s.path, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return types.TokenPair{}, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return types.TokenPair{
		AccessToken:  entries[KeyAccessToken],
		RefreshToken: entries[KeyRefreshToken],
	}, nil
}

func (s *FileStore) Save(pair types.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}

	data, err := json.MarshalIndent(map[string]string{
		KeyAccessToken:  pair.AccessToken,
		KeyRefreshToken: pair.RefreshToken,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}
