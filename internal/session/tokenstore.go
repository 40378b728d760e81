package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/afero"
)

// StorageKey is the fixed key the bearer token is stored under
const StorageKey = "neuronest_token"

// TokenStore persists the bearer token between runs.
// Load returns "" when nothing is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file
type FileTokenStore struct {
	fs   afero.Fs
	path string
}

// NewFileTokenStore stores the token in dir/neuronest_token on fs
func NewFileTokenStore(fs afero.Fs, dir string) *FileTokenStore {
	return &FileTokenStore{fs: fs, path: filepath.Join(dir, StorageKey)}
}

// Path returns the token file location
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// BadgerTokenStore keeps the token in a badger database
type BadgerTokenStore struct {
	db *badger.DB
}

// OpenBadgerTokenStore opens (or creates) the badger database in dir
func OpenBadgerTokenStore(dir string) (*BadgerTokenStore, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open token database: %w", err)
	}
	return &BadgerTokenStore{db: db}, nil
}

func (s *BadgerTokenStore) Load() (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(StorageKey))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		token = string(val)
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

func (s *BadgerTokenStore) Save(token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(StorageKey), []byte(token))
	})
	if err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

func (s *BadgerTokenStore) Clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(StorageKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// Close releases the database
func (s *BadgerTokenStore) Close() error {
	return s.db.Close()
}
