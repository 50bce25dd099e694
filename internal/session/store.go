package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TokenStore is the durable storage slot for the session bearer token.
type TokenStore interface {
	// Token returns the stored token, or "" when none is stored.
	Token() string

	// Save replaces the stored token.
	Save(token string) error

	// Clear removes the stored token. Clearing an empty store is not an
	// error.
	Clear() error
}

// storedToken is the on-disk shape of the token file.
type storedToken struct {
	Token string `json:"token"`
}

// FileStore keeps the token in a JSON file with mode 0600.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token implements TokenStore. Any read or parse failure reads as "no
// token stored".
func (s *FileStore) Token() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return ""
	}
	return st.Token
}

// Save implements TokenStore.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(storedToken{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear implements TokenStore.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemStore is an in-memory TokenStore for tests.
type MemStore struct {
	token string
}

// Token implements TokenStore.
func (s *MemStore) Token() string { return s.token }

// Save implements TokenStore.
func (s *MemStore) Save(token string) error {
	s.token = token
	return nil
}

// Clear implements TokenStore.
func (s *MemStore) Clear() error {
	s.token = ""
	return nil
}
