package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoToken is returned when no session token is held.
var ErrNoToken = errors.New("no session token")

// TokenStore persists the single bearer token. Get returns ErrNoToken
// when nothing is stored.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// FileTokenStore keeps the token in one file under the user config
// dir, the CLI analogue of the browser's single localStorage key.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore() (*FileTokenStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &FileTokenStore{path: filepath.Join(dir, "warmup", "token")}, nil
}

func NewFileTokenStoreAt(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileTokenStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryTokenStore is a TokenStore for tests.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Session is the single owner of the bearer token. Every component
// goes through it; nothing else touches the store. Subscribers are
// notified once per Set or Clear.
type Session struct {
	store TokenStore

	mu   sync.Mutex
	subs []func(token string)
}

func NewSession(store TokenStore) *Session {
	return &Session{store: store}
}

// Token returns the held token or ErrNoToken.
func (s *Session) Token() (string, error) {
	return s.store.Get()
}

// Active reports whether a token is currently held.
func (s *Session) Active() bool {
	_, err := s.store.Get()
	return err == nil
}

func (s *Session) Set(token string) error {
	if err := s.store.Set(token); err != nil {
		return err
	}
	s.notify(token)
	return nil
}

func (s *Session) Clear() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.notify("")
	return nil
}

// OnChange registers a callback for session changes. The empty string
// means the session was cleared.
func (s *Session) OnChange(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Session) notify(token string) {
	s.mu.Lock()
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(token)
	}
}
