// Package session persists the signed-in identity of the terminal client
// between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/babyduj/shower-api/internal/domain"
)

var ErrNoSession = errors.New("not signed in")

type Session struct {
	Server string      `json:"server"`
	Token  string      `json:"token"`
	User   domain.User `json:"user"`
}

// Store reads and writes one session file. It is created on Save and removed
// on Clear.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// DefaultPath is ~/.shower/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("os.UserHomeDir -> %w", err)
	}

	return filepath.Join(home, ".shower", "session.json"), nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("os.ReadFile -> %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("json.Unmarshal(%s) -> %w", s.path, err)
	}
	if sess.Token == "" {
		return Session{}, ErrNoSession
	}

	return sess, nil
}

// Save replaces the session file atomically. The file holds a bearer token so
// it is only readable by the owner.
func (s *Store) Save(sess Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("os.MkdirAll -> %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent -> %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("os.CreateTemp -> %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Chmod -> %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Write -> %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close -> %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("os.Rename -> %w", err)
	}

	return nil
}

// Clear removes the session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}
