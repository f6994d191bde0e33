// Package session persists the logged-in user's token and profile between
// CLI invocations, as a small key→string file under the user config dir.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Well-known keys. UserData holds the profile JSON exactly as the login
// endpoint returned it.
const (
	KeyToken    = "userToken"
	KeyUserData = "userData"
	KeyUserType = "userType"
)

// User types stored under KeyUserType.
const (
	TypeAlumno = "alumno"
	TypeStaff  = "staff"
)

var ErrNotFound = errors.New("session: key not found")

type Store struct {
	path string
}

// DefaultPath is the session file location: $XDG_CONFIG_HOME/colegio/session.json
// or the OS equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "colegio", "session.json"), nil
}

func NewStore(path string) *Store { return &Store{path: path} }

func (s *Store) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// save rewrites the whole file through a temp file so a crash never leaves a
// half-written session behind.
func (s *Store) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Get returns the value for key, or ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	m, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := m[key]
	if !ok || v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores one key, preserving the others.
func (s *Store) Set(key, value string) error {
	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

// SetAll stores several keys in one rewrite.
func (s *Store) SetAll(kv map[string]string) error {
	m, err := s.load()
	if err != nil {
		return err
	}
	for k, v := range kv {
		m[k] = v
	}
	return s.save(m)
}

// Clear removes the whole session (logout).
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Token is a convenience for the common lookup; ok is false when no one is
// logged in.
func (s *Store) Token() (string, bool) {
	v, err := s.Get(KeyToken)
	return v, err == nil
}
