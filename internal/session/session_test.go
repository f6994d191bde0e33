package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "colegio", "session.json"))
}

func TestStoreRoundTrip(t *testing.T) {
	s := tempStore(t)

	if _, err := s.Get(KeyToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty store Get = %v, want ErrNotFound", err)
	}

	if err := s.SetAll(map[string]string{
		KeyToken:    "tok-1",
		KeyUserType: TypeAlumno,
	}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	if err := s.Set(KeyUserData, `{"nombre":"Juan"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(KeyToken)
	if err != nil || got != "tok-1" {
		t.Fatalf("Get token = %q, %v", got, err)
	}
	if got, _ := s.Get(KeyUserData); got != `{"nombre":"Juan"}` {
		t.Fatalf("Get userData = %q", got)
	}
	if tok, ok := s.Token(); !ok || tok != "tok-1" {
		t.Fatalf("Token() = %q, %v", tok, ok)
	}
}

func TestStoreClear(t *testing.T) {
	s := tempStore(t)
	if err := s.Set(KeyToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Fatal("token survived Clear")
	}
	// Clearing an already-empty session is not an error.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestStoreFilePermissions(t *testing.T) {
	s := tempStore(t)
	if err := s.Set(KeyToken, "secret"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	info, err := os.Stat(s.path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}
}
