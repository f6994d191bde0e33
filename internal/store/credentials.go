package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/example/colegio/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// Credentials manages staff users and the token table shared by both kinds
// of principal.
type Credentials struct{ db *db.DB }

func NewCredentials(d *db.DB) *Credentials { return &Credentials{db: d} }

var ErrInvalidCredentials = errors.New("invalid credentials")

// Principal is whoever a token resolves to: exactly one of the ids is set.
type Principal struct {
	AlumnoID  int64
	UsuarioID int64
}

func (s *Credentials) CreateUsuario(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Exec(ctx, `INSERT INTO usuarios (username, password_bcrypt) VALUES ($1, $2)`, username, string(hash))
}

func (s *Credentials) AuthenticateUsuario(ctx context.Context, username, password string) (int64, error) {
	var id int64
	var hash string
	err := s.db.QueryRow(ctx, `SELECT id, password_bcrypt FROM usuarios WHERE username = $1`, username).Scan(&id, &hash)
	if err != nil {
		if db.IsNotFound(db.WrapNotFound(err)) {
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

// newTokenKey generates a DRF-style 40-hex-char token key.
func newTokenKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IssueAlumnoToken mints a token for a student. A student keeps one token at
// a time; logging in again replaces it.
func (s *Credentials) IssueAlumnoToken(ctx context.Context, alumnoID int64) (string, error) {
	key, err := newTokenKey()
	if err != nil {
		return "", err
	}
	if err := s.db.Exec(ctx, `DELETE FROM auth_tokens WHERE alumno_id = $1`, alumnoID); err != nil {
		return "", err
	}
	if err := s.db.Exec(ctx, `INSERT INTO auth_tokens (key, alumno_id) VALUES ($1, $2)`, key, alumnoID); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Credentials) IssueUsuarioToken(ctx context.Context, usuarioID int64) (string, error) {
	key, err := newTokenKey()
	if err != nil {
		return "", err
	}
	if err := s.db.Exec(ctx, `DELETE FROM auth_tokens WHERE usuario_id = $1`, usuarioID); err != nil {
		return "", err
	}
	if err := s.db.Exec(ctx, `INSERT INTO auth_tokens (key, usuario_id) VALUES ($1, $2)`, key, usuarioID); err != nil {
		return "", err
	}
	return key, nil
}

// Resolve maps a token key to its principal.
func (s *Credentials) Resolve(ctx context.Context, key string) (Principal, error) {
	var alumnoID, usuarioID *int64
	err := s.db.QueryRow(ctx, `SELECT alumno_id, usuario_id FROM auth_tokens WHERE key = $1`, key).Scan(&alumnoID, &usuarioID)
	if err != nil {
		return Principal{}, db.WrapNotFound(err)
	}
	var p Principal
	if alumnoID != nil {
		p.AlumnoID = *alumnoID
	}
	if usuarioID != nil {
		p.UsuarioID = *usuarioID
	}
	return p, nil
}

// Revoke deletes a token (server-side logout).
func (s *Credentials) Revoke(ctx context.Context, key string) error {
	return s.db.Exec(ctx, `DELETE FROM auth_tokens WHERE key = $1`, key)
}
