package store

import (
	"context"

	"github.com/example/colegio/internal/db"
)

// Alumno is a student row. DigitosVerificacion never leaves this package
// except through Authenticate.
type Alumno struct {
	ID       int64
	Nombre   string
	Apellido string
	Rut      string
	Curso    string

	digitos string
}

type Alumnos struct{ db *db.DB }

func NewAlumnos(d *db.DB) *Alumnos { return &Alumnos{db: d} }

func (s *Alumnos) List(ctx context.Context, rut, curso string) ([]Alumno, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, nombre, apellido, rut, curso
FROM alumnos
WHERE ($1 = '' OR rut = $1)
  AND ($2 = '' OR curso = $2)
ORDER BY apellido, nombre`, rut, curso)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Alumno
	for rows.Next() {
		var a Alumno
		if err := rows.Scan(&a.ID, &a.Nombre, &a.Apellido, &a.Rut, &a.Curso); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Alumnos) Get(ctx context.Context, id int64) (Alumno, error) {
	var a Alumno
	err := s.db.QueryRow(ctx, `
SELECT id, nombre, apellido, rut, curso
FROM alumnos
WHERE id = $1`, id).Scan(&a.ID, &a.Nombre, &a.Apellido, &a.Rut, &a.Curso)
	if err != nil {
		return Alumno{}, db.WrapNotFound(err)
	}
	return a, nil
}

// Create registers a student with their RUT verification digits. Used by the
// admin CLI, not exposed over HTTP.
func (s *Alumnos) Create(ctx context.Context, nombre, apellido, rut, digitos, curso string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
INSERT INTO alumnos (nombre, apellido, rut, digitos_verificacion, curso)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, nombre, apellido, rut, digitos, curso).Scan(&id)
	return id, db.WrapNotFound(err)
}

// Authenticate looks a student up by RUT and checks the verification digits.
// Both failures collapse into db.ErrNotFound so the auth endpoint cannot be
// used to probe which RUTs exist.
func (s *Alumnos) Authenticate(ctx context.Context, rut, digitos string) (Alumno, error) {
	var a Alumno
	err := s.db.QueryRow(ctx, `
SELECT id, nombre, apellido, rut, curso, digitos_verificacion
FROM alumnos
WHERE rut = $1`, rut).Scan(&a.ID, &a.Nombre, &a.Apellido, &a.Rut, &a.Curso, &a.digitos)
	if err != nil {
		return Alumno{}, db.WrapNotFound(err)
	}
	if a.digitos == "" || a.digitos != digitos {
		return Alumno{}, db.ErrNotFound
	}
	a.digitos = ""
	return a, nil
}
