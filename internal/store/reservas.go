// Package store holds the server-side postgres repositories.
package store

import (
	"context"
	"time"

	"github.com/example/colegio/internal/db"
	"github.com/example/colegio/internal/reserva"
)

type Reservas struct{ db *db.DB }

func NewReservas(d *db.DB) *Reservas { return &Reservas{db: d} }

const reservaCols = `id, alumno_nombre, alumno_apellido, to_char(fecha_reserva, 'YYYY-MM-DD'), bloque_reserva, created_at`

func scanReserva(row db.Row) (reserva.Reserva, error) {
	var r reserva.Reserva
	var created time.Time
	if err := row.Scan(&r.ID, &r.AlumnoNombre, &r.AlumnoApellido, &r.FechaReserva, &r.BloqueReserva, &created); err != nil {
		return reserva.Reserva{}, err
	}
	r.CreatedAt = &created
	return r, nil
}

// List returns one page ordered by creation, oldest first, so pages are
// stable while clients walk them.
func (s *Reservas) List(ctx context.Context, limit, offset int) ([]reserva.Reserva, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+reservaCols+`
FROM reservas_computador
ORDER BY id ASC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reserva.Reserva
	for rows.Next() {
		r, err := scanReserva(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Reservas) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM reservas_computador`).Scan(&n)
	return n, err
}

// ListByFecha returns every reservation on one calendar date; the create
// handler feeds these to the eligibility engine.
func (s *Reservas) ListByFecha(ctx context.Context, fecha string) ([]reserva.Reserva, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+reservaCols+`
FROM reservas_computador
WHERE fecha_reserva = $1::date
ORDER BY id ASC`, fecha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reserva.Reserva
	for rows.Next() {
		r, err := scanReserva(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Reservas) Get(ctx context.Context, id int64) (reserva.Reserva, error) {
	r, err := scanReserva(s.db.QueryRow(ctx, `
SELECT `+reservaCols+`
FROM reservas_computador
WHERE id = $1`, id))
	if err != nil {
		return reserva.Reserva{}, db.WrapNotFound(err)
	}
	return r, nil
}

func (s *Reservas) Create(ctx context.Context, nombre, apellido, fecha, bloque string) (reserva.Reserva, error) {
	r, err := scanReserva(s.db.QueryRow(ctx, `
INSERT INTO reservas_computador (alumno_nombre, alumno_apellido, fecha_reserva, bloque_reserva)
VALUES ($1, $2, $3::date, $4)
RETURNING `+reservaCols, nombre, apellido, fecha, bloque))
	if err != nil {
		return reserva.Reserva{}, db.WrapNotFound(err)
	}
	return r, nil
}

func (s *Reservas) Update(ctx context.Context, id int64, nombre, apellido, bloque string) (reserva.Reserva, error) {
	r, err := scanReserva(s.db.QueryRow(ctx, `
UPDATE reservas_computador
SET alumno_nombre = $2, alumno_apellido = $3, bloque_reserva = $4
WHERE id = $1
RETURNING `+reservaCols, id, nombre, apellido, bloque))
	if err != nil {
		return reserva.Reserva{}, db.WrapNotFound(err)
	}
	return r, nil
}

func (s *Reservas) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := s.db.QueryRow(ctx, `
WITH gone AS (DELETE FROM reservas_computador WHERE id = $1 RETURNING 1)
SELECT EXISTS(SELECT 1 FROM gone)`, id).Scan(&deleted)
	if err != nil {
		return db.WrapNotFound(err)
	}
	if !deleted {
		return db.ErrNotFound
	}
	return nil
}

// DeleteBefore purges reservations whose date is strictly before cutoff,
// returning how many went away. The retention sweeper calls this.
func (s *Reservas) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `
WITH gone AS (
    DELETE FROM reservas_computador
    WHERE fecha_reserva < $1::date
    RETURNING 1
)
SELECT count(*) FROM gone`, cutoff.Format(reserva.FechaLayout)).Scan(&n)
	return n, err
}
