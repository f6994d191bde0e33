package store

import (
	"context"
	"time"

	"github.com/example/colegio/internal/db"
)

type Comunicado struct {
	ID        int64
	Titulo    string
	Contenido string
	CreatedAt time.Time
}

type Comunicados struct{ db *db.DB }

func NewComunicados(d *db.DB) *Comunicados { return &Comunicados{db: d} }

func (s *Comunicados) List(ctx context.Context) ([]Comunicado, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, titulo, contenido, created_at
FROM comunicados
ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comunicado
	for rows.Next() {
		var c Comunicado
		if err := rows.Scan(&c.ID, &c.Titulo, &c.Contenido, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Comunicados) Create(ctx context.Context, titulo, contenido string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
INSERT INTO comunicados (titulo, contenido)
VALUES ($1, $2)
RETURNING id`, titulo, contenido).Scan(&id)
	return id, db.WrapNotFound(err)
}
