package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Alumno is a student record as the API exposes it.
type Alumno struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Rut      string `json:"rut"`
	Curso    string `json:"curso"`
}

// AlumnosFilter narrows the alumnos listing. Zero value lists everyone.
type AlumnosFilter struct {
	Rut   string
	Curso string
}

// Alumnos lists students, optionally filtered by rut or curso.
func (c *Client) Alumnos(ctx context.Context, f AlumnosFilter) ([]Alumno, error) {
	path := "api/alumnos/"
	q := url.Values{}
	if f.Rut != "" {
		q.Set("rut", f.Rut)
	}
	if f.Curso != "" {
		q.Set("curso", f.Curso)
	}
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	raw, err := FetchAll(ctx, c.baseURL, path, c.getPage)
	if err != nil {
		return nil, err
	}
	return decodeAll[Alumno](raw)
}

// AlumnoByID fetches one student.
func (c *Client) AlumnoByID(ctx context.Context, id int64) (Alumno, error) {
	var a Alumno
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("api/alumnos/%d/", id), nil, nil, &a)
	return a, err
}
