package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/colegio/internal/db"
	"github.com/example/colegio/internal/store"
)

type alumnoJSON struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Rut      string `json:"rut"`
	Curso    string `json:"curso"`
}

func toAlumnoJSON(a store.Alumno) alumnoJSON {
	return alumnoJSON{ID: a.ID, Nombre: a.Nombre, Apellido: a.Apellido, Rut: a.Rut, Curso: a.Curso}
}

func (s *Server) handleAlumnosList(c *gin.Context) {
	as, err := s.Alumnos.List(c.Request.Context(), c.Query("rut"), c.Query("curso"))
	if err != nil {
		s.serverError(c, "list alumnos", err)
		return
	}
	out := make([]alumnoJSON, 0, len(as))
	for _, a := range as {
		out = append(out, toAlumnoJSON(a))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleAlumnoGet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := s.Alumnos.Get(c.Request.Context(), id)
	if db.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		s.serverError(c, "get alumno", err)
		return
	}
	c.JSON(http.StatusOK, toAlumnoJSON(a))
}

type comunicadoJSON struct {
	ID        int64  `json:"id"`
	Titulo    string `json:"titulo"`
	Contenido string `json:"contenido"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleComunicadosList(c *gin.Context) {
	cs, err := s.Comunicados.List(c.Request.Context())
	if err != nil {
		s.serverError(c, "list comunicados", err)
		return
	}
	out := make([]comunicadoJSON, 0, len(cs))
	for _, x := range cs {
		out = append(out, comunicadoJSON{
			ID:        x.ID,
			Titulo:    x.Titulo,
			Contenido: x.Contenido,
			CreatedAt: x.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}
