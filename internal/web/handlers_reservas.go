package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/colegio/internal/db"
	"github.com/example/colegio/internal/reserva"
)

const reservasCollection = "/api/reservas-computador/"

// handleReservasList serves the collection as DRF page envelopes:
// {count, next, previous, results} with absolute next/previous URLs.
func (s *Server) handleReservasList(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
			return
		}
		page = n
	}

	total, err := s.Reservas.Count(c.Request.Context())
	if err != nil {
		s.serverError(c, "count reservas", err)
		return
	}
	items, err := s.Reservas.List(c.Request.Context(), s.PageSize, (page-1)*s.PageSize)
	if err != nil {
		s.serverError(c, "list reservas", err)
		return
	}
	if items == nil {
		items = []reserva.Reserva{}
	}

	var next, previous *string
	if page*s.PageSize < total {
		u := s.pageURL(reservasCollection, page+1)
		next = &u
	}
	if page > 1 {
		u := s.pageURL(reservasCollection, page-1)
		previous = &u
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    total,
		"next":     next,
		"previous": previous,
		"results":  items,
	})
}

func (s *Server) handleReservaCreate(c *gin.Context) {
	var req struct {
		AlumnoNombre   string `json:"alumno_nombre"`
		AlumnoApellido string `json:"alumno_apellido"`
		FechaReserva   string `json:"fecha_reserva"`
		BloqueReserva  string `json:"bloque_reserva"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de solicitud inválido"})
		return
	}
	if req.BloqueReserva != "" && !reserva.IsBloque(req.BloqueReserva) {
		c.JSON(http.StatusBadRequest, gin.H{"bloque_reserva": []string{"bloque horario desconocido"}})
		return
	}

	var fecha time.Time
	if req.FechaReserva != "" {
		var err error
		fecha, err = time.Parse(reserva.FechaLayout, req.FechaReserva)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"fecha_reserva": []string{"formato de fecha inválido, se espera YYYY-MM-DD"}})
			return
		}
	}

	// The client already ran these rules; running them again here keeps
	// direct API users within the same policy.
	var existing []reserva.Reserva
	if req.FechaReserva != "" {
		var err error
		existing, err = s.Reservas.ListByFecha(c.Request.Context(), req.FechaReserva)
		if err != nil {
			s.serverError(c, "list reservas by fecha", err)
			return
		}
	}
	decision := reserva.Evaluate(s.now(), reserva.Candidate{
		AlumnoNombre:   req.AlumnoNombre,
		AlumnoApellido: req.AlumnoApellido,
		FechaReserva:   fecha,
		BloqueReserva:  req.BloqueReserva,
	}, existing)
	if !decision.Accepted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  decision.Message(),
			"reason": string(decision.Reason),
		})
		return
	}

	created, err := s.Reservas.Create(c.Request.Context(),
		req.AlumnoNombre, req.AlumnoApellido, req.FechaReserva, req.BloqueReserva)
	if err != nil {
		s.serverError(c, "create reserva", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleReservaGet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	r, err := s.Reservas.Get(c.Request.Context(), id)
	if db.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		s.serverError(c, "get reserva", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleReservaUpdate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		AlumnoNombre   string `json:"alumno_nombre"`
		AlumnoApellido string `json:"alumno_apellido"`
		BloqueReserva  string `json:"bloque_reserva"`
	}
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.AlumnoNombre == "" || req.AlumnoApellido == "" || req.BloqueReserva == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, rellena todos los campos"})
		return
	}
	if !reserva.IsBloque(req.BloqueReserva) {
		c.JSON(http.StatusBadRequest, gin.H{"bloque_reserva": []string{"bloque horario desconocido"}})
		return
	}
	r, err := s.Reservas.Update(c.Request.Context(), id, req.AlumnoNombre, req.AlumnoApellido, req.BloqueReserva)
	if db.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		s.serverError(c, "update reserva", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleReservaDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := s.Reservas.Delete(c.Request.Context(), id)
	if db.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		s.serverError(c, "delete reserva", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return id, true
}

func (s *Server) serverError(c *gin.Context, msg string, err error) {
	s.Log.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
