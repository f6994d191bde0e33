package web

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var digitosRe = regexp.MustCompile(`^\d{4}$`)

func (s *Server) handleAlumnoAuth(c *gin.Context) {
	var req struct {
		Rut                 string `json:"rut"`
		DigitosVerificacion string `json:"digitos_verificacion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Rut == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor ingresa tu RUT"})
		return
	}
	if !digitosRe.MatchString(req.DigitosVerificacion) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Los dígitos de verificación deben ser 4 números"})
		return
	}

	a, err := s.Alumnos.Authenticate(c.Request.Context(), req.Rut, req.DigitosVerificacion)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"mensaje": "Alumno no encontrado o datos incorrectos"})
		return
	}
	token, err := s.Creds.IssueAlumnoToken(c.Request.Context(), a.ID)
	if err != nil {
		s.Log.Error("issue alumno token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"alumno_id": a.ID,
		"nombre":    a.Nombre + " " + a.Apellido,
		"curso":     a.Curso,
	})
}

func (s *Server) handleTokenAuth(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Unable to log in with provided credentials."}})
		return
	}
	id, err := s.Creds.AuthenticateUsuario(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Unable to log in with provided credentials."}})
		return
	}
	token, err := s.Creds.IssueUsuarioToken(c.Request.Context(), id)
	if err != nil {
		s.Log.Error("issue usuario token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleMe lets clients validate a stored token cheaply.
func (s *Server) handleMe(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
		return
	}
	if p.AlumnoID != 0 {
		a, err := s.Alumnos.Get(c.Request.Context(), p.AlumnoID)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"tipo": "alumno", "alumno_id": a.ID,
				"nombre": a.Nombre + " " + a.Apellido, "curso": a.Curso,
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"tipo": "staff", "usuario_id": p.UsuarioID})
}

func (s *Server) handleLogout(c *gin.Context) {
	key := c.GetString("tokenKey")
	if key != "" {
		if err := s.Creds.Revoke(c.Request.Context(), key); err != nil {
			s.Log.Error("revoke token", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"detail": "ok"})
}
