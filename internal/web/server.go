// Package web serves the colegio JSON API: token auth, the paginated
// reservation collection, and the read-only alumnos and comunicados
// endpoints.
package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/colegio/internal/reserva"
	"github.com/example/colegio/internal/store"
)

// Store interfaces let handler tests substitute in-memory fakes; the
// postgres repositories in internal/store are the production
// implementations.

type ReservaStore interface {
	List(ctx context.Context, limit, offset int) ([]reserva.Reserva, error)
	Count(ctx context.Context) (int, error)
	ListByFecha(ctx context.Context, fecha string) ([]reserva.Reserva, error)
	Get(ctx context.Context, id int64) (reserva.Reserva, error)
	Create(ctx context.Context, nombre, apellido, fecha, bloque string) (reserva.Reserva, error)
	Update(ctx context.Context, id int64, nombre, apellido, bloque string) (reserva.Reserva, error)
	Delete(ctx context.Context, id int64) error
}

type AlumnoStore interface {
	List(ctx context.Context, rut, curso string) ([]store.Alumno, error)
	Get(ctx context.Context, id int64) (store.Alumno, error)
	Authenticate(ctx context.Context, rut, digitos string) (store.Alumno, error)
}

type ComunicadoStore interface {
	List(ctx context.Context) ([]store.Comunicado, error)
}

type CredentialStore interface {
	AuthenticateUsuario(ctx context.Context, username, password string) (int64, error)
	IssueAlumnoToken(ctx context.Context, alumnoID int64) (string, error)
	IssueUsuarioToken(ctx context.Context, usuarioID int64) (string, error)
	Resolve(ctx context.Context, key string) (store.Principal, error)
	Revoke(ctx context.Context, key string) error
}

type Server struct {
	Reservas    ReservaStore
	Alumnos     AlumnoStore
	Comunicados ComunicadoStore
	Creds       CredentialStore

	BaseURL  string
	PageSize int
	Origins  []string
	Log      *zap.Logger

	// Now is the clock used for server-side eligibility checks; tests pin it.
	Now func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Router assembles the gin engine with middleware and all routes.
func (s *Server) Router() *gin.Engine {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	cc := cors.DefaultConfig()
	if len(s.Origins) == 0 || (len(s.Origins) == 1 && s.Origins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = s.Origins
	}
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
	r.Use(cors.New(cc))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok\n")
	})

	r.POST("/api/alumno-auth/", s.handleAlumnoAuth)
	r.POST("/api-token-auth/", s.handleTokenAuth)

	authed := r.Group("/api", s.requireToken())
	{
		authed.GET("/me/", s.handleMe)
		authed.POST("/logout/", s.handleLogout)

		authed.GET("/reservas-computador/", s.handleReservasList)
		authed.POST("/reservas-computador/", s.handleReservaCreate)
		authed.GET("/reservas-computador/:id/", s.handleReservaGet)
		authed.PUT("/reservas-computador/:id/", s.handleReservaUpdate)
		authed.DELETE("/reservas-computador/:id/", s.handleReservaDelete)

		authed.GET("/alumnos/", s.handleAlumnosList)
		authed.GET("/alumnos/:id/", s.handleAlumnoGet)

		authed.GET("/comunicados/", s.handleComunicadosList)
	}

	return r
}

// Run serves until ctx is cancelled, then drains with a short grace period.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) pageURL(path string, page int) string {
	base := strings.TrimRight(s.BaseURL, "/") + path
	if page <= 1 {
		return base
	}
	return base + "?page=" + strconv.Itoa(page)
}
