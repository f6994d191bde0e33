package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/colegio/internal/store"
)

const principalKey = "principal"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Header("X-Request-ID", reqID)
		c.Next()
		s.Log.Info("request",
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// requireToken resolves "Authorization: Token <key>" and stashes the
// principal. Responses follow DRF's wording so existing clients keep their
// error handling.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		key, ok := strings.CutPrefix(h, "Token ")
		if !ok || strings.TrimSpace(key) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token header."})
			return
		}
		p, err := s.Creds.Resolve(c.Request.Context(), strings.TrimSpace(key))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}
		c.Set(principalKey, p)
		c.Set("tokenKey", strings.TrimSpace(key))
		c.Next()
	}
}

func principalFrom(c *gin.Context) (store.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return store.Principal{}, false
	}
	p, ok := v.(store.Principal)
	return p, ok
}
