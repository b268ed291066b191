package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frog-cafe/frogcafe/internal/session"
)

// sessionMiddleware binds a cookie-backed session and an API client to the request
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		store := newCookieStore(c, s.cookiePath(), s.config.CookieSecure)
		c.Set(gateKey, session.NewGate(store))
		c.Set(apiKey, s.api.WithSession(store))
		c.Next()
	}
}

// requireSession is the guard wrapped around protected routes. Pages
// redirect to the login path, JSON endpoints answer 401.
func (s *Server) requireSession(jsonResponse bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := getGate(c)
		state, err := gate.State()
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to read session")
		}

		if state == session.Authenticated {
			c.Next()
			return
		}

		s.logger.Debug().
			Str("path", c.Request.URL.Path).
			Msg("No session, redirecting to login")

		if jsonResponse {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Redirect(http.StatusSeeOther, s.link("/"))
		c.Abort()
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}
