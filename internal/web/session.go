package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frog-cafe/frogcafe/internal/client"
	"github.com/frog-cafe/frogcafe/internal/session"
)

const (
	// TokenCookie holds the session token in the browser
	TokenCookie = "frogcafe_token"

	gateKey = "gate"
	apiKey  = "api"
)

// cookieStore is a session.Store over one request/response pair. Writes
// are visible to later reads in the same request.
type cookieStore struct {
	c      *gin.Context
	path   string
	secure bool

	loaded bool
	token  string
}

var _ session.Store = (*cookieStore)(nil)

func newCookieStore(c *gin.Context, path string, secure bool) *cookieStore {
	return &cookieStore{c: c, path: path, secure: secure}
}

func (s *cookieStore) Load() (string, error) {
	if !s.loaded {
		token, err := s.c.Cookie(TokenCookie)
		if err != nil && err != http.ErrNoCookie {
			return "", err
		}
		s.token = token
		s.loaded = true
	}
	return s.token, nil
}

func (s *cookieStore) Save(token string) error {
	maxAge := 0 // browser session
	if exp, ok := session.ExpiresAt(token); ok {
		maxAge = int(time.Until(exp).Seconds())
		if maxAge <= 0 {
			maxAge = -1
		}
	}

	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(TokenCookie, token, maxAge, s.path, "", s.secure, true)
	s.token = token
	s.loaded = true
	return nil
}

func (s *cookieStore) Clear() error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(TokenCookie, "", -1, s.path, "", s.secure, true)
	s.token = ""
	s.loaded = true
	return nil
}

// getGate returns the request's auth gate set by sessionMiddleware
func getGate(c *gin.Context) *session.Gate {
	return c.MustGet(gateKey).(*session.Gate)
}

// getAPI returns the API client bound to the request's session
func getAPI(c *gin.Context) *client.Client {
	return c.MustGet(apiKey).(*client.Client)
}
