package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyToken is returned when a login produced no token
var ErrEmptyToken = errors.New("empty session token")

// State is the binary authentication state derived from the store
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Gate answers whether a session exists and performs the login/logout transitions
type Gate struct {
	store Store
	now   func() time.Time
}

// NewGate creates a gate over store
func NewGate(store Store) *Gate {
	return &Gate{store: store, now: time.Now}
}

// Store returns the underlying token store
func (g *Gate) Store() Store {
	return g.store
}

// State reports the current session state. An expired JWT is cleared
// from the store and reported as unauthenticated.
func (g *Gate) State() (State, error) {
	token, err := g.store.Load()
	if err != nil {
		return Unauthenticated, err
	}
	if token == "" {
		return Unauthenticated, nil
	}

	if expired(token, g.now()) {
		if err := g.store.Clear(); err != nil {
			return Unauthenticated, fmt.Errorf("failed to clear expired token: %w", err)
		}
		return Unauthenticated, nil
	}

	return Authenticated, nil
}

// Authenticated is State without the error; storage failures count as unauthenticated
func (g *Gate) Authenticated() bool {
	state, err := g.State()
	return err == nil && state == Authenticated
}

// Login stores token, moving the session to authenticated
func (g *Gate) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	return g.store.Save(token)
}

// Logout clears the token, moving the session to unauthenticated
func (g *Gate) Logout() error {
	return g.store.Clear()
}

// ExpiresAt returns the exp claim of a JWT token. ok is false for opaque
// tokens and JWTs without exp.
func ExpiresAt(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func expired(token string, now time.Time) bool {
	exp, ok := ExpiresAt(token)
	return ok && !now.Before(exp)
}
