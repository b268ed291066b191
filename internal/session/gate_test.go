package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type failingStore struct{ err error }

func (f failingStore) Load() (string, error) { return "", f.err }
func (f failingStore) Save(string) error      { return f.err }
func (f failingStore) Clear() error           { return f.err }

func TestGate_Transitions(t *testing.T) {
	store := NewMemoryStore("")
	gate := NewGate(store)

	state, err := gate.State()
	require.NoError(t, err)
	assert.Equal(t, Unauthenticated, state)

	require.NoError(t, gate.Login("opaque-token"))
	assert.True(t, gate.Authenticated())

	require.NoError(t, gate.Logout())
	assert.False(t, gate.Authenticated())
}

func TestGate_LoginRejectsEmptyToken(t *testing.T) {
	gate := NewGate(NewMemoryStore(""))

	err := gate.Login("   ")
	assert.ErrorIs(t, err, ErrEmptyToken)
	assert.False(t, gate.Authenticated())
}

func TestGate_ExpiredJWTIsCleared(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{
		"sub": "barista",
		"exp": now.Add(-time.Minute).Unix(),
	})

	store := NewMemoryStore(token)
	gate := NewGate(store)
	gate.now = func() time.Time { return now }

	state, err := gate.State()
	require.NoError(t, err)
	assert.Equal(t, Unauthenticated, state)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored, "expired token should be destroyed")
}

func TestGate_ValidJWT(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{
		"sub": "barista",
		"exp": now.Add(time.Hour).Unix(),
	})

	gate := NewGate(NewMemoryStore(token))
	gate.now = func() time.Time { return now }

	state, err := gate.State()
	require.NoError(t, err)
	assert.Equal(t, Authenticated, state)
}

func TestGate_JWTWithoutExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "barista"})

	gate := NewGate(NewMemoryStore(token))
	assert.True(t, gate.Authenticated())

	_, ok := ExpiresAt(token)
	assert.False(t, ok)
}

func TestGate_StoreFailure(t *testing.T) {
	gate := NewGate(failingStore{err: errors.New("keychain locked")})

	state, err := gate.State()
	require.Error(t, err)
	assert.Equal(t, Unauthenticated, state)
	assert.False(t, gate.Authenticated())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
