package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/quizdesk/quizdesk/internal/models"
)

// In-memory token store for tests. Safe for concurrent use so tests may
// hammer the session manager from multiple goroutines.
type MemStore struct {
	mu   sync.Mutex
	pair models.TokenPair

	// Fail next operation with this error if set
	Err error
}

func NewMemStore(access string, refresh string) *MemStore {
	return &MemStore{pair: models.TokenPair{AccessToken: access, RefreshToken: refresh}}
}

func (s *MemStore) Tokens() (models.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.TokenPair{}, s.Err
	}
	return s.pair, nil
}

func (s *MemStore) SetTokens(pair models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.pair = pair
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.pair = models.TokenPair{}
	return nil
}

// SignedJWT returns a HS256 signed token with email claim and given lifetime.
// Good enough for the client which never verifies signatures anyway.
func SignedJWT(t *testing.T, email string, ttl time.Duration) string {
	t.Helper()

	now := time.Now().Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err, "test token should sign without errors")
	return signed
}
