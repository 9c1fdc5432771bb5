package tokenfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdesk/quizdesk/internal/models"
)

func Test_Store(t *testing.T) {
	t.Parallel()

	newStore := func(t *testing.T) *Store {
		s, err := New(filepath.Join(t.TempDir(), "quizdesk", "tokens.json"))
		require.NoError(t, err, "store should be created without errors")
		return s
	}

	t.Run("empty path rejected", func(t *testing.T) {
		_, err := New("")
		require.Error(t, err)
	})

	t.Run("missing file means logged out", func(t *testing.T) {
		s := newStore(t)

		pair, err := s.Tokens()

		require.NoError(t, err, "missing token file is not an error")
		assert.True(t, pair.IsZero(), "pair should be empty")
	})

	t.Run("set then read", func(t *testing.T) {
		s := newStore(t)

		err := s.SetTokens(models.TokenPair{AccessToken: "access", RefreshToken: "refresh"})
		require.NoError(t, err)

		pair, err := s.Tokens()
		require.NoError(t, err)
		assert.Equal(t, "access", pair.AccessToken)
		assert.Equal(t, "refresh", pair.RefreshToken)
		assert.True(t, pair.IsComplete())
	})

	t.Run("set replaces pair wholesale", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.SetTokens(models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}))
		require.NoError(t, s.SetTokens(models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}))

		pair, err := s.Tokens()
		require.NoError(t, err)
		assert.Equal(t, models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, pair)
	})

	t.Run("clear removes both values", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.SetTokens(models.TokenPair{AccessToken: "a", RefreshToken: "r"}))
		require.NoError(t, s.Clear())

		pair, err := s.Tokens()
		require.NoError(t, err)
		assert.True(t, pair.IsZero(), "pair should be empty after clear")
	})

	t.Run("clear on empty store", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Clear(), "clearing an empty store should not fail")
	})

	t.Run("corrupted file surfaces error", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, os.WriteFile(s.path, []byte("not-json"), 0o600))

		_, err := s.Tokens()
		require.Error(t, err, "corrupted token file should be reported")
	})
}
