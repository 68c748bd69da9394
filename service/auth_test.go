package service

import (
	"testing"
	"time"

	"github.com/beka-birhanu/maze-runner/infrastruture/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	_, err := NewAuthService(nil, nil)
	assert.ErrorIs(t, err, ErrNilDependency)

	tokenizer := token.NewJwtService("test-secret", "maze-runner")
	auth, err := NewAuthService(newFakeUserRepo(), tokenizer)
	require.NoError(t, err)

	const password = "Tr1cky-Labyrinth-Walker"

	t.Run("register", func(t *testing.T) {
		require.NoError(t, auth.Register("theseus", password))
		assert.Error(t, auth.Register("theseus", password))
		assert.Error(t, auth.Register("minotaur", "1234"))
	})

	t.Run("sign in", func(t *testing.T) {
		user, tok, err := auth.SignIn("theseus", password)
		require.NoError(t, err)
		assert.Equal(t, "theseus", user.Username)

		claims, err := tokenizer.Decode(tok)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims["userID"])
		assert.InDelta(t, float64(time.Now().Add(tokenLifetime).Unix()), claims["exp"], 5)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, _, err := auth.SignIn("theseus", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = auth.SignIn("ariadne", password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
