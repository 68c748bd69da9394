package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/beka-birhanu/maze-runner/identity"
	"github.com/beka-birhanu/maze-runner/infrastruture/token"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	registerErr error
	user        *domain.User
}

func (s *stubAuth) Register(string, string) error { return s.registerErr }

func (s *stubAuth) SignIn(username, password string) (*domain.User, string, error) {
	if s.user == nil || username != s.user.Username || password != "right" {
		return nil, "", service.ErrInvalidCredentials
	}
	return s.user, "signed-token", nil
}

func post(engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestIdentityServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuth{user: &domain.User{ID: uuid.New(), Username: "theseus", BestScore: 900}}

	engine := gin.New()
	NewIdentityServer(auth).RegisterPublic(engine.Group("/v1"))

	t.Run("register", func(t *testing.T) {
		rec := post(engine, "/v1/auth/register", AuthRequest{Username: "theseus", Password: "right"})
		assert.Equal(t, http.StatusCreated, rec.Code)

		auth.registerErr = errors.New("weak password")
		rec = post(engine, "/v1/auth/register", AuthRequest{Username: "theseus", Password: "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		auth.registerErr = nil

		rec = post(engine, "/v1/auth/register", gin.H{"username": "theseus"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login", func(t *testing.T) {
		rec := post(engine, "/v1/auth/login", AuthRequest{Username: "theseus", Password: "right"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, 900, resp.BestScore)

		rec = post(engine, "/v1/auth/login", AuthRequest{Username: "theseus", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokenizer := token.NewJwtService("secret", "maze-runner")
	playerID := uuid.New()

	engine := gin.New()
	engine.GET("/me", Authoriz(tokenizer), func(c *gin.Context) {
		id, name, ok := PlayerFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "username": name})
	})

	valid, err := tokenizer.Generate(map[string]interface{}{"userID": playerID.String(), "username": "theseus"}, time.Minute)
	require.NoError(t, err)
	noID, err := tokenizer.Generate(map[string]interface{}{"username": "theseus"}, time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"token without player", "Bearer " + noID, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), playerID.String())
			}
		})
	}

	t.Run("no player in context", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		_, _, ok := PlayerFromContext(c)
		assert.False(t, ok)
	})
}
