package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
	ContextPlayerID   = "playerID"
	ContextUsername   = "username"
)

// Authoriz rejects requests without a valid bearer token and stores the
// caller's claims, ID and username in the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		rawID, _ := claims["userID"].(string)
		playerID, err := uuid.Parse(rawID)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		username, _ := claims["username"].(string)

		c.Set(ContextUserClaims, claims)
		c.Set(ContextPlayerID, playerID)
		c.Set(ContextUsername, username)
		c.Next()
	}
}

// PlayerFromContext returns the caller stored by Authoriz.
func PlayerFromContext(c *gin.Context) (uuid.UUID, string, bool) {
	v, ok := c.Get(ContextPlayerID)
	if !ok {
		return uuid.Nil, "", false
	}
	id, ok := v.(uuid.UUID)
	return id, c.GetString(ContextUsername), ok
}
