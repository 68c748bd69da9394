package i

import "github.com/gin-gonic/gin"

// Controller mounts its handlers on the public and the authenticated group.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
