package router

import "github.com/gin-gonic/gin"

// Module is a feature area that registers its own routes on the shared
// /api group.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
