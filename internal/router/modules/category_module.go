package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"expense-tracker-api/internal/container"
	handlers "expense-tracker-api/internal/interface/http"
	"expense-tracker-api/internal/interface/middleware"
	"expense-tracker-api/pkg/helpers"
)

type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
}

func NewCategoryModule(h *handlers.CategoryHandler, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt}
}

func (m *CategoryModule) Name() string { return "categories" }

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.Use(middleware.Auth(m.JWT))
	g.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
