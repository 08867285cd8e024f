package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"expense-tracker-api/internal/container"
	handlers "expense-tracker-api/internal/interface/http"
	"expense-tracker-api/internal/interface/middleware"
	"expense-tracker-api/pkg/helpers"
)

type ExpenseModule struct {
	Handler *handlers.ExpenseHandler
	JWT     *helpers.JWTManager
}

func NewExpenseModule(h *handlers.ExpenseHandler, jwt *helpers.JWTManager) *ExpenseModule {
	return &ExpenseModule{Handler: h, JWT: jwt}
}

func (m *ExpenseModule) Name() string { return "expenses" }

func (m *ExpenseModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/expenses")
	g.Use(middleware.Auth(m.JWT))
	g.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/search", m.Handler.Search)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)

		// Uploads hit GCS, keep the limit tighter than the CRUD routes.
		uploadLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID(), nil)
		g.POST("/:id/receipt", uploadLimiter, m.Handler.UploadReceipt)
	}
}
