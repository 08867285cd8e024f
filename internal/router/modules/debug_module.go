package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"expense-tracker-api/internal/container"
	handlers "expense-tracker-api/internal/interface/http"
	"expense-tracker-api/internal/interface/middleware"
)

// DebugModule exposes the store counters and expvar under /api/debug.
// Only added to the registry in development mode.
type DebugModule struct {
	Handler *handlers.DebugHandler
}

func NewDebugModule(h *handlers.DebugHandler) *DebugModule {
	return &DebugModule{Handler: h}
}

func (m *DebugModule) Name() string { return "debug" }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, m.Handler.Vars)
	rg.GET("/debug/stats", rl, m.Handler.Stats)
}
