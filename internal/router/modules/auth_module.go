package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"expense-tracker-api/internal/container"
	handlers "expense-tracker-api/internal/interface/http"
	"expense-tracker-api/internal/interface/middleware"
	"expense-tracker-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get a tight per-IP limit to slow down
	// enumeration and brute force.
	credLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", credLimiter, m.Handler.Register)
	rg.POST("/auth/login", credLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
