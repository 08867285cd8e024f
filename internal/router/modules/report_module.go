package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"expense-tracker-api/internal/container"
	handlers "expense-tracker-api/internal/interface/http"
	"expense-tracker-api/internal/interface/middleware"
	"expense-tracker-api/pkg/helpers"
)

type ReportModule struct {
	Handler *handlers.ReportHandler
	JWT     *helpers.JWTManager
}

func NewReportModule(h *handlers.ReportHandler, jwt *helpers.JWTManager) *ReportModule {
	return &ReportModule{Handler: h, JWT: jwt}
}

func (m *ReportModule) Name() string { return "reports" }

func (m *ReportModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/reports")
	g.Use(middleware.Auth(m.JWT))
	g.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("/dashboard", m.Handler.Dashboard)
		g.GET("/monthly-chart", m.Handler.MonthlyChart)
		g.GET("/trends", m.Handler.Trends)
	}
}
