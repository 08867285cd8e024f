package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/application"
	"expense-tracker-api/pkg/response"
)

type ReportHandler struct {
	Svc    *application.ReportService
	Logger *logrus.Logger
	Dev    bool
}

func NewReportHandler(svc *application.ReportService, logger *logrus.Logger, dev bool) *ReportHandler {
	return &ReportHandler{Svc: svc, Logger: logger, Dev: dev}
}

// Dashboard GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.Svc.Dashboard(c.Request.Context(), userID(c))
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "dashboard failed")
		return
	}
	response.Success(c, http.StatusOK, d, "dashboard", nil)
}

// MonthlyChart GET /api/reports/monthly-chart?year=2026
func (h *ReportHandler) MonthlyChart(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1970 || n > 9999 {
			response.Error(c, http.StatusBadRequest, "invalid query parameters", map[string]string{"year": "must be a four digit year"})
			return
		}
		year = n
	}
	points, err := h.Svc.MonthlyChart(c.Request.Context(), userID(c), year)
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "monthly chart failed")
		return
	}
	response.Success(c, http.StatusOK, points, "monthly chart", gin.H{"year": year})
}

// Trends GET /api/reports/trends?period=30
func (h *ReportHandler) Trends(c *gin.Context) {
	days := 0
	if v := c.Query("period"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.Error(c, http.StatusBadRequest, "invalid query parameters", map[string]string{"period": "must be a positive number of days"})
			return
		}
		days = n
	}
	points, err := h.Svc.Trends(c.Request.Context(), userID(c), days)
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "trends failed")
		return
	}
	response.Success(c, http.StatusOK, points, "spending trends", gin.H{"days": len(points)})
}
