package handlers

import (
	"expvar"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/application"
	"expense-tracker-api/pkg/response"
)

// DebugHandler exposes store counters and process vars. Only registered
// in development mode.
type DebugHandler struct {
	Reports *application.ReportService
	Logger  *logrus.Logger
}

func NewDebugHandler(reports *application.ReportService, logger *logrus.Logger) *DebugHandler {
	return &DebugHandler{Reports: reports, Logger: logger}
}

// Stats GET /api/debug/stats
func (h *DebugHandler) Stats(c *gin.Context) {
	counts, err := h.Reports.Counts(c.Request.Context())
	if err != nil {
		internal(c, h.Logger, true, err, "debug stats failed")
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	response.Success(c, http.StatusOK, gin.H{
		"store": counts,
		"runtime": gin.H{
			"goroutines":   runtime.NumGoroutine(),
			"heap_alloc":   ms.HeapAlloc,
			"total_alloc":  ms.TotalAlloc,
			"num_gc":       ms.NumGC,
			"go_max_procs": runtime.GOMAXPROCS(0),
		},
	}, "debug stats", nil)
}

// Vars GET /api/debug/vars
func (h *DebugHandler) Vars(c *gin.Context) {
	expvar.Handler().ServeHTTP(c.Writer, c.Request)
}
