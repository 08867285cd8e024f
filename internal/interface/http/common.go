package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/interface/middleware"
	"expense-tracker-api/pkg/response"
)

func userID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

// paramID validates the :id path parameter. A malformed id can never
// match a record, so it surfaces as not found rather than a validation
// error.
func paramID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusNotFound, "not found", nil)
		return "", false
	}
	return id, true
}

// internal logs the failure with detail and returns a generic message;
// the error string is echoed only in development mode.
func internal(c *gin.Context, logger *logrus.Logger, dev bool, err error, msg string) {
	if logger != nil {
		logger.WithError(err).WithField("path", c.FullPath()).Error(msg)
	}
	var detail interface{}
	if dev && err != nil {
		detail = err.Error()
	}
	response.Error(c, http.StatusInternalServerError, "something went wrong", detail)
}

// dateLayouts accepted for the start/end query filters.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, string, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, l, true
		}
	}
	return time.Time{}, "", false
}
