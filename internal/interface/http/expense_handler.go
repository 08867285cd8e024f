package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/application"
	"expense-tracker-api/pkg/response"
	"expense-tracker-api/pkg/validation"
)

const maxReceiptSize = 10 << 20 // 10 MiB

type ExpenseHandler struct {
	Svc    *application.ExpenseService
	Logger *logrus.Logger
	Dev    bool
}

func NewExpenseHandler(svc *application.ExpenseService, logger *logrus.Logger, dev bool) *ExpenseHandler {
	return &ExpenseHandler{Svc: svc, Logger: logger, Dev: dev}
}

type createExpenseRequest struct {
	Title         string     `json:"title" binding:"required,min=1,max=200"`
	Amount        *float64   `json:"amount" binding:"required,gte=0"`
	Description   string     `json:"description" binding:"omitempty,max=1000"`
	Category      string     `json:"category" binding:"required,uuid"`
	Date          *time.Time `json:"date"`
	PaymentMethod string     `json:"payment_method" binding:"omitempty,oneof=cash card upi netbanking other"`
	Tags          []string   `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

type updateExpenseRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Amount        *float64   `json:"amount" binding:"omitempty,gte=0"`
	Description   *string    `json:"description" binding:"omitempty,max=1000"`
	Category      *string    `json:"category" binding:"omitempty,uuid"`
	Date          *time.Time `json:"date"`
	PaymentMethod *string    `json:"payment_method" binding:"omitempty,oneof=cash card upi netbanking other"`
	Tags          []string   `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// List GET /api/expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	in := application.ListExpensesInput{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("order"),
	}

	details := map[string]string{}
	if v := c.Query("category"); v != "" {
		if _, err := uuid.Parse(v); err != nil {
			details["category"] = "must be a valid uuid"
		}
		in.CategoryID = v
	}
	if v := c.Query("start_date"); v != "" {
		t, _, ok := parseDate(v)
		if !ok {
			details["start_date"] = "must be YYYY-MM-DD or RFC3339"
		}
		in.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, layout, ok := parseDate(v)
		if !ok {
			details["end_date"] = "must be YYYY-MM-DD or RFC3339"
		}
		// a bare date means "through the end of that day"
		if layout == "2006-01-02" {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		in.EndDate = &t
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			details["page"] = "must be a positive integer"
		}
		in.Page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			details["limit"] = "must be a positive integer"
		}
		in.Limit = n
	}
	if len(details) > 0 {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", details)
		return
	}

	items, page, err := h.Svc.List(c.Request.Context(), userID(c), in)
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "list expenses failed")
		return
	}
	response.Success(c, http.StatusOK, items, "expenses", gin.H{"pagination": page})
}

// Get GET /api/expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	v, err := h.Svc.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		if errors.Is(err, application.ErrExpenseNotFound) {
			response.Error(c, http.StatusNotFound, "expense not found", nil)
			return
		}
		internal(c, h.Logger, h.Dev, err, "get expense failed")
		return
	}
	response.Success(c, http.StatusOK, v, "expense", nil)
}

// Create POST /api/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	v, err := h.Svc.Create(c.Request.Context(), userID(c), application.CreateExpenseInput{
		Title:         req.Title,
		Amount:        *req.Amount,
		Description:   req.Description,
		CategoryID:    req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Tags:          req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidCategory):
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"category": "category not found"})
		case errors.Is(err, application.ErrInvalidPaymentMethod):
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"payment_method": "unsupported payment method"})
		default:
			internal(c, h.Logger, h.Dev, err, "create expense failed")
		}
		return
	}
	response.Success(c, http.StatusCreated, v, "expense created", nil)
}

// Update PUT /api/expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	v, err := h.Svc.Update(c.Request.Context(), userID(c), id, application.UpdateExpenseInput{
		Title:         req.Title,
		Amount:        req.Amount,
		Description:   req.Description,
		CategoryID:    req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Tags:          req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrExpenseNotFound):
			response.Error(c, http.StatusNotFound, "expense not found", nil)
		case errors.Is(err, application.ErrInvalidCategory):
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"category": "category not found"})
		case errors.Is(err, application.ErrInvalidPaymentMethod):
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"payment_method": "unsupported payment method"})
		default:
			internal(c, h.Logger, h.Dev, err, "update expense failed")
		}
		return
	}
	response.Success(c, http.StatusOK, v, "expense updated", nil)
}

// Delete DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), userID(c), id); err != nil {
		if errors.Is(err, application.ErrExpenseNotFound) {
			response.Error(c, http.StatusNotFound, "expense not found", nil)
			return
		}
		internal(c, h.Logger, h.Dev, err, "delete expense failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "expense deleted", nil)
}

// UploadReceipt POST /api/expenses/:id/receipt
func (h *ExpenseHandler) UploadReceipt(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("receipt")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"receipt": "file is required"})
		return
	}
	if fh.Size > maxReceiptSize {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"receipt": "file exceeds 10MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "open receipt failed")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadReceipt(c.Request.Context(), userID(c), id, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrExpenseNotFound):
			response.Error(c, http.StatusNotFound, "expense not found", nil)
		case errors.Is(err, application.ErrReceiptsUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "receipt storage not configured", nil)
		default:
			internal(c, h.Logger, h.Dev, err, "upload receipt failed")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"receipt_url": url}, "receipt uploaded", nil)
}

// Search GET /api/expenses/search
func (h *ExpenseHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", map[string]string{"q": "query is required"})
		return
	}
	size := 0
	if v := c.Query("size"); v != "" {
		size, _ = strconv.Atoi(v)
	}
	hits, err := h.Svc.Search(c.Request.Context(), userID(c), q, size)
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "search expenses failed")
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
