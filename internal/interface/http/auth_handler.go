package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/application"
	"expense-tracker-api/internal/domain/entity"
	"expense-tracker-api/pkg/helpers"
	"expense-tracker-api/pkg/response"
	"expense-tracker-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.UserService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
	Dev     bool
}

func NewAuthHandler(svc *application.UserService, cookieDomain string, cookieSecure bool, logger *logrus.Logger, dev bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: helpers.NewCookie(cookieDomain, cookieSecure), Logger: logger, Dev: dev}
}

type registerRequest struct {
	Username      string  `json:"username" binding:"required,username"`
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,pwd"`
	Name          string  `json:"name" binding:"omitempty,max=100"`
	MonthlyBudget float64 `json:"monthly_budget" binding:"omitempty,gte=0"`
	Currency      string  `json:"currency" binding:"omitempty,len=3,uppercase"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=100"`
	MonthlyBudget *float64 `json:"monthly_budget" binding:"omitempty,gte=0"`
	Currency      *string  `json:"currency" binding:"omitempty,len=3,uppercase"`
}

func userPayload(u *entity.User) gin.H {
	return gin.H{
		"id":              u.ID,
		"username":        u.Username,
		"email":           u.Email,
		"name":            u.Name,
		"monthly_budget":  u.MonthlyBudget,
		"currency":        u.Currency,
		"currency_symbol": entity.CurrencySymbol(u.Currency),
		"created_at":      u.CreatedAt,
		"updated_at":      u.UpdatedAt,
	}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		MonthlyBudget: req.MonthlyBudget,
		Currency:      req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAccountExists):
			response.Error(c, http.StatusConflict, "username or email already registered", nil)
		case errors.Is(err, application.ErrUnsupportedCurrency):
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"currency": "unsupported currency"})
		default:
			internal(c, h.Logger, h.Dev, err, "register failed")
		}
		return
	}

	token, exp, err := h.Svc.IssueToken(u)
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "issue token failed")
		return
	}
	h.Cookies.SetToken(c, token, exp)
	response.Success(c, http.StatusCreated, gin.H{"user": userPayload(u), "token": token},
		"registered", gin.H{"token_expires_at": exp})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	token, exp, err := h.Svc.IssueToken(u)
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "issue token failed")
		return
	}
	h.Cookies.SetToken(c, token, exp)
	response.Success(c, http.StatusOK, gin.H{"user": userPayload(u), "token": token},
		"login successful", gin.H{"token_expires_at": exp})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// GetProfile GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		internal(c, h.Logger, h.Dev, err, "get profile failed")
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "profile", nil)
}

// UpdateProfile PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), userID(c), application.UpdateProfileInput{
		Name:          req.Name,
		MonthlyBudget: req.MonthlyBudget,
		Currency:      req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrUnsupportedCurrency):
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"currency": "unsupported currency"})
		default:
			internal(c, h.Logger, h.Dev, err, "update profile failed")
		}
		return
	}
	response.Success(c, http.StatusOK, userPayload(u), "profile updated", nil)
}
