package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-api/internal/application"
	"expense-tracker-api/internal/domain/entity"
	repo "expense-tracker-api/internal/domain/repository"
	"expense-tracker-api/internal/interface/middleware"
	"expense-tracker-api/pkg/validation"
)

type catRepoFake struct {
	createErr error
	deleteErr error
	created   *entity.Category
}

func (f *catRepoFake) ListByUser(ctx context.Context, userID string) ([]entity.Category, error) {
	return []entity.Category{{ID: "c1", Name: "Food & Dining"}}, nil
}
func (f *catRepoFake) GetByID(ctx context.Context, id, userID string) (*entity.Category, error) {
	return nil, repo.ErrNotFound
}
func (f *catRepoFake) Create(ctx context.Context, c *entity.Category) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = "new-cat"
	f.created = c
	return nil
}
func (f *catRepoFake) Update(ctx context.Context, c *entity.Category) error { return repo.ErrNotFound }
func (f *catRepoFake) Delete(ctx context.Context, id, userID string) error  { return f.deleteErr }

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func categoryTestRouter(fake *catRepoFake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	h := NewCategoryHandler(application.NewCategoryService(fake, nil), nil, false)

	r := gin.New()
	g := r.Group("/api/categories")
	g.Use(func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, "u1") })
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCategoryCreateEndpoint(t *testing.T) {
	fake := &catRepoFake{}
	r := categoryTestRouter(fake)

	w, env := doJSON(t, r, http.MethodPost, "/api/categories", `{"name":"Pets"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	require.NotNil(t, fake.created)
	assert.Equal(t, "u1", fake.created.UserID, "owner comes from the token, not the payload")
	assert.Equal(t, entity.DefaultCategoryColor, fake.created.Color)
}

func TestCategoryCreateValidation(t *testing.T) {
	r := categoryTestRouter(&catRepoFake{})

	w, env := doJSON(t, r, http.MethodPost, "/api/categories", `{"name":"", "color":"not-a-color"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "name")
}

func TestCategoryCreateConflict(t *testing.T) {
	r := categoryTestRouter(&catRepoFake{createErr: repo.ErrDuplicate})

	w, env := doJSON(t, r, http.MethodPost, "/api/categories", `{"name":"Pets"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
}

func TestCategoryDeleteNotFoundEndpoint(t *testing.T) {
	r := categoryTestRouter(&catRepoFake{deleteErr: repo.ErrNotFound})

	w, _ := doJSON(t, r, http.MethodDelete, "/api/categories/0d9f4a1e-0000-4000-8000-000000000001", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryMalformedIDLooksLikeMissing(t *testing.T) {
	r := categoryTestRouter(&catRepoFake{})

	w, _ := doJSON(t, r, http.MethodDelete, "/api/categories/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryListEndpoint(t *testing.T) {
	r := categoryTestRouter(&catRepoFake{})

	w, env := doJSON(t, r, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var cats []entity.Category
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	require.Len(t, cats, 1)
	assert.Equal(t, "Food & Dining", cats[0].Name)
}
