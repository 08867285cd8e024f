package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/domain/entity"
	repo "expense-tracker-api/internal/domain/repository"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
)

// CategoryService manages a user's spending categories.
type CategoryService struct {
	Repo   repo.CategoryRepository
	Logger *logrus.Logger
}

func NewCategoryService(r repo.CategoryRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Repo: r, Logger: logger}
}

// List returns all categories of the caller, most recent first.
// Category counts per user are small, so no pagination.
func (s *CategoryService) List(ctx context.Context, userID string) ([]entity.Category, error) {
	return s.Repo.ListByUser(ctx, userID)
}

type CreateCategoryInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

func (s *CategoryService) Create(ctx context.Context, userID string, in CreateCategoryInput) (*entity.Category, error) {
	c := &entity.Category{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
	}
	if c.Color == "" {
		c.Color = entity.DefaultCategoryColor
	}
	if c.Icon == "" {
		c.Icon = entity.DefaultCategoryIcon
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return c, nil
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

// Update applies the non-nil fields of in. The is_default flag is
// never touched.
func (s *CategoryService) Update(ctx context.Context, userID, id string, in UpdateCategoryInput) (*entity.Category, error) {
	c, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the category. Absent, foreign and default categories
// all come back as not found; existence of other users' data must not
// leak through the error.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
