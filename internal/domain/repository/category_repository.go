package repository

import (
	"context"

	"expense-tracker-api/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence.
// Every operation is owner-scoped: the user id is part of the predicate,
// never a post-filter.
type CategoryRepository interface {
	// ListByUser returns all categories of the user, most recent first.
	ListByUser(ctx context.Context, userID string) ([]entity.Category, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Category, error)
	// Create returns ErrDuplicate when the user already has a category
	// with the same name.
	Create(ctx context.Context, c *entity.Category) error
	// Update matches on id and owner; ErrNotFound when no row matched.
	// The is_default flag is never altered.
	Update(ctx context.Context, c *entity.Category) error
	// Delete matches on id, owner and is_default=false in one predicate,
	// so "missing", "foreign" and "protected" are indistinguishable.
	Delete(ctx context.Context, id, userID string) error
}
