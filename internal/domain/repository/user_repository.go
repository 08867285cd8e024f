package repository

import (
	"context"

	"expense-tracker-api/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	// CreateWithDefaultCategories inserts the user and its seeded default
	// categories as a single transaction; a failure rolls back both so a
	// half-seeded account can never be observed.
	CreateWithDefaultCategories(ctx context.Context, u *entity.User, defaults []entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
