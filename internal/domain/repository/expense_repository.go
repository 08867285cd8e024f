package repository

import (
	"context"
	"time"

	"expense-tracker-api/internal/domain/entity"
)

// ExpenseFilter narrows and orders an expense listing. UserID is always
// set by the service from the resolved identity, never by the client.
type ExpenseFilter struct {
	UserID     string
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time // inclusive
	Search     string     // case-insensitive substring over title and description
	SortBy     string     // date, amount, title, created_at
	SortDesc   bool
	Page       int
	Limit      int
}

// ExpenseRepository defines the interface for expense persistence.
type ExpenseRepository interface {
	// List returns the matching page with categories expanded, plus the
	// total match count.
	List(ctx context.Context, f ExpenseFilter) ([]entity.Expense, int64, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Expense, error)
	// Create inserts the expense only if its category is owned by the same
	// user; the ownership check and the insert are one statement, so a
	// concurrent category delete cannot slip in between. Returns
	// ErrCategoryNotOwned otherwise.
	Create(ctx context.Context, e *entity.Expense) error
	// Update matches the expense on id and owner. When checkCategory is
	// set the same single-statement ownership guard as Create applies;
	// patches that do not touch the category skip it, so an expense whose
	// category has since been deleted stays editable.
	Update(ctx context.Context, e *entity.Expense, checkCategory bool) error
	Delete(ctx context.Context, id, userID string) error
	SetReceiptURL(ctx context.Context, id, userID, url string) error
}
