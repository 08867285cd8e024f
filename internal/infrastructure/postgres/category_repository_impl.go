package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"expense-tracker-api/internal/domain/entity"
	"expense-tracker-api/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, description, color, icon, is_default, created_at, updated_at`

func scanCategory(row pgx.Row, c *entity.Category) error {
	return row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Color, &c.Icon,
		&c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id, userID string) (*entity.Category, error) {
	c := &entity.Category{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err := scanCategory(row, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, description, color, icon, is_default)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.Name, c.Description, c.Color, c.Icon)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	c.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET name = $1, description = $2, color = $3, icon = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`, c.Name, c.Description, c.Color, c.Icon, c.UpdatedAt, c.ID, c.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete folds ownership and the default-category protection into the
// predicate; a protected or foreign row deletes zero rows and surfaces
// as not found.
func (r *CategoryRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM categories
		WHERE id = $1 AND user_id = $2 AND is_default = false
	`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
