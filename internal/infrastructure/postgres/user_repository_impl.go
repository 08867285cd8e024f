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

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateWithDefaultCategories inserts the user row and the seeded default
// categories in one transaction. Either everything commits or the
// registration fails as a whole.
func (r *UserRepository) CreateWithDefaultCategories(ctx context.Context, u *entity.User, defaults []entity.Category) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, name, monthly_budget, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Password, u.Name, u.MonthlyBudget, u.Currency)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	batch := &pgx.Batch{}
	for i := range defaults {
		c := &defaults[i]
		batch.Queue(`
			INSERT INTO categories (user_id, name, description, color, icon, is_default)
			VALUES ($1, $2, $3, $4, $5, true)
		`, u.ID, c.Name, c.Description, c.Color, c.Icon)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepository) getBy(ctx context.Context, predicate, arg string) (*entity.User, error) {
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, name, monthly_budget, currency, created_at, updated_at
		FROM users
		WHERE `+predicate, arg)

	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Name,
		&u.MonthlyBudget, &u.Currency, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, monthly_budget = $2, currency = $3, updated_at = $4
		WHERE id = $5
	`, u.Name, u.MonthlyBudget, u.Currency, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
