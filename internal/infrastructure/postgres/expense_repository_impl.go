package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"expense-tracker-api/internal/domain/entity"
	"expense-tracker-api/internal/domain/repository"
)

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// sortColumns whitelists client-supplied sort fields to real columns.
var sortColumns = map[string]string{
	"date":       "e.date",
	"amount":     "e.amount",
	"title":      "e.title",
	"created_at": "e.created_at",
}

const expenseColumns = `
	e.id, e.user_id, e.category_id, e.title, e.description, e.amount, e.date,
	e.payment_method, e.tags, e.receipt_url, e.created_at, e.updated_at,
	c.id, c.name, c.color, c.icon`

// scanExpense scans a joined expense row. The category side of the join
// is nullable: an expense can outlive a concurrently deleted category.
func scanExpense(row pgx.Row, e *entity.Expense) error {
	var refID, refName, refColor, refIcon *string
	if err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Title, &e.Description,
		&e.Amount, &e.Date, &e.PaymentMethod, &e.Tags, &e.ReceiptURL,
		&e.CreatedAt, &e.UpdatedAt, &refID, &refName, &refColor, &refIcon); err != nil {
		return err
	}
	if refID != nil {
		e.Category = &entity.CategoryRef{ID: *refID, Name: *refName, Color: *refColor, Icon: *refIcon}
	}
	return nil
}

// buildFilter renders the WHERE clause for f. The owner predicate comes
// first and is unconditional.
func buildFilter(f repository.ExpenseFilter) (string, []any) {
	clauses := []string{"e.user_id = $1"}
	args := []any{f.UserID}

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.CategoryID != "" {
		add("e.category_id = $%d", f.CategoryID)
	}
	if f.StartDate != nil {
		add("e.date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("e.date <= $%d", *f.EndDate)
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(e.title ILIKE $%d OR e.description ILIKE $%d)", n, n))
	}

	return strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *ExpenseRepository) List(ctx context.Context, f repository.ExpenseFilter) ([]entity.Expense, int64, error) {
	where, args := buildFilter(f)

	var total int64
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM expenses e WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "e.date"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}

	offset := (f.Page - 1) * f.Limit
	// id as secondary key keeps pagination stable when the sort field ties
	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE %s
		ORDER BY %s %s, e.id %s
		LIMIT %d OFFSET %d
	`, expenseColumns, where, col, dir, dir, f.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Expense, 0, f.Limit)
	for rows.Next() {
		var e entity.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id, userID string) (*entity.Expense, error) {
	e := &entity.Expense{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1 AND e.user_id = $2
	`, id, userID)
	if err := scanExpense(row, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Create guards the insert with the category-ownership predicate in the
// same statement, so a category deleted between "check" and "write" by a
// concurrent request cannot be referenced.
func (r *ExpenseRepository) Create(ctx context.Context, e *entity.Expense) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (user_id, category_id, title, description, amount, date, payment_method, tags)
		SELECT $1, c.id, $3, $4, $5, $6, $7, $8
		FROM categories c
		WHERE c.id = $2 AND c.user_id = $1
		RETURNING id, created_at, updated_at
	`, e.UserID, e.CategoryID, e.Title, e.Description, e.Amount, e.Date, e.PaymentMethod, e.Tags)
	if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrCategoryNotOwned
		}
		return err
	}
	return nil
}

// Update rewrites the full mutable column set; the service loads the
// record first and applies the patch. The EXISTS guard re-validates
// category ownership inside the statement, but only when the patch
// actually carries a category: the current category_id may dangle after
// a category delete, and that must not block edits to other fields.
func (r *ExpenseRepository) Update(ctx context.Context, e *entity.Expense, checkCategory bool) error {
	e.UpdatedAt = time.Now()

	query := `
		UPDATE expenses e
		SET category_id = $3, title = $4, description = $5, amount = $6,
		    date = $7, payment_method = $8, tags = $9, updated_at = $10
		WHERE e.id = $1 AND e.user_id = $2`
	if checkCategory {
		query += `
		  AND EXISTS (SELECT 1 FROM categories c WHERE c.id = $3 AND c.user_id = $2)`
	}

	res, err := r.pool.Exec(ctx, query,
		e.ID, e.UserID, e.CategoryID, e.Title, e.Description, e.Amount,
		e.Date, e.PaymentMethod, e.Tags, e.UpdatedAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		if !checkCategory {
			return repository.ErrNotFound
		}
		// Zero rows is ambiguous: either the expense is gone (or foreign)
		// or the category guard failed. One probe disambiguates.
		var exists bool
		if probeErr := r.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM expenses WHERE id = $1 AND user_id = $2)",
			e.ID, e.UserID).Scan(&exists); probeErr != nil {
			return probeErr
		}
		if exists {
			return repository.ErrCategoryNotOwned
		}
		return repository.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM expenses
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) SetReceiptURL(ctx context.Context, id, userID, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE expenses
		SET receipt_url = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, id, userID, url)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ExpenseRepository = (*ExpenseRepository)(nil)
