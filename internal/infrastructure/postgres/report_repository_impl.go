package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"expense-tracker-api/internal/domain/entity"
	"expense-tracker-api/internal/domain/repository"
)

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) TotalSince(ctx context.Context, userID string, since time.Time) (repository.PeriodTotal, error) {
	var t repository.PeriodTotal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND date >= $2
	`, userID, since).Scan(&t.Total, &t.Count)
	return t, err
}

// CategoryBreakdown groups the window's spending by category. The join
// is a LEFT JOIN so expenses whose category has been deleted still show
// up, collected under a synthetic "(deleted)" entry, and the breakdown
// sums to the same figure as TotalSince over the same window.
func (r *ReportRepository) CategoryBreakdown(ctx context.Context, userID string, from, to time.Time) ([]repository.CategoryTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(c.id::text, ''), COALESCE(c.name, '(deleted)'),
		       COALESCE(c.color, '#9ca3af'), COALESCE(c.icon, 'circle-off'),
		       SUM(e.amount), COUNT(*)
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1 AND e.date >= $2 AND e.date < $3
		GROUP BY c.id, c.name, c.color, c.icon
		ORDER BY SUM(e.amount) DESC
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.CategoryTotal, 0)
	for rows.Next() {
		var ct repository.CategoryTotal
		if err := rows.Scan(&ct.Category.ID, &ct.Category.Name, &ct.Category.Color,
			&ct.Category.Icon, &ct.Total, &ct.Count); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

func (r *ReportRepository) Recent(ctx context.Context, userID string, limit int) ([]entity.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1
		ORDER BY e.date DESC, e.id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Expense, 0, limit)
	for rows.Next() {
		var e entity.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ReportRepository) MonthlyTotals(ctx context.Context, userID string, from, to time.Time) ([]repository.MonthTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM date)::int AS month, SUM(amount), COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY month
		ORDER BY month
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.MonthTotal, 0, 12)
	for rows.Next() {
		var mt repository.MonthTotal
		if err := rows.Scan(&mt.Month, &mt.Total, &mt.Count); err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	return out, rows.Err()
}

func (r *ReportRepository) DailyTotals(ctx context.Context, userID string, since time.Time) ([]repository.DayTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD') AS day, SUM(amount), COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND date >= $2
		GROUP BY day
		ORDER BY day
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.DayTotal, 0)
	for rows.Next() {
		var dt repository.DayTotal
		if err := rows.Scan(&dt.Day, &dt.Total, &dt.Count); err != nil {
			return nil, err
		}
		out = append(out, dt)
	}
	return out, rows.Err()
}

func (r *ReportRepository) Counts(ctx context.Context) (repository.StoreCounts, error) {
	var c repository.StoreCounts
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM expenses)
	`).Scan(&c.Users, &c.Categories, &c.Expenses)
	return c, err
}

var _ repository.ReportRepository = (*ReportRepository)(nil)
