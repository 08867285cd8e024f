package repository

import (
	"context"
	"time"

	"expense-tracker-api/internal/domain/entity"
)

// PeriodTotal is the sum and count of expenses in a time window.
type PeriodTotal struct {
	Total float64
	Count int64
}

// CategoryTotal is a per-category aggregate joined to its category row.
type CategoryTotal struct {
	Category entity.CategoryRef
	Total    float64
	Count    int64
}

// MonthTotal is a per-calendar-month aggregate. Month is 1-12.
type MonthTotal struct {
	Month int
	Total float64
	Count int64
}

// DayTotal is a per-calendar-day aggregate. Day is ISO YYYY-MM-DD.
type DayTotal struct {
	Day   string
	Total float64
	Count int64
}

// StoreCounts are global row counts, exposed on the development-only
// stats endpoint.
type StoreCounts struct {
	Users      int64
	Categories int64
	Expenses   int64
}

// ReportRepository defines the read-only aggregation queries behind the
// reporting endpoints. All queries are owner-scoped.
type ReportRepository interface {
	// TotalSince sums expenses with date >= since. A window with no
	// expenses yields {0, 0}, never an error.
	TotalSince(ctx context.Context, userID string, since time.Time) (PeriodTotal, error)
	// CategoryBreakdown groups expenses in [from, to) by category, joined
	// to {name, color, icon}, sorted by total descending.
	CategoryBreakdown(ctx context.Context, userID string, from, to time.Time) ([]CategoryTotal, error)
	// Recent returns the most recent expenses by date descending, with
	// categories expanded.
	Recent(ctx context.Context, userID string, limit int) ([]entity.Expense, error)
	// MonthlyTotals groups expenses in [from, to) by calendar month.
	// Months without expenses are absent; the service gap-fills.
	MonthlyTotals(ctx context.Context, userID string, from, to time.Time) ([]MonthTotal, error)
	// DailyTotals groups expenses with date >= since by calendar day,
	// ascending. Days without expenses are absent and stay absent.
	DailyTotals(ctx context.Context, userID string, since time.Time) ([]DayTotal, error)
	Counts(ctx context.Context) (StoreCounts, error)
}
