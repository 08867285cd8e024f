package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"expense-tracker-api/internal/domain/entity"
	repo "expense-tracker-api/internal/domain/repository"
)

// ReportService is the read-only aggregation layer over the expense
// ledger. Every report is scoped to the caller.
type ReportService struct {
	Repo   repo.ReportRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewReportService(r repo.ReportRepository, users repo.UserRepository, logger *logrus.Logger) *ReportService {
	return &ReportService{Repo: r, Users: users, Logger: logger}
}

// PeriodSummary is the sum and count for a window.
type PeriodSummary struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// MonthlySummary adds the budget view to the current-month window.
// Remaining is budget minus total and deliberately goes negative when
// the month overshoots the budget.
type MonthlySummary struct {
	Total     float64 `json:"total"`
	Count     int64   `json:"count"`
	Budget    float64 `json:"budget"`
	Remaining float64 `json:"remaining"`
}

// BreakdownEntry is one category's share of the current month.
type BreakdownEntry struct {
	Category entity.CategoryRef `json:"category"`
	Total    float64            `json:"total"`
	Count    int64              `json:"count"`
}

// Dashboard bundles the four independent summary blocks.
type Dashboard struct {
	Monthly           MonthlySummary   `json:"monthly"`
	Yearly            PeriodSummary    `json:"yearly"`
	CategoryBreakdown []BreakdownEntry `json:"category_breakdown"`
	Recent            []ExpenseView    `json:"recent"`
}

// MonthPoint is one month of the chart series. Months without expenses
// still appear with zero amount and count.
type MonthPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

// TrendPoint is one day of the trend series. Days without expenses are
// omitted, unlike the monthly chart.
type TrendPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

const recentLimit = 5

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// Dashboard computes the monthly and yearly summaries, the current-month
// category breakdown and the five most recent expenses. The five store
// queries are independent and read-only, so they run concurrently.
func (s *ReportService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	now := time.Now()
	som := startOfMonth(now)
	soy := startOfYear(now)

	var (
		user      *entity.User
		monthly   repo.PeriodTotal
		yearly    repo.PeriodTotal
		breakdown []repo.CategoryTotal
		recent    []entity.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.Users.GetByID(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		monthly, err = s.Repo.TotalSince(gctx, userID, som)
		return err
	})
	g.Go(func() (err error) {
		yearly, err = s.Repo.TotalSince(gctx, userID, soy)
		return err
	})
	g.Go(func() (err error) {
		breakdown, err = s.Repo.CategoryBreakdown(gctx, userID, som, som.AddDate(0, 1, 0))
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.Repo.Recent(gctx, userID, recentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]BreakdownEntry, 0, len(breakdown))
	for _, ct := range breakdown {
		entries = append(entries, BreakdownEntry{Category: ct.Category, Total: ct.Total, Count: ct.Count})
	}

	return &Dashboard{
		Monthly: MonthlySummary{
			Total:     monthly.Total,
			Count:     monthly.Count,
			Budget:    user.MonthlyBudget,
			Remaining: user.MonthlyBudget - monthly.Total,
		},
		Yearly:            PeriodSummary{Total: yearly.Total, Count: yearly.Count},
		CategoryBreakdown: entries,
		Recent:            NewExpenseViews(recent),
	}, nil
}

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyChart returns exactly 12 entries, Jan through Dec, for the
// given year (current year when zero). Consumers never have to handle
// missing months.
func (s *ReportService) MonthlyChart(ctx context.Context, userID string, year int) ([]MonthPoint, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)

	rows, err := s.Repo.MonthlyTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return fillMonths(rows), nil
}

func fillMonths(rows []repo.MonthTotal) []MonthPoint {
	out := make([]MonthPoint, 12)
	for i := range out {
		out[i] = MonthPoint{Month: monthLabels[i]}
	}
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		out[r.Month-1].Amount = r.Total
		out[r.Month-1].Count = r.Count
	}
	return out
}

const (
	defaultTrendDays = 30
	maxTrendDays     = 365
)

// Trends returns per-day totals for the last N days, ascending. Only
// days with at least one expense appear in the output.
func (s *ReportService) Trends(ctx context.Context, userID string, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}
	since := time.Now().AddDate(0, 0, -days)

	rows, err := s.Repo.DailyTotals(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	out := make([]TrendPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, TrendPoint{Date: r.Day, Amount: r.Total, Count: r.Count})
	}
	return out, nil
}

// Counts surfaces global store counters for the development stats
// endpoint.
func (s *ReportService) Counts(ctx context.Context) (repo.StoreCounts, error) {
	return s.Repo.Counts(ctx)
}
