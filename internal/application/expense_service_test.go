package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-api/internal/domain/entity"
	repo "expense-tracker-api/internal/domain/repository"
)

type expRepoStub struct {
	listFn       func(ctx context.Context, f repo.ExpenseFilter) ([]entity.Expense, int64, error)
	getFn        func(ctx context.Context, id, userID string) (*entity.Expense, error)
	createFn     func(ctx context.Context, e *entity.Expense) error
	updateFn     func(ctx context.Context, e *entity.Expense, checkCategory bool) error
	deleteFn     func(ctx context.Context, id, userID string) error
	setReceiptFn func(ctx context.Context, id, userID, url string) error
}

func (s *expRepoStub) List(ctx context.Context, f repo.ExpenseFilter) ([]entity.Expense, int64, error) {
	return s.listFn(ctx, f)
}
func (s *expRepoStub) GetByID(ctx context.Context, id, userID string) (*entity.Expense, error) {
	return s.getFn(ctx, id, userID)
}
func (s *expRepoStub) Create(ctx context.Context, e *entity.Expense) error { return s.createFn(ctx, e) }
func (s *expRepoStub) Update(ctx context.Context, e *entity.Expense, checkCategory bool) error {
	return s.updateFn(ctx, e, checkCategory)
}
func (s *expRepoStub) Delete(ctx context.Context, id, userID string) error {
	return s.deleteFn(ctx, id, userID)
}
func (s *expRepoStub) SetReceiptURL(ctx context.Context, id, userID, url string) error {
	return s.setReceiptFn(ctx, id, userID, url)
}

func newExpenseService(r repo.ExpenseRepository) *ExpenseService {
	return NewExpenseService(r, nil, nil, "", nil, "")
}

func TestExpenseListNormalizesPaging(t *testing.T) {
	cases := []struct {
		name      string
		in        ListExpensesInput
		wantPage  int
		wantLimit int
		wantSort  string
		wantDesc  bool
	}{
		{"defaults", ListExpensesInput{}, 1, 10, "date", true},
		{"zero page", ListExpensesInput{Page: 0, Limit: 25}, 1, 25, "date", true},
		{"negative page", ListExpensesInput{Page: -3}, 1, 10, "date", true},
		{"limit capped", ListExpensesInput{Limit: 1000}, 1, 100, "date", true},
		{"sort whitelist", ListExpensesInput{SortBy: "password"}, 1, 10, "date", true},
		{"amount asc", ListExpensesInput{SortBy: "amount", SortOrder: "asc"}, 1, 10, "amount", false},
		{"created_at", ListExpensesInput{SortBy: "created_at"}, 1, 10, "created_at", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got repo.ExpenseFilter
			svc := newExpenseService(&expRepoStub{
				listFn: func(ctx context.Context, f repo.ExpenseFilter) ([]entity.Expense, int64, error) {
					got = f
					return nil, 0, nil
				},
			})
			_, _, err := svc.List(context.Background(), "u1", tc.in)
			require.NoError(t, err)
			assert.Equal(t, "u1", got.UserID)
			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantLimit, got.Limit)
			assert.Equal(t, tc.wantSort, got.SortBy)
			assert.Equal(t, tc.wantDesc, got.SortDesc)
		})
	}
}

func TestExpenseListPaginationMeta(t *testing.T) {
	svc := newExpenseService(&expRepoStub{
		listFn: func(ctx context.Context, f repo.ExpenseFilter) ([]entity.Expense, int64, error) {
			return []entity.Expense{{ID: "e1"}}, 25, nil
		},
	})
	_, p, err := svc.List(context.Background(), "u1", ListExpensesInput{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 3, p.TotalPages)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 3, totalPages(25, 10))
}

func TestExpenseCreateDefaults(t *testing.T) {
	var saved *entity.Expense
	svc := newExpenseService(&expRepoStub{
		createFn: func(ctx context.Context, e *entity.Expense) error {
			e.ID = "e1"
			saved = e
			return nil
		},
		getFn: func(ctx context.Context, id, userID string) (*entity.Expense, error) {
			cp := *saved
			cp.Category = &entity.CategoryRef{ID: cp.CategoryID, Name: "Food & Dining"}
			return &cp, nil
		},
	})

	before := time.Now()
	v, err := svc.Create(context.Background(), "u1", CreateExpenseInput{
		Title:      "Lunch",
		Amount:     12.50,
		CategoryID: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, v.PaymentMethod)
	assert.False(t, v.Date.Before(before), "date defaults to now")
	assert.NotNil(t, v.Tags, "tags serialize as [] not null")
	assert.Empty(t, v.Tags)
	require.NotNil(t, v.Category)
	assert.Equal(t, "Food & Dining", v.Category.Name)
}

func TestExpenseCreateForeignCategory(t *testing.T) {
	svc := newExpenseService(&expRepoStub{
		createFn: func(ctx context.Context, e *entity.Expense) error { return repo.ErrCategoryNotOwned },
	})
	_, err := svc.Create(context.Background(), "u1", CreateExpenseInput{Title: "x", Amount: 1, CategoryID: "foreign"})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestExpenseCreateInvalidPaymentMethod(t *testing.T) {
	svc := newExpenseService(&expRepoStub{})
	_, err := svc.Create(context.Background(), "u1", CreateExpenseInput{Title: "x", Amount: 1, CategoryID: "c1", PaymentMethod: "bitcoin"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestExpenseUpdatePatchesOnlyProvidedFields(t *testing.T) {
	existing := &entity.Expense{ID: "e1", UserID: "u1", CategoryID: "c1", Title: "Lunch", Amount: 12, PaymentMethod: entity.PaymentCash, Tags: []string{"food"}}
	var saved *entity.Expense
	svc := newExpenseService(&expRepoStub{
		getFn: func(ctx context.Context, id, userID string) (*entity.Expense, error) {
			if saved != nil {
				cp := *saved
				return &cp, nil
			}
			cp := *existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, e *entity.Expense, checkCategory bool) error {
			saved = e
			return nil
		},
	})

	amount := 15.75
	v, err := svc.Update(context.Background(), "u1", "e1", UpdateExpenseInput{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 15.75, v.Amount)
	assert.Equal(t, "Lunch", v.Title)
	assert.Equal(t, []string{"food"}, v.Tags)
}

func TestExpenseUpdateNotFound(t *testing.T) {
	svc := newExpenseService(&expRepoStub{
		getFn: func(ctx context.Context, id, userID string) (*entity.Expense, error) {
			return nil, repo.ErrNotFound
		},
	})
	title := "x"
	_, err := svc.Update(context.Background(), "u1", "missing", UpdateExpenseInput{Title: &title})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestExpenseUpdateSwitchToForeignCategory(t *testing.T) {
	svc := newExpenseService(&expRepoStub{
		getFn: func(ctx context.Context, id, userID string) (*entity.Expense, error) {
			return &entity.Expense{ID: id, UserID: userID, CategoryID: "c1"}, nil
		},
		updateFn: func(ctx context.Context, e *entity.Expense, checkCategory bool) error {
			assert.True(t, checkCategory, "category ownership is re-checked when the patch carries one")
			return repo.ErrCategoryNotOwned
		},
	})
	foreign := "foreign-cat"
	_, err := svc.Update(context.Background(), "u1", "e1", UpdateExpenseInput{CategoryID: &foreign})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestExpenseUpdateSkipsCategoryCheckWhenUntouched(t *testing.T) {
	// The stored category may have been deleted after the expense was
	// created. A patch that leaves the category alone must still apply.
	var gotCheck bool
	svc := newExpenseService(&expRepoStub{
		getFn: func(ctx context.Context, id, userID string) (*entity.Expense, error) {
			return &entity.Expense{ID: id, UserID: userID, CategoryID: "deleted-cat", Title: "Lunch", Amount: 12}, nil
		},
		updateFn: func(ctx context.Context, e *entity.Expense, checkCategory bool) error {
			gotCheck = checkCategory
			return nil
		},
	})
	title := "fixed"
	v, err := svc.Update(context.Background(), "u1", "e1", UpdateExpenseInput{Title: &title})
	require.NoError(t, err)
	assert.False(t, gotCheck, "no category in the patch, no ownership check")
	assert.Equal(t, "fixed", v.Title)
	assert.Equal(t, "deleted-cat", v.CategoryID)
}

func TestExpenseDeleteNotFound(t *testing.T) {
	svc := newExpenseService(&expRepoStub{
		deleteFn: func(ctx context.Context, id, userID string) error { return repo.ErrNotFound },
	})
	err := svc.Delete(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestExpenseSearchTrimsFilter(t *testing.T) {
	var got repo.ExpenseFilter
	svc := newExpenseService(&expRepoStub{
		listFn: func(ctx context.Context, f repo.ExpenseFilter) ([]entity.Expense, int64, error) {
			got = f
			return nil, 0, nil
		},
	})
	_, _, err := svc.List(context.Background(), "u1", ListExpensesInput{Search: "  coffee  "})
	require.NoError(t, err)
	assert.Equal(t, "coffee", got.Search)
	assert.False(t, strings.ContainsAny(got.Search, " "))
}

func TestUploadReceiptWithoutStorage(t *testing.T) {
	svc := newExpenseService(&expRepoStub{})
	_, err := svc.UploadReceipt(context.Background(), "u1", "e1", strings.NewReader("img"), "receipt.png", "image/png")
	assert.ErrorIs(t, err, ErrReceiptsUnavailable)
}

func TestSearchWithoutElasticsearch(t *testing.T) {
	svc := newExpenseService(&expRepoStub{})
	hits, err := svc.Search(context.Background(), "u1", "coffee", 10)
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}
