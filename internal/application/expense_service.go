package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/domain/entity"
	repo "expense-tracker-api/internal/domain/repository"
	"expense-tracker-api/pkg/helpers"
)

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrReceiptsUnavailable  = errors.New("receipt storage not configured")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ExpenseService manages the expense ledger. Elasticsearch indexing and
// GCS receipt storage are optional collaborators; either may be nil.
type ExpenseService struct {
	Repo      repo.ExpenseRepository
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
}

func NewExpenseService(r repo.ExpenseRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *ExpenseService {
	return &ExpenseService{Repo: r, Logger: logger, ES: es, ESIndex: esIndex, GCS: gcs, GCSBucket: gcsBucket}
}

// ExpenseView is the JSON projection of an expense with its category
// expanded.
type ExpenseView struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Amount        float64             `json:"amount"`
	Date          time.Time           `json:"date"`
	PaymentMethod string              `json:"payment_method"`
	Tags          []string            `json:"tags"`
	ReceiptURL    string              `json:"receipt_url,omitempty"`
	Category      *entity.CategoryRef `json:"category,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func NewExpenseView(e entity.Expense) ExpenseView {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return ExpenseView{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Amount:        e.Amount,
		Date:          e.Date,
		PaymentMethod: e.PaymentMethod,
		Tags:          tags,
		ReceiptURL:    e.ReceiptURL,
		Category:      e.Category,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func NewExpenseViews(es []entity.Expense) []ExpenseView {
	out := make([]ExpenseView, 0, len(es))
	for _, e := range es {
		out = append(out, NewExpenseView(e))
	}
	return out
}

// Pagination is the listing meta block.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// TotalPages computes ceil(total / limit).
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type ListExpensesInput struct {
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
	SortBy     string
	SortOrder  string // asc or desc
	Page       int
	Limit      int
}

// List returns one page of the caller's expenses. Defaults: page 1,
// limit 10, sorted by date descending; id breaks ties so pages stay
// stable.
func (s *ExpenseService) List(ctx context.Context, userID string, in ListExpensesInput) ([]ExpenseView, Pagination, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	sortBy := in.SortBy
	switch sortBy {
	case "date", "amount", "title", "created_at":
	default:
		sortBy = "date"
	}

	f := repo.ExpenseFilter{
		UserID:     userID,
		CategoryID: in.CategoryID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Search:     strings.TrimSpace(in.Search),
		SortBy:     sortBy,
		SortDesc:   in.SortOrder != "asc",
		Page:       page,
		Limit:      limit,
	}

	items, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, Pagination{}, err
	}
	p := Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages(total, limit)}
	return NewExpenseViews(items), p, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id string) (*ExpenseView, error) {
	e, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	v := NewExpenseView(*e)
	return &v, nil
}

type CreateExpenseInput struct {
	Title         string
	Amount        float64
	Description   string
	CategoryID    string
	Date          *time.Time
	PaymentMethod string
	Tags          []string
}

// Create inserts a new expense. The category must belong to the caller;
// the store enforces that inside the insert itself.
func (s *ExpenseService) Create(ctx context.Context, userID string, in CreateExpenseInput) (*ExpenseView, error) {
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}
	if !entity.IsValidPaymentMethod(method) {
		return nil, ErrInvalidPaymentMethod
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	e := &entity.Expense{
		UserID:        userID,
		CategoryID:    in.CategoryID,
		Title:         in.Title,
		Description:   in.Description,
		Amount:        in.Amount,
		Date:          date,
		PaymentMethod: method,
		Tags:          in.Tags,
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrCategoryNotOwned) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	// Reload to expand the category projection
	created, err := s.Repo.GetByID(ctx, e.ID, userID)
	if err != nil {
		return nil, err
	}
	s.indexExpense(ctx, created)
	v := NewExpenseView(*created)
	return &v, nil
}

type UpdateExpenseInput struct {
	Title         *string
	Amount        *float64
	Description   *string
	CategoryID    *string
	Date          *time.Time
	PaymentMethod *string
	Tags          []string
}

// Update applies the non-nil fields of in. Ownership of the category is
// re-validated inside the update statement, but only when the patch
// carries one: the stored category may have been deleted since, and a
// title or amount edit must still go through.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, in UpdateExpenseInput) (*ExpenseView, error) {
	e, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.CategoryID != nil {
		e.CategoryID = *in.CategoryID
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.PaymentMethod != nil {
		if !entity.IsValidPaymentMethod(*in.PaymentMethod) {
			return nil, ErrInvalidPaymentMethod
		}
		e.PaymentMethod = *in.PaymentMethod
	}
	if in.Tags != nil {
		e.Tags = in.Tags
	}

	if err := s.Repo.Update(ctx, e, in.CategoryID != nil); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrExpenseNotFound
		case errors.Is(err, repo.ErrCategoryNotOwned):
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	updated, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.indexExpense(ctx, updated)
	v := NewExpenseView(*updated)
	return &v, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	s.deleteExpenseDoc(ctx, id)
	return nil
}

// UploadReceipt stores the receipt file in GCS and records its public
// URL on the expense.
func (s *ExpenseService) UploadReceipt(ctx context.Context, userID, id string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrReceiptsUnavailable
	}
	if _, err := s.Repo.GetByID(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrExpenseNotFound
		}
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("receipts", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetReceiptURL(ctx, id, userID, url); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrExpenseNotFound
		}
		return "", err
	}
	return url, nil
}

// indexExpense mirrors the expense into Elasticsearch. Best effort: the
// SQL row is the source of truth, a failed index only logs a warning.
func (s *ExpenseService) indexExpense(ctx context.Context, e *entity.Expense) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          e.ID,
		"user_id":     e.UserID,
		"title":       e.Title,
		"description": e.Description,
		"tags":        e.Tags,
		"amount":      e.Amount,
		"date":        e.Date.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("expense_id", e.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("expense_id", e.ID).Warn("es index response error")
	}
}

func (s *ExpenseService) deleteExpenseDoc(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("expense_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over title, description and tags,
// restricted to the caller's documents. Empty result when Elasticsearch
// is not configured.
func (s *ExpenseService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description", "tags"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
