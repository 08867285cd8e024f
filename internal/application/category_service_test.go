package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-api/internal/domain/entity"
	repo "expense-tracker-api/internal/domain/repository"
)

type catRepoStub struct {
	listFn   func(ctx context.Context, userID string) ([]entity.Category, error)
	getFn    func(ctx context.Context, id, userID string) (*entity.Category, error)
	createFn func(ctx context.Context, c *entity.Category) error
	updateFn func(ctx context.Context, c *entity.Category) error
	deleteFn func(ctx context.Context, id, userID string) error
}

func (s *catRepoStub) ListByUser(ctx context.Context, userID string) ([]entity.Category, error) {
	return s.listFn(ctx, userID)
}
func (s *catRepoStub) GetByID(ctx context.Context, id, userID string) (*entity.Category, error) {
	return s.getFn(ctx, id, userID)
}
func (s *catRepoStub) Create(ctx context.Context, c *entity.Category) error { return s.createFn(ctx, c) }
func (s *catRepoStub) Update(ctx context.Context, c *entity.Category) error { return s.updateFn(ctx, c) }
func (s *catRepoStub) Delete(ctx context.Context, id, userID string) error {
	return s.deleteFn(ctx, id, userID)
}

func TestCategoryCreateDefaultsColorAndIcon(t *testing.T) {
	var saved *entity.Category
	svc := NewCategoryService(&catRepoStub{
		createFn: func(ctx context.Context, c *entity.Category) error {
			saved = c
			return nil
		},
	}, nil)

	out, err := svc.Create(context.Background(), "u1", CreateCategoryInput{Name: "Pets"})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategoryColor, out.Color)
	assert.Equal(t, entity.DefaultCategoryIcon, out.Icon)
	assert.Equal(t, "u1", saved.UserID)
	assert.False(t, saved.IsDefault)
}

func TestCategoryCreateKeepsExplicitLook(t *testing.T) {
	svc := NewCategoryService(&catRepoStub{
		createFn: func(ctx context.Context, c *entity.Category) error { return nil },
	}, nil)

	out, err := svc.Create(context.Background(), "u1", CreateCategoryInput{Name: "Pets", Color: "#000000", Icon: "paw"})
	require.NoError(t, err)
	assert.Equal(t, "#000000", out.Color)
	assert.Equal(t, "paw", out.Icon)
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	svc := NewCategoryService(&catRepoStub{
		createFn: func(ctx context.Context, c *entity.Category) error { return repo.ErrDuplicate },
	}, nil)

	_, err := svc.Create(context.Background(), "u1", CreateCategoryInput{Name: "Pets"})
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestCategoryUpdatePatchesOnlyProvidedFields(t *testing.T) {
	existing := &entity.Category{ID: "c1", UserID: "u1", Name: "Pets", Description: "animals", Color: "#000000", Icon: "paw"}
	var saved *entity.Category
	svc := NewCategoryService(&catRepoStub{
		getFn: func(ctx context.Context, id, userID string) (*entity.Category, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, c *entity.Category) error {
			saved = c
			return nil
		},
	}, nil)

	name := "Pets & Vets"
	out, err := svc.Update(context.Background(), "u1", "c1", UpdateCategoryInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Pets & Vets", out.Name)
	assert.Equal(t, "animals", saved.Description)
	assert.Equal(t, "#000000", saved.Color)
}

func TestCategoryUpdateNotFound(t *testing.T) {
	svc := NewCategoryService(&catRepoStub{
		getFn: func(ctx context.Context, id, userID string) (*entity.Category, error) {
			return nil, repo.ErrNotFound
		},
	}, nil)

	name := "x"
	_, err := svc.Update(context.Background(), "u1", "missing", UpdateCategoryInput{Name: &name})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryUpdateRenameToExistingName(t *testing.T) {
	svc := NewCategoryService(&catRepoStub{
		getFn: func(ctx context.Context, id, userID string) (*entity.Category, error) {
			return &entity.Category{ID: id, UserID: userID, Name: "Pets"}, nil
		},
		updateFn: func(ctx context.Context, c *entity.Category) error { return repo.ErrDuplicate },
	}, nil)

	name := "Food & Dining"
	_, err := svc.Update(context.Background(), "u1", "c1", UpdateCategoryInput{Name: &name})
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

// Default and foreign categories surface exactly like missing ones; the
// store folds all three cases into ErrNotFound.
func TestCategoryDeleteProtectedLooksLikeMissing(t *testing.T) {
	svc := NewCategoryService(&catRepoStub{
		deleteFn: func(ctx context.Context, id, userID string) error { return repo.ErrNotFound },
	}, nil)

	err := svc.Delete(context.Background(), "u1", "default-cat")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryList(t *testing.T) {
	svc := NewCategoryService(&catRepoStub{
		listFn: func(ctx context.Context, userID string) ([]entity.Category, error) {
			assert.Equal(t, "u1", userID)
			return []entity.Category{{ID: "c1"}, {ID: "c2"}}, nil
		},
	}, nil)

	out, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
