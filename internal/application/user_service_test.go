package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-api/internal/domain/entity"
	repo "expense-tracker-api/internal/domain/repository"
	"expense-tracker-api/pkg/helpers"
)

func newUserService(r repo.UserRepository) *UserService {
	return NewUserService(r, helpers.NewJWTManager("test-secret", time.Hour), nil, nil, false)
}

func TestRegisterSeedsDefaultsAndHashesPassword(t *testing.T) {
	var savedUser *entity.User
	var savedDefaults []entity.Category
	svc := newUserService(&userRepoStub{
		createFn: func(ctx context.Context, u *entity.User, defaults []entity.Category) error {
			u.ID = "u1"
			savedUser = u
			savedDefaults = defaults
			return nil
		},
	})

	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "  Alice@Example.COM ",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, entity.DefaultCurrency, u.Currency)
	assert.NotEqual(t, "password123", savedUser.Password)
	assert.True(t, helpers.CompareHashAndPassword(savedUser.Password, "password123"))
	assert.Len(t, savedDefaults, 8, "registration seeds the default categories")
}

func TestRegisterDuplicateAccount(t *testing.T) {
	svc := newUserService(&userRepoStub{
		createFn: func(ctx context.Context, u *entity.User, defaults []entity.Category) error {
			return repo.ErrDuplicate
		},
	})
	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@b.c", Password: "password123"})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestRegisterUnsupportedCurrency(t *testing.T) {
	svc := newUserService(&userRepoStub{})
	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@b.c", Password: "password123", Currency: "XYZ"})
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestLogin(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	stored := &entity.User{ID: "u1", Email: "alice@example.com", Password: hash}

	stub := &userRepoStub{
		getByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "alice@example.com" {
				return stored, nil
			}
			return nil, repo.ErrNotFound
		},
	}
	svc := newUserService(stub)

	u, err := svc.Login(context.Background(), "Alice@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown account and wrong password are indistinguishable
	_, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokenRoundTrip(t *testing.T) {
	svc := newUserService(&userRepoStub{})
	token, exp, err := svc.IssueToken(&entity.User{ID: "u1"})
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	stored := &entity.User{ID: "u1", Name: "Alice", MonthlyBudget: 5000, Currency: "INR"}
	var saved *entity.User
	svc := newUserService(&userRepoStub{
		getByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			cp := *stored
			return &cp, nil
		},
		updateFn: func(ctx context.Context, u *entity.User) error {
			saved = u
			return nil
		},
	})

	budget := 7500.0
	u, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{MonthlyBudget: &budget})
	require.NoError(t, err)
	assert.Equal(t, 7500.0, u.MonthlyBudget)
	assert.Equal(t, "Alice", saved.Name)
	assert.Equal(t, "INR", saved.Currency)
}

func TestUpdateProfileRejectsUnknownCurrency(t *testing.T) {
	svc := newUserService(&userRepoStub{
		getByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{ID: id, Currency: "INR"}, nil
		},
	})
	bad := "XYZ"
	_, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{Currency: &bad})
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}
