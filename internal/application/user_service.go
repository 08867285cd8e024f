package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/domain/entity"
	repo "expense-tracker-api/internal/domain/repository"
	"expense-tracker-api/pkg/helpers"
	"expense-tracker-api/pkg/mailer"
	mailtpl "expense-tracker-api/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountExists       = errors.New("username or email already registered")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// UserService covers registration, login and profile management.
type UserService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *UserService {
	return &UserService{Repo: r, JWT: jwt, Pub: pub, Logger: logger, MailEnabled: mailEnabled}
}

type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	Name          string
	MonthlyBudget float64
	Currency      string
}

// Register creates the account together with its eight default
// categories; the two inserts share one transaction so a failed seed
// fails the whole registration.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	currency := in.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	if !entity.IsValidCurrency(currency) {
		return nil, ErrUnsupportedCurrency
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Username:      in.Username,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Password:      hash,
		Name:          in.Name,
		MonthlyBudget: in.MonthlyBudget,
		Currency:      currency,
	}

	if err := s.Repo.CreateWithDefaultCategories(ctx, u, entity.DefaultCategories()); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	s.sendWelcomeEmail(ctx, u)
	return u, nil
}

// sendWelcomeEmail enqueues the welcome mail. Best effort: a queue
// failure must not fail the registration.
func (s *UserService) sendWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data: map[string]any{
			"Name":           u.Name,
			"CurrencySymbol": entity.CurrencySymbol(u.Currency),
			"MonthlyBudget":  u.MonthlyBudget,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

// Login validates email/password and returns the user.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken generates the access token for the user.
func (s *UserService) IssueToken(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
	}
	return token, exp, err
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name          *string
	MonthlyBudget *float64
	Currency      *string
}

// UpdateProfile applies the non-nil fields of in to the profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.MonthlyBudget != nil {
		u.MonthlyBudget = *in.MonthlyBudget
	}
	if in.Currency != nil {
		if !entity.IsValidCurrency(*in.Currency) {
			return nil, ErrUnsupportedCurrency
		}
		u.Currency = *in.Currency
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
