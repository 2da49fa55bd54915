package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-health-bot/internal/user/repo"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrOnboardingNotFound = errors.New("onboarding state not found")
	ErrInvalidGender      = errors.New("invalid gender")
	ErrInvalidAge         = errors.New("invalid age")
)

// UserService is the record-store façade for users and their onboarding state.
type UserService struct {
	users      *userrepo.UserRepo
	onboarding *userrepo.OnboardingRepo
}

func NewUserService(db *sqlx.DB) *UserService {
	return &UserService{
		users:      userrepo.NewUserRepo(db),
		onboarding: userrepo.NewOnboardingRepo(db),
	}
}

// EnsureTables creates the users and onboarding_states tables.
func (s *UserService) EnsureTables(ctx context.Context) error {
	if err := s.users.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure users: %w", err)
	}
	if err := s.onboarding.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure onboarding_states: %w", err)
	}
	return nil
}

// FindByPhone returns the user or ErrUserNotFound.
func (s *UserService) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	u, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Create inserts a user.
func (s *UserService) Create(ctx context.Context, u *entity.User) error {
	return s.users.Create(ctx, u)
}

// Update validates and applies a partial update to a user.
func (s *UserService) Update(ctx context.Context, phone string, patch entity.UserPatch) error {
	if patch.Gender != nil && !entity.ValidGender(*patch.Gender) {
		return ErrInvalidGender
	}
	if patch.Age != nil && (*patch.Age < 0 || *patch.Age > 120) {
		return ErrInvalidAge
	}
	if err := s.users.Update(ctx, phone, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// FindOnboarding returns the onboarding state or ErrOnboardingNotFound.
func (s *UserService) FindOnboarding(ctx context.Context, phone string) (*entity.OnboardingState, error) {
	o, err := s.onboarding.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOnboardingNotFound
		}
		return nil, err
	}
	return o, nil
}

// CreateOnboarding inserts the onboarding row for a user.
func (s *UserService) CreateOnboarding(ctx context.Context, o *entity.OnboardingState) error {
	return s.onboarding.Create(ctx, o)
}

// UpdateOnboarding advances the onboarding state.
func (s *UserService) UpdateOnboarding(ctx context.Context, phone string, patch entity.OnboardingPatch) error {
	if err := s.onboarding.Update(ctx, phone, patch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOnboardingNotFound
		}
		return err
	}
	return nil
}
