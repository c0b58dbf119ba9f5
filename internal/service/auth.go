package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository"
)

var (
	ErrIdentityExists   = repository.ErrIdentityExists
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrInvalidPIN       = errors.New("PIN must be exactly 4 digits")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByNames(ctx context.Context, displayName, familyName string) (domain.User, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
	SetAdmin(ctx context.Context, id uint, admin bool) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
	now  func() time.Time
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, displayName, familyName, pin string) (domain.User, error) {
	return s.signup(ctx, displayName, familyName, pin, false)
}

// Login matches both names case-insensitively. An unknown identity and a wrong
// PIN are reported the same way.
func (s *AuthService) Login(ctx context.Context, displayName, familyName, pin string) (domain.User, error) {
	user, err := s.repo.FindByNames(ctx, strings.TrimSpace(displayName), strings.TrimSpace(familyName))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrWrongCredentials
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByNames -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PIN), []byte(pin)); err != nil {
		return domain.User{}, ErrWrongCredentials
	}

	now := s.now().UTC()
	if err = s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		zap.L().Warn("failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	user.PIN = ""

	return user, nil
}

// EnsureAdmin makes sure the configured organizer identity exists and holds
// the admin flag. An existing identity keeps its PIN.
func (s *AuthService) EnsureAdmin(ctx context.Context, displayName, familyName, pin string) (domain.User, error) {
	if !validPIN(pin) {
		return domain.User{}, ErrInvalidPIN
	}

	user, err := s.repo.FindByNames(ctx, strings.TrimSpace(displayName), strings.TrimSpace(familyName))
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return s.signup(ctx, displayName, familyName, pin, true)
	case err != nil:
		return domain.User{}, fmt.Errorf("s.repo.FindByNames -> %w", err)
	case user.Admin:
		user.PIN = ""
		return user, nil
	}

	promoted, err := s.repo.SetAdmin(ctx, user.ID, true)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.SetAdmin -> %w", err)
	}
	promoted.PIN = ""

	return promoted, nil
}

func (s *AuthService) signup(ctx context.Context, displayName, familyName, pin string, admin bool) (domain.User, error) {
	displayName = strings.TrimSpace(displayName)
	familyName = strings.TrimSpace(familyName)

	// The unique index still guards against a concurrent signup of the same pair.
	_, err := s.repo.FindByNames(ctx, displayName, familyName)
	if err == nil {
		return domain.User{}, ErrIdentityExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByNames -> %w", err)
	}

	hash, err := hashPIN(pin)
	if err != nil {
		return domain.User{}, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, domain.User{
		DisplayName: displayName,
		FamilyName:  familyName,
		PIN:         hash,
		Admin:       admin,
		LastLoginAt: &now,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	created.PIN = ""

	return created, nil
}

func hashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
