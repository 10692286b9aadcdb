package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pf-responses/respuestas-api/internal/constants"
	"github.com/pf-responses/respuestas-api/internal/models"
	"github.com/pf-responses/respuestas-api/internal/repository"
	"github.com/pf-responses/respuestas-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired         = errors.New("email is required")
	ErrUsernameRequired      = errors.New("username is required")
	ErrEmailTooLong          = errors.New("email is too long")
	ErrUsernameTooLong       = errors.New("username is too long")
	ErrInvalidRole           = errors.New("invalid user role")
	ErrEmailTaken            = errors.New("a user with this email already exists")
	ErrUsernameTaken         = errors.New("a user with this username already exists")
	ErrUserConflict          = errors.New("a user with this email or username already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrPasswordTooShort      = errors.New("password too short")
	ErrUserNotFound          = errors.New("user not found")
	ErrFailedToHashPassword  = errors.New("failed to hash password")
	ErrFailedToCreateUser    = errors.New("failed to create user")
	ErrFailedToCreateProfile = errors.New("failed to create profile")
)

// AuthService handles account provisioning and authentication.
type AuthService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// ProfileInput carries the optional personal data created alongside a user.
type ProfileInput struct {
	FirstName string
	LastName  string
}

// CreateUserInput represents the information needed to create a user.
type CreateUserInput struct {
	Email       string
	Username    string
	Password    string
	Role        models.UserRole
	IsStaff     bool
	IsSuperuser bool
	Profile     *ProfileInput
}

// CreateUser creates a regular account. The email is normalized and the password
// is stored only as a bcrypt hash.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, ErrEmailRequired
	}
	email := utils.NormalizeEmail(input.Email)
	if len(email) > constants.MaxEmailLength {
		return nil, ErrEmailTooLong
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if utf8.RuneCountInString(username) > constants.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}

	role := input.Role
	if role == "" {
		role = models.RoleRegular
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		Role:         role,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		IsStaff:      input.IsStaff,
		IsSuperuser:  input.IsSuperuser,
	}

	var profile *models.Profile
	if input.Profile != nil {
		profile = &models.Profile{
			FirstName: strings.TrimSpace(input.Profile.FirstName),
			LastName:  strings.TrimSpace(input.Profile.LastName),
		}
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEntry):
			return nil, ErrUserConflict
		case errors.Is(err, repository.ErrCreateUser):
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateProfile):
			return nil, ErrFailedToCreateProfile
		default:
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	return user, nil
}

// CreateSuperuser creates an administrator. Staff, superuser and the
// administrator role are forced regardless of what the caller passed.
func (s *AuthService) CreateSuperuser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	input.IsStaff = true
	input.IsSuperuser = true
	input.Role = models.RoleAdministrator
	return s.CreateUser(ctx, input)
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, utils.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user and everything the user owns.
func (s *AuthService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
