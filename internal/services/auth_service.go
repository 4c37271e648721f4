package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aqeelraza/maktab-api/internal/config"
	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication and account management
type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config

	now func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// Login authenticates a user and returns a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidPassword
	}

	if !user.IsActive() {
		return nil, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResult{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// CreateUserInput carries a new account registration
type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// CreateUser registers a staff or admin account
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}
	if input.Role != "" && input.Role != models.RoleStaff && input.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:             input.Email,
		EncryptedPassword: string(hash),
		FullName:          input.FullName,
		Role:              input.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, input.Email)
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(current)); err != nil {
		return ErrInvalidPassword
	}
	if len(next) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.EncryptedPassword = string(hash)
	return s.userRepo.Update(ctx, user)
}

// ResetPassword issues a temporary credential for an account, admin
// only. The temporary password is returned once and never stored in
// plain form.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: no account for %s", ErrNotFound, email)
		}
		return "", err
	}

	temp := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user.EncryptedPassword = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}
	return temp, nil
}

// generateJWT creates a new JWT token for a user
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
