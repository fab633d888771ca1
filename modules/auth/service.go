package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	domain "github.com/example/todo-app/domain/user"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when login credentials are invalid.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError lists every reason a registration was refused.
type ValidationError struct {
	Code     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, " ")
}

// AuthResult is a signed-in user and their bearer token.
type AuthResult struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
	policy PasswordPolicy
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager, policy PasswordPolicy) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
		policy: policy,
	}
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	var problems []string
	if email == "" {
		problems = append(problems, "Email is required.")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		problems = append(problems, fmt.Sprintf("Email '%s' is invalid.", email))
	}
	problems = append(problems, s.policy.Check(password)...)
	if len(problems) > 0 {
		return nil, &ValidationError{Code: CodeValidationFailed, Problems: problems}
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, duplicateEmail(email)
	}

	user, err := s.createUser(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, duplicateEmail(email)
		}
		return nil, err
	}

	return s.issue(user)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// ValidateToken validates an access token and returns claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// SeedUser creates the account unless the email is already registered.
// The password policy is not applied.
func (s *AuthService) SeedUser(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return false, nil
	}
	if _, err := s.createUser(ctx, email, password); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) createUser(ctx context.Context, email, password string) (*domain.User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwt.Expiration()),
	}, nil
}

func duplicateEmail(email string) *ValidationError {
	return &ValidationError{
		Code:     CodeDuplicateEmail,
		Problems: []string{fmt.Sprintf("Email '%s' is already taken.", email)},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
