package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/example/todo-app/config"
	"github.com/example/todo-app/database"
	domain "github.com/example/todo-app/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Development seed account, created on start when APP_ENV=development.
const (
	SeedEmail    = "user@test.com"
	SeedPassword = "Password123!"
)

// AuthModule provides authentication services.
type AuthModule struct {
	db      *gorm.DB
	service *AuthService
	cfg     *config.Config
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(cfg *config.Config) *AuthModule {
	return &AuthModule{
		cfg: cfg,
	}
}

// NewModuleWithService creates an AuthModule around an existing service.
// This constructor enables dependency injection for testing.
func NewModuleWithService(service *AuthService) *AuthModule {
	return &AuthModule{
		service: service,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start initializes the auth module.
func (m *AuthModule) Start(ctx context.Context) error {
	if m.service != nil {
		return nil
	}

	db, err := database.Open(m.cfg.Database)
	if err != nil {
		return err
	}
	m.db = db

	// Auto-migrate the User schema
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	policy := ProductionPasswordPolicy()
	if m.cfg.IsDevelopment() {
		policy = DevelopmentPasswordPolicy()
	}

	m.service = NewAuthService(
		NewUserRepository(db),
		NewPasswordHasher(),
		NewJWTManager(m.cfg.JWT),
		policy,
	)

	if m.cfg.IsDevelopment() {
		created, err := m.service.SeedUser(ctx, SeedEmail, SeedPassword)
		if err != nil {
			return fmt.Errorf("failed to seed development user: %w", err)
		}
		if created {
			log.Printf("[auth] Seeded development user %s", SeedEmail)
		}
	}

	log.Printf("[auth] Module started (database: %s)", database.Describe(m.cfg.Database))
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	if err := database.Close(m.db); err != nil {
		log.Printf("[auth] Warning: failed to close database: %v", err)
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if err := database.Ping(ctx, m.db); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": database.Describe(m.cfg.Database),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	// Register register service
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"register",
		json.Unmarshal,
		json.Marshal,
		m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}

	// Register login service
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"login",
		json.Unmarshal,
		json.Marshal,
		m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	// Register validate-token service
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"validate-token",
		json.Unmarshal,
		json.Marshal,
		m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	log.Printf("[auth] Registered services: register, login, validate-token")
	return nil
}

// handleRegister handles user registration.
func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (AuthResponse, error) {
	result, err := m.service.Register(ctx, req.Email, req.Password)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return AuthResponse{Success: false, Code: verr.Code, Errors: verr.Problems}, nil
		}
		return AuthResponse{}, err
	}
	return successResponse(result), nil
}

// handleLogin handles user login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (AuthResponse, error) {
	result, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return AuthResponse{
				Success: false,
				Code:    CodeInvalidCredentials,
				Errors:  []string{"Invalid email or password."},
			}, nil
		}
		return AuthResponse{}, err
	}
	return successResponse(result), nil
}

// handleValidateToken handles token validation.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil // Return response, not error, for validation failures
	}

	return ValidateTokenResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

func successResponse(result *AuthResult) AuthResponse {
	return AuthResponse{
		Success:   true,
		Token:     result.Token,
		Email:     result.Email,
		ExpiresAt: result.ExpiresAt,
	}
}
