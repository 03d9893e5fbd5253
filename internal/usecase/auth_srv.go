package usecase

import (
	"context"
	"fmt"
	"time"

	"fatec-reserve/internal/data/entity"
	"fatec-reserve/internal/data/repository"
	"fatec-reserve/internal/dto/request"
	"fatec-reserve/internal/dto/response"
	"fatec-reserve/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	SeedAdmin(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	now    func() time.Time
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		now:    time.Now,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register creates an account with the role picked on the sign-up form.
// Coordinator sign-ups start as students until an admin promotes them, and
// admin accounts only come from SeedAdmin.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	// 2. Email must be free
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		FullName:     req.FullName,
		Email:        req.Email,
		RA:           req.RA,
		Course:       req.Course,
		Role:         entity.UserRole(req.UserType),
		PasswordHash: hashed,
	}

	// A privileged role is only a request until an admin grants it.
	if user.Role.CanDecide() {
		user.RequestedRole = user.Role
		user.Role = entity.RoleStudent
	}

	// 4. Save
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.String("requested_role", string(user.RequestedRole)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return fmt.Errorf("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Warn("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

// ForgotPassword issues a reset code for known emails. Unknown emails get the
// same answer so the endpoint does not reveal which accounts exist.
func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Info("Password reset requested for unknown email", zap.String("email", req.Email))
		return nil
	}

	code := utils.GenerateResetCode(s.config.Reset.Length)
	expiresAt := s.now().Add(time.Duration(s.config.Reset.ExpiryMinutes) * time.Minute)

	if err := s.repo.PasswordReset.Create(ctx, &entity.PasswordReset{
		Email:     user.Email,
		Code:      code,
		ExpiresAt: expiresAt,
	}); err != nil {
		s.log.Error("Failed to save reset code", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to generate reset code")
	}

	// No mail transport; the code is delivered through the log.
	s.log.Info("Password reset code generated",
		zap.String("email", user.Email),
		zap.String("reset_code", code),
		zap.Time("expires_at", expiresAt),
	)

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	reset, err := s.repo.PasswordReset.Consume(ctx, req.Email, req.Code)
	if err != nil {
		return fmt.Errorf("failed to verify reset code")
	}
	if reset == nil {
		return fmt.Errorf("invalid or expired reset code")
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return fmt.Errorf("user not found")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	if err := s.repo.User.UpdatePassword(ctx, user.ID, hashed); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to reset password")
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// SeedAdmin creates the configured administrator if it does not exist yet.
func (s *authService) SeedAdmin(ctx context.Context) error {
	admin := s.config.Admin
	if admin.Email == "" || admin.Password == "" {
		s.log.Warn("No admin account configured; approvals need a coordinator")
		return nil
	}

	existing, err := s.repo.User.FindByEmail(ctx, admin.Email)
	if err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		FullName:     admin.Name,
		Email:        admin.Email,
		Role:         entity.RoleAdmin,
		PasswordHash: hashed,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	s.log.Info("Admin account seeded", zap.String("email", admin.Email))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, user *entity.User) (*entity.Session, error) {
	expiry := s.config.Session.ExpiryHours
	if expiry <= 0 {
		expiry = 24
	}

	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateSessionToken(),
		Role:      user.Role,
		ExpiresAt: now.Add(time.Duration(expiry) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
