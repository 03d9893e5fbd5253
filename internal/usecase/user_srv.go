package usecase

import (
	"context"
	"fmt"

	"fatec-reserve/internal/data/entity"
	"fatec-reserve/internal/data/repository"
	"fatec-reserve/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService covers account administration. Every operation is admin only.
type UserService interface {
	PendingPromotions(ctx context.Context, role entity.UserRole) ([]response.UserResponse, error)
	PromoteUser(ctx context.Context, role entity.UserRole, userID string) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

// PendingPromotions lists accounts that asked for the coordinator role at sign-up.
func (us *userService) PendingPromotions(ctx context.Context, role entity.UserRole) ([]response.UserResponse, error) {
	if role != entity.RoleAdmin {
		return nil, &AuthorizationError{Role: role, Operation: "list role requests"}
	}

	users, err := us.userRepo.FindByRequestedRole(ctx, entity.RoleCoordinator)
	if err != nil {
		us.log.Error("Failed to list role requests", zap.Error(err))
		return nil, fmt.Errorf("list role requests: %w", err)
	}

	return response.UsersToResponse(users), nil
}

// PromoteUser grants the role the user requested at sign-up. Sessions issued
// before the promotion keep the old role until the user logs in again.
func (us *userService) PromoteUser(ctx context.Context, role entity.UserRole, userID string) (*response.UserResponse, error) {
	if role != entity.RoleAdmin {
		us.log.Warn("Promotion denied", zap.String("role", string(role)), zap.String("user_id", userID))
		return nil, &AuthorizationError{Role: role, Operation: "promote users"}
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID), zap.Error(err))
		return nil, &ValidationError{Fields: map[string]string{"id": "Invalid user ID"}}
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	if user.RequestedRole == "" {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNoPromotionRequested)
	}

	granted := user.RequestedRole
	if err := us.userRepo.UpdateRole(ctx, id, granted); err != nil {
		us.log.Error("Failed to update role", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("promote user %s: %w", userID, err)
	}

	user.Role = granted
	user.RequestedRole = ""

	us.log.Info("User promoted",
		zap.String("user_id", userID),
		zap.String("role", string(granted)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}
