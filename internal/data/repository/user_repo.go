package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fatec-reserve/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	FindByRequestedRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error
}

type userRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
	log     *zap.Logger
}

func NewUserRepository(log *zap.Logger) UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
		log:     log.With(zap.String("repository", "user")),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := ur.byEmail[key]; exists {
		ur.log.Warn("Duplicate user email", zap.String("email", user.Email))
		return fmt.Errorf("create user %s: email already registered", user.Email)
	}

	stored := *user
	ur.byID[user.ID] = &stored
	ur.byEmail[key] = user.ID
	return nil
}

// FindByID returns nil, nil when the user does not exist.
func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	user, ok := ur.byID[id]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	id, ok := ur.byEmail[emailKey(email)]
	if !ok {
		return nil, nil
	}
	found := *ur.byID[id]
	return &found, nil
}

func (ur *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	user, ok := ur.byID[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.PasswordHash = passwordHash
	return nil
}

// FindByRequestedRole returns users waiting for role, oldest sign-up first.
func (ur *userRepository) FindByRequestedRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	users := make([]*entity.User, 0)
	for _, user := range ur.byID {
		if user.RequestedRole == role {
			found := *user
			users = append(users, &found)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// UpdateRole sets the role and clears any pending request.
func (ur *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	user, ok := ur.byID[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.Role = role
	user.RequestedRole = ""
	return nil
}
