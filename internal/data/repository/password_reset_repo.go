package repository

import (
	"context"
	"sync"
	"time"

	"fatec-reserve/internal/data/entity"

	"go.uber.org/zap"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *entity.PasswordReset) error
	Consume(ctx context.Context, email, code string) (*entity.PasswordReset, error)
}

type passwordResetRepository struct {
	mu     sync.Mutex
	resets []*entity.PasswordReset
	now    func() time.Time
	log    *zap.Logger
}

func NewPasswordResetRepository(log *zap.Logger) PasswordResetRepository {
	return &passwordResetRepository{
		now: time.Now,
		log: log.With(zap.String("repository", "password_reset")),
	}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *entity.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *reset
	r.resets = append(r.resets, &stored)
	return nil
}

// Consume marks a matching unused, unexpired code as used and returns it.
// It returns nil, nil when no such code exists, so a code works only once
// even under concurrent resets.
func (r *passwordResetRepository) Consume(ctx context.Context, email, code string) (*entity.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for i := len(r.resets) - 1; i >= 0; i-- {
		reset := r.resets[i]
		if emailKey(reset.Email) == emailKey(email) && reset.Code == code &&
			!reset.IsUsed && now.Before(reset.ExpiresAt) {
			reset.IsUsed = true
			found := *reset
			return &found, nil
		}
	}
	return nil, nil
}
