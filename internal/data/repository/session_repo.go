package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fatec-reserve/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValidSession(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
	CleanExpiredSessions(ctx context.Context) (int, error)
}

type sessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
	now      func() time.Time
	log      *zap.Logger
}

func NewSessionRepository(log *zap.Logger) SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*entity.Session),
		now:      time.Now,
		log:      log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	r.sessions[session.Token] = &stored
	return nil
}

// FindValidSession returns nil, nil for unknown, revoked or expired tokens.
func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenID]
	if !ok || !session.Valid(r.now()) {
		return nil, nil
	}
	found := *session
	return &found, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenID]
	if !ok || session.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := r.now()
	session.RevokedAt = &now
	return nil
}

// CleanExpiredSessions drops sessions that expired more than a week ago.
func (r *sessionRepository) CleanExpiredSessions(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-7 * 24 * time.Hour)
	removed := 0
	for token, session := range r.sessions {
		if session.ExpiresAt.Before(cutoff) {
			delete(r.sessions, token)
			removed++
		}
	}
	if removed > 0 {
		r.log.Info("Expired sessions cleaned", zap.Int("count", removed))
	}
	return removed, nil
}
