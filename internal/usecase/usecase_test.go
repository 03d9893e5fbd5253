package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"fatec-reserve/internal/data/entity"
	"fatec-reserve/internal/data/repository"
	"fatec-reserve/internal/event"
	"fatec-reserve/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Envelope
}

func (p *recordingPublisher) Publish(ctx context.Context, env event.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, env)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

type fixture struct {
	repo   *repository.Repository
	svc    *Service
	pub    *recordingPublisher
	logs   *observer.ObservedLogs
	config *utils.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	config := &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
		Reset:   utils.ResetConfig{ExpiryMinutes: 15, Length: 6},
		Admin:   utils.AdminConfig{Name: "Administrador", Email: "admin@fatec.sp.gov.br", Password: "admin123"},
	}
	repo := repository.NewRepository(log)
	pub := &recordingPublisher{}

	return &fixture{
		repo:   repo,
		svc:    NewService(repo, pub, config, log),
		pub:    pub,
		logs:   logs,
		config: config,
	}
}

// addUser stores a user directly, skipping bcrypt.
func (f *fixture) addUser(t *testing.T, name string, role entity.UserRole) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := f.repo.User.Create(context.Background(), &entity.User{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: time.Now()},
		FullName:   name,
		Email:      id.String() + "@fatec.sp.gov.br",
		Role:       role,
	})
	if err != nil {
		t.Fatalf("add user: %v", err)
	}
	return id
}
