package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fatec-reserve/internal/data/entity"
	"fatec-reserve/internal/dto/request"

	"github.com/google/uuid"
)

func (f *fixture) addApplicant(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := f.repo.User.Create(context.Background(), &entity.User{
		BaseSimple:    entity.BaseSimple{ID: id, CreatedAt: time.Now()},
		FullName:      name,
		Email:         id.String() + "@fatec.sp.gov.br",
		Role:          entity.RoleStudent,
		RequestedRole: entity.RoleCoordinator,
	})
	if err != nil {
		t.Fatalf("add applicant: %v", err)
	}
	return id
}

func TestPromoteUser_AdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	applicant := f.addApplicant(t, "Maria")

	for _, role := range []entity.UserRole{entity.RoleStudent, entity.RoleProfessor, entity.RoleCoordinator} {
		_, err := f.svc.User.PromoteUser(ctx, role, applicant.String())
		var denied *AuthorizationError
		if !errors.As(err, &denied) {
			t.Fatalf("%s: expected AuthorizationError, got %v", role, err)
		}
		if _, err := f.svc.User.PendingPromotions(ctx, role); !errors.As(err, &denied) {
			t.Fatalf("%s: expected AuthorizationError listing requests, got %v", role, err)
		}
	}

	user, _ := f.repo.User.FindByID(ctx, applicant)
	if user.Role != entity.RoleStudent {
		t.Fatalf("denied promotion changed the role to %s", user.Role)
	}
}

func TestPromoteUser_GrantsRequestedRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	applicant := f.addApplicant(t, "Maria")
	f.addUser(t, "João", entity.RoleStudent)

	pending, err := f.svc.User.PendingPromotions(ctx, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("pending promotions: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != applicant.String() {
		t.Fatalf("unexpected pending list: %+v", pending)
	}

	promoted, err := f.svc.User.PromoteUser(ctx, entity.RoleAdmin, applicant.String())
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.Role != entity.RoleCoordinator || promoted.RequestedRole != "" {
		t.Fatalf("unexpected promoted user: %+v", promoted)
	}

	if _, err := f.svc.User.PromoteUser(ctx, entity.RoleAdmin, applicant.String()); !errors.Is(err, ErrNoPromotionRequested) {
		t.Fatalf("expected ErrNoPromotionRequested, got %v", err)
	}
	if _, err := f.svc.User.PromoteUser(ctx, entity.RoleAdmin, uuid.NewString()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	var invalid *ValidationError
	if _, err := f.svc.User.PromoteUser(ctx, entity.RoleAdmin, "not-a-uuid"); !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	pending, _ = f.svc.User.PendingPromotions(ctx, entity.RoleAdmin)
	if len(pending) != 0 {
		t.Fatalf("expected empty request list after promotion, got %d", len(pending))
	}
}

func TestPromotedCoordinatorCanDecideAfterLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	student := f.addUser(t, "João", entity.RoleStudent)

	req := validRegistration()
	req.Email = "maria@fatec.sp.gov.br"
	req.UserType = "coordinator"
	registered, err := f.svc.Auth.Register(ctx, req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	coordID := uuid.MustParse(registered.ID)

	created, _ := f.svc.Reservation.CreateReservation(ctx, student, validReservation())

	before, _ := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: req.Email, Password: req.Password})
	_, err = f.svc.Reservation.DecideReservation(ctx, coordID, before.Role, created.ID, entity.ReservationStatusApproved)
	var denied *AuthorizationError
	if !errors.As(err, &denied) {
		t.Fatalf("expected AuthorizationError before promotion, got %v", err)
	}

	if _, err := f.svc.User.PromoteUser(ctx, entity.RoleAdmin, registered.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}

	after, _ := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: req.Email, Password: req.Password})
	decided, err := f.svc.Reservation.DecideReservation(ctx, coordID, after.Role, created.ID, entity.ReservationStatusApproved)
	if err != nil {
		t.Fatalf("decide after promotion: %v", err)
	}
	if decided.Status != entity.ReservationStatusApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
}
