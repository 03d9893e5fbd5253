package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"fatec-reserve/internal/data/entity"
	"fatec-reserve/internal/dto/request"
)

func validRegistration() *request.RegisterRequest {
	return &request.RegisterRequest{
		FullName:        "João Silva",
		Email:           "joao.silva@fatec.sp.gov.br",
		RA:              "1234567890",
		Course:          "ads",
		UserType:        "student",
		Password:        "segredo1",
		ConfirmPassword: "segredo1",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.svc.Auth.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != entity.RoleStudent {
		t.Fatalf("expected student role, got %s", user.Role)
	}

	if _, err := f.svc.Auth.Register(ctx, validRegistration()); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate email error, got %v", err)
	}

	auth, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "JOAO.SILVA@fatec.sp.gov.br", Password: "segredo1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.Token == "" || auth.Role != entity.RoleStudent {
		t.Fatalf("unexpected auth response: %+v", auth)
	}

	session, _ := f.repo.Session.FindValidSession(ctx, auth.Token)
	if session == nil || session.Role != entity.RoleStudent {
		t.Fatalf("session not stored with role: %+v", session)
	}

	if _, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "joao.silva@fatec.sp.gov.br", Password: "errada"}); err == nil {
		t.Fatalf("expected invalid credentials")
	}

	if err := f.svc.Auth.Logout(ctx, auth.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if session, _ := f.repo.Session.FindValidSession(ctx, auth.Token); session != nil {
		t.Fatalf("session still valid after logout")
	}
	if err := f.svc.Auth.Logout(ctx, auth.Token); err == nil {
		t.Fatalf("expected second logout to fail")
	}
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		mod   func(r *request.RegisterRequest)
		field string
	}{
		{"short password", func(r *request.RegisterRequest) { r.Password, r.ConfirmPassword = "123", "123" }, "Password"},
		{"mismatched confirmation", func(r *request.RegisterRequest) { r.ConfirmPassword = "outra123" }, "ConfirmPassword"},
		{"unknown course", func(r *request.RegisterRequest) { r.Course = "medicina" }, "Course"},
		{"admin self sign-up", func(r *request.RegisterRequest) { r.UserType = "admin" }, "UserType"},
		{"non numeric ra", func(r *request.RegisterRequest) { r.RA = "abc12345" }, "RA"},
	}

	for _, tt := range tests {
		req := validRegistration()
		tt.mod(req)

		_, err := f.svc.Auth.Register(context.Background(), req)
		var invalid *ValidationError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected ValidationError, got %v", tt.name, err)
		}
		if _, ok := invalid.Fields[tt.field]; !ok {
			t.Fatalf("%s: expected error on %s, got %v", tt.name, tt.field, invalid.Fields)
		}
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.svc.Auth.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := f.svc.Auth.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "ninguem@fatec.sp.gov.br"}); err != nil {
		t.Fatalf("unknown email must succeed silently, got %v", err)
	}
	if err := f.svc.Auth.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "joao.silva@fatec.sp.gov.br"}); err != nil {
		t.Fatalf("forgot password: %v", err)
	}

	entries := f.logs.FilterMessage("Password reset code generated").All()
	if len(entries) != 1 {
		t.Fatalf("expected one reset code log entry, got %d", len(entries))
	}
	code, _ := entries[0].ContextMap()["reset_code"].(string)
	if len(code) != f.config.Reset.Length {
		t.Fatalf("unexpected reset code %q", code)
	}

	err := f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{Email: "joao.silva@fatec.sp.gov.br", Code: "0000001", NewPassword: "novasenha"})
	if err == nil {
		t.Fatalf("expected wrong code to fail")
	}

	reset := &request.ResetPasswordRequest{Email: "joao.silva@fatec.sp.gov.br", Code: code, NewPassword: "novasenha"}
	if err := f.svc.Auth.ResetPassword(ctx, reset); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if err := f.svc.Auth.ResetPassword(ctx, reset); err == nil {
		t.Fatalf("reset code must be single use")
	}

	if _, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "joao.silva@fatec.sp.gov.br", Password: "segredo1"}); err == nil {
		t.Fatalf("old password still accepted")
	}
	if _, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "joao.silva@fatec.sp.gov.br", Password: "novasenha"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestResetPassword_ConcurrentUseOfOneCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.svc.Auth.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := f.svc.Auth.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "joao.silva@fatec.sp.gov.br"}); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	code, _ := f.logs.FilterMessage("Password reset code generated").All()[0].ContextMap()["reset_code"].(string)

	passwords := []string{"primeira1", "segunda22"}
	errs := make([]error, len(passwords))
	var wg sync.WaitGroup
	for i, pw := range passwords {
		wg.Add(1)
		go func(i int, pw string) {
			defer wg.Done()
			errs[i] = f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{
				Email:       "joao.silva@fatec.sp.gov.br",
				Code:        code,
				NewPassword: pw,
			})
		}(i, pw)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected one reset to succeed, got errors %v", errs)
	}
}

func TestRegister_CoordinatorWaitsForPromotion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := validRegistration()
	req.UserType = "coordinator"
	user, err := f.svc.Auth.Register(ctx, req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != entity.RoleStudent || user.RequestedRole != entity.RoleCoordinator {
		t.Fatalf("expected student with pending coordinator request, got %+v", user)
	}

	auth, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.Role.CanDecide() {
		t.Fatalf("self-declared coordinator got a privileged session: %s", auth.Role)
	}

	professor := validRegistration()
	professor.Email = "ana@fatec.sp.gov.br"
	professor.UserType = "professor"
	got, err := f.svc.Auth.Register(ctx, professor)
	if err != nil {
		t.Fatalf("register professor: %v", err)
	}
	if got.Role != entity.RoleProfessor || got.RequestedRole != "" {
		t.Fatalf("professor sign-up should not need approval, got %+v", got)
	}
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if err := f.svc.Auth.SeedAdmin(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := f.svc.Auth.SeedAdmin(ctx); err != nil {
		t.Fatalf("second seed must be a no-op, got %v", err)
	}

	auth, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: f.config.Admin.Email, Password: f.config.Admin.Password})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if auth.Role != entity.RoleAdmin {
		t.Fatalf("expected admin role, got %s", auth.Role)
	}
}
