package entity

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{ReservationStatusPending, ReservationStatusApproved, true},
		{ReservationStatusPending, ReservationStatusRejected, true},
		{ReservationStatusPending, ReservationStatusPending, false},
		{ReservationStatusApproved, ReservationStatusRejected, false},
		{ReservationStatusApproved, ReservationStatusApproved, false},
		{ReservationStatusRejected, ReservationStatusApproved, false},
		{ReservationStatusRejected, ReservationStatusPending, false},
		{"cancelled", ReservationStatusApproved, false},
		{ReservationStatusPending, "cancelled", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestReservationStatus_Terminal(t *testing.T) {
	if ReservationStatusPending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
	if !ReservationStatusApproved.Terminal() || !ReservationStatusRejected.Terminal() {
		t.Fatalf("approved and rejected must be terminal")
	}
	if ReservationStatus("cancelled").Valid() {
		t.Fatalf("unknown status reported as valid")
	}
}

func TestUserRole_CanDecide(t *testing.T) {
	for role, want := range map[UserRole]bool{
		RoleStudent:     false,
		RoleProfessor:   false,
		RoleCoordinator: true,
		RoleAdmin:       true,
		"":              false,
	} {
		if got := role.CanDecide(); got != want {
			t.Fatalf("%q.CanDecide() = %v, want %v", role, got, want)
		}
	}
}

func TestIsBookableSpace(t *testing.T) {
	if !IsBookableSpace("Laboratório 1 - Redes") {
		t.Fatalf("expected lab 1 to be bookable")
	}
	if IsBookableSpace("Auditório") {
		t.Fatalf("unexpected bookable space")
	}
}
