package repository

import (
	"go.uber.org/zap"
)

type Repository struct {
	Reservation   ReservationRepository
	User          UserRepository
	Session       SessionRepository
	PasswordReset PasswordResetRepository
}

func NewRepository(log *zap.Logger) *Repository {
	return &Repository{
		Reservation:   NewReservationRepository(log),
		User:          NewUserRepository(log),
		Session:       NewSessionRepository(log),
		PasswordReset: NewPasswordResetRepository(log),
	}
}
