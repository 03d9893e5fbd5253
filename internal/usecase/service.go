package usecase

import (
	"fatec-reserve/internal/data/repository"
	"fatec-reserve/internal/event"
	"fatec-reserve/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, publisher event.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo.User, log),
		Reservation: NewReservationService(repo, publisher, log),
	}
}
