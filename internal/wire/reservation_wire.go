package wire

import (
	"fatec-reserve/internal/adaptor"
	"fatec-reserve/internal/data/entity"
	"fatec-reserve/internal/data/repository"
	"fatec-reserve/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/spaces", reservationHandler.ListSpaces)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/api/dashboard", reservationHandler.Dashboard)

		r.Post("/api/reservations", reservationHandler.CreateReservation)
		r.Get("/api/reservations", reservationHandler.ListReservations)
		r.Get("/api/reservations/{id}", reservationHandler.GetReservation)
	})

	// ==================== APPROVAL ROUTES ====================
	r.Route("/api/approvals", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(log, entity.RoleCoordinator, entity.RoleAdmin))

		r.Get("/", reservationHandler.ApprovalQueue)
		r.Put("/{id}/approve", reservationHandler.Approve)
		r.Put("/{id}/reject", reservationHandler.Reject)
	})
}
