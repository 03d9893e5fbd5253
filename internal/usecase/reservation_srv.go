package usecase

import (
	"context"
	"fmt"

	"fatec-reserve/internal/data/entity"
	"fatec-reserve/internal/data/repository"
	"fatec-reserve/internal/dto/request"
	"fatec-reserve/internal/dto/response"
	"fatec-reserve/internal/event"
	"fatec-reserve/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	ListReservations(ctx context.Context, status string) (*response.ReservationListResponse, error)
	GetReservation(ctx context.Context, id int64) (*response.ReservationResponse, error)
	PendingCount(ctx context.Context) (int, error)
	ListSpaces(ctx context.Context) *response.SpacesResponse
	Dashboard(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*response.DashboardResponse, error)

	// Coordinator and admin only
	ApprovalQueue(ctx context.Context, role entity.UserRole) (*response.ApprovalQueueResponse, error)
	DecideReservation(ctx context.Context, userID uuid.UUID, role entity.UserRole, id int64, outcome entity.ReservationStatus) (*response.ReservationResponse, error)
}

type reservationService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
}

func NewReservationService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	requester, err := s.displayName(ctx, userID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.repo.Reservation.Create(ctx, &entity.Reservation{
		Space:       req.Space,
		Date:        req.Date,
		Time:        req.Time,
		Purpose:     req.Purpose,
		Requester:   requester,
		RequesterID: userID,
	})
	if err != nil {
		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation requested",
		zap.Int64("reservation_id", reservation.ID),
		zap.String("space", reservation.Space),
		zap.String("date", reservation.Date),
		zap.String("time", reservation.Time),
		zap.String("requester", reservation.Requester),
	)

	s.publish(ctx, reservation, event.ReservationRequested)

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) ListReservations(ctx context.Context, status string) (*response.ReservationListResponse, error) {
	filter := request.ListReservationsRequest{Status: status}
	if errs := utils.ValidateStruct(filter); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	var statusFilter *entity.ReservationStatus
	if status != "" {
		st := entity.ReservationStatus(status)
		statusFilter = &st
	}

	reservations, err := s.repo.Reservation.List(ctx, statusFilter)
	if err != nil {
		s.log.Error("Failed to list reservations", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	return &response.ReservationListResponse{
		Reservations: response.ReservationsToResponse(reservations),
		Total:        len(reservations),
	}, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id int64) (*response.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) PendingCount(ctx context.Context) (int, error) {
	count, err := s.repo.Reservation.PendingCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count pending reservations: %w", err)
	}
	return count, nil
}

func (s *reservationService) ListSpaces(ctx context.Context) *response.SpacesResponse {
	spaces := make([]string, len(entity.Spaces))
	copy(spaces, entity.Spaces)
	return &response.SpacesResponse{Spaces: spaces}
}

func (s *reservationService) Dashboard(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*response.DashboardResponse, error) {
	name, err := s.displayName(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.PendingCount(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.Reservation.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	// Display names are not unique; ownership is the account id.
	mine := make([]*entity.Reservation, 0)
	for _, r := range all {
		if r.RequesterID == userID {
			mine = append(mine, r)
		}
	}

	return &response.DashboardResponse{
		FullName:       name,
		Role:           role,
		PendingCount:   pending,
		CanApprove:     role.CanDecide(),
		CanViewReports: role.CanViewReports(),
		MyReservations: response.ReservationsToResponse(mine),
	}, nil
}

// ApprovalQueue returns pending requests plus the decision history, both in
// creation order.
func (s *reservationService) ApprovalQueue(ctx context.Context, role entity.UserRole) (*response.ApprovalQueueResponse, error) {
	if !role.CanDecide() {
		s.log.Warn("Approval queue denied", zap.String("role", string(role)))
		return nil, &AuthorizationError{Role: role, Operation: "view the approval queue"}
	}

	all, err := s.repo.Reservation.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	var pending, history []*entity.Reservation
	for _, r := range all {
		if r.Status == entity.ReservationStatusPending {
			pending = append(pending, r)
		} else {
			history = append(history, r)
		}
	}

	return &response.ApprovalQueueResponse{
		Pending:      response.ReservationsToResponse(pending),
		History:      response.ReservationsToResponse(history),
		PendingCount: len(pending),
	}, nil
}

func (s *reservationService) DecideReservation(ctx context.Context, userID uuid.UUID, role entity.UserRole, id int64, outcome entity.ReservationStatus) (*response.ReservationResponse, error) {
	if !role.CanDecide() {
		s.log.Warn("Decision denied",
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
			zap.Int64("reservation_id", id),
		)
		return nil, &AuthorizationError{Role: role, Operation: "decide reservations"}
	}

	reservation, err := s.repo.Reservation.Decide(ctx, id, outcome)
	if err != nil {
		s.log.Warn("Decision rejected by ledger",
			zap.Error(err),
			zap.Int64("reservation_id", id),
			zap.String("outcome", string(outcome)),
		)
		return nil, fmt.Errorf("decide reservation: %w", err)
	}

	decidedBy, err := s.displayName(ctx, userID)
	if err != nil {
		decidedBy = userID.String()
	}

	s.log.Info("Reservation decided",
		zap.Int64("reservation_id", reservation.ID),
		zap.String("status", string(reservation.Status)),
		zap.String("decided_by", decidedBy),
	)

	s.publish(ctx, reservation, func(r *entity.Reservation) (event.Envelope, error) {
		return event.ReservationDecided(r, decidedBy)
	})

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *reservationService) displayName(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return "", fmt.Errorf("find user %s: %w", userID.String(), err)
	}
	if user == nil {
		return "", fmt.Errorf("user %s: %w", userID.String(), ErrUnknownUser)
	}
	return user.FullName, nil
}

// publish never fails the caller; the ledger change already happened.
func (s *reservationService) publish(ctx context.Context, r *entity.Reservation, build func(*entity.Reservation) (event.Envelope, error)) {
	env, err := build(r)
	if err != nil {
		s.log.Error("Failed to build event", zap.Error(err), zap.Int64("reservation_id", r.ID))
		return
	}
	if err := s.publisher.Publish(ctx, env); err != nil {
		s.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("event_type", env.EventType),
			zap.Int64("reservation_id", r.ID),
		)
	}
}
