package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"fatec-reserve/internal/data/entity"
	"fatec-reserve/internal/data/repository"
	"fatec-reserve/internal/dto/request"
	"fatec-reserve/internal/usecase"
	"fatec-reserve/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// ListSpaces handles GET /api/spaces (public)
func (h *ReservationHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.ListSpaces(r.Context()))
}

// Dashboard handles GET /api/dashboard (protected)
func (h *ReservationHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	dashboard, err := h.service.Dashboard(r.Context(), userID, role)
	if err != nil {
		h.handleServiceError(w, err, "load dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// CreateReservation handles POST /api/reservations (protected)
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation requested", reservation)
}

// ListReservations handles GET /api/reservations?status= (protected)
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "all" {
		status = ""
	}

	reservations, err := h.service.ListReservations(r.Context(), status)
	if err != nil {
		h.handleServiceError(w, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetReservation handles GET /api/reservations/{id} (protected)
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid reservation ID", nil)
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ==================== APPROVAL METHODS ====================

// ApprovalQueue handles GET /api/approvals (coordinator/admin)
func (h *ReservationHandler) ApprovalQueue(w http.ResponseWriter, r *http.Request) {
	role, _ := utils.GetRoleFromContext(r.Context())

	queue, err := h.service.ApprovalQueue(r.Context(), role)
	if err != nil {
		h.handleServiceError(w, err, "load approval queue")
		return
	}

	utils.ResponseSuccess(w, "success", queue)
}

// Approve handles PUT /api/approvals/{id}/approve (coordinator/admin)
func (h *ReservationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, entity.ReservationStatusApproved, "Reservation approved")
}

// Reject handles PUT /api/approvals/{id}/reject (coordinator/admin)
func (h *ReservationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, entity.ReservationStatusRejected, "Reservation rejected")
}

func (h *ReservationHandler) decide(w http.ResponseWriter, r *http.Request, outcome entity.ReservationStatus, message string) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid reservation ID", nil)
		return
	}

	reservation, err := h.service.DecideReservation(r.Context(), userID, role, id, outcome)
	if err != nil {
		h.handleServiceError(w, err, "decide reservation")
		return
	}

	utils.ResponseSuccess(w, message, reservation)
}

// handleServiceError maps ledger and service errors to HTTP responses
func (h *ReservationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var (
		notFound     *repository.NotFoundError
		transition   *repository.InvalidTransitionError
		unauthorized *usecase.AuthorizationError
		invalid      *usecase.ValidationError
	)

	switch {
	case errors.As(err, &invalid):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", invalid.Fields)

	case errors.As(err, &notFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, notFound.Error())

	case errors.As(err, &transition):
		h.log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseConflict(w, transition.Error())

	case errors.As(err, &unauthorized):
		h.log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, unauthorized.Error())

	case errors.Is(err, usecase.ErrUnknownUser):
		h.log.Warn(operation+" failed - unknown session user", zap.Error(err))
		utils.ResponseUnauthorized(w, "Authentication required")

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
