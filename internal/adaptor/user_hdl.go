package adaptor

import (
	"errors"
	"net/http"

	"fatec-reserve/internal/usecase"
	"fatec-reserve/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// PendingPromotions handles GET /api/admin/users/promotions (admin only)
func (h *UserHandler) PendingPromotions(w http.ResponseWriter, r *http.Request) {
	role, _ := utils.GetRoleFromContext(r.Context())

	users, err := h.service.PendingPromotions(r.Context(), role)
	if err != nil {
		h.handleServiceError(w, err, "list role requests")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// Promote handles PUT /api/admin/users/{id}/promote (admin only)
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	role, _ := utils.GetRoleFromContext(r.Context())

	user, err := h.service.PromoteUser(r.Context(), role, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "promote user")
		return
	}

	utils.ResponseSuccess(w, "User promoted", user)
}

// handleServiceError handles errors for user operations
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var (
		unauthorized *usecase.AuthorizationError
		invalid      *usecase.ValidationError
	)

	switch {
	case errors.As(err, &invalid):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", invalid.Fields)

	case errors.As(err, &unauthorized):
		h.log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, unauthorized.Error())

	case errors.Is(err, usecase.ErrUserNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNoPromotionRequested):
		h.log.Warn(operation+" failed - nothing to grant", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
