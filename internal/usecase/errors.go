package usecase

import (
	"errors"
	"fmt"

	"fatec-reserve/internal/data/entity"
	"fatec-reserve/pkg/utils"
)

var (
	// ErrUnknownUser means a valid session points at a user that no longer exists.
	ErrUnknownUser = errors.New("session user no longer exists")

	ErrUserNotFound         = errors.New("user not found")
	ErrNoPromotionRequested = errors.New("user has no pending role request")
)

// AuthorizationError is returned when the caller's role may not perform the
// operation. The ledger is never touched in that case.
type AuthorizationError struct {
	Role      entity.UserRole
	Operation string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q is not allowed to %s", e.Role, e.Operation)
}

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}
