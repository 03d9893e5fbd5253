package repository

import (
	"fmt"

	"fatec-reserve/internal/data/entity"
)

// NotFoundError is returned when no reservation carries the given identifier.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reservation %d not found", e.ID)
}

// InvalidTransitionError is returned when a decision targets a reservation
// that is no longer pending, or names a status that is not a decision.
type InvalidTransitionError struct {
	ID   int64
	From entity.ReservationStatus
	To   entity.ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("reservation %d cannot move from %s to %s", e.ID, e.From, e.To)
}
