package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending  ReservationStatus = "pending"
	ReservationStatusApproved ReservationStatus = "approved"
	ReservationStatusRejected ReservationStatus = "rejected"
)

var validNext = map[ReservationStatus]map[ReservationStatus]bool{
	ReservationStatusPending:  {ReservationStatusApproved: true, ReservationStatusRejected: true},
	ReservationStatusApproved: {},
	ReservationStatusRejected: {},
}

// CanTransition reports whether a reservation in status from may move to status to.
func CanTransition(from, to ReservationStatus) bool {
	return validNext[from][to]
}

func (s ReservationStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

func (s ReservationStatus) Terminal() bool {
	return s.Valid() && len(validNext[s]) == 0
}

type Reservation struct {
	ID          int64             `json:"id"`
	Space       string            `json:"space"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Purpose     string            `json:"purpose,omitempty"`
	Requester   string            `json:"requester"`
	RequesterID uuid.UUID         `json:"requester_id"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Bookable spaces offered by the reservation form.
var Spaces = []string{
	"Laboratório 1 - Redes",
	"Laboratório 2 - Hardware",
	"Laboratório 3 - Informática",
	"Laboratório 4 - Programação",
	"Laboratório 5 - Eletrônica",
	"Sala de Reuniões 1",
	"Sala de Reuniões 2",
}

func IsBookableSpace(name string) bool {
	for _, s := range Spaces {
		if s == name {
			return true
		}
	}
	return false
}
