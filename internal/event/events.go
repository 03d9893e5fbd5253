package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"fatec-reserve/internal/data/entity"

	"github.com/google/uuid"
)

const (
	TypeReservationRequested = "ReservationRequested"
	TypeReservationDecided   = "ReservationDecided"
)

const producerName = "fatec-reserve"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id"` // reservation id
	Payload       json.RawMessage `json:"payload"`
}

type ReservationRequestedPayload struct {
	ReservationID int64  `json:"reservation_id"`
	Space         string `json:"space"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Purpose       string `json:"purpose,omitempty"`
	Requester     string `json:"requester"`
	RequesterID   string `json:"requester_id"`
}

type ReservationDecidedPayload struct {
	ReservationID int64                    `json:"reservation_id"`
	Space         string                   `json:"space"`
	Requester     string                   `json:"requester"`
	Status        entity.ReservationStatus `json:"status"`
	DecidedBy     string                   `json:"decided_by"`
}

func NewEnvelope(eventType string, reservationID int64, payload any) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producerName,
		CorrelationID: strconv.FormatInt(reservationID, 10),
		Payload:       body,
	}, nil
}

func ReservationRequested(r *entity.Reservation) (Envelope, error) {
	return NewEnvelope(TypeReservationRequested, r.ID, ReservationRequestedPayload{
		ReservationID: r.ID,
		Space:         r.Space,
		Date:          r.Date,
		Time:          r.Time,
		Purpose:       r.Purpose,
		Requester:     r.Requester,
		RequesterID:   r.RequesterID.String(),
	})
}

func ReservationDecided(r *entity.Reservation, decidedBy string) (Envelope, error) {
	return NewEnvelope(TypeReservationDecided, r.ID, ReservationDecidedPayload{
		ReservationID: r.ID,
		Space:         r.Space,
		Requester:     r.Requester,
		Status:        r.Status,
		DecidedBy:     decidedBy,
	})
}

// UnwrapPayload decodes an envelope payload into T.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
