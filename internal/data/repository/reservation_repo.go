package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"fatec-reserve/internal/data/entity"

	"go.uber.org/zap"
)

var ErrIncompleteReservation = errors.New("space, date and time are required")

// ReservationRepository is the reservation ledger: the authoritative ordered
// collection of reservations and the only place a status may change.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) (*entity.Reservation, error)
	FindByID(ctx context.Context, id int64) (*entity.Reservation, error)
	List(ctx context.Context, status *entity.ReservationStatus) ([]*entity.Reservation, error)
	Decide(ctx context.Context, id int64, outcome entity.ReservationStatus) (*entity.Reservation, error)
	PendingCount(ctx context.Context) (int, error)
}

type reservationLedger struct {
	mu      sync.RWMutex
	records []*entity.Reservation
	index   map[int64]int
	lastID  int64
	now     func() time.Time
	log     *zap.Logger
}

func NewReservationRepository(log *zap.Logger) ReservationRepository {
	return &reservationLedger{
		index: make(map[int64]int),
		now:   time.Now,
		log:   log.With(zap.String("repository", "reservation")),
	}
}

// Create appends a new pending reservation. Identifiers come from a counter,
// never from the collection size.
func (r *reservationLedger) Create(ctx context.Context, reservation *entity.Reservation) (*entity.Reservation, error) {
	if reservation.Space == "" || reservation.Date == "" || reservation.Time == "" {
		return nil, ErrIncompleteReservation
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	record := &entity.Reservation{
		ID:          r.lastID,
		Space:       reservation.Space,
		Date:        reservation.Date,
		Time:        reservation.Time,
		Purpose:     reservation.Purpose,
		Requester:   reservation.Requester,
		RequesterID: reservation.RequesterID,
		Status:      entity.ReservationStatusPending,
		CreatedAt:   r.now(),
	}

	r.index[record.ID] = len(r.records)
	r.records = append(r.records, record)

	r.log.Debug("Reservation appended",
		zap.Int64("reservation_id", record.ID),
		zap.String("space", record.Space),
	)

	return clone(record), nil
}

func (r *reservationLedger) FindByID(ctx context.Context, id int64) (*entity.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return clone(r.records[pos]), nil
}

// List returns copies in creation order, optionally filtered by status.
func (r *reservationLedger) List(ctx context.Context, status *entity.ReservationStatus) ([]*entity.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Reservation, 0, len(r.records))
	for _, rec := range r.records {
		if status != nil && rec.Status != *status {
			continue
		}
		out = append(out, clone(rec))
	}
	return out, nil
}

// Decide moves a pending reservation to outcome. The check and the write
// happen under one lock, so only one decision per reservation can succeed.
func (r *reservationLedger) Decide(ctx context.Context, id int64, outcome entity.ReservationStatus) (*entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	rec := r.records[pos]
	if !entity.CanTransition(rec.Status, outcome) {
		return nil, &InvalidTransitionError{ID: id, From: rec.Status, To: outcome}
	}

	rec.Status = outcome

	r.log.Debug("Reservation decided",
		zap.Int64("reservation_id", id),
		zap.String("status", string(outcome)),
	)

	return clone(rec), nil
}

func (r *reservationLedger) PendingCount(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, rec := range r.records {
		if rec.Status == entity.ReservationStatusPending {
			count++
		}
	}
	return count, nil
}

func clone(r *entity.Reservation) *entity.Reservation {
	c := *r
	return &c
}
