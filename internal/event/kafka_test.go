package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"fatec-reserve/internal/data/entity"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type fakeWriter struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	entered chan struct{}
	release chan struct{}
	closed  bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.entered != nil {
		w.entered <- struct{}{}
	}
	if w.release != nil {
		<-w.release
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func sampleReservation() *entity.Reservation {
	return &entity.Reservation{
		ID:        7,
		Space:     "Laboratório 1 - Redes",
		Date:      "2025-11-15",
		Time:      "14:00",
		Requester: "João",
		Status:    entity.ReservationStatusApproved,
	}
}

func TestKafkaPublisher_FlushesOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, 10, zap.NewNop())

	env, err := ReservationDecided(sampleReservation(), "Maria")
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	if err := p.Publish(context.Background(), env); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		t.Fatalf("writer not closed")
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}

	m := w.msgs[0]
	if string(m.Key) != "7" {
		t.Fatalf("expected key 7, got %q", m.Key)
	}
	if len(m.Headers) != 1 || string(m.Headers[0].Value) != TypeReservationDecided {
		t.Fatalf("unexpected headers: %+v", m.Headers)
	}

	var decoded Envelope
	if err := json.Unmarshal(m.Value, &decoded); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	payload, err := UnwrapPayload[ReservationDecidedPayload](decoded.Payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.ReservationID != 7 || payload.DecidedBy != "Maria" || payload.Status != entity.ReservationStatusApproved {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestKafkaPublisher_PublishAfterClose(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{}, 1, zap.NewNop())
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	env, _ := ReservationRequested(sampleReservation())
	if err := p.Publish(context.Background(), env); !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("expected ErrPublisherClosed, got %v", err)
	}
}

func TestKafkaPublisher_FullInbox(t *testing.T) {
	w := &fakeWriter{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	p := newKafkaPublisher(w, 1, zap.NewNop())
	env, _ := ReservationRequested(sampleReservation())

	if err := p.Publish(context.Background(), env); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	select {
	case <-w.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("writer never received the first message")
	}

	if err := p.Publish(context.Background(), env); err != nil {
		t.Fatalf("second publish should fill the inbox: %v", err)
	}
	if err := p.Publish(context.Background(), env); !errors.Is(err, ErrPublisherFull) {
		t.Fatalf("expected ErrPublisherFull, got %v", err)
	}

	close(w.release)
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(w.msgs) != 2 {
		t.Fatalf("expected 2 delivered messages, got %d", len(w.msgs))
	}
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher(zap.NewNop())
	env, _ := ReservationRequested(sampleReservation())
	if err := p.Publish(context.Background(), env); err != nil {
		t.Fatalf("nop publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nop close: %v", err)
	}
}
