package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/srgjo27/event_booking/internal/core/domain"
)

// Ledger keeps confirmed bookings in append order. No update, no delete.
type Ledger struct {
	mu       sync.RWMutex
	bookings []domain.ConfirmedBooking
	index    map[uuid.UUID]int
}

func NewLedger() *Ledger {
	return &Ledger{index: make(map[uuid.UUID]int)}
}

func (l *Ledger) Append(_ context.Context, booking domain.ConfirmedBooking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.index[booking.ID]; exists {
		return domain.ErrDuplicateBooking
	}
	l.index[booking.ID] = len(l.bookings)
	l.bookings = append(l.bookings, booking)
	return nil
}

func (l *Ledger) Get(_ context.Context, id uuid.UUID) (*domain.ConfirmedBooking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b := l.bookings[i]
	return &b, nil
}

func (l *Ledger) List(_ context.Context) ([]domain.ConfirmedBooking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.ConfirmedBooking, len(l.bookings))
	copy(out, l.bookings)
	return out, nil
}
