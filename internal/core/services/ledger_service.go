package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/core/ports"
)

// BookingLedger is the append-only history of confirmed bookings.
type BookingLedger struct {
	repo ports.LedgerRepository
}

func NewBookingLedger(repo ports.LedgerRepository) *BookingLedger {
	return &BookingLedger{repo: repo}
}

func (l *BookingLedger) Record(ctx context.Context, booking domain.ConfirmedBooking) error {
	if booking.Status != domain.BookingConfirmed {
		return fmt.Errorf("refusing to record booking %s with status %q", booking.ID, booking.Status)
	}
	if err := l.repo.Append(ctx, booking); err != nil {
		return fmt.Errorf("failed to record booking %s: %w", booking.ID, err)
	}
	return nil
}

func (l *BookingLedger) List(ctx context.Context) ([]domain.ConfirmedBooking, error) {
	return l.repo.List(ctx)
}

func (l *BookingLedger) Get(ctx context.Context, id uuid.UUID) (*domain.ConfirmedBooking, error) {
	return l.repo.Get(ctx, id)
}

// Latest returns the most recently appended booking, or nil when the ledger is empty.
func (l *BookingLedger) Latest(ctx context.Context) (*domain.ConfirmedBooking, error) {
	all, err := l.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	latest := all[len(all)-1]
	return &latest, nil
}
