package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/event_booking/internal/core/domain"
)

type CatalogRepository interface {
	Get(ctx context.Context, kind domain.Kind, id domain.ItemID) (domain.Item, error)
	List(ctx context.Context, kind domain.Kind) ([]domain.Item, error)
	// Save inserts items with a zero id and replaces existing ones.
	Save(ctx context.Context, item domain.Item) (domain.Item, error)
	Delete(ctx context.Context, kind domain.Kind, id domain.ItemID) error
}

type CatalogCache interface {
	Get(ctx context.Context, kind domain.Kind) ([]domain.Item, bool, error)
	Set(ctx context.Context, kind domain.Kind, items []domain.Item) error
	Invalidate(ctx context.Context, kind domain.Kind) error
}

// LedgerRepository is append-only.
type LedgerRepository interface {
	Append(ctx context.Context, booking domain.ConfirmedBooking) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ConfirmedBooking, error)
	List(ctx context.Context) ([]domain.ConfirmedBooking, error)
}

type BookingNotifier interface {
	BookingConfirmed(ctx context.Context, booking domain.ConfirmedBooking) error
}

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}
