package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/core/ports"
)

var ErrNotConfirmed = errors.New("action not confirmed")

// CatalogObserver is told about every operator change to the catalog.
type CatalogObserver interface {
	CatalogItemSaved(ctx context.Context, item domain.Item)
	CatalogItemDeleted(ctx context.Context, kind domain.Kind, id domain.ItemID)
}

type CatalogService struct {
	repo      ports.CatalogRepository
	cache     ports.CatalogCache
	observers []CatalogObserver
}

// NewCatalogService accepts a nil cache.
func NewCatalogService(repo ports.CatalogRepository, cache ports.CatalogCache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

func (s *CatalogService) Subscribe(o CatalogObserver) {
	s.observers = append(s.observers, o)
}

func (s *CatalogService) List(ctx context.Context, kind domain.Kind) ([]domain.Item, error) {
	if _, err := domain.ParseKind(string(kind)); err != nil {
		return nil, err
	}

	if s.cache != nil {
		items, ok, err := s.cache.Get(ctx, kind)
		if err != nil {
			log.Printf("Catalog cache read failed for %s: %v", kind, err)
		} else if ok {
			return items, nil
		}
	}

	items, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, kind, items); err != nil {
			log.Printf("Catalog cache write failed for %s: %v", kind, err)
		}
	}

	return items, nil
}

func (s *CatalogService) Get(ctx context.Context, kind domain.Kind, id domain.ItemID) (domain.Item, error) {
	return s.repo.Get(ctx, kind, id)
}

func (s *CatalogService) Save(ctx context.Context, item domain.Item) (domain.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to save %s item: %w", item.Kind(), err)
	}

	s.invalidate(ctx, saved.Kind())
	for _, o := range s.observers {
		o.CatalogItemSaved(ctx, saved)
	}

	return saved, nil
}

// Delete removes a record once confirmer agrees. A nil confirmer deletes unconditionally.
func (s *CatalogService) Delete(ctx context.Context, kind domain.Kind, id domain.ItemID, confirmer ports.Confirmer) error {
	if confirmer != nil && !confirmer.Confirm(ctx, fmt.Sprintf("Delete %s item %d?", kind, id)) {
		return ErrNotConfirmed
	}

	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}

	s.invalidate(ctx, kind)
	for _, o := range s.observers {
		o.CatalogItemDeleted(ctx, kind, id)
	}

	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, kind domain.Kind) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, kind); err != nil {
		log.Printf("Catalog cache invalidation failed for %s: %v", kind, err)
	}
}

// Lookup fetches a record and narrows it to its concrete type.
func Lookup[T domain.Item](ctx context.Context, s *CatalogService, id domain.ItemID) (T, error) {
	var zero T
	item, err := s.Get(ctx, zero.Kind(), id)
	if err != nil {
		return zero, err
	}
	v, ok := item.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T", domain.ErrKindMismatch, item)
	}
	return v, nil
}
