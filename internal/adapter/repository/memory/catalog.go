package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/srgjo27/event_booking/internal/core/domain"
)

type Catalog struct {
	mu     sync.RWMutex
	tables map[domain.Kind]itemTable
}

func NewCatalog() *Catalog {
	return &Catalog{
		tables: map[domain.Kind]itemTable{
			domain.KindHall:       NewTable[domain.Hall](domain.KindHall),
			domain.KindDecoration: NewTable[domain.Decoration](domain.KindDecoration),
			domain.KindCatering:   NewTable[domain.Catering](domain.KindCatering),
			domain.KindRoom:       NewTable[domain.RoomType](domain.KindRoom),
		},
	}
}

func (c *Catalog) table(kind domain.Kind) (itemTable, error) {
	t, ok := c.tables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return t, nil
}

func (c *Catalog) Get(_ context.Context, kind domain.Kind, id domain.ItemID) (domain.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.table(kind)
	if err != nil {
		return nil, err
	}
	item, ok := t.getItem(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%d", domain.ErrItemNotFound, kind, id)
	}
	return item, nil
}

func (c *Catalog) List(_ context.Context, kind domain.Kind) ([]domain.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.table(kind)
	if err != nil {
		return nil, err
	}
	return t.listItems(), nil
}

func (c *Catalog) Save(_ context.Context, item domain.Item) (domain.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.table(item.Kind())
	if err != nil {
		return nil, err
	}
	return t.putItem(item)
}

func (c *Catalog) Delete(_ context.Context, kind domain.Kind, id domain.ItemID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.table(kind)
	if err != nil {
		return err
	}
	if !t.deleteItem(id) {
		return fmt.Errorf("%w: %s/%d", domain.ErrItemNotFound, kind, id)
	}
	return nil
}
