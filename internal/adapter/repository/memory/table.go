package memory

import (
	"fmt"

	"github.com/srgjo27/event_booking/internal/core/domain"
)

// Table is an insertion-ordered record table for one catalog variant.
// It is not safe for concurrent use; Catalog serializes access.
type Table[T domain.Item] struct {
	kind   domain.Kind
	nextID domain.ItemID
	order  []domain.ItemID
	rows   map[domain.ItemID]T
}

func NewTable[T domain.Item](kind domain.Kind) *Table[T] {
	return &Table[T]{
		kind:   kind,
		nextID: 1,
		rows:   make(map[domain.ItemID]T),
	}
}

func (t *Table[T]) Get(id domain.ItemID) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *Table[T]) List() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// Put inserts a row with a zero id under the next free id, or replaces the
// row with the same id.
func (t *Table[T]) Put(row T) T {
	id := row.ID()
	if id == 0 {
		id = t.nextID
		row = domain.AssignID(row, id).(T)
	}
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	if id >= t.nextID {
		t.nextID = id + 1
	}
	t.rows[id] = row
	return row
}

func (t *Table[T]) Delete(id domain.ItemID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *Table[T]) Len() int { return len(t.rows) }

// itemTable erases the row type so Catalog can dispatch on kind.
type itemTable interface {
	getItem(id domain.ItemID) (domain.Item, bool)
	listItems() []domain.Item
	putItem(item domain.Item) (domain.Item, error)
	deleteItem(id domain.ItemID) bool
}

func (t *Table[T]) getItem(id domain.ItemID) (domain.Item, bool) {
	row, ok := t.Get(id)
	if !ok {
		return nil, false
	}
	return row, true
}

func (t *Table[T]) listItems() []domain.Item {
	rows := t.List()
	out := make([]domain.Item, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

func (t *Table[T]) putItem(item domain.Item) (domain.Item, error) {
	row, ok := item.(T)
	if !ok {
		return nil, fmt.Errorf("%w: %s table cannot hold %T", domain.ErrKindMismatch, t.kind, item)
	}
	return t.Put(row), nil
}

func (t *Table[T]) deleteItem(id domain.ItemID) bool {
	return t.Delete(id)
}
