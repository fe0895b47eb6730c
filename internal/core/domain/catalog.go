package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownKind  = errors.New("unknown catalog kind")
	ErrItemNotFound = errors.New("catalog item not found")
	ErrInvalidItem  = errors.New("invalid catalog item")
	ErrKindMismatch = errors.New("catalog item kind mismatch")
)

// Kind tags the four bookable item variants.
type Kind string

const (
	KindHall       Kind = "halls"
	KindDecoration Kind = "decorations"
	KindCatering   Kind = "catering"
	KindRoom       Kind = "rooms"
)

func Kinds() []Kind {
	return []Kind{KindHall, KindDecoration, KindCatering, KindRoom}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type ItemID int64

// Item is one catalog record. Only the four types in this file implement it.
type Item interface {
	ID() ItemID
	Kind() Kind
	Validate() error
	withID(id ItemID) Item
}

// AssignID returns a copy of item carrying id.
func AssignID(item Item, id ItemID) Item {
	return item.withID(id)
}

type Hall struct {
	ItemID      ItemID          `json:"id"`
	Name        string          `json:"name"`
	Capacity    int             `json:"capacity"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Available   bool            `json:"available"`
	Image       string          `json:"image,omitempty"`
}

func (h Hall) ID() ItemID { return h.ItemID }
func (h Hall) Kind() Kind { return KindHall }

func (h Hall) withID(id ItemID) Item {
	h.ItemID = id
	return h
}

func (h Hall) Validate() error {
	switch {
	case h.Name == "":
		return fmt.Errorf("%w: hall name is required", ErrInvalidItem)
	case h.Capacity <= 0:
		return fmt.Errorf("%w: hall capacity must be positive", ErrInvalidItem)
	case h.PricePerDay.IsNegative():
		return fmt.Errorf("%w: hall price per day must not be negative", ErrInvalidItem)
	}
	return nil
}

type Decoration struct {
	ItemID      ItemID          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
}

func (d Decoration) ID() ItemID { return d.ItemID }
func (d Decoration) Kind() Kind { return KindDecoration }

func (d Decoration) withID(id ItemID) Item {
	d.ItemID = id
	return d
}

func (d Decoration) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("%w: decoration name is required", ErrInvalidItem)
	case d.Price.IsNegative():
		return fmt.Errorf("%w: decoration price must not be negative", ErrInvalidItem)
	}
	return nil
}

type Catering struct {
	ItemID         ItemID          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	Image          string          `json:"image,omitempty"`
}

func (c Catering) ID() ItemID { return c.ItemID }
func (c Catering) Kind() Kind { return KindCatering }

func (c Catering) withID(id ItemID) Item {
	c.ItemID = id
	return c
}

func (c Catering) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: catering name is required", ErrInvalidItem)
	case c.PricePerPerson.IsNegative():
		return fmt.Errorf("%w: catering price per person must not be negative", ErrInvalidItem)
	}
	return nil
}

// RoomType.Available is catalog-level capacity, not a live remaining count.
type RoomType struct {
	ItemID        ItemID          `json:"id"`
	Type          string          `json:"type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Available     int             `json:"available"`
	Image         string          `json:"image,omitempty"`
}

func (r RoomType) ID() ItemID { return r.ItemID }
func (r RoomType) Kind() Kind { return KindRoom }

func (r RoomType) withID(id ItemID) Item {
	r.ItemID = id
	return r
}

func (r RoomType) Validate() error {
	switch {
	case r.Type == "":
		return fmt.Errorf("%w: room type is required", ErrInvalidItem)
	case r.PricePerNight.IsNegative():
		return fmt.Errorf("%w: room price per night must not be negative", ErrInvalidItem)
	case r.Available < 0:
		return fmt.Errorf("%w: room availability must not be negative", ErrInvalidItem)
	}
	return nil
}

// DecodeItem decodes a JSON record of the given kind.
func DecodeItem(kind Kind, raw []byte) (Item, error) {
	var (
		item Item
		err  error
	)
	switch kind {
	case KindHall:
		var h Hall
		err = json.Unmarshal(raw, &h)
		item = h
	case KindDecoration:
		var d Decoration
		err = json.Unmarshal(raw, &d)
		item = d
	case KindCatering:
		var c Catering
		err = json.Unmarshal(raw, &c)
		item = c
	case KindRoom:
		var r RoomType
		err = json.Unmarshal(raw, &r)
		item = r
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s item: %w", kind, err)
	}
	return item, nil
}

// DecodeItems decodes a JSON array of records of the given kind.
func DecodeItems(kind Kind, raw []byte) ([]Item, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s items: %w", kind, err)
	}
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		item, err := DecodeItem(kind, rec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
