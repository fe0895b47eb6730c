package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateBooking = errors.New("booking already recorded")
	ErrBookingNotFound  = errors.New("booking not found")
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
)

type EventType string

const (
	EventUnset      EventType = ""
	EventWedding    EventType = "wedding"
	EventConference EventType = "conference"
	EventCorporate  EventType = "corporate"
	EventBirthday   EventType = "birthday"
	EventOther      EventType = "other"
)

func ParseEventType(s string) (EventType, bool) {
	switch t := EventType(s); t {
	case EventUnset, EventWedding, EventConference, EventCorporate, EventBirthday, EventOther:
		return t, true
	}
	return EventUnset, false
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (c Customer) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Phone != ""
}

// DraftSnapshot is a read-only copy of a draft.
type DraftSnapshot struct {
	EventName    string          `json:"event_name"`
	EventType    EventType       `json:"event_type"`
	StartDate    Date            `json:"start_date"`
	EndDate      Date            `json:"end_date"`
	NumberOfDays int             `json:"number_of_days"`
	Hall         *Hall           `json:"selected_hall"`
	Decoration   *Decoration     `json:"selected_decoration"`
	Catering     *Catering       `json:"selected_catering"`
	GuestCount   int             `json:"guest_count"`
	Rooms        []RoomSelection `json:"selected_rooms"`
	Breakdown    Breakdown       `json:"breakdown"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Customer     Customer        `json:"customer"`
	Status       BookingStatus   `json:"status"`
}

// ConfirmedBooking is created once at confirmation and never changes afterwards.
type ConfirmedBooking struct {
	ID          uuid.UUID `json:"id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
	DraftSnapshot
}

func NewConfirmedBooking(id uuid.UUID, at time.Time, snap DraftSnapshot) ConfirmedBooking {
	snap.Status = BookingConfirmed
	return ConfirmedBooking{ID: id, ConfirmedAt: at, DraftSnapshot: snap}
}

func (b ConfirmedBooking) VenueName() string {
	if b.Hall == nil {
		return ""
	}
	return b.Hall.Name
}
