package domain

import (
	"github.com/shopspring/decimal"
)

// Draft is the booking under construction. Derived fields (number of days and
// the price breakdown) are recomputed after every mutation and cannot be set.
type Draft struct {
	eventName    string
	eventType    EventType
	startDate    Date
	endDate      Date
	numberOfDays int
	hall         *Hall
	decoration   *Decoration
	catering     *Catering
	guestCount   int
	rooms        []RoomSelection
	customer     Customer
	breakdown    Breakdown
}

func NewDraft() *Draft {
	d := &Draft{numberOfDays: 1}
	d.recompute()
	return d
}

// recompute refreshes derived fields. Days must be resolved before pricing.
func (d *Draft) recompute() {
	if !d.startDate.IsZero() && !d.endDate.IsZero() {
		d.numberOfDays = DaysInclusive(d.startDate, d.endDate)
	}
	d.breakdown = Price(d.pricingInput())
}

func (d *Draft) pricingInput() PricingInput {
	return PricingInput{
		Hall:         d.hall,
		Decoration:   d.decoration,
		Catering:     d.catering,
		NumberOfDays: d.numberOfDays,
		GuestCount:   d.guestCount,
		Rooms:        d.rooms,
	}
}

func (d *Draft) SetEventName(name string) {
	d.eventName = name
}

func (d *Draft) SetEventType(t EventType) bool {
	if _, ok := ParseEventType(string(t)); !ok {
		return false
	}
	d.eventType = t
	return true
}

func (d *Draft) SetStartDate(date Date) {
	d.startDate = date
	d.recompute()
}

func (d *Draft) SetEndDate(date Date) {
	d.endDate = date
	d.recompute()
}

// SelectHall refuses halls that are not currently offered.
func (d *Draft) SelectHall(h Hall) bool {
	if !h.Available {
		return false
	}
	d.hall = &h
	d.recompute()
	return true
}

func (d *Draft) SelectDecoration(dec Decoration) {
	d.decoration = &dec
	d.recompute()
}

func (d *Draft) SelectCatering(c Catering) {
	d.catering = &c
	d.recompute()
}

func (d *Draft) SetGuestCount(n int) bool {
	if n < 0 {
		return false
	}
	d.guestCount = n
	d.recompute()
	return true
}

func (d *Draft) IncrementRoom(r RoomType) bool {
	rooms, ok := AllocateRoom(d.rooms, r)
	if !ok {
		return false
	}
	d.rooms = rooms
	d.recompute()
	return true
}

func (d *Draft) DecrementRoom(id ItemID) bool {
	rooms, ok := ReleaseRoom(d.rooms, id)
	if !ok {
		return false
	}
	d.rooms = rooms
	d.recompute()
	return true
}

func (d *Draft) SetCustomerInfo(c Customer) {
	d.customer = c
}

func (d *Draft) NumberOfDays() int { return d.numberOfDays }
func (d *Draft) TotalCost() decimal.Decimal { return d.breakdown.Total }
func (d *Draft) Customer() Customer { return d.customer }
func (d *Draft) RoomQuantity(id ItemID) int { return QuantityOf(d.rooms, id) }
func (d *Draft) GuestCount() int { return d.guestCount }
func (d *Draft) HasRooms() bool { return len(d.rooms) > 0 }

func (d *Draft) Breakdown() Breakdown {
	out := d.breakdown
	out.Lines = append([]LineItem(nil), d.breakdown.Lines...)
	return out
}

// ReadyForCalendar reports whether the hall and both dates are set.
func (d *Draft) ReadyForCalendar() bool {
	return d.hall != nil && !d.startDate.IsZero() && !d.endDate.IsZero()
}

func (d *Draft) Snapshot() DraftSnapshot {
	return DraftSnapshot{
		EventName:    d.eventName,
		EventType:    d.eventType,
		StartDate:    d.startDate,
		EndDate:      d.endDate,
		NumberOfDays: d.numberOfDays,
		Hall:         clonePtr(d.hall),
		Decoration:   clonePtr(d.decoration),
		Catering:     clonePtr(d.catering),
		GuestCount:   d.guestCount,
		Rooms:        append([]RoomSelection{}, d.rooms...),
		Breakdown:    d.Breakdown(),
		TotalCost:    d.breakdown.Total,
		Customer:     d.customer,
		Status:       BookingPending,
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
