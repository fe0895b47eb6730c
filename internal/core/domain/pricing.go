package domain

import (
	"github.com/shopspring/decimal"
)

type LineKind string

const (
	LineHall       LineKind = "hall"
	LineDecoration LineKind = "decoration"
	LineCatering   LineKind = "catering"
	LineRoom       LineKind = "room"
)

// LineItem is one priced component of a booking. Amount = UnitPrice × Quantity × Days,
// where Days is 1 for components that do not scale with the date range.
type LineItem struct {
	Kind      LineKind        `json:"kind"`
	ItemID    ItemID          `json:"item_id"`
	Label     string          `json:"label"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Days      int             `json:"days"`
	Amount    decimal.Decimal `json:"amount"`
}

type Breakdown struct {
	Lines []LineItem      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// PricingInput holds everything the price depends on.
type PricingInput struct {
	Hall         *Hall
	Decoration   *Decoration
	Catering     *Catering
	NumberOfDays int
	GuestCount   int
	Rooms        []RoomSelection
}

// Price computes the itemized breakdown. Missing selections contribute nothing.
func Price(in PricingInput) Breakdown {
	days := in.NumberOfDays
	if days < 1 {
		days = 1
	}

	var lines []LineItem
	if in.Hall != nil {
		lines = append(lines, newLine(LineHall, in.Hall.ItemID, in.Hall.Name, in.Hall.PricePerDay, 1, days))
	}
	if in.Decoration != nil {
		lines = append(lines, newLine(LineDecoration, in.Decoration.ItemID, in.Decoration.Name, in.Decoration.Price, 1, 1))
	}
	if in.Catering != nil && in.GuestCount > 0 {
		lines = append(lines, newLine(LineCatering, in.Catering.ItemID, in.Catering.Name, in.Catering.PricePerPerson, in.GuestCount, 1))
	}
	for _, sel := range in.Rooms {
		if sel.Quantity <= 0 {
			continue
		}
		lines = append(lines, newLine(LineRoom, sel.Room.ItemID, sel.Room.Type, sel.Room.PricePerNight, sel.Quantity, days))
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return Breakdown{Lines: lines, Total: total}
}

func newLine(kind LineKind, id ItemID, label string, unit decimal.Decimal, qty, days int) LineItem {
	return LineItem{
		Kind:      kind,
		ItemID:    id,
		Label:     label,
		UnitPrice: unit,
		Quantity:  qty,
		Days:      days,
		Amount:    unit.Mul(decimal.NewFromInt(int64(qty))).Mul(decimal.NewFromInt(int64(days))),
	}
}

// CateringSubtotal previews what an option would cost for guestCount guests.
func CateringSubtotal(c Catering, guestCount int) decimal.Decimal {
	if guestCount <= 0 {
		return decimal.Zero
	}
	return c.PricePerPerson.Mul(decimal.NewFromInt(int64(guestCount)))
}
