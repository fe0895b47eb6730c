// Package queue publishes booking events to RabbitMQ.
package queue

import (
	"time"

	"github.com/srgjo27/event_booking/internal/core/domain"
)

const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent carries enough for downstream consumers to notify the
// customer without reading the ledger.
type BookingConfirmedEvent struct {
	BookingID     string `json:"booking_id"`
	EventName     string `json:"event_name"`
	EventType     string `json:"event_type"`
	VenueName     string `json:"venue_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	NumberOfDays  int    `json:"number_of_days"`
	GuestCount    int    `json:"guest_count"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	TotalCost     string `json:"total_cost"`
	ConfirmedAt   string `json:"confirmed_at"`
}

func NewBookingConfirmedEvent(b domain.ConfirmedBooking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:     b.ID.String(),
		EventName:     b.EventName,
		EventType:     string(b.EventType),
		VenueName:     b.VenueName(),
		StartDate:     b.StartDate.String(),
		EndDate:       b.EndDate.String(),
		NumberOfDays:  b.NumberOfDays,
		GuestCount:    b.GuestCount,
		CustomerName:  b.Customer.Name,
		CustomerEmail: b.Customer.Email,
		CustomerPhone: b.Customer.Phone,
		TotalCost:     b.TotalCost.StringFixed(2),
		ConfirmedAt:   b.ConfirmedAt.UTC().Format(time.RFC3339),
	}
}
