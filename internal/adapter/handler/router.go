package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter mounts the customer routes under /api/sessions and the operator
// routes under /api/admin.
func NewRouter(bookings *BookingHandler, admin *AdminHandler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", bookings.StartSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", bookings.GetSession)
				r.Delete("/", bookings.EndSession)

				r.Put("/event-name", bookings.SetEventName)
				r.Put("/event-type", bookings.SetEventType)
				r.Put("/start-date", bookings.SetStartDate)
				r.Put("/end-date", bookings.SetEndDate)
				r.Put("/hall", bookings.SelectHall)
				r.Put("/decoration", bookings.SelectDecoration)
				r.Put("/catering", bookings.SelectCatering)
				r.Put("/guest-count", bookings.SetGuestCount)
				r.Post("/rooms/{roomID}/increment", bookings.IncrementRoom)
				r.Post("/rooms/{roomID}/decrement", bookings.DecrementRoom)
				r.Put("/customer", bookings.SetCustomer)

				r.Post("/reset", bookings.ResetDraft)
				r.Post("/advance", bookings.Advance)
				r.Post("/back", bookings.Back)
				r.Post("/confirm", bookings.Confirm)
				r.Post("/another", bookings.MakeAnotherBooking)

				r.Get("/options", bookings.GetOptions)
				r.Get("/calendar", bookings.GetCalendar)
				r.Get("/breakdown", bookings.GetBreakdown)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/catalog/{kind}", func(r chi.Router) {
				r.Get("/", admin.ListItems)
				r.Post("/", admin.CreateItem)
				r.Get("/{id}", admin.GetItem)
				r.Put("/{id}", admin.UpdateItem)
				r.Delete("/{id}", admin.DeleteItem)
			})
			r.Get("/bookings", admin.ListBookings)
			r.Get("/bookings/latest", admin.LatestBooking)
			r.Get("/bookings/{bookingID}", admin.GetBooking)
		})
	})

	return r
}
