package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/core/services"
)

// AdminHandler serves the operator side: catalog maintenance and the booking list.
type AdminHandler struct {
	catalog *services.CatalogService
	ledger  *services.BookingLedger
}

func NewAdminHandler(catalog *services.CatalogService, ledger *services.BookingLedger) *AdminHandler {
	return &AdminHandler{catalog: catalog, ledger: ledger}
}

// queryConfirmer approves a destructive action when the request carries ?confirm=true.
type queryConfirmer struct {
	r *http.Request
}

func (c queryConfirmer) Confirm(_ context.Context, _ string) bool {
	ok, _ := strconv.ParseBool(c.r.URL.Query().Get("confirm"))
	return ok
}

// BookingRow is one line of the operator's booking table.
type BookingRow struct {
	ID            uuid.UUID            `json:"id"`
	EventName     string               `json:"event_name"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	Venue         string               `json:"venue"`
	StartDate     domain.Date          `json:"start_date"`
	EndDate       domain.Date          `json:"end_date"`
	TotalCost     decimal.Decimal      `json:"total_cost"`
	Status        domain.BookingStatus `json:"status"`
	ConfirmedAt   time.Time            `json:"confirmed_at"`
}

func toBookingRow(b domain.ConfirmedBooking) BookingRow {
	return BookingRow{
		ID:            b.ID,
		EventName:     b.EventName,
		CustomerName:  b.Customer.Name,
		CustomerEmail: b.Customer.Email,
		Venue:         b.VenueName(),
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		TotalCost:     b.TotalCost,
		Status:        b.Status,
		ConfirmedAt:   b.ConfirmedAt,
	}
}

func pathKind(w http.ResponseWriter, r *http.Request) (domain.Kind, bool) {
	kind, err := domain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown catalog kind", err)
		return "", false
	}
	return kind, true
}

func pathItemID(w http.ResponseWriter, r *http.Request) (domain.ItemID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid item id", err)
		return 0, false
	}
	return domain.ItemID(id), true
}

func (h *AdminHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	items, err := h.catalog.List(r.Context(), kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *AdminHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathItemID(w, r)
	if !ok {
		return
	}
	item, err := h.catalog.Get(r.Context(), kind, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	item, ok := decodeItem(w, r, kind)
	if !ok {
		return
	}
	saved, err := h.catalog.Save(r.Context(), domain.AssignID(item, 0))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathItemID(w, r)
	if !ok {
		return
	}
	if _, err := h.catalog.Get(r.Context(), kind, id); err != nil {
		writeServiceError(w, err)
		return
	}
	item, ok := decodeItem(w, r, kind)
	if !ok {
		return
	}
	saved, err := h.catalog.Save(r.Context(), domain.AssignID(item, id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathItemID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.Delete(r.Context(), kind, id, queryConfirmer{r: r}); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeItem(w http.ResponseWriter, r *http.Request, kind domain.Kind) (domain.Item, bool) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body", err)
		return nil, false
	}
	item, err := domain.DecodeItem(kind, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err)
		return nil, false
	}
	return item, true
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	all, err := h.ledger.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rows := make([]BookingRow, 0, len(all))
	for _, b := range all {
		rows = append(rows, toBookingRow(b))
	}
	writeJSON(w, http.StatusOK, rows)
}

// LatestBooking returns the most recently recorded booking.
func (h *AdminHandler) LatestBooking(w http.ResponseWriter, r *http.Request) {
	latest, err := h.ledger.Latest(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if latest == nil {
		writeError(w, http.StatusNotFound, "no bookings yet", nil)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id", err)
		return
	}
	b, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
