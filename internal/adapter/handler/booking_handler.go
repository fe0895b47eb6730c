package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/core/services"
)

// BookingHandler serves the customer side: one booking session per client.
type BookingHandler struct {
	sessions *services.SessionService
}

func NewBookingHandler(sessions *services.SessionService) *BookingHandler {
	return &BookingHandler{sessions: sessions}
}

// ActionResponse reports whether an action took effect. A refused action is
// not an error; the session is returned unchanged.
type ActionResponse struct {
	Applied bool                 `json:"applied"`
	Session services.SessionView `json:"session"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type selectRequest struct {
	ID domain.ItemID `json:"id"`
}

type guestCountRequest struct {
	GuestCount int `json:"guest_count"`
}

type action func(ctx context.Context, id uuid.UUID) (services.SessionView, bool, error)

func (h *BookingHandler) act(w http.ResponseWriter, r *http.Request, fn action) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, applied, err := fn(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ActionResponse{Applied: applied, Session: view})
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.sessions.Start(r.Context()))
}

func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	view, err := h.sessions.View(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *BookingHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.End(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) SetEventName(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err)
		return
	}
	h.act(w, r, func(ctx context.Context, id uuid.UUID) (services.SessionView, bool, error) {
		return h.sessions.SetEventName(ctx, id, req.Value)
	})
}

func (h *BookingHandler) SetEventType(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err)
		return
	}
	h.act(w, r, func(ctx context.Context, id uuid.UUID) (services.SessionView, bool, error) {
		return h.sessions.SetEventType(ctx, id, req.Value)
	})
}

func (h *BookingHandler) SetStartDate(w http.ResponseWriter, r *http.Request) {
	h.setDate(w, r, h.sessions.SetStartDate)
}

func (h *BookingHandler) SetEndDate(w http.ResponseWriter, r *http.Request) {
	h.setDate(w, r, h.sessions.SetEndDate)
}

func (h *BookingHandler) setDate(w http.ResponseWriter, r *http.Request, set func(context.Context, uuid.UUID, domain.Date) (services.SessionView, bool, error)) {
	var req valueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err)
		return
	}
	date, err := domain.ParseDate(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return
	}
	h.act(w, r, func(ctx context.Context, id uuid.UUID) (services.SessionView, bool, error) {
		return set(ctx, id, date)
	})
}

func (h *BookingHandler) SelectHall(w http.ResponseWriter, r *http.Request) {
	h.selectItem(w, r, h.sessions.SelectHall)
}

func (h *BookingHandler) SelectDecoration(w http.ResponseWriter, r *http.Request) {
	h.selectItem(w, r, h.sessions.SelectDecoration)
}

func (h *BookingHandler) SelectCatering(w http.ResponseWriter, r *http.Request) {
	h.selectItem(w, r, h.sessions.SelectCatering)
}

func (h *BookingHandler) selectItem(w http.ResponseWriter, r *http.Request, sel func(context.Context, uuid.UUID, domain.ItemID) (services.SessionView, bool, error)) {
	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err)
		return
	}
	h.act(w, r, func(ctx context.Context, id uuid.UUID) (services.SessionView, bool, error) {
		return sel(ctx, id, req.ID)
	})
}

func (h *BookingHandler) SetGuestCount(w http.ResponseWriter, r *http.Request) {
	var req guestCountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err)
		return
	}
	h.act(w, r, func(ctx context.Context, id uuid.UUID) (services.SessionView, bool, error) {
		return h.sessions.SetGuestCount(ctx, id, req.GuestCount)
	})
}

func (h *BookingHandler) IncrementRoom(w http.ResponseWriter, r *http.Request) {
	h.changeRoom(w, r, h.sessions.IncrementRoom)
}

func (h *BookingHandler) DecrementRoom(w http.ResponseWriter, r *http.Request) {
	h.changeRoom(w, r, h.sessions.DecrementRoom)
}

func (h *BookingHandler) changeRoom(w http.ResponseWriter, r *http.Request, change func(context.Context, uuid.UUID, domain.ItemID) (services.SessionView, bool, error)) {
	roomID, err := strconv.ParseInt(chi.URLParam(r, "roomID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id", err)
		return
	}
	h.act(w, r, func(ctx context.Context, id uuid.UUID) (services.SessionView, bool, error) {
		return change(ctx, id, domain.ItemID(roomID))
	})
}

func (h *BookingHandler) SetCustomer(w http.ResponseWriter, r *http.Request) {
	var req domain.Customer
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err)
		return
	}
	h.act(w, r, func(ctx context.Context, id uuid.UUID) (services.SessionView, bool, error) {
		return h.sessions.SetCustomerInfo(ctx, id, req)
	})
}

func (h *BookingHandler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.sessions.ResetDraft)
}

func (h *BookingHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.sessions.Advance)
}

func (h *BookingHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.sessions.Back)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.sessions.Confirm)
}

func (h *BookingHandler) MakeAnotherBooking(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.sessions.MakeAnotherBooking)
}

func (h *BookingHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	opts, err := h.sessions.Options(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (h *BookingHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	days, err := h.sessions.Calendar(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if days == nil {
		days = []domain.CalendarDay{}
	}
	writeJSON(w, http.StatusOK, days)
}

func (h *BookingHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	bd, err := h.sessions.Breakdown(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bd)
}
