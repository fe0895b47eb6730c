package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_booking/internal/adapter/handler"
	"github.com/srgjo27/event_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalOf(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	catalog := services.NewCatalogService(memory.NewCatalog(), nil)
	require.NoError(t, catalog.SeedDefaults(context.Background()))
	ledger := services.NewBookingLedger(memory.NewLedger())
	sessions := services.NewSessionService(catalog, ledger, nil, time.Hour)

	return handler.NewRouter(
		handler.NewBookingHandler(sessions),
		handler.NewAdminHandler(catalog, ledger),
		[]string{"http://localhost:5173"},
	)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeAction(t *testing.T, rec *httptest.ResponseRecorder) handler.ActionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handler.ActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func startSession(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/sessions/", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var view services.SessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, domain.StepBooking, view.Step)
	return "/api/sessions/" + view.ID.String()
}

func TestBookingFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	base := startSession(t, router)

	decodeAction(t, do(t, router, http.MethodPut, base+"/event-name", map[string]string{"value": "Summer Gala"}))
	decodeAction(t, do(t, router, http.MethodPut, base+"/event-type", map[string]string{"value": "wedding"}))

	resp := decodeAction(t, do(t, router, http.MethodPost, base+"/advance", nil))
	assert.False(t, resp.Applied)

	resp = decodeAction(t, do(t, router, http.MethodPut, base+"/hall", map[string]int{"id": 1}))
	assert.True(t, resp.Applied)
	decodeAction(t, do(t, router, http.MethodPut, base+"/start-date", map[string]string{"value": "2024-06-01"}))
	resp = decodeAction(t, do(t, router, http.MethodPut, base+"/end-date", map[string]string{"value": "2024-06-03"}))
	assert.Equal(t, 3, resp.Session.Draft.NumberOfDays)
	assert.True(t, resp.Session.CanAdvance)

	resp = decodeAction(t, do(t, router, http.MethodPost, base+"/rooms/1/increment", nil))
	assert.True(t, resp.Applied)
	assert.True(t, resp.Session.Draft.TotalCost.Equal(decimalOf(15000+150*3)))

	resp = decodeAction(t, do(t, router, http.MethodPost, base+"/advance", nil))
	assert.Equal(t, domain.StepCalendar, resp.Session.Step)

	rec := do(t, router, http.MethodGet, base+"/calendar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var days []domain.CalendarDay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	assert.Len(t, days, 3)

	decodeAction(t, do(t, router, http.MethodPost, base+"/advance", nil))
	decodeAction(t, do(t, router, http.MethodPut, base+"/customer", domain.Customer{Name: "Jane", Email: "jane@example.com", Phone: "+1 234"}))

	resp = decodeAction(t, do(t, router, http.MethodPost, base+"/confirm", nil))
	require.True(t, resp.Applied)
	assert.Equal(t, domain.StepConfirmation, resp.Session.Step)
	require.NotNil(t, resp.Session.Confirmed)

	rec = do(t, router, http.MethodGet, "/api/bookings/latest", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/admin/bookings/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var latest domain.ConfirmedBooking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, resp.Session.Confirmed.ID, latest.ID)
	assert.Equal(t, domain.BookingConfirmed, latest.Status)

	rec = do(t, router, http.MethodGet, "/api/admin/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []handler.BookingRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Grand Ballroom", rows[0].Venue)
	assert.Equal(t, "jane@example.com", rows[0].CustomerEmail)

	rec = do(t, router, http.MethodGet, "/api/admin/bookings/"+latest.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp = decodeAction(t, do(t, router, http.MethodPost, base+"/another", nil))
	assert.True(t, resp.Applied)
	assert.Equal(t, domain.StepBooking, resp.Session.Step)
}

func TestSessionErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/sessions/018f6d8a-0000-7000-8000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	base := startSession(t, router)
	rec = do(t, router, http.MethodPut, base+"/start-date", map[string]string{"value": "06/01/2024"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, base+"/hall", map[string]string{"hall": "one"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/admin/bookings/latest", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGuestCountAndOptions(t *testing.T) {
	router := newTestRouter(t)
	base := startSession(t, router)

	resp := decodeAction(t, do(t, router, http.MethodPut, base+"/guest-count", map[string]int{"guest_count": -5}))
	assert.False(t, resp.Applied)

	decodeAction(t, do(t, router, http.MethodPut, base+"/guest-count", map[string]int{"guest_count": 100}))
	resp = decodeAction(t, do(t, router, http.MethodPut, base+"/catering", map[string]int{"id": 1}))
	assert.True(t, resp.Session.Draft.TotalCost.Equal(decimalOf(4500)))

	rec := do(t, router, http.MethodGet, base+"/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var opts services.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Len(t, opts.Halls, 4)
	assert.Len(t, opts.Decorations, 4)
	assert.Len(t, opts.Rooms, 3)
	assert.True(t, opts.Catering[2].Subtotal.Equal(decimalOf(5500)))

	rec = do(t, router, http.MethodGet, base+"/breakdown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bd domain.Breakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bd))
	require.Len(t, bd.Lines, 1)
	assert.Equal(t, domain.LineCatering, bd.Lines[0].Kind)
}

func TestAdminCatalog(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/admin/catalog/venues/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/admin/catalog/halls/", map[string]any{
		"name": "Lake House", "capacity": 80, "price_per_day": "1800", "available": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.Hall
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, domain.ItemID(5), created.ItemID)

	rec = do(t, router, http.MethodPost, "/api/admin/catalog/halls/", map[string]any{"name": "", "capacity": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/admin/catalog/rooms/1", map[string]any{
		"type": "Deluxe Room", "price_per_night": "175", "available": 12,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var room domain.RoomType
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &room))
	assert.Equal(t, domain.ItemID(1), room.ItemID)
	assert.True(t, room.PricePerNight.Equal(decimalOf(175)))

	rec = do(t, router, http.MethodPut, "/api/admin/catalog/rooms/42", map[string]any{"type": "Ghost", "price_per_night": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/admin/catalog/decorations/2", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/admin/catalog/decorations/2?confirm=true", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/admin/catalog/decorations/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 3)

	rec = do(t, router, http.MethodGet, "/api/admin/catalog/decorations/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccessLogCarriesRequestID(t *testing.T) {
	var logs bytes.Buffer
	previous := middleware.DefaultLogger
	middleware.DefaultLogger = middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(&logs, "", 0),
		NoColor: true,
	})
	t.Cleanup(func() { middleware.DefaultLogger = previous })

	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/api/admin/bookings", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `^\[\S+-\d{6}\] "GET http://example\.com/api/admin/bookings `, logs.String())
}
