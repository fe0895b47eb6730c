package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/core/ports"
)

var ErrSessionNotFound = errors.New("session not found")

const maxSelectAttempts = 3

type session struct {
	mu        sync.Mutex
	wf        *domain.Workflow
	confirmed *domain.ConfirmedBooking
	lastSeen  time.Time
}

// SessionView is what a customer sees after every action.
type SessionView struct {
	ID         uuid.UUID                `json:"session_id"`
	Step       domain.Step              `json:"step"`
	Draft      domain.DraftSnapshot     `json:"draft"`
	CanAdvance bool                     `json:"can_advance"`
	CanConfirm bool                     `json:"can_confirm"`
	Confirmed  *domain.ConfirmedBooking `json:"confirmed_booking,omitempty"`
}

type CateringOption struct {
	domain.Catering
	Subtotal decimal.Decimal `json:"subtotal"`
}

type RoomOption struct {
	domain.RoomType
	Quantity     int  `json:"quantity"`
	CanIncrement bool `json:"can_increment"`
	CanDecrement bool `json:"can_decrement"`
}

// Options lists what the customer can pick, annotated with the draft's state.
type Options struct {
	Halls       []domain.Hall       `json:"halls"`
	Decorations []domain.Decoration `json:"decorations"`
	Catering    []CateringOption    `json:"catering"`
	Rooms       []RoomOption        `json:"rooms"`
}

// SessionService owns one workflow per customer. Each session is mutated
// under its own lock; sessions share nothing but the catalog.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	catalog  *CatalogService
	ledger   *BookingLedger
	notifier ports.BookingNotifier

	// catalogVersion moves before every catalog reconciliation.
	catalogVersion atomic.Uint64

	ttl          time.Duration
	now          func() time.Time
	workflowOpts []domain.WorkflowOption
}

type SessionOption func(*SessionService)

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

func WithWorkflowOptions(opts ...domain.WorkflowOption) SessionOption {
	return func(s *SessionService) { s.workflowOpts = append(s.workflowOpts, opts...) }
}

// NewSessionService accepts a nil notifier. The service subscribes to
// catalog changes so live drafts never keep a deleted or stale record.
func NewSessionService(catalog *CatalogService, ledger *BookingLedger, notifier ports.BookingNotifier, ttl time.Duration, opts ...SessionOption) *SessionService {
	s := &SessionService{
		sessions: make(map[uuid.UUID]*session),
		catalog:  catalog,
		ledger:   ledger,
		notifier: notifier,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	catalog.Subscribe(s)
	return s
}

func (s *SessionService) Start(_ context.Context) SessionView {
	id := uuid.New()
	sess := &session{wf: domain.NewWorkflow(s.workflowOpts...), lastSeen: s.now()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return s.view(id, sess)
}

func (s *SessionService) End(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *SessionService) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// apply runs fn under the session lock and reports whether it took effect.
func (s *SessionService) apply(id uuid.UUID, fn func(wf *domain.Workflow) bool) (SessionView, bool, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionView{}, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()
	applied := fn(sess.wf)
	return s.view(id, sess), applied, nil
}

// view must be called with the session lock held.
func (s *SessionService) view(id uuid.UUID, sess *session) SessionView {
	return SessionView{
		ID:         id,
		Step:       sess.wf.Step(),
		Draft:      sess.wf.Draft().Snapshot(),
		CanAdvance: sess.wf.CanAdvance(),
		CanConfirm: sess.wf.CanConfirm(),
		Confirmed:  sess.confirmed,
	}
}

func (s *SessionService) View(_ context.Context, id uuid.UUID) (SessionView, error) {
	v, _, err := s.apply(id, func(*domain.Workflow) bool { return true })
	return v, err
}

func (s *SessionService) SetEventName(_ context.Context, id uuid.UUID, name string) (SessionView, bool, error) {
	return s.apply(id, func(wf *domain.Workflow) bool {
		wf.Draft().SetEventName(name)
		return true
	})
}

func (s *SessionService) SetEventType(_ context.Context, id uuid.UUID, eventType string) (SessionView, bool, error) {
	return s.apply(id, func(wf *domain.Workflow) bool {
		return wf.Draft().SetEventType(domain.EventType(eventType))
	})
}

func (s *SessionService) SetStartDate(_ context.Context, id uuid.UUID, date domain.Date) (SessionView, bool, error) {
	return s.apply(id, func(wf *domain.Workflow) bool {
		wf.Draft().SetStartDate(date)
		return true
	})
}

func (s *SessionService) SetEndDate(_ context.Context, id uuid.UUID, date domain.Date) (SessionView, bool, error) {
	return s.apply(id, func(wf *domain.Workflow) bool {
		wf.Draft().SetEndDate(date)
		return true
	})
}

func (s *SessionService) SelectHall(ctx context.Context, id uuid.UUID, hallID domain.ItemID) (SessionView, bool, error) {
	return selectItem(ctx, s, id, hallID, (*domain.Draft).SelectHall)
}

func (s *SessionService) SelectDecoration(ctx context.Context, id uuid.UUID, decorationID domain.ItemID) (SessionView, bool, error) {
	return selectItem(ctx, s, id, decorationID, func(d *domain.Draft, dec domain.Decoration) bool {
		d.SelectDecoration(dec)
		return true
	})
}

func (s *SessionService) SelectCatering(ctx context.Context, id uuid.UUID, cateringID domain.ItemID) (SessionView, bool, error) {
	return selectItem(ctx, s, id, cateringID, func(d *domain.Draft, c domain.Catering) bool {
		d.SelectCatering(c)
		return true
	})
}

func (s *SessionService) SetGuestCount(_ context.Context, id uuid.UUID, count int) (SessionView, bool, error) {
	return s.apply(id, func(wf *domain.Workflow) bool {
		return wf.Draft().SetGuestCount(count)
	})
}

func (s *SessionService) IncrementRoom(ctx context.Context, id uuid.UUID, roomID domain.ItemID) (SessionView, bool, error) {
	return selectItem(ctx, s, id, roomID, (*domain.Draft).IncrementRoom)
}

func (s *SessionService) DecrementRoom(_ context.Context, id uuid.UUID, roomID domain.ItemID) (SessionView, bool, error) {
	return s.apply(id, func(wf *domain.Workflow) bool {
		return wf.Draft().DecrementRoom(roomID)
	})
}

func (s *SessionService) SetCustomerInfo(_ context.Context, id uuid.UUID, c domain.Customer) (SessionView, bool, error) {
	return s.apply(id, func(wf *domain.Workflow) bool {
		wf.Draft().SetCustomerInfo(c)
		return true
	})
}

func (s *SessionService) ResetDraft(_ context.Context, id uuid.UUID) (SessionView, bool, error) {
	return s.apply(id, (*domain.Workflow).Reset)
}

func (s *SessionService) Advance(_ context.Context, id uuid.UUID) (SessionView, bool, error) {
	return s.apply(id, (*domain.Workflow).Advance)
}

func (s *SessionService) Back(_ context.Context, id uuid.UUID) (SessionView, bool, error) {
	return s.apply(id, (*domain.Workflow).Back)
}

func (s *SessionService) MakeAnotherBooking(_ context.Context, id uuid.UUID) (SessionView, bool, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionView{}, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()
	applied := sess.wf.MakeAnotherBooking()
	if applied {
		sess.confirmed = nil
	}
	return s.view(id, sess), applied, nil
}

// Confirm records the draft in the ledger and then notifies downstream.
// The notifier runs after the session lock is released. A notification
// failure is logged; the booking stays confirmed.
func (s *SessionService) Confirm(ctx context.Context, id uuid.UUID) (SessionView, bool, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return SessionView{}, false, err
	}

	sess.mu.Lock()
	sess.lastSeen = s.now()
	booking, ok, err := sess.wf.Confirm(func(b domain.ConfirmedBooking) error {
		return s.ledger.Record(ctx, b)
	})
	if err != nil {
		sess.mu.Unlock()
		return SessionView{}, false, err
	}
	if ok {
		sess.confirmed = &booking
	}
	v := s.view(id, sess)
	sess.mu.Unlock()

	if !ok {
		return v, false, nil
	}

	log.Printf("Booking %s confirmed for %q (total %s)", booking.ID, booking.EventName, booking.TotalCost.StringFixed(2))

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
			log.Printf("Failed to publish confirmation for booking %s: %v", booking.ID, err)
		}
	}

	return v, true, nil
}

func (s *SessionService) Breakdown(_ context.Context, id uuid.UUID) (domain.Breakdown, error) {
	var out domain.Breakdown
	_, _, err := s.apply(id, func(wf *domain.Workflow) bool {
		out = wf.Draft().Breakdown()
		return true
	})
	return out, err
}

func (s *SessionService) Calendar(_ context.Context, id uuid.UUID) ([]domain.CalendarDay, error) {
	var out []domain.CalendarDay
	_, _, err := s.apply(id, func(wf *domain.Workflow) bool {
		out = wf.Draft().CalendarDays()
		return true
	})
	return out, err
}

func (s *SessionService) Options(ctx context.Context, id uuid.UUID) (Options, error) {
	var opts Options
	var lists [4][]domain.Item
	for i, kind := range domain.Kinds() {
		items, err := s.catalog.List(ctx, kind)
		if err != nil {
			return Options{}, err
		}
		lists[i] = items
	}

	_, _, err := s.apply(id, func(wf *domain.Workflow) bool {
		d := wf.Draft()
		for _, items := range lists {
			for _, item := range items {
				switch v := item.(type) {
				case domain.Hall:
					if v.Available {
						opts.Halls = append(opts.Halls, v)
					}
				case domain.Decoration:
					opts.Decorations = append(opts.Decorations, v)
				case domain.Catering:
					opts.Catering = append(opts.Catering, CateringOption{Catering: v, Subtotal: domain.CateringSubtotal(v, d.GuestCount())})
				case domain.RoomType:
					qty := d.RoomQuantity(v.ItemID)
					opts.Rooms = append(opts.Rooms, RoomOption{RoomType: v, Quantity: qty, CanIncrement: qty < v.Available, CanDecrement: qty > 0})
				}
			}
		}
		return true
	})
	return opts, err
}

func (s *SessionService) CatalogItemSaved(_ context.Context, item domain.Item) {
	s.catalogVersion.Add(1)
	s.eachSession(func(wf *domain.Workflow) bool {
		return wf.Draft().ApplyCatalogUpdate(item)
	})
}

func (s *SessionService) CatalogItemDeleted(_ context.Context, kind domain.Kind, id domain.ItemID) {
	s.catalogVersion.Add(1)
	s.eachSession(func(wf *domain.Workflow) bool {
		return wf.Draft().ApplyCatalogDelete(kind, id)
	})
}

func (s *SessionService) eachSession(fn func(wf *domain.Workflow) bool) {
	s.mu.RLock()
	all := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.RUnlock()

	changed := 0
	for _, sess := range all {
		sess.mu.Lock()
		if fn(sess.wf) {
			changed++
		}
		sess.mu.Unlock()
	}
	if changed > 0 {
		log.Printf("Catalog change reconciled into %d active drafts", changed)
	}
}

func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionService) RunBackgroundCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Background Worker started: Checking idle sessions every %s...", interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Background Worker stopped.")
			return
		case <-ticker.C:
			s.ExpireIdleSessions()
		}
	}
}

// ExpireIdleSessions drops sessions untouched for longer than the TTL.
// Sessions busy with an action are in use and are left for the next sweep.
func (s *SessionService) ExpireIdleSessions() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.RLock()
	candidates := make(map[uuid.UUID]*session, len(s.sessions))
	for id, sess := range s.sessions {
		candidates[id] = sess
	}
	s.mu.RUnlock()

	var idle []uuid.UUID
	for id, sess := range candidates {
		if !sess.mu.TryLock() {
			continue
		}
		if sess.lastSeen.Before(cutoff) {
			idle = append(idle, id)
		}
		sess.mu.Unlock()
	}
	if len(idle) == 0 {
		return 0
	}

	s.mu.Lock()
	expired := 0
	for _, id := range idle {
		if s.sessions[id] == candidates[id] {
			delete(s.sessions, id)
			expired++
		}
	}
	s.mu.Unlock()

	if expired > 0 {
		log.Printf("Expired %d idle sessions.", expired)
	}
	return expired
}

// selectItem fetches a catalog record outside the session lock and installs
// it under the lock. A catalog change in between voids the fetched record and
// the lookup is repeated, so a reconciled draft never takes it back.
func selectItem[T domain.Item](ctx context.Context, s *SessionService, id uuid.UUID, itemID domain.ItemID, pick func(*domain.Draft, T) bool) (SessionView, bool, error) {
	for attempt := 1; ; attempt++ {
		version := s.catalogVersion.Load()
		item, found, err := lookupSelectable[T](ctx, s.catalog, itemID)
		if err != nil {
			return SessionView{}, false, err
		}

		stale := false
		v, applied, err := s.apply(id, func(wf *domain.Workflow) bool {
			if s.catalogVersion.Load() != version {
				stale = true
				return false
			}
			return found && pick(wf.Draft(), item)
		})
		if err != nil || !stale || attempt == maxSelectAttempts {
			return v, applied, err
		}
	}
}

// lookupSelectable treats a missing catalog record as a refused selection.
func lookupSelectable[T domain.Item](ctx context.Context, catalog *CatalogService, id domain.ItemID) (T, bool, error) {
	item, err := Lookup[T](ctx, catalog, id)
	if errors.Is(err, domain.ErrItemNotFound) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return item, true, nil
}
