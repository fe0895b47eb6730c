package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/event_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/core/ports"
	"github.com/srgjo27/event_booking/internal/core/ports/mocks"
	"github.com/srgjo27/event_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	catalog  *services.CatalogService
	ledger   *memory.Ledger
	sessions *services.SessionService
}

func newSessionFixture(t *testing.T, notifier ports.BookingNotifier, opts ...services.SessionOption) sessionFixture {
	t.Helper()
	catalog := seededCatalog(t)
	ledger := memory.NewLedger()
	sessions := services.NewSessionService(catalog, services.NewBookingLedger(ledger), notifier, time.Hour, opts...)
	return sessionFixture{catalog: catalog, ledger: ledger, sessions: sessions}
}

// fillToPayment walks a session to the payment step with the Grand Ballroom
// booked for 2024-06-01..03.
func fillToPayment(t *testing.T, ctx context.Context, s *services.SessionService) services.SessionView {
	t.Helper()
	id := s.Start(ctx).ID

	_, _, err := s.SetEventName(ctx, id, "Summer Gala")
	require.NoError(t, err)
	_, ok, err := s.SelectHall(ctx, id, 1)
	require.NoError(t, err)
	require.True(t, ok)
	_, _, err = s.SetStartDate(ctx, id, domain.NewDate(2024, time.June, 1))
	require.NoError(t, err)
	_, _, err = s.SetEndDate(ctx, id, domain.NewDate(2024, time.June, 3))
	require.NoError(t, err)

	_, ok, _ = s.Advance(ctx, id)
	require.True(t, ok)
	v, ok, _ := s.Advance(ctx, id)
	require.True(t, ok)
	require.Equal(t, domain.StepPayment, v.Step)
	return v
}

func TestSession_ConfirmRecordsAndNotifies(t *testing.T) {
	mockNotifier := mocks.NewBookingNotifier(t)
	f := newSessionFixture(t, mockNotifier)
	ctx := context.Background()

	v := fillToPayment(t, ctx, f.sessions)
	assert.False(t, v.CanConfirm)

	v, _, err := f.sessions.SetCustomerInfo(ctx, v.ID, domain.Customer{Name: "Jane", Email: "jane@example.com", Phone: "+1 234"})
	require.NoError(t, err)
	assert.True(t, v.CanConfirm)

	mockNotifier.On("BookingConfirmed", ctx, mock.AnythingOfType("domain.ConfirmedBooking")).Return(nil)

	v, ok, err := f.sessions.Confirm(ctx, v.ID)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.StepConfirmation, v.Step)
	require.NotNil(t, v.Confirmed)
	assert.True(t, v.Confirmed.TotalCost.Equal(money(15000)))
	assert.Empty(t, v.Draft.EventName)

	all, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, v.Confirmed.ID, all[0].ID)

	v, ok, _ = f.sessions.MakeAnotherBooking(ctx, v.ID)
	assert.True(t, ok)
	assert.Equal(t, domain.StepBooking, v.Step)
	assert.Nil(t, v.Confirmed)
}

func TestSession_NotifierFailureKeepsBookingConfirmed(t *testing.T) {
	mockNotifier := mocks.NewBookingNotifier(t)
	f := newSessionFixture(t, mockNotifier)
	ctx := context.Background()

	v := fillToPayment(t, ctx, f.sessions)
	f.sessions.SetCustomerInfo(ctx, v.ID, domain.Customer{Name: "Jane", Email: "jane@example.com", Phone: "+1 234"})

	mockNotifier.On("BookingConfirmed", ctx, mock.Anything).Return(errors.New("broker unreachable"))

	v, ok, err := f.sessions.Confirm(ctx, v.ID)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.StepConfirmation, v.Step)
}

func TestSession_ConfirmRefusedWithoutContact(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	v := fillToPayment(t, ctx, f.sessions)
	v, ok, err := f.sessions.Confirm(ctx, v.ID)

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.StepPayment, v.Step)
	all, _ := f.ledger.List(ctx)
	assert.Empty(t, all)
}

func TestSession_UnknownSession(t *testing.T) {
	f := newSessionFixture(t, nil)

	_, _, err := f.sessions.Advance(context.Background(), uuid.New())

	assert.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestSession_SelectMissingItemIsRefused(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()
	id := f.sessions.Start(ctx).ID

	v, ok, err := f.sessions.SelectHall(ctx, id, 99)

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v.Draft.Hall)
}

func TestSession_RoomQuantityBoundedByAvailability(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()
	id := f.sessions.Start(ctx).ID

	results := []bool{}
	for i := 0; i < 4; i++ {
		_, ok, err := f.sessions.IncrementRoom(ctx, id, 3)
		require.NoError(t, err)
		results = append(results, ok)
	}
	assert.Equal(t, []bool{true, true, true, false}, results)

	opts, err := f.sessions.Options(ctx, id)
	require.NoError(t, err)
	require.Len(t, opts.Rooms, 3)
	suite := opts.Rooms[2]
	assert.Equal(t, 3, suite.Quantity)
	assert.False(t, suite.CanIncrement)
	assert.True(t, suite.CanDecrement)

	v, ok, _ := f.sessions.DecrementRoom(ctx, id, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, v.Draft.Rooms[0].Quantity)
}

func TestSession_OptionsHideUnavailableHalls(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()
	id := f.sessions.Start(ctx).ID

	hall, err := services.Lookup[domain.Hall](ctx, f.catalog, 2)
	require.NoError(t, err)
	hall.Available = false
	_, err = f.catalog.Save(ctx, hall)
	require.NoError(t, err)

	f.sessions.SetGuestCount(ctx, id, 100)
	opts, err := f.sessions.Options(ctx, id)

	require.NoError(t, err)
	assert.Len(t, opts.Halls, 3)
	require.NotEmpty(t, opts.Catering)
	assert.True(t, opts.Catering[0].Subtotal.Equal(money(4500)))
}

func TestSession_CatalogChangesReachLiveDrafts(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()
	id := f.sessions.Start(ctx).ID

	f.sessions.SelectHall(ctx, id, 1)
	f.sessions.SelectDecoration(ctx, id, 1)

	hall, err := services.Lookup[domain.Hall](ctx, f.catalog, 1)
	require.NoError(t, err)
	hall.PricePerDay = money(6000)
	_, err = f.catalog.Save(ctx, hall)
	require.NoError(t, err)

	v, err := f.sessions.View(ctx, id)
	require.NoError(t, err)
	assert.True(t, v.Draft.TotalCost.Equal(money(6000+1500)))

	require.NoError(t, f.catalog.Delete(ctx, domain.KindDecoration, 1, nil))

	v, _ = f.sessions.View(ctx, id)
	assert.Nil(t, v.Draft.Decoration)
	assert.True(t, v.Draft.TotalCost.Equal(money(6000)))
}

func TestSession_ResetOnlyOnBookingStep(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	v := fillToPayment(t, ctx, f.sessions)
	_, ok, _ := f.sessions.ResetDraft(ctx, v.ID)
	assert.False(t, ok)

	f.sessions.Back(ctx, v.ID)
	f.sessions.Back(ctx, v.ID)
	v, ok, _ = f.sessions.ResetDraft(ctx, v.ID)
	assert.True(t, ok)
	assert.Nil(t, v.Draft.Hall)
	assert.Equal(t, 1, v.Draft.NumberOfDays)
}

func TestSession_CalendarAndBreakdown(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	v := fillToPayment(t, ctx, f.sessions)

	days, err := f.sessions.Calendar(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, days, 3)

	bd, err := f.sessions.Breakdown(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, bd.Lines, 1)
	assert.True(t, bd.Total.Equal(money(15000)))
}

func TestSession_ExpireIdleSessions(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	f := newSessionFixture(t, nil, services.WithSessionClock(clock))
	ctx := context.Background()

	stale := f.sessions.Start(ctx).ID
	mu.Lock()
	now = now.Add(45 * time.Minute)
	mu.Unlock()
	fresh := f.sessions.Start(ctx).ID

	mu.Lock()
	now = now.Add(30 * time.Minute)
	mu.Unlock()

	assert.Equal(t, 1, f.sessions.ExpireIdleSessions())
	_, err := f.sessions.View(ctx, stale)
	assert.ErrorIs(t, err, services.ErrSessionNotFound)
	_, err = f.sessions.View(ctx, fresh)
	assert.NoError(t, err)
}

type blockingNotifier struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingNotifier() *blockingNotifier {
	return &blockingNotifier{started: make(chan struct{}), release: make(chan struct{})}
}

func (n *blockingNotifier) BookingConfirmed(_ context.Context, _ domain.ConfirmedBooking) error {
	close(n.started)
	<-n.release
	return nil
}

func (n *blockingNotifier) unblock() { n.once.Do(func() { close(n.release) }) }

func TestSession_SlowNotifierDoesNotStallOtherSessions(t *testing.T) {
	notifier := newBlockingNotifier()
	t.Cleanup(notifier.unblock)
	f := newSessionFixture(t, notifier)
	ctx := context.Background()

	v := fillToPayment(t, ctx, f.sessions)
	_, _, err := f.sessions.SetCustomerInfo(ctx, v.ID, domain.Customer{Name: "Jane", Email: "jane@example.com", Phone: "+1 234"})
	require.NoError(t, err)
	other := f.sessions.Start(ctx).ID

	confirmed := make(chan services.SessionView, 1)
	go func() {
		cv, _, _ := f.sessions.Confirm(ctx, v.ID)
		confirmed <- cv
	}()

	select {
	case <-notifier.started:
	case <-time.After(time.Second):
		t.Fatal("notifier was never called")
	}

	swept := make(chan int, 1)
	go func() { swept <- f.sessions.ExpireIdleSessions() }()

	viewed := make(chan error, 2)
	go func() {
		_, err := f.sessions.View(ctx, other)
		viewed <- err
	}()
	go func() {
		_, err := f.sessions.View(ctx, v.ID)
		viewed <- err
	}()

	for i := 0; i < 2; i++ {
		select {
		case err := <-viewed:
			assert.NoError(t, err)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("view blocked behind a pending notification")
		}
	}
	select {
	case n := <-swept:
		assert.Equal(t, 0, n)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("sweep blocked behind a pending notification")
	}

	notifier.unblock()
	assert.Equal(t, domain.StepConfirmation, (<-confirmed).Step)
}

// racingCatalog runs onGet once, right after a record has been read.
type racingCatalog struct {
	ports.CatalogRepository
	onGet func()
}

func (r *racingCatalog) Get(ctx context.Context, kind domain.Kind, id domain.ItemID) (domain.Item, error) {
	item, err := r.CatalogRepository.Get(ctx, kind, id)
	if hook := r.onGet; hook != nil {
		r.onGet = nil
		hook()
	}
	return item, err
}

func newRacingSessions(t *testing.T) (*racingCatalog, *services.CatalogService, *services.SessionService) {
	t.Helper()
	repo := &racingCatalog{CatalogRepository: memory.NewCatalog()}
	catalog := services.NewCatalogService(repo, nil)
	require.NoError(t, catalog.SeedDefaults(context.Background()))
	sessions := services.NewSessionService(catalog, services.NewBookingLedger(memory.NewLedger()), nil, time.Hour)
	return repo, catalog, sessions
}

func TestSession_SelectRefusesRecordDeletedMidLookup(t *testing.T) {
	repo, catalog, sessions := newRacingSessions(t)
	ctx := context.Background()
	id := sessions.Start(ctx).ID

	repo.onGet = func() {
		require.NoError(t, catalog.Delete(ctx, domain.KindHall, 1, nil))
	}
	v, ok, err := sessions.SelectHall(ctx, id, 1)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v.Draft.Hall)
	assert.True(t, v.Draft.TotalCost.IsZero())

	repo.onGet = func() {
		require.NoError(t, catalog.Delete(ctx, domain.KindRoom, 2, nil))
	}
	v, ok, err = sessions.IncrementRoom(ctx, id, 2)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v.Draft.Rooms)
}

func TestSession_SelectRetriesAfterUnrelatedCatalogChange(t *testing.T) {
	repo, catalog, sessions := newRacingSessions(t)
	ctx := context.Background()
	id := sessions.Start(ctx).ID

	repo.onGet = func() {
		hall, err := services.Lookup[domain.Hall](ctx, catalog, 2)
		require.NoError(t, err)
		hall.PricePerDay = money(3200)
		_, err = catalog.Save(ctx, hall)
		require.NoError(t, err)
	}
	v, ok, err := sessions.SelectHall(ctx, id, 1)

	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, v.Draft.Hall)
	assert.Equal(t, domain.ItemID(1), v.Draft.Hall.ItemID)
}

func TestSession_End(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()
	id := f.sessions.Start(ctx).ID

	require.NoError(t, f.sessions.End(ctx, id))
	assert.Equal(t, 0, f.sessions.Count())
	assert.ErrorIs(t, f.sessions.End(ctx, id), services.ErrSessionNotFound)
}

func TestSession_ConcurrentSessionsAreIsolated(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(guests int) {
			defer wg.Done()
			id := f.sessions.Start(ctx).ID
			f.sessions.SelectCatering(ctx, id, 1)
			f.sessions.SetGuestCount(ctx, id, guests)
			v, err := f.sessions.View(ctx, id)
			assert.NoError(t, err)
			assert.True(t, v.Draft.TotalCost.Equal(money(int64(45*guests))))
		}(i * 10)
	}
	wg.Wait()

	assert.Equal(t, 8, f.sessions.Count())
}
