package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_booking/internal/adapter/repository/sqlite"
	"github.com/srgjo27/event_booking/internal/core/domain"
	"github.com/srgjo27/event_booking/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *sqlite.BookingRepository {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewBookingRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func confirmedBooking(t *testing.T, name string) domain.ConfirmedBooking {
	t.Helper()
	d := domain.NewDraft()
	d.SetEventName(name)
	require.True(t, d.SelectHall(domain.Hall{ItemID: 1, Name: "Grand Ballroom", Capacity: 500, PricePerDay: decimal.NewFromInt(5000), Available: true}))
	d.SetStartDate(domain.NewDate(2024, time.June, 1))
	d.SetEndDate(domain.NewDate(2024, time.June, 3))
	d.IncrementRoom(domain.RoomType{ItemID: 2, Type: "Suite", PricePerNight: decimal.NewFromInt(300), Available: 10})
	d.SetCustomerInfo(domain.Customer{Name: "Jane", Email: "jane@example.com", Phone: "+1 234"})

	return domain.NewConfirmedBooking(uuid.Must(uuid.NewV7()), time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC), d.Snapshot())
}

func TestBookingRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	first := confirmedBooking(t, "Launch")
	second := confirmedBooking(t, "Retreat")
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "Retreat", all[1].EventName)

	got := all[0]
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, 3, got.NumberOfDays)
	assert.Equal(t, "2024-06-01", got.StartDate.String())
	assert.True(t, got.TotalCost.Equal(decimal.NewFromInt(15000+900)))
	assert.Equal(t, "Grand Ballroom", got.VenueName())
	assert.True(t, first.ConfirmedAt.Equal(got.ConfirmedAt))

	n, err := repo.LineCount(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBookingRepository_RejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	b := confirmedBooking(t, "Launch")
	require.NoError(t, repo.Append(ctx, b))
	assert.ErrorIs(t, repo.Append(ctx, b), domain.ErrDuplicateBooking)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookingRepository_Get(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	b := confirmedBooking(t, "Launch")
	require.NoError(t, repo.Append(ctx, b))

	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Customer.Email)

	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
