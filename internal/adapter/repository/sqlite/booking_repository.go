package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/srgjo27/event_booking/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS confirmed_bookings (
	id             TEXT PRIMARY KEY,
	event_name     TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	start_date     TEXT,
	end_date       TEXT,
	number_of_days INTEGER NOT NULL,
	hall_id        INTEGER,
	customer_name  TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	customer_phone TEXT NOT NULL,
	total_cost     TEXT NOT NULL,
	status         TEXT NOT NULL,
	confirmed_at   TEXT NOT NULL,
	snapshot       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS booking_lines (
	id         TEXT PRIMARY KEY,
	booking_id TEXT NOT NULL REFERENCES confirmed_bookings(id),
	kind       TEXT NOT NULL,
	item_id    INTEGER NOT NULL,
	label      TEXT NOT NULL,
	unit_price TEXT NOT NULL,
	quantity   INTEGER NOT NULL,
	days       INTEGER NOT NULL,
	amount     TEXT NOT NULL
);
`

// BookingRepository stores the ledger in SQLite. Rows are listed in rowid
// order, which is append order since rows are never deleted.
type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate ledger schema: %w", err)
	}
	return nil
}

func (r *BookingRepository) Append(ctx context.Context, booking domain.ConfirmedBooking) error {
	snapshot, err := json.Marshal(booking.DraftSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode booking snapshot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	var hallID sql.NullInt64
	if booking.Hall != nil {
		hallID = sql.NullInt64{Int64: int64(booking.Hall.ItemID), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO confirmed_bookings (id, event_name, event_type, start_date, end_date, number_of_days, hall_id,
		customer_name, customer_email, customer_phone, total_cost, status, confirmed_at, snapshot)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		booking.ID.String(), booking.EventName, string(booking.EventType),
		booking.StartDate.String(), booking.EndDate.String(), booking.NumberOfDays, hallID,
		booking.Customer.Name, booking.Customer.Email, booking.Customer.Phone,
		booking.TotalCost.String(), string(booking.Status), booking.ConfirmedAt.UTC().Format(time.RFC3339Nano), string(snapshot),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return domain.ErrDuplicateBooking
		}
		return fmt.Errorf("failed to insert booking header: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO booking_lines (id, booking_id, kind, item_id, label, unit_price, quantity, days, amount)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare line statement: %w", err)
	}

	defer stmt.Close()

	for _, line := range booking.Breakdown.Lines {
		_, err := stmt.ExecContext(ctx, uuid.NewString(), booking.ID.String(), string(line.Kind), int64(line.ItemID),
			line.Label, line.UnitPrice.String(), line.Quantity, line.Days, line.Amount.String())
		if err != nil {
			return fmt.Errorf("failed to insert %s line %q: %w", line.Kind, line.Label, err)
		}
	}

	return tx.Commit()
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*domain.ConfirmedBooking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, confirmed_at, snapshot FROM confirmed_bookings WHERE id = ?`, id.String())

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.ConfirmedBooking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, confirmed_at, snapshot FROM confirmed_bookings ORDER BY rowid`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.ConfirmedBooking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// LineCount reports how many priced lines were stored for a booking.
func (r *BookingRepository) LineCount(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM booking_lines WHERE booking_id = ?`, id.String()).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (domain.ConfirmedBooking, error) {
	var id, confirmedAt, raw string
	if err := s.Scan(&id, &confirmedAt, &raw); err != nil {
		return domain.ConfirmedBooking{}, err
	}

	var booking domain.ConfirmedBooking
	var err error
	if booking.ID, err = uuid.Parse(id); err != nil {
		return domain.ConfirmedBooking{}, fmt.Errorf("invalid booking id %q: %w", id, err)
	}
	if booking.ConfirmedAt, err = time.Parse(time.RFC3339Nano, confirmedAt); err != nil {
		return domain.ConfirmedBooking{}, fmt.Errorf("invalid confirmed_at %q: %w", confirmedAt, err)
	}
	if err := json.Unmarshal([]byte(raw), &booking.DraftSnapshot); err != nil {
		return domain.ConfirmedBooking{}, fmt.Errorf("failed to decode booking %s: %w", id, err)
	}
	return booking, nil
}
