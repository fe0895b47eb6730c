package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/event_booking/internal/core/domain"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS confirmed_bookings (
	seq            BIGSERIAL,
	id             UUID PRIMARY KEY,
	event_name     TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	start_date     DATE,
	end_date       DATE,
	number_of_days INT NOT NULL,
	hall_id        BIGINT,
	customer_name  TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	customer_phone TEXT NOT NULL,
	total_cost     NUMERIC(14,2) NOT NULL,
	status         TEXT NOT NULL,
	confirmed_at   TIMESTAMPTZ NOT NULL,
	snapshot       JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS booking_lines (
	id         UUID PRIMARY KEY,
	booking_id UUID NOT NULL REFERENCES confirmed_bookings(id),
	kind       TEXT NOT NULL,
	item_id    BIGINT NOT NULL,
	label      TEXT NOT NULL,
	unit_price NUMERIC(14,2) NOT NULL,
	quantity   INT NOT NULL,
	days       INT NOT NULL,
	amount     NUMERIC(14,2) NOT NULL
);
`

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

	queryHeader := `
	INSERT INTO confirmed_bookings (id, event_name, event_type, start_date, end_date, number_of_days, hall_id,
		customer_name, customer_email, customer_phone, total_cost, status, confirmed_at, snapshot)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = tx.ExecContext(ctx, queryHeader,
		booking.ID, booking.EventName, string(booking.EventType),
		nullDate(booking.StartDate), nullDate(booking.EndDate), booking.NumberOfDays, hallID(booking),
		booking.Customer.Name, booking.Customer.Email, booking.Customer.Phone,
		booking.TotalCost, string(booking.Status), booking.ConfirmedAt, snapshot,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateBooking
		}
		return fmt.Errorf("failed to insert booking header: %w", err)
	}

	queryLine := `
	INSERT INTO booking_lines (id, booking_id, kind, item_id, label, unit_price, quantity, days, amount)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	stmt, err := tx.PrepareContext(ctx, queryLine)
	if err != nil {
		return fmt.Errorf("failed to prepare line statement: %w", err)
	}

	defer stmt.Close()

	for _, line := range booking.Breakdown.Lines {
		_, err := stmt.ExecContext(ctx, uuid.New(), booking.ID, string(line.Kind), int64(line.ItemID), line.Label,
			line.UnitPrice, line.Quantity, line.Days, line.Amount)
		if err != nil {
			return fmt.Errorf("failed to insert %s line %q: %w", line.Kind, line.Label, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*domain.ConfirmedBooking, error) {
	query := `
	SELECT id, confirmed_at, snapshot FROM confirmed_bookings
	WHERE id = $1
	`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.ConfirmedBooking, error) {
	query := `
	SELECT id, confirmed_at, snapshot FROM confirmed_bookings
	ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (domain.ConfirmedBooking, error) {
	var booking domain.ConfirmedBooking
	var raw []byte
	if err := s.Scan(&booking.ID, &booking.ConfirmedAt, &raw); err != nil {
		return domain.ConfirmedBooking{}, err
	}
	if err := json.Unmarshal(raw, &booking.DraftSnapshot); err != nil {
		return domain.ConfirmedBooking{}, fmt.Errorf("failed to decode booking %s: %w", booking.ID, err)
	}
	return booking, nil
}

func nullDate(d domain.Date) sql.NullTime {
	return sql.NullTime{Time: d.Time(), Valid: !d.IsZero()}
}

func hallID(b domain.ConfirmedBooking) sql.NullInt64 {
	if b.Hall == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(b.Hall.ItemID), Valid: true}
}
