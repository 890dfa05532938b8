package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kakasy/shareit/internal/models"
)

const bookingColumns = `b.id, b.item_id, i.name, i.owner_id, b.booker_id,
                        b.start_ns, b.end_ns, b.status, b.created_at, b.updated_at`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_ns, end_ns, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.sql.ExecContext(ctx, query,
		booking.ItemID, booking.BookerID,
		toNanos(booking.Start), toNanos(booking.End),
		booking.Status, now, now)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings b JOIN items i ON i.id = b.item_id
              WHERE b.id = ?`
	var booking models.Booking
	var startNs, endNs int64
	err := db.sql.QueryRowContext(ctx, query, id).Scan(
		&booking.ID, &booking.ItemID, &booking.ItemName, &booking.ItemOwnerID, &booking.BookerID,
		&startNs, &endNs, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	booking.Start = fromNanos(startNs)
	booking.End = fromNanos(endNs)
	return &booking, nil
}

// UpdateBookingStatusIfWaiting applies the one-shot lifecycle transition. The
// WAITING precondition is part of the UPDATE itself, so concurrent approvals
// of the same booking cannot both succeed. Returns false when the booking was
// no longer waiting (or does not exist).
func (db *DB) UpdateBookingStatusIfWaiting(ctx context.Context, id int64, status models.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.sql.ExecContext(ctx, query, status, time.Now(), id, models.StatusWaiting)
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

// bookingStateFilter maps a list filter onto its stored predicate. Temporal
// states compare against the instant captured once by the caller.
func bookingStateFilter(state models.BookingState, now time.Time) (string, []interface{}) {
	ns := toNanos(now)
	switch state {
	case models.StateCurrent:
		return ` AND b.start_ns <= ? AND b.end_ns > ?`, []interface{}{ns, ns}
	case models.StatePast:
		return ` AND b.end_ns < ?`, []interface{}{ns}
	case models.StateFuture:
		return ` AND b.start_ns > ?`, []interface{}{ns}
	case models.StateWaiting:
		return ` AND b.status = ?`, []interface{}{models.StatusWaiting}
	case models.StateRejected:
		return ` AND b.status = ?`, []interface{}{models.StatusRejected}
	default: // models.StateAll
		return ``, nil
	}
}

func (db *DB) ListBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState, now time.Time, page models.PageWindow) ([]*models.Booking, error) {
	return db.listBookings(ctx, `b.booker_id = ?`, bookerID, state, now, page)
}

func (db *DB) ListBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState, now time.Time, page models.PageWindow) ([]*models.Booking, error) {
	return db.listBookings(ctx, `i.owner_id = ?`, ownerID, state, now, page)
}

func (db *DB) listBookings(ctx context.Context, subjectClause string, subjectID int64, state models.BookingState, now time.Time, page models.PageWindow) ([]*models.Booking, error) {
	filter, filterArgs := bookingStateFilter(state, now)

	query := `SELECT ` + bookingColumns + `
              FROM bookings b JOIN items i ON i.id = b.item_id
              WHERE ` + subjectClause + filter + `
              ORDER BY b.start_ns DESC LIMIT ? OFFSET ?`

	args := append([]interface{}{subjectID}, filterArgs...)
	args = append(args, page.Limit(), page.Offset())

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		var booking models.Booking
		var startNs, endNs int64
		if err := rows.Scan(
			&booking.ID, &booking.ItemID, &booking.ItemName, &booking.ItemOwnerID, &booking.BookerID,
			&startNs, &endNs, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		booking.Start = fromNanos(startNs)
		booking.End = fromNanos(endNs)
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// HasCompletedBooking reports whether the user has any booking of the item
// that ended strictly before now, regardless of status. Gates comment
// creation.
func (db *DB) HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE item_id = ? AND booker_id = ? AND end_ns < ?)`
	var exists bool
	err := db.sql.QueryRowContext(ctx, query, itemID, bookerID, toNanos(now)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check completed booking: %w", err)
	}
	return exists, nil
}

// LastBookingForItem returns the latest approved booking of the item whose
// start is at or before now.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id FROM bookings
              WHERE item_id = ? AND status = ? AND start_ns <= ?
              ORDER BY start_ns DESC LIMIT 1`
	return db.queryBookingRef(ctx, query, itemID, models.StatusApproved, toNanos(now))
}

// NextBookingForItem returns the earliest approved booking of the item whose
// start is after now.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id FROM bookings
              WHERE item_id = ? AND status = ? AND start_ns > ?
              ORDER BY start_ns ASC LIMIT 1`
	return db.queryBookingRef(ctx, query, itemID, models.StatusApproved, toNanos(now))
}

func (db *DB) queryBookingRef(ctx context.Context, query string, args ...interface{}) (*models.BookingRef, error) {
	var ref models.BookingRef
	err := db.sql.QueryRowContext(ctx, query, args...).Scan(&ref.ID, &ref.BookerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking ref: %w", err)
	}
	return &ref, nil
}
