package models

import "time"

// BookingStatus is the lifecycle status of a booking. A booking is created
// as waiting and moves exactly once to approved or rejected.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// BookingState is the filter used when listing bookings. The temporal states
// (current, past, future) are evaluated against a single instant captured at
// query time.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps a raw filter string onto a BookingState. The second
// return value is false for anything outside the enumerated set; callers must
// treat that as a request error, never as StateAll.
func ParseBookingState(raw string) (BookingState, bool) {
	switch BookingState(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(raw), true
	default:
		return "", false
	}
}

// Booking is a time-bounded reservation of an item by a user. ItemName and
// ItemOwnerID are joined projections filled by the storage layer; the booking
// itself owns only its window and status.
type Booking struct {
	ID          int64         `json:"id"`
	ItemID      int64         `json:"item_id"`
	ItemName    string        `json:"item_name"`
	ItemOwnerID int64         `json:"item_owner_id"`
	BookerID    int64         `json:"booker_id"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookingRef is the minimal booking projection attached to item views
// (last/next booking shown to the item's owner).
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}
