package models

import "time"

// Item is a catalog entry offered for sharing. RequestID links the item to
// the want-ad it answers, when there is one.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   *int64    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemDetails is the read model for item views: the item plus its comments
// and, for the owner only, the last and next approved bookings.
type ItemDetails struct {
	Item
	LastBooking *BookingRef `json:"last_booking,omitempty"`
	NextBooking *BookingRef `json:"next_booking,omitempty"`
	Comments    []*Comment  `json:"comments"`
}
