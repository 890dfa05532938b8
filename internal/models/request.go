package models

import "time"

// ItemRequest is a want-ad: a user describes an item they need, other users
// may create items answering it.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemRequestDetails is the read model for request views, carrying the items
// created in answer to the request.
type ItemRequestDetails struct {
	ItemRequest
	Items []*Item `json:"items"`
}
