package models

import "time"

// Comment is feedback left on an item by a user who completed a booking of
// it. AuthorName is a joined projection of the author's user record.
type Comment struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
