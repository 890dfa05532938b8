package api

import (
	"time"

	"github.com/kakasy/shareit/internal/models"
)

// Wire DTOs and the entity-to-view mappings. Conversions are plain free
// functions; each one is a fixed shape-to-shape mapping.

type bookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type bookingItemView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookingUserView struct {
	ID int64 `json:"id"`
}

type bookingView struct {
	ID     int64           `json:"id"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Status string          `json:"status"`
	Item   bookingItemView `json:"item"`
	Booker bookingUserView `json:"booker"`
}

type bookingRefView struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type userView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type itemRequestBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type itemView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type itemDetailsView struct {
	itemView
	LastBooking *bookingRefView `json:"lastBooking"`
	NextBooking *bookingRefView `json:"nextBooking"`
	Comments    []commentView   `json:"comments"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type commentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type requestBody struct {
	Description string `json:"description"`
}

type requestView struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Created     time.Time  `json:"created"`
	Items       []itemView `json:"items,omitempty"`
}

func toBookingView(b *models.Booking) bookingView {
	return bookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   bookingItemView{ID: b.ItemID, Name: b.ItemName},
		Booker: bookingUserView{ID: b.BookerID},
	}
}

func toBookingViews(bookings []*models.Booking) []bookingView {
	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toBookingView(b))
	}
	return views
}

func toBookingRefView(ref *models.BookingRef) *bookingRefView {
	if ref == nil {
		return nil
	}
	return &bookingRefView{ID: ref.ID, BookerID: ref.BookerID}
}

func toUserView(u *models.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toUserViews(users []*models.User) []userView {
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return views
}

func toItemView(i *models.Item) itemView {
	return itemView{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
	}
}

func toItemViews(items []*models.Item) []itemView {
	views := make([]itemView, 0, len(items))
	for _, i := range items {
		views = append(views, toItemView(i))
	}
	return views
}

func toItemDetailsView(d *models.ItemDetails) itemDetailsView {
	return itemDetailsView{
		itemView:    toItemView(&d.Item),
		LastBooking: toBookingRefView(d.LastBooking),
		NextBooking: toBookingRefView(d.NextBooking),
		Comments:    toCommentViews(d.Comments),
	}
}

func toItemDetailsViews(details []*models.ItemDetails) []itemDetailsView {
	views := make([]itemDetailsView, 0, len(details))
	for _, d := range details {
		views = append(views, toItemDetailsView(d))
	}
	return views
}

func toCommentView(c *models.Comment) commentView {
	return commentView{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.CreatedAt}
}

func toCommentViews(comments []*models.Comment) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, toCommentView(c))
	}
	return views
}

func toRequestView(r *models.ItemRequest) requestView {
	return requestView{ID: r.ID, Description: r.Description, Created: r.CreatedAt}
}

func toRequestDetailsView(d *models.ItemRequestDetails) requestView {
	view := toRequestView(&d.ItemRequest)
	view.Items = toItemViews(d.Items)
	return view
}

func toRequestDetailsViews(details []*models.ItemRequestDetails) []requestView {
	views := make([]requestView, 0, len(details))
	for _, d := range details {
		views = append(views, toRequestDetailsView(d))
	}
	return views
}
