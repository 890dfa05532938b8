package domain

import (
	"context"
	"time"

	"github.com/kakasy/shareit/internal/models"
)

// Repository is the persistence surface consumed by the services. Lookup
// methods return (nil, nil) when the record does not exist; translating that
// into a NotFoundError is the services' job.
type Repository interface {
	// users
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// items
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, page models.PageWindow) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, page models.PageWindow) ([]*models.Item, error)
	GetItemsByRequestID(ctx context.Context, requestID int64) ([]*models.Item, error)
	GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]*models.Item, error)

	// bookings
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusIfWaiting(ctx context.Context, id int64, status models.BookingStatus) (bool, error)
	ListBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState, now time.Time, page models.PageWindow) ([]*models.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState, now time.Time, page models.PageWindow) ([]*models.Booking, error)
	HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)

	// comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
	GetCommentsByItems(ctx context.Context, itemIDs []int64) (map[int64][]*models.Comment, error)

	// requests
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64, page models.PageWindow) ([]*models.ItemRequest, error)
	GetRequestsFromOthers(ctx context.Context, userID int64, page models.PageWindow) ([]*models.ItemRequest, error)
}

// EventPublisher publishes domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// SearchCache stores item search pages keyed by query and page window.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]*models.Item, bool, error)
	Set(ctx context.Context, key string, items []*models.Item) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error)
	ApproveBooking(ctx context.Context, userID, bookingID int64, approved bool) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID int64) (*models.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, page models.PageWindow) ([]*models.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, page models.PageWindow) ([]*models.Booking, error)
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	GetItemByID(ctx context.Context, userID, itemID int64) (*models.ItemDetails, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, page models.PageWindow) ([]*models.ItemDetails, error)
	SearchItems(ctx context.Context, text string, page models.PageWindow) ([]*models.Item, error)
	CreateComment(ctx context.Context, userID, itemID int64, text string) (*models.Comment, error)
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, userID int64, patch models.UserPatch) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type RequestService interface {
	CreateRequest(ctx context.Context, userID int64, description string) (*models.ItemRequest, error)
	GetRequestsByOwner(ctx context.Context, userID int64, page models.PageWindow) ([]*models.ItemRequestDetails, error)
	GetAllRequests(ctx context.Context, userID int64, page models.PageWindow) ([]*models.ItemRequestDetails, error)
	GetRequestByID(ctx context.Context, userID, requestID int64) (*models.ItemRequestDetails, error)
}
