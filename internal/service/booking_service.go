package service

import (
	"context"
	"time"

	"github.com/kakasy/shareit/internal/domain"
	"github.com/kakasy/shareit/internal/events"
	"github.com/kakasy/shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService owns the reservation lifecycle: creation, the one-shot
// approve/reject transition and the state-filtered listings.
type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error) {
	booker, err := s.repo.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		return nil, domain.NotFound("user with id %d does not exist", bookerID)
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("item with id %d does not exist", itemID)
	}

	if !item.Available {
		return nil, domain.Conflict("item with id %d is not available for booking", itemID)
	}

	if item.OwnerID == bookerID {
		return nil, domain.Conflict("owner cannot book own item")
	}

	booking := &models.Booking{
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    bookerID,
		Start:       start,
		End:         end,
		Status:      models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("booker_id", bookerID).Int64("item_id", itemID).
		Int64("booking_id", booking.ID).Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking)

	return booking, nil
}

// ApproveBooking applies the owner's decision. The transition is one-shot:
// re-approving a decided booking is a conflict, never a silent no-op. The
// WAITING check is repeated inside the conditional update so a concurrent
// decision on the same booking cannot double-apply.
func (s *BookingService) ApproveBooking(ctx context.Context, userID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NotFound("booking with id %d does not exist", bookingID)
	}

	if booking.ItemOwnerID != userID {
		return nil, domain.Conflict("user with id %d is not the owner of item %d", userID, booking.ItemID)
	}

	if booking.Status != models.StatusWaiting {
		return nil, domain.Conflict("booking is already %s", booking.Status)
	}

	status := models.StatusApproved
	if !approved {
		status = models.StatusRejected
	}

	ok, err := s.repo.UpdateBookingStatusIfWaiting(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race against a concurrent decision.
		current, err := s.repo.GetBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.NotFound("booking with id %d does not exist", bookingID)
		}
		return nil, domain.Conflict("booking is already %s", current.Status)
	}

	booking.Status = status

	s.logger.Info().Int64("booking_id", bookingID).Int64("owner_id", userID).
		Bool("approved", approved).Msg("booking decided")
	if approved {
		s.publishEvent(events.EventBookingApproved, booking)
	} else {
		s.publishEvent(events.EventBookingRejected, booking)
	}

	return booking, nil
}

// GetBooking enforces the visibility guard: only the booker and the item's
// owner may observe a booking.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NotFound("booking with id %d does not exist", bookingID)
	}

	if booking.BookerID != userID && booking.ItemOwnerID != userID {
		return nil, domain.Conflict("user with id %d is not a party to booking %d", userID, bookingID)
	}

	return booking, nil
}

func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, state string, page models.PageWindow) ([]*models.Booking, error) {
	parsed, now, err := s.prepareListing(ctx, bookerID, state)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBookingsByBooker(ctx, bookerID, parsed, now, page)
}

func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, state string, page models.PageWindow) ([]*models.Booking, error) {
	parsed, now, err := s.prepareListing(ctx, ownerID, state)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBookingsByOwner(ctx, ownerID, parsed, now, page)
}

// prepareListing validates the filter and subject, and captures the
// evaluation instant exactly once so the temporal predicates of a single
// query cannot disagree about "now".
func (s *BookingService) prepareListing(ctx context.Context, subjectID int64, state string) (models.BookingState, time.Time, error) {
	parsed, ok := models.ParseBookingState(state)
	if !ok {
		return "", time.Time{}, domain.Validation("Unknown state: %s", state)
	}

	subject, err := s.repo.GetUserByID(ctx, subjectID)
	if err != nil {
		return "", time.Time{}, err
	}
	if subject == nil {
		return "", time.Time{}, domain.NotFound("user with id %d does not exist", subjectID)
	}

	return parsed, s.now(), nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  booking.ItemName,
		BookerID:  booking.BookerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
