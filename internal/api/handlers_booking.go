package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
)

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateBookingWindow(req.Start, req.End); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), userID, req.ItemID, req.Start, req.End)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingView(booking))
}

func (s *Server) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.bookings.ApproveBooking(r.Context(), userID, bookingID, approved)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingView(booking))
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingView(booking))
}

func (s *Server) handleListBookingsByBooker(w http.ResponseWriter, r *http.Request) {
	s.handleListBookings(w, r, false)
}

func (s *Server) handleListBookingsByOwner(w http.ResponseWriter, r *http.Request) {
	s.handleListBookings(w, r, true)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request, asOwner bool) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.pageWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = "ALL"
	}

	var bookings []bookingView
	if asOwner {
		list, err := s.bookings.ListByOwner(r.Context(), userID, state, page)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		bookings = toBookingViews(list)
	} else {
		list, err := s.bookings.ListByBooker(r.Context(), userID, state, page)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		bookings = toBookingViews(list)
	}
	writeJSON(w, http.StatusOK, bookings)
}

// validateBookingWindow is the boundary check on the reservation window:
// chronological order and a present-or-future start.
func validateBookingWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.New("start and end are required")
	}
	if !start.Before(end) {
		return errors.New("start must be before end")
	}
	if start.Before(time.Now()) {
		return errors.New("start must not be in the past")
	}
	return nil
}
