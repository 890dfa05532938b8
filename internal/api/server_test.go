package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/kakasy/shareit/internal/config"
	"github.com/kakasy/shareit/internal/database"
	"github.com/kakasy/shareit/internal/events"
	"github.com/kakasy/shareit/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zerolog.New(io.Discard)

	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := events.NewEventBus()
	bookings := service.NewBookingService(db, bus, &logger)
	items := service.NewItemService(db, nil, &logger)
	users := service.NewUserService(db, &logger)
	requests := service.NewRequestService(db, &logger)

	cfg := config.ServerConfig{Port: 8080}
	server := NewServer(cfg, users, items, bookings, requests, 10, &logger)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// do issues a JSON request with the identity header set when userID > 0 and
// decodes the response body into out when it is non-nil.
func do(t *testing.T, ts *httptest.Server, method, path string, userID int64, body, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set(userHeader, strconv.FormatInt(userID, 10))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createUser(t *testing.T, ts *httptest.Server, name, email string) int64 {
	t.Helper()
	var user userView
	status := do(t, ts, http.MethodPost, "/users", 0,
		map[string]string{"name": name, "email": email}, &user)
	require.Equal(t, http.StatusOK, status)
	return user.ID
}

func createItem(t *testing.T, ts *httptest.Server, ownerID int64, name string, available bool) int64 {
	t.Helper()
	var item itemView
	status := do(t, ts, http.MethodPost, "/items", ownerID,
		map[string]interface{}{"name": name, "description": name + " description", "available": available}, &item)
	require.Equal(t, http.StatusOK, status)
	return item.ID
}

func TestBookingLifecycle(t *testing.T) {
	ts := newTestServer(t)

	owner := createUser(t, ts, "Owner", "owner@example.com")
	booker := createUser(t, ts, "Booker", "booker@example.com")
	itemID := createItem(t, ts, owner, "Drill", true)

	start := time.Now().Add(time.Hour).UTC()
	end := start.Add(time.Hour)

	var booking bookingView
	status := do(t, ts, http.MethodPost, "/bookings", booker,
		map[string]interface{}{"itemId": itemID, "start": start, "end": end}, &booking)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "WAITING", booking.Status)
	assert.Equal(t, itemID, booking.Item.ID)
	assert.Equal(t, booker, booking.Booker.ID)

	// The owner sees it in the waiting queue.
	var waiting []bookingView
	status = do(t, ts, http.MethodGet, "/bookings/owner?state=WAITING", owner, nil, &waiting)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, waiting, 1)

	// The booker cannot decide their own booking.
	status = do(t, ts, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", booking.ID), booker, nil, nil)
	assert.Equal(t, http.StatusConflict, status)

	var approved bookingView
	status = do(t, ts, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", booking.ID), owner, nil, &approved)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "APPROVED", approved.Status)

	// The transition is one-shot.
	var conflict errorResponse
	status = do(t, ts, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=false", booking.ID), owner, nil, &conflict)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "booking is already APPROVED", conflict.Error)

	// Visible to both parties, opaque to anyone else.
	status = do(t, ts, http.MethodGet, fmt.Sprintf("/bookings/%d", booking.ID), booker, nil, nil)
	assert.Equal(t, http.StatusOK, status)
	status = do(t, ts, http.MethodGet, fmt.Sprintf("/bookings/%d", booking.ID), owner, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	stranger := createUser(t, ts, "Stranger", "stranger@example.com")
	status = do(t, ts, http.MethodGet, fmt.Sprintf("/bookings/%d", booking.ID), stranger, nil, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestCreateBookingValidation(t *testing.T) {
	ts := newTestServer(t)

	owner := createUser(t, ts, "Owner", "owner@example.com")
	booker := createUser(t, ts, "Booker", "booker@example.com")
	itemID := createItem(t, ts, owner, "Drill", true)

	start := time.Now().Add(time.Hour).UTC()
	end := start.Add(time.Hour)

	// Identity header is mandatory.
	status := do(t, ts, http.MethodPost, "/bookings", 0,
		map[string]interface{}{"itemId": itemID, "start": start, "end": end}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Start must precede end.
	status = do(t, ts, http.MethodPost, "/bookings", booker,
		map[string]interface{}{"itemId": itemID, "start": end, "end": start}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Start must not be in the past.
	status = do(t, ts, http.MethodPost, "/bookings", booker,
		map[string]interface{}{"itemId": itemID, "start": start.Add(-2 * time.Hour), "end": end}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Owner booking their own item is a business-rule conflict.
	status = do(t, ts, http.MethodPost, "/bookings", owner,
		map[string]interface{}{"itemId": itemID, "start": start, "end": end}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Unknown item is 404.
	status = do(t, ts, http.MethodPost, "/bookings", booker,
		map[string]interface{}{"itemId": 999, "start": start, "end": end}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListBookingsUnknownState(t *testing.T) {
	ts := newTestServer(t)
	booker := createUser(t, ts, "Booker", "booker@example.com")

	var body errorResponse
	status := do(t, ts, http.MethodGet, "/bookings?state=SOMETIMES", booker, nil, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Unknown state: SOMETIMES", body.Error)
}

func TestUsersCRUD(t *testing.T) {
	ts := newTestServer(t)

	alice := createUser(t, ts, "Alice", "alice@example.com")

	// Duplicate email conflicts.
	status := do(t, ts, http.MethodPost, "/users", 0,
		map[string]string{"name": "Other", "email": "alice@example.com"}, nil)
	assert.Equal(t, http.StatusConflict, status)

	var updated userView
	status = do(t, ts, http.MethodPatch, fmt.Sprintf("/users/%d", alice), 0,
		map[string]string{"name": "Alicia"}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	var all []userView
	status = do(t, ts, http.MethodGet, "/users", 0, nil, &all)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, all, 1)

	status = do(t, ts, http.MethodDelete, fmt.Sprintf("/users/%d", alice), 0, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = do(t, ts, http.MethodGet, fmt.Sprintf("/users/%d", alice), 0, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestItemViewsAndSearch(t *testing.T) {
	ts := newTestServer(t)

	owner := createUser(t, ts, "Owner", "owner@example.com")
	other := createUser(t, ts, "Other", "other@example.com")
	itemID := createItem(t, ts, owner, "Cordless Drill", true)
	createItem(t, ts, owner, "Hidden Drill", false)

	var found []itemView
	status := do(t, ts, http.MethodGet, "/items/search?text=drill", other, nil, &found)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, found, 1)
	assert.Equal(t, itemID, found[0].ID)

	// Blank search text is an empty result, not an error.
	status = do(t, ts, http.MethodGet, "/items/search?text=", other, nil, &found)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, found)

	// Only the owner gets the booking refs slot populated later; both get comments.
	var details itemDetailsView
	status = do(t, ts, http.MethodGet, fmt.Sprintf("/items/%d", itemID), other, nil, &details)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, details.LastBooking)
	assert.NotNil(t, details.Comments)

	// Non-owner patching is a conflict.
	status = do(t, ts, http.MethodPatch, fmt.Sprintf("/items/%d", itemID), other,
		map[string]interface{}{"available": false}, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestCommentRequiresCompletedBooking(t *testing.T) {
	ts := newTestServer(t)

	owner := createUser(t, ts, "Owner", "owner@example.com")
	booker := createUser(t, ts, "Booker", "booker@example.com")
	itemID := createItem(t, ts, owner, "Drill", true)

	status := do(t, ts, http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), booker,
		map[string]string{"text": "never used it"}, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestRequestsFlow(t *testing.T) {
	ts := newTestServer(t)

	requestor := createUser(t, ts, "Requestor", "requestor@example.com")
	owner := createUser(t, ts, "Owner", "owner@example.com")

	var request requestView
	status := do(t, ts, http.MethodPost, "/requests", requestor,
		map[string]string{"description": "need a drill"}, &request)
	require.Equal(t, http.StatusOK, status)

	// Answer the request with an item.
	var item itemView
	status = do(t, ts, http.MethodPost, "/items", owner,
		map[string]interface{}{"name": "Drill", "description": "answers the ad", "available": true, "requestId": request.ID}, &item)
	require.Equal(t, http.StatusOK, status)

	var own []requestView
	status = do(t, ts, http.MethodGet, "/requests", requestor, nil, &own)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, own, 1)
	require.Len(t, own[0].Items, 1)
	assert.Equal(t, item.ID, own[0].Items[0].ID)

	// The requestor's own ad is excluded from /requests/all.
	var all []requestView
	status = do(t, ts, http.MethodGet, "/requests/all", requestor, nil, &all)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, all)

	status = do(t, ts, http.MethodGet, "/requests/all", owner, nil, &all)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, all, 1)

	// Blank description is rejected at the boundary.
	status = do(t, ts, http.MethodPost, "/requests", requestor,
		map[string]string{"description": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
