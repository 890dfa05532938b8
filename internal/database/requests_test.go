package database

import (
	"context"
	"testing"

	"github.com/kakasy/shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestsByRequestor(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	first := &models.ItemRequest{Description: "need a drill", RequestorID: alice.ID}
	require.NoError(t, db.CreateRequest(ctx, first))
	second := &models.ItemRequest{Description: "need a ladder", RequestorID: alice.ID}
	require.NoError(t, db.CreateRequest(ctx, second))
	foreign := &models.ItemRequest{Description: "need a saw", RequestorID: bob.ID}
	require.NoError(t, db.CreateRequest(ctx, foreign))

	page := models.PageWindow{From: 0, Size: 10}

	got, err := db.GetRequestsByRequestor(ctx, alice.ID, page)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	others, err := db.GetRequestsFromOthers(ctx, alice.ID, page)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, foreign.ID, others[0].ID)
}

func TestGetRequestByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	request, err := db.GetRequestByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, request)
}
