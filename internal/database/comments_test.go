package database

import (
	"context"
	"testing"

	"github.com/kakasy/shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentsJoinAuthorName(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := seedUser(t, db, "Owner", "owner@example.com")
	author := seedUser(t, db, "Alice", "alice@example.com")
	item := seedItem(t, db, owner.ID, "Drill", true)

	comment := &models.Comment{ItemID: item.ID, AuthorID: author.ID, Text: "worked great"}
	require.NoError(t, db.CreateComment(ctx, comment))
	require.NotZero(t, comment.ID)

	got, err := db.GetCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "worked great", got[0].Text)
	assert.Equal(t, "Alice", got[0].AuthorName)
	assert.Equal(t, item.ID, got[0].ItemID)
}

func TestGetCommentsByItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	owner := seedUser(t, db, "Owner", "owner@example.com")
	author := seedUser(t, db, "Alice", "alice@example.com")
	drill := seedItem(t, db, owner.ID, "Drill", true)
	ladder := seedItem(t, db, owner.ID, "Ladder", true)
	bare := seedItem(t, db, owner.ID, "Saw", true)

	require.NoError(t, db.CreateComment(ctx, &models.Comment{ItemID: drill.ID, AuthorID: author.ID, Text: "first"}))
	require.NoError(t, db.CreateComment(ctx, &models.Comment{ItemID: drill.ID, AuthorID: author.ID, Text: "second"}))
	require.NoError(t, db.CreateComment(ctx, &models.Comment{ItemID: ladder.ID, AuthorID: author.ID, Text: "sturdy"}))

	grouped, err := db.GetCommentsByItems(ctx, []int64{drill.ID, ladder.ID, bare.ID})
	require.NoError(t, err)
	require.Len(t, grouped[drill.ID], 2)
	assert.Equal(t, "first", grouped[drill.ID][0].Text)
	require.Len(t, grouped[ladder.ID], 1)
	assert.Empty(t, grouped[bare.ID])
}
