package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kakasy/shareit/internal/domain"
	"github.com/kakasy/shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo        domain.Repository
	searchCache domain.SearchCache
	logger      *zerolog.Logger
	now         func() time.Time
}

func NewItemService(repo domain.Repository, searchCache domain.SearchCache, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:        repo,
		searchCache: searchCache,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}

	if item.RequestID != nil {
		request, err := s.repo.GetRequestByID(ctx, *item.RequestID)
		if err != nil {
			return nil, err
		}
		if request == nil {
			return nil, domain.NotFound("request with id %d does not exist", *item.RequestID)
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("owner_id", ownerID).Int64("item_id", item.ID).Msg("item created")
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("item with id %d does not exist", itemID)
	}
	if item.OwnerID != ownerID {
		return nil, domain.Conflict("user with id %d is not the owner of item %d", ownerID, itemID)
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		item.Name = *patch.Name
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("owner_id", ownerID).Int64("item_id", itemID).Msg("item updated")
	return item, nil
}

// GetItemByID returns the item with its comments. Last/next booking views are
// computed only for the owner.
func (s *ItemService) GetItemByID(ctx context.Context, userID, itemID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("item with id %d does not exist", itemID)
	}

	comments, err := s.repo.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	details := &models.ItemDetails{Item: *item, Comments: comments}
	if item.OwnerID == userID {
		if err := s.attachBookingRefs(ctx, details, s.now()); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (s *ItemService) GetItemsByOwner(ctx context.Context, ownerID int64, page models.PageWindow) ([]*models.ItemDetails, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	commentsByItem, err := s.repo.GetCommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	details := make([]*models.ItemDetails, 0, len(items))
	for _, item := range items {
		comments := commentsByItem[item.ID]
		if comments == nil {
			comments = []*models.Comment{}
		}
		d := &models.ItemDetails{Item: *item, Comments: comments}
		if err := s.attachBookingRefs(ctx, d, now); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// SearchItems consults the search cache first; a miss falls through to
// storage and refreshes the cache. Blank queries short-circuit to an empty
// result.
func (s *ItemService) SearchItems(ctx context.Context, text string, page models.PageWindow) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}

	key := searchCacheKey(text, page)
	if s.searchCache != nil {
		if items, ok, err := s.searchCache.Get(ctx, key); err == nil && ok {
			return items, nil
		}
	}

	items, err := s.repo.SearchItems(ctx, text, page)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Item{}
	}

	if s.searchCache != nil {
		if err := s.searchCache.Set(ctx, key, items); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("search cache set failed")
		}
	}
	return items, nil
}

// CreateComment is gated by the completed-booking check: only a user whose
// booking of the item ended before now may comment.
func (s *ItemService) CreateComment(ctx context.Context, userID, itemID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.Validation("comment text must not be blank")
	}

	author, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.NotFound("user with id %d does not exist", userID)
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("item with id %d does not exist", itemID)
	}

	completed, err := s.repo.HasCompletedBooking(ctx, userID, itemID, s.now())
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, domain.Conflict("user with id %d has no completed booking of item %d", userID, itemID)
	}

	comment := &models.Comment{
		ItemID:     itemID,
		AuthorID:   userID,
		AuthorName: author.Name,
		Text:       text,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("author_id", userID).Int64("item_id", itemID).Msg("comment created")
	return comment, nil
}

func (s *ItemService) attachBookingRefs(ctx context.Context, details *models.ItemDetails, now time.Time) error {
	last, err := s.repo.LastBookingForItem(ctx, details.ID, now)
	if err != nil {
		return err
	}
	next, err := s.repo.NextBookingForItem(ctx, details.ID, now)
	if err != nil {
		return err
	}
	details.LastBooking = last
	details.NextBooking = next
	return nil
}

func (s *ItemService) checkUser(ctx context.Context, userID int64) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NotFound("user with id %d does not exist", userID)
	}
	return nil
}

func searchCacheKey(text string, page models.PageWindow) string {
	return fmt.Sprintf("item_search:%s:%d:%d", strings.ToLower(strings.TrimSpace(text)), page.Offset(), page.Limit())
}
