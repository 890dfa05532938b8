package service

import (
	"context"
	"strings"

	"github.com/kakasy/shareit/internal/domain"
	"github.com/kakasy/shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, userID int64, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.Validation("request description must not be blank")
	}

	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{Description: description, RequestorID: userID}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Int64("request_id", request.ID).Msg("item request created")
	return request, nil
}

func (s *RequestService) GetRequestsByOwner(ctx context.Context, userID int64, page models.PageWindow) ([]*models.ItemRequestDetails, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsByRequestor(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.joinItems(ctx, requests)
}

func (s *RequestService) GetAllRequests(ctx context.Context, userID int64, page models.PageWindow) ([]*models.ItemRequestDetails, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetRequestsFromOthers(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.joinItems(ctx, requests)
}

func (s *RequestService) GetRequestByID(ctx context.Context, userID, requestID int64) (*models.ItemRequestDetails, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.NotFound("request with id %d does not exist", requestID)
	}

	items, err := s.repo.GetItemsByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Item{}
	}
	return &models.ItemRequestDetails{ItemRequest: *request, Items: items}, nil
}

func (s *RequestService) joinItems(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequestDetails, error) {
	requestIDs := make([]int64, len(requests))
	for i, request := range requests {
		requestIDs[i] = request.ID
	}

	itemsByRequest, err := s.repo.GetItemsByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*models.ItemRequestDetails, 0, len(requests))
	for _, request := range requests {
		items := itemsByRequest[request.ID]
		if items == nil {
			items = []*models.Item{}
		}
		details = append(details, &models.ItemRequestDetails{ItemRequest: *request, Items: items})
	}
	return details, nil
}

func (s *RequestService) checkUser(ctx context.Context, userID int64) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NotFound("user with id %d does not exist", userID)
	}
	return nil
}
