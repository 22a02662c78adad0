package service

import (
	"context"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/repository"
)

type ratingService struct {
	userRepo   repository.UserRepository
	eventRepo  repository.EventRepository
	ratingRepo repository.RatingRepository
}

func NewRatingService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	ratingRepo repository.RatingRepository,
) RatingService {
	return &ratingService{
		userRepo:   userRepo,
		eventRepo:  eventRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *ratingService) Like(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	return s.apply(ctx, voterID, eventID, domain.VoteActionLike)
}

func (s *ratingService) Dislike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	return s.apply(ctx, voterID, eventID, domain.VoteActionDislike)
}

func (s *ratingService) RemoveLike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	return s.apply(ctx, voterID, eventID, domain.VoteActionRemoveLike)
}

func (s *ratingService) RemoveDislike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	return s.apply(ctx, voterID, eventID, domain.VoteActionRemoveDislike)
}

func (s *ratingService) apply(ctx context.Context, voterID, eventID int64, action domain.VoteAction) (*domain.VoteResult, error) {
	logger.EnterMethod("ratingService.apply", "voterID", voterID, "eventID", eventID, "action", action)

	if _, err := s.userRepo.GetByID(ctx, voterID); err != nil {
		logger.ExitMethodWithError("ratingService.apply", err)
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		logger.ExitMethodWithError("ratingService.apply", err)
		return nil, err
	}
	if event.InitiatorID == voterID {
		logger.ExitMethodWithError("ratingService.apply", domain.ErrSelfRating)
		return nil, domain.ErrSelfRating
	}
	if !event.IsPublished() {
		logger.ExitMethodWithError("ratingService.apply", domain.ErrEventNotPublished)
		return nil, domain.ErrEventNotPublished
	}

	vote, err := s.ratingRepo.Apply(ctx, eventID, voterID, action)
	if err != nil {
		logger.ExitMethodWithError("ratingService.apply", err)
		return nil, err
	}
	rating, err := s.ratingRepo.EventRating(ctx, eventID)
	if err != nil {
		return nil, err
	}

	logger.ExitMethod("ratingService.apply", "vote", vote.String(), "rating", rating)
	return &domain.VoteResult{EventID: eventID, VoterID: voterID, Vote: vote, Rating: rating}, nil
}

func (s *ratingService) EventRating(ctx context.Context, eventID int64) (int64, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return 0, err
	}
	return s.ratingRepo.EventRating(ctx, eventID)
}

func (s *ratingService) EventRatings(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	return s.ratingRepo.EventRatings(ctx, eventIDs)
}

func (s *ratingService) AttendeeRating(ctx context.Context, attendeeID int64) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, attendeeID); err != nil {
		return 0, err
	}
	return s.ratingRepo.InitiatorRating(ctx, attendeeID)
}

func (s *ratingService) AttendeeRatings(ctx context.Context, attendeeIDs []int64) (map[int64]int64, error) {
	return s.ratingRepo.InitiatorRatings(ctx, attendeeIDs)
}
