package service_test

import (
	"context"
	"testing"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRatingFixture(ctx context.Context, event *domain.Event) (service.RatingService, *memRatingRepo) {
	userRepo := new(MockUserRepo)
	eventRepo := new(MockEventRepo)
	ratings := newMemRatingRepo()
	userRepo.On("GetByID", ctx, mock.AnythingOfType("int64")).Return(&domain.User{ID: 2}, nil)
	eventRepo.On("GetByID", ctx, event.ID).Return(event, nil)
	return service.NewRatingService(userRepo, eventRepo, ratings), ratings
}

func TestRatingService_VoteSequences(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{ID: 1, InitiatorID: 10, State: domain.EventStatePublished}

	type step func(service.RatingService) (*domain.VoteResult, error)
	like := func(s service.RatingService) (*domain.VoteResult, error) { return s.Like(ctx, 2, 1) }
	dislike := func(s service.RatingService) (*domain.VoteResult, error) { return s.Dislike(ctx, 2, 1) }
	removeLike := func(s service.RatingService) (*domain.VoteResult, error) { return s.RemoveLike(ctx, 2, 1) }
	removeDislike := func(s service.RatingService) (*domain.VoteResult, error) { return s.RemoveDislike(ctx, 2, 1) }

	tests := []struct {
		name       string
		steps      []step
		wantRating int64
		wantVote   domain.Vote
	}{
		{"LikeTwice", []step{like, like}, 1, domain.Liked},
		{"LikeThenDislike", []step{like, dislike}, -1, domain.Disliked},
		{"LikeThenRemoveLike", []step{like, removeLike}, 0, domain.NoVote},
		{"RemoveDislikeOnLikeKeepsLike", []step{like, removeDislike}, 1, domain.Liked},
		{"RemoveWithoutVote", []step{removeLike}, 0, domain.NoVote},
		{"DislikeTwice", []step{dislike, dislike}, -1, domain.Disliked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newRatingFixture(ctx, event)
			var res *domain.VoteResult
			for _, s := range tt.steps {
				var err error
				res, err = s(svc)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRating, res.Rating)
			assert.Equal(t, tt.wantVote, res.Vote)
		})
	}
}

func TestRatingService_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("SelfRating", func(t *testing.T) {
		svc, ratings := newRatingFixture(ctx, &domain.Event{ID: 1, InitiatorID: 2, State: domain.EventStatePublished})

		_, err := svc.Like(ctx, 2, 1)
		assert.ErrorIs(t, err, domain.ErrSelfRating)
		assert.Empty(t, ratings.votes)
	})

	t.Run("NotPublished", func(t *testing.T) {
		svc, ratings := newRatingFixture(ctx, &domain.Event{ID: 1, InitiatorID: 10, State: domain.EventStateCanceled})

		_, err := svc.Dislike(ctx, 2, 1)
		assert.ErrorIs(t, err, domain.ErrEventNotPublished)
		assert.Empty(t, ratings.votes)
	})

	t.Run("UnknownVoter", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, int64(5)).Return(nil, domain.NotFoundf("user with id=%d was not found", 5))
		svc := service.NewRatingService(userRepo, new(MockEventRepo), new(MockRatingRepo))

		_, err := svc.Like(ctx, 5, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRatingService_Aggregates(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	eventRepo := new(MockEventRepo)
	ratingRepo := new(MockRatingRepo)
	svc := service.NewRatingService(userRepo, eventRepo, ratingRepo)

	eventRepo.On("GetByID", ctx, int64(1)).Return(&domain.Event{ID: 1}, nil)
	ratingRepo.On("EventRating", ctx, int64(1)).Return(int64(0), nil)
	userRepo.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10}, nil)
	userRepo.On("GetByID", ctx, int64(11)).Return(nil, domain.NotFoundf("user with id=%d was not found", 11))
	ratingRepo.On("InitiatorRating", ctx, int64(10)).Return(int64(7), nil)
	ratingRepo.On("EventRatings", ctx, []int64{1, 2}).Return(map[int64]int64{1: 3}, nil)

	r, err := svc.EventRating(ctx, 1)
	assert.NoError(t, err)
	assert.Zero(t, r)

	r, err = svc.AttendeeRating(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), r)

	_, err = svc.AttendeeRating(ctx, 11)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	batch, err := svc.EventRatings(ctx, []int64{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), batch[1])
}
