package http_test

import (
	"context"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockEventService
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Search(ctx context.Context, params service.SearchParams) ([]domain.EventView, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventView), args.Error(1)
}
func (m *MockEventService) GetPublishedEvent(ctx context.Context, eventID int64, clientIP string) (*domain.EventView, error) {
	args := m.Called(ctx, eventID, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventView), args.Error(1)
}

// MockParticipationService
type MockParticipationService struct {
	mock.Mock
}

func (m *MockParticipationService) SubmitRequest(ctx context.Context, attendeeID, eventID int64) (*domain.ParticipationRequest, error) {
	args := m.Called(ctx, attendeeID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParticipationRequest), args.Error(1)
}
func (m *MockParticipationService) ListByAttendee(ctx context.Context, attendeeID int64) ([]domain.ParticipationRequest, error) {
	args := m.Called(ctx, attendeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParticipationRequest), args.Error(1)
}
func (m *MockParticipationService) ListForEvent(ctx context.Context, initiatorID, eventID int64) ([]domain.ParticipationRequest, error) {
	args := m.Called(ctx, initiatorID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParticipationRequest), args.Error(1)
}
func (m *MockParticipationService) BatchResolve(ctx context.Context, initiatorID, eventID int64, requestIDs []int64, action domain.RequestStatus) (domain.Resolution, error) {
	args := m.Called(ctx, initiatorID, eventID, requestIDs, action)
	return args.Get(0).(domain.Resolution), args.Error(1)
}
func (m *MockParticipationService) Cancel(ctx context.Context, attendeeID, requestID int64) (*domain.ParticipationRequest, error) {
	args := m.Called(ctx, attendeeID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParticipationRequest), args.Error(1)
}
func (m *MockParticipationService) ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, eventIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}
func (m *MockParticipationService) Reconcile(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockRatingService
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) vote(method string, ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	args := m.MethodCalled(method, ctx, voterID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteResult), args.Error(1)
}
func (m *MockRatingService) Like(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	return m.vote("Like", ctx, voterID, eventID)
}
func (m *MockRatingService) Dislike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	return m.vote("Dislike", ctx, voterID, eventID)
}
func (m *MockRatingService) RemoveLike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	return m.vote("RemoveLike", ctx, voterID, eventID)
}
func (m *MockRatingService) RemoveDislike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error) {
	return m.vote("RemoveDislike", ctx, voterID, eventID)
}
func (m *MockRatingService) EventRating(ctx context.Context, eventID int64) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRatingService) EventRatings(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, eventIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}
func (m *MockRatingService) AttendeeRating(ctx context.Context, attendeeID int64) (int64, error) {
	args := m.Called(ctx, attendeeID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRatingService) AttendeeRatings(ctx context.Context, attendeeIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, attendeeIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}
