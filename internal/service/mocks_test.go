package service_test

import (
	"context"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.User), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) GetPublishedByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*domain.Event, error) {
	args := m.Called(ctx, id, initiatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) Search(ctx context.Context, filter domain.EventFilter, page domain.Page) ([]domain.Event, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockParticipationRepo
type MockParticipationRepo struct {
	mock.Mock
}

func (m *MockParticipationRepo) GetByID(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParticipationRequest), args.Error(1)
}
func (m *MockParticipationRepo) GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*domain.ParticipationRequest, error) {
	args := m.Called(ctx, id, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParticipationRequest), args.Error(1)
}
func (m *MockParticipationRepo) ListByRequester(ctx context.Context, requesterID int64) ([]domain.ParticipationRequest, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.ParticipationRequest), args.Error(1)
}
func (m *MockParticipationRepo) ListByEvent(ctx context.Context, eventID int64) ([]domain.ParticipationRequest, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.ParticipationRequest), args.Error(1)
}
func (m *MockParticipationRepo) ExistsActive(ctx context.Context, eventID, requesterID int64) (bool, error) {
	args := m.Called(ctx, eventID, requesterID)
	return args.Bool(0), args.Error(1)
}
func (m *MockParticipationRepo) CountConfirmedByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}
func (m *MockParticipationRepo) CreateWithinCapacity(ctx context.Context, req *domain.ParticipationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// Resolve runs the real planner over the stored requests, locked limit and
// confirmed count given to Return, so tests see what storage would persist.
func (m *MockParticipationRepo) Resolve(ctx context.Context, eventID int64, ids []int64, plan domain.ResolutionPlanner) (domain.Resolution, error) {
	args := m.Called(ctx, eventID, ids, plan)
	if err := args.Error(3); err != nil {
		return domain.Resolution{}, err
	}
	return plan(args.Get(1).(int32), args.Get(2).(int64), args.Get(0).([]domain.ParticipationRequest))
}
func (m *MockParticipationRepo) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockParticipationRepo) ListOverbooked(ctx context.Context) ([]repository.OverbookedEvent, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.OverbookedEvent), args.Error(1)
}
func (m *MockParticipationRepo) Demote(ctx context.Context, eventID int64) ([]domain.ParticipationRequest, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParticipationRequest), args.Error(1)
}

// MockRatingRepo
type MockRatingRepo struct {
	mock.Mock
}

func (m *MockRatingRepo) GetVote(ctx context.Context, eventID, voterID int64) (domain.Vote, error) {
	args := m.Called(ctx, eventID, voterID)
	return args.Get(0).(domain.Vote), args.Error(1)
}
func (m *MockRatingRepo) Apply(ctx context.Context, eventID, voterID int64, action domain.VoteAction) (domain.Vote, error) {
	args := m.Called(ctx, eventID, voterID, action)
	return args.Get(0).(domain.Vote), args.Error(1)
}
func (m *MockRatingRepo) EventRating(ctx context.Context, eventID int64) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRatingRepo) EventRatings(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}
func (m *MockRatingRepo) InitiatorRating(ctx context.Context, initiatorID int64) (int64, error) {
	args := m.Called(ctx, initiatorID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRatingRepo) InitiatorRatings(ctx context.Context, initiatorIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, initiatorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

// MockStatsClient
type MockStatsClient struct {
	mock.Mock
}

func (m *MockStatsClient) RecordHit(ctx context.Context, hit domain.Hit) error {
	args := m.Called(ctx, hit)
	return args.Error(0)
}
func (m *MockStatsClient) GetViews(ctx context.Context, uris []string) (map[string]int64, error) {
	args := m.Called(ctx, uris)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyResolution(ctx context.Context, event *domain.Event, res domain.Resolution) error {
	args := m.Called(ctx, event, res)
	return args.Error(0)
}

// memRatingRepo keeps votes in memory so aggregate behaviour can be checked
// across several calls.
type memRatingRepo struct {
	MockRatingRepo
	votes map[[2]int64]domain.Vote
}

func newMemRatingRepo() *memRatingRepo {
	return &memRatingRepo{votes: map[[2]int64]domain.Vote{}}
}

func (r *memRatingRepo) Apply(_ context.Context, eventID, voterID int64, action domain.VoteAction) (domain.Vote, error) {
	key := [2]int64{eventID, voterID}
	v := r.votes[key].Apply(action)
	if v == domain.NoVote {
		delete(r.votes, key)
	} else {
		r.votes[key] = v
	}
	return v, nil
}

func (r *memRatingRepo) EventRating(_ context.Context, eventID int64) (int64, error) {
	var sum int64
	for k, v := range r.votes {
		if k[0] == eventID {
			sum += v.Score()
		}
	}
	return sum, nil
}
