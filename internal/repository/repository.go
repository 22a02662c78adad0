package repository

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error)
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetPublishedByID(ctx context.Context, id int64) (*domain.Event, error)
	GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*domain.Event, error)
	// Search returns events matching filter ordered by event date ascending.
	// A zero page returns every match.
	Search(ctx context.Context, filter domain.EventFilter, page domain.Page) ([]domain.Event, error)
}

type ParticipationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParticipationRequest, error)
	GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*domain.ParticipationRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.ParticipationRequest, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.ParticipationRequest, error)
	ExistsActive(ctx context.Context, eventID, requesterID int64) (bool, error)
	CountConfirmedByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error)

	// CreateWithinCapacity inserts req while the event row is locked. Under the
	// lock it re-checks that the event is published and not the requester's own,
	// and fails with domain.ErrCapacityExceeded when a non-zero limit is reached.
	CreateWithinCapacity(ctx context.Context, req *domain.ParticipationRequest) error
	// Resolve loads ids in the given order under the event lock, asks plan for
	// the outcome using the locked limit and persists it in the same transaction.
	Resolve(ctx context.Context, eventID int64, ids []int64, plan domain.ResolutionPlanner) (domain.Resolution, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error

	// ListOverbooked returns limited events whose confirmed count exceeds the limit.
	ListOverbooked(ctx context.Context) ([]OverbookedEvent, error)
	// Demote moves the excess confirmed requests of an event to REJECTED,
	// keeping the earliest created ones, and returns the demoted requests.
	Demote(ctx context.Context, eventID int64) ([]domain.ParticipationRequest, error)
}

type OverbookedEvent struct {
	EventID          int64
	ParticipantLimit int32
	Confirmed        int64
	CheckedAt        time.Time
}

type RatingRepository interface {
	GetVote(ctx context.Context, eventID, voterID int64) (domain.Vote, error)
	// Apply performs action as one single-row statement and returns the
	// resulting vote.
	Apply(ctx context.Context, eventID, voterID int64, action domain.VoteAction) (domain.Vote, error)
	EventRating(ctx context.Context, eventID int64) (int64, error)
	EventRatings(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
	InitiatorRating(ctx context.Context, initiatorID int64) (int64, error)
	InitiatorRatings(ctx context.Context, initiatorIDs []int64) (map[int64]int64, error)
}
