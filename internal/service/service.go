package service

import (
	"context"

	"eventhub-backend/internal/domain"
)

type ParticipationService interface {
	SubmitRequest(ctx context.Context, attendeeID, eventID int64) (*domain.ParticipationRequest, error)
	ListByAttendee(ctx context.Context, attendeeID int64) ([]domain.ParticipationRequest, error)
	ListForEvent(ctx context.Context, initiatorID, eventID int64) ([]domain.ParticipationRequest, error)
	BatchResolve(ctx context.Context, initiatorID, eventID int64, requestIDs []int64, action domain.RequestStatus) (domain.Resolution, error)
	Cancel(ctx context.Context, attendeeID, requestID int64) (*domain.ParticipationRequest, error)
	ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
	// Reconcile demotes confirmations that overshoot a limit and returns how many were demoted.
	Reconcile(ctx context.Context) (int, error)
}

type RatingService interface {
	Like(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error)
	Dislike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error)
	RemoveLike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error)
	RemoveDislike(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error)
	EventRating(ctx context.Context, eventID int64) (int64, error)
	EventRatings(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
	AttendeeRating(ctx context.Context, attendeeID int64) (int64, error)
	AttendeeRatings(ctx context.Context, attendeeIDs []int64) (map[int64]int64, error)
}

// SearchParams is one public discovery query. ClientIP and URI describe the
// caller for hit recording.
type SearchParams struct {
	Filter   domain.EventFilter
	Sort     domain.EventSort
	From     int
	Size     int
	ClientIP string
	URI      string
}

type EventService interface {
	Search(ctx context.Context, params SearchParams) ([]domain.EventView, error)
	GetPublishedEvent(ctx context.Context, eventID int64, clientIP string) (*domain.EventView, error)
}

// Notifier tells requesters how a batch resolution affected their requests.
type Notifier interface {
	NotifyResolution(ctx context.Context, event *domain.Event, res domain.Resolution) error
}
