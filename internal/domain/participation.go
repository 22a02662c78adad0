package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch st := RequestStatus(s); st {
	case RequestStatusPending, RequestStatusConfirmed, RequestStatusRejected, RequestStatusCanceled:
		return st, true
	}
	return "", false
}

type ParticipationRequest struct {
	ID          int64         `json:"id"`
	EventID     int64         `json:"event_id"`
	RequesterID int64         `json:"requester_id"`
	Status      RequestStatus `json:"status"`
	CreatedOn   time.Time     `json:"created_on"`
}

// Resolution is the outcome of a batch resolve, in processing order.
type Resolution struct {
	Confirmed []ParticipationRequest `json:"confirmed_requests"`
	Rejected  []ParticipationRequest `json:"rejected_requests"`
}

// ResolutionPlanner decides a batch outcome from the requests (in caller order),
// the participant limit and confirmed count read under the event lock.
// It must not have side effects.
type ResolutionPlanner func(limit int32, confirmed int64, requests []ParticipationRequest) (Resolution, error)

// PlanResolution partitions requests for action under the event's limit.
// requests must be in caller-supplied order; that order is the tie-break.
func PlanResolution(event *Event, action RequestStatus, confirmed int64, requests []ParticipationRequest) (Resolution, error) {
	if action != RequestStatusConfirmed && action != RequestStatusRejected {
		return Resolution{}, ErrInvalidResolution
	}
	for _, r := range requests {
		if r.Status != RequestStatusPending {
			return Resolution{}, ErrNotAllPending
		}
	}

	res := Resolution{
		Confirmed: []ParticipationRequest{},
		Rejected:  []ParticipationRequest{},
	}
	if action == RequestStatusRejected {
		for _, r := range requests {
			r.Status = RequestStatusRejected
			res.Rejected = append(res.Rejected, r)
		}
		return res, nil
	}

	if !event.HasCapacityFor(confirmed) {
		return Resolution{}, ErrCapacityReached
	}

	available := len(requests)
	if !event.Unlimited() {
		available = min(int(int64(event.ParticipantLimit)-confirmed), len(requests))
	}
	for i, r := range requests {
		if i < available {
			r.Status = RequestStatusConfirmed
			res.Confirmed = append(res.Confirmed, r)
		} else {
			r.Status = RequestStatusRejected
			res.Rejected = append(res.Rejected, r)
		}
	}
	return res, nil
}

// ExcessConfirmed returns the confirmed requests that overshoot limit.
// confirmed must be ordered by admission priority (earliest created first);
// the tail beyond limit is returned, latest created first.
func ExcessConfirmed(limit int32, confirmed []ParticipationRequest) []ParticipationRequest {
	if limit <= 0 || len(confirmed) <= int(limit) {
		return nil
	}
	tail := confirmed[limit:]
	out := make([]ParticipationRequest, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// DedupIDs keeps the first occurrence of every id, preserving order.
func DedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
