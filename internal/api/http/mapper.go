package http

import (
	"encoding/json"
	"net/http"

	"eventhub-backend/internal/domain"
)

type EventResponse struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Annotation        string `json:"annotation"`
	Description       string `json:"description"`
	CategoryID        int64  `json:"category"`
	InitiatorID       int64  `json:"initiator"`
	EventDate         string `json:"eventDate"`
	Paid              bool   `json:"paid"`
	ParticipantLimit  int32  `json:"participantLimit"`
	RequestModeration bool   `json:"requestModeration"`
	State             string `json:"state"`
	CreatedOn         string `json:"createdOn"`
	PublishedOn       string `json:"publishedOn,omitempty"`
	ConfirmedRequests int64  `json:"confirmedRequests"`
	Views             int64  `json:"views"`
	Rating            int64  `json:"rating"`
}

type RequestResponse struct {
	ID        int64  `json:"id"`
	Event     int64  `json:"event"`
	Requester int64  `json:"requester"`
	Status    string `json:"status"`
	Created   string `json:"created"`
}

type ResolutionResponse struct {
	ConfirmedRequests []RequestResponse `json:"confirmedRequests"`
	RejectedRequests  []RequestResponse `json:"rejectedRequests"`
}

type ResolveRequest struct {
	RequestIDs []int64 `json:"requestIds"`
	Status     string  `json:"status"`
}

type VoteResponse struct {
	EventID int64  `json:"eventId"`
	UserID  int64  `json:"userId"`
	Vote    string `json:"vote"`
	Rating  int64  `json:"rating"`
}

type RatingResponse struct {
	ID     int64 `json:"id"`
	Rating int64 `json:"rating"`
}

func MapEventViewToResponse(v domain.EventView) EventResponse {
	resp := EventResponse{
		ID:                v.ID,
		Title:             v.Title,
		Annotation:        v.Annotation,
		Description:       v.Description,
		CategoryID:        v.CategoryID,
		InitiatorID:       v.InitiatorID,
		EventDate:         v.EventDate.Format(timestampLayout),
		Paid:              v.Paid,
		ParticipantLimit:  v.ParticipantLimit,
		RequestModeration: v.RequestModeration,
		State:             string(v.State),
		CreatedOn:         v.CreatedOn.Format(timestampLayout),
		ConfirmedRequests: v.ConfirmedCount,
		Views:             v.Views,
		Rating:            v.Rating,
	}
	if v.PublishedOn != nil {
		resp.PublishedOn = v.PublishedOn.Format(timestampLayout)
	}
	return resp
}

func MapEventViewsToResponse(views []domain.EventView) []EventResponse {
	out := make([]EventResponse, len(views))
	for i, v := range views {
		out[i] = MapEventViewToResponse(v)
	}
	return out
}

func MapRequestToResponse(r domain.ParticipationRequest) RequestResponse {
	return RequestResponse{
		ID:        r.ID,
		Event:     r.EventID,
		Requester: r.RequesterID,
		Status:    string(r.Status),
		Created:   r.CreatedOn.Format(timestampLayout),
	}
}

func MapRequestsToResponse(reqs []domain.ParticipationRequest) []RequestResponse {
	out := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = MapRequestToResponse(r)
	}
	return out
}

func MapResolutionToResponse(res domain.Resolution) ResolutionResponse {
	return ResolutionResponse{
		ConfirmedRequests: MapRequestsToResponse(res.Confirmed),
		RejectedRequests:  MapRequestsToResponse(res.Rejected),
	}
}

func MapVoteResultToResponse(v *domain.VoteResult) VoteResponse {
	return VoteResponse{
		EventID: v.EventID,
		UserID:  v.VoterID,
		Vote:    v.Vote.String(),
		Rating:  v.Rating,
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
