package http

import (
	"context"
	"net/http"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/service"
)

// RatingHandler serves like/dislike votes and attendee ratings.
type RatingHandler struct {
	ratingSvc service.RatingService
}

func NewRatingHandler(ratingSvc service.RatingService) *RatingHandler {
	return &RatingHandler{ratingSvc: ratingSvc}
}

type voteFunc func(ctx context.Context, voterID, eventID int64) (*domain.VoteResult, error)

func (h *RatingHandler) vote(fn voteFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userId")
		if err != nil {
			writeError(w, r, err)
			return
		}
		eventID, err := pathID(r, "eventId")
		if err != nil {
			writeError(w, r, err)
			return
		}
		res, err := fn(r.Context(), userID, eventID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MapVoteResultToResponse(res))
	}
}

// Like handles PUT /users/{userId}/events/{eventId}/like
func (h *RatingHandler) Like() http.HandlerFunc { return h.vote(h.ratingSvc.Like) }

// RemoveLike handles DELETE /users/{userId}/events/{eventId}/like
func (h *RatingHandler) RemoveLike() http.HandlerFunc { return h.vote(h.ratingSvc.RemoveLike) }

// Dislike handles PUT /users/{userId}/events/{eventId}/dislike
func (h *RatingHandler) Dislike() http.HandlerFunc { return h.vote(h.ratingSvc.Dislike) }

// RemoveDislike handles DELETE /users/{userId}/events/{eventId}/dislike
func (h *RatingHandler) RemoveDislike() http.HandlerFunc { return h.vote(h.ratingSvc.RemoveDislike) }

// GetUserRating handles GET /users/{userId}/rating
func (h *RatingHandler) GetUserRating(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rating, err := h.ratingSvc.AttendeeRating(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RatingResponse{ID: userID, Rating: rating})
}
